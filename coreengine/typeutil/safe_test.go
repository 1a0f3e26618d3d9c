package typeutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// MAP[STRING]ANY TESTS
// =============================================================================

func TestSafeMapStringAny(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		wantMap  map[string]any
		wantBool bool
	}{
		{
			name:     "valid map",
			input:    map[string]any{"key": "value"},
			wantMap:  map[string]any{"key": "value"},
			wantBool: true,
		},
		{
			name:     "nil value",
			input:    nil,
			wantMap:  nil,
			wantBool: false,
		},
		{
			name:     "wrong type string",
			input:    "not a map",
			wantMap:  nil,
			wantBool: false,
		},
		{
			name:     "wrong type int",
			input:    42,
			wantMap:  nil,
			wantBool: false,
		},
		{
			name:     "empty map",
			input:    map[string]any{},
			wantMap:  map[string]any{},
			wantBool: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeMapStringAny(tt.input)
			assert.Equal(t, tt.wantBool, ok)
			assert.Equal(t, tt.wantMap, got)
		})
	}
}

// =============================================================================
// STRING TESTS
// =============================================================================

func TestSafeString(t *testing.T) {
	tests := []struct {
		name       string
		input      any
		wantString string
		wantBool   bool
	}{
		{
			name:       "valid string",
			input:      "hello",
			wantString: "hello",
			wantBool:   true,
		},
		{
			name:       "empty string",
			input:      "",
			wantString: "",
			wantBool:   true,
		},
		{
			name:       "nil value",
			input:      nil,
			wantString: "",
			wantBool:   false,
		},
		{
			name:       "wrong type int",
			input:      42,
			wantString: "",
			wantBool:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeString(tt.input)
			assert.Equal(t, tt.wantBool, ok)
			assert.Equal(t, tt.wantString, got)
		})
	}
}

// =============================================================================
// INT TESTS
// =============================================================================

func TestSafeInt(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		wantInt  int
		wantBool bool
	}{
		{
			name:     "int value",
			input:    42,
			wantInt:  42,
			wantBool: true,
		},
		{
			name:     "int64 value",
			input:    int64(100),
			wantInt:  100,
			wantBool: true,
		},
		{
			name:     "int32 value",
			input:    int32(50),
			wantInt:  50,
			wantBool: true,
		},
		{
			name:     "float64 value from JSON",
			input:    float64(123),
			wantInt:  123,
			wantBool: true,
		},
		{
			name:     "nil value",
			input:    nil,
			wantInt:  0,
			wantBool: false,
		},
		{
			name:     "string value",
			input:    "42",
			wantInt:  0,
			wantBool: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeInt(tt.input)
			assert.Equal(t, tt.wantBool, ok)
			assert.Equal(t, tt.wantInt, got)
		})
	}
}

func TestSafeIntDefault(t *testing.T) {
	assert.Equal(t, 42, SafeIntDefault(42, 0))
	assert.Equal(t, 99, SafeIntDefault(nil, 99))
	assert.Equal(t, 99, SafeIntDefault("not int", 99))
}

// =============================================================================
// BOOL TESTS
// =============================================================================

func TestSafeBool(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		wantBool bool
		wantOk   bool
	}{
		{
			name:     "true value",
			input:    true,
			wantBool: true,
			wantOk:   true,
		},
		{
			name:     "false value",
			input:    false,
			wantBool: false,
			wantOk:   true,
		},
		{
			name:     "nil value",
			input:    nil,
			wantBool: false,
			wantOk:   false,
		},
		{
			name:     "string value",
			input:    "true",
			wantBool: false,
			wantOk:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeBool(tt.input)
			assert.Equal(t, tt.wantOk, ok)
			assert.Equal(t, tt.wantBool, got)
		})
	}
}

func TestSafeBoolDefault(t *testing.T) {
	assert.True(t, SafeBoolDefault(true, false))
	assert.False(t, SafeBoolDefault(false, true))
	assert.True(t, SafeBoolDefault(nil, true))
	assert.False(t, SafeBoolDefault("not bool", false))
}

// =============================================================================
// SLICE TESTS
// =============================================================================

func TestSafeSlice(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		wantSlice []any
		wantBool  bool
	}{
		{
			name:      "valid slice",
			input:     []any{1, "two", 3.0},
			wantSlice: []any{1, "two", 3.0},
			wantBool:  true,
		},
		{
			name:      "nil value",
			input:     nil,
			wantSlice: nil,
			wantBool:  false,
		},
		{
			name:      "wrong type",
			input:     "not a slice",
			wantSlice: nil,
			wantBool:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SafeSlice(tt.input)
			assert.Equal(t, tt.wantBool, ok)
			assert.Equal(t, tt.wantSlice, got)
		})
	}
}
