// Package commbus provides tests for message types.
package commbus

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// MESSAGE CATEGORY TESTS
// =============================================================================

// Event messages
func TestInvocationStarted_Category(t *testing.T) {
	msg := &InvocationStarted{}
	assert.Equal(t, "event", msg.Category())
}

func TestInvocationCompleted_Category(t *testing.T) {
	msg := &InvocationCompleted{}
	assert.Equal(t, "event", msg.Category())
}

func TestDispatchStarted_Category(t *testing.T) {
	msg := &DispatchStarted{}
	assert.Equal(t, "event", msg.Category())
}

func TestDispatchCompleted_Category(t *testing.T) {
	msg := &DispatchCompleted{}
	assert.Equal(t, "event", msg.Category())
}

func TestSessionOpened_Category(t *testing.T) {
	msg := &SessionOpened{}
	assert.Equal(t, "event", msg.Category())
}

func TestSessionClosed_Category(t *testing.T) {
	msg := &SessionClosed{}
	assert.Equal(t, "event", msg.Category())
}

func TestResolvePhaseTransition_Category(t *testing.T) {
	msg := &ResolvePhaseTransition{}
	assert.Equal(t, "event", msg.Category())
}

func TestStubBroadcast_Category(t *testing.T) {
	msg := &StubBroadcast{}
	assert.Equal(t, "event", msg.Category())
}

func TestInvocationResultChunk_Category(t *testing.T) {
	msg := &InvocationResultChunk{}
	assert.Equal(t, "event", msg.Category())
}

func TestInvalidateCache_Category(t *testing.T) {
	msg := &InvalidateInterfaceCache{}
	assert.Equal(t, "command", msg.Category())
}

func TestInterfaceExamined_Category(t *testing.T) {
	msg := &InterfaceExamined{}
	assert.Equal(t, "event", msg.Category())
}

func TestIntrospectionFailed_Category(t *testing.T) {
	msg := &IntrospectionFailed{}
	assert.Equal(t, "event", msg.Category())
}

// Query messages with IsQuery()
func TestGetStubMethodAccess_Category(t *testing.T) {
	msg := &GetStubMethodAccess{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery() // Call method for coverage
}

func TestGetTransportEndpoint_Category(t *testing.T) {
	msg := &GetTransportEndpoint{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestGetCodecConfig_Category(t *testing.T) {
	msg := &GetCodecConfig{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestGetInterfaceDescriptor_Category(t *testing.T) {
	msg := &GetInterfaceDescriptor{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestHealthCheckRequest_Category(t *testing.T) {
	msg := &HealthCheckRequest{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestGetInterfaceCatalog_Category(t *testing.T) {
	msg := &GetInterfaceCatalog{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestGetInterfaceEntry_Category(t *testing.T) {
	msg := &GetInterfaceEntry{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestGetMethodDescriptor_Category(t *testing.T) {
	msg := &GetMethodDescriptor{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

func TestListMethodDescriptors_Category(t *testing.T) {
	msg := &ListMethodDescriptors{}
	assert.Equal(t, "query", msg.Category())
	msg.IsQuery()
}

// =============================================================================
// MESSAGE TYPE HELPER TESTS
// =============================================================================

func TestGetMessageType_KnownTypes(t *testing.T) {
	tests := []struct {
		name     string
		msg      Message
		expected string
	}{
		{"InvocationStarted", &InvocationStarted{}, "InvocationStarted"},
		{"InvocationCompleted", &InvocationCompleted{}, "InvocationCompleted"},
		{"DispatchStarted", &DispatchStarted{}, "DispatchStarted"},
		{"DispatchCompleted", &DispatchCompleted{}, "DispatchCompleted"},
		{"SessionOpened", &SessionOpened{}, "SessionOpened"},
		{"SessionClosed", &SessionClosed{}, "SessionClosed"},
		{"ResolvePhaseTransition", &ResolvePhaseTransition{}, "ResolvePhaseTransition"},
		{"GetStubMethodAccess", &GetStubMethodAccess{}, "GetStubMethodAccess"},
		{"HealthCheckRequest", &HealthCheckRequest{}, "HealthCheckRequest"},
		{"StubBroadcast", &StubBroadcast{}, "StubBroadcast"},
		{"InvocationResultChunk", &InvocationResultChunk{}, "InvocationResultChunk"},
		{"GetInterfaceCatalog", &GetInterfaceCatalog{}, "GetInterfaceCatalog"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgType := GetMessageType(tt.msg)
			assert.Equal(t, tt.expected, msgType)
		})
	}
}

func TestGetMessageType_NilMessage(t *testing.T) {
	msgType := GetMessageType(nil)
	assert.Equal(t, "Unknown", msgType)
}
