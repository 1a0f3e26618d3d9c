package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MinimalInterface(t *testing.T) {
	doc := Document{
		"name":          "Calculator",
		"extendsRemote": true,
		"methods": []any{
			map[string]any{
				"name":                  "add",
				"parameters":            []any{"int", "int"},
				"return":                "int",
				"exceptions":            []any{"*rmi.RemoteCallFailure"},
				"idempotent":            true,
				"responseTimeoutMillis": -1,
			},
		},
	}

	src, err := Load(doc, nil)
	require.NoError(t, err)
	assert.Equal(t, "Calculator", src.Name)
	require.Len(t, src.Methods, 1)
	assert.Equal(t, "add", src.Methods[0].Name)
	assert.Len(t, src.Methods[0].Parameters, 2)
	assert.True(t, src.Methods[0].Annotations.Idempotent)
}

func TestLoad_MissingName(t *testing.T) {
	_, err := Load(Document{}, nil)
	assert.Error(t, err)
}

func TestLoad_UnregisteredType(t *testing.T) {
	doc := Document{
		"name": "Broken",
		"methods": []any{
			map[string]any{"name": "op", "parameters": []any{"no.such.Type"}},
		},
	}
	_, err := Load(doc, nil)
	assert.Error(t, err)
}

func TestLoad_RemoteTypeParameter_SelfReferential(t *testing.T) {
	doc := Document{
		"name": "Node",
		"methods": []any{
			map[string]any{
				"name":       "next",
				"parameters": []any{map[string]any{"type": "remote", "ref": "Node"}},
				"exceptions": []any{"*rmi.RemoteCallFailure"},
			},
		},
	}

	src, err := Load(doc, nil)
	require.NoError(t, err)
	require.Len(t, src.Methods, 1)
	require.Len(t, src.Methods[0].Parameters, 1)
	assert.Same(t, src, src.Methods[0].Parameters[0].Remote)
}

func TestLoad_RemoteTypeParameter_ViaRegistry(t *testing.T) {
	registry := Registry{
		"Target": Document{"name": "Target", "methods": []any{}},
	}
	doc := Document{
		"name": "Holder",
		"methods": []any{
			map[string]any{
				"name":       "accept",
				"parameters": []any{map[string]any{"type": "remote", "ref": "Target", "dimensions": 1}},
				"exceptions": []any{"*rmi.RemoteCallFailure"},
			},
		},
	}

	src, err := Load(doc, registry)
	require.NoError(t, err)
	param := src.Methods[0].Parameters[0]
	require.NotNil(t, param.Remote)
	assert.Equal(t, "Target", param.Remote.Name)
	assert.Equal(t, 1, param.Dimensions)
}

func TestLoad_RemoteTypeParameter_UnknownRef(t *testing.T) {
	doc := Document{
		"name": "Holder",
		"methods": []any{
			map[string]any{
				"name":       "accept",
				"parameters": []any{map[string]any{"type": "remote", "ref": "NoSuchInterface"}},
			},
		},
	}
	_, err := Load(doc, nil)
	assert.Error(t, err)
}

func TestLoad_Supertypes_ByRegistryName(t *testing.T) {
	registry := Registry{
		"Base": Document{"name": "Base", "methods": []any{}},
	}
	doc := Document{
		"name":       "Combined",
		"supertypes": []any{"Base"},
		"methods":    []any{},
	}

	src, err := Load(doc, registry)
	require.NoError(t, err)
	require.Len(t, src.Supertypes, 1)
	assert.Equal(t, "Base", src.Supertypes[0].Name)
}

func TestLoad_NestedSupertypes(t *testing.T) {
	doc := Document{
		"name": "Combined",
		"supertypes": []any{
			map[string]any{"name": "Base", "methods": []any{}},
		},
		"methods": []any{},
	}
	src, err := Load(doc, nil)
	require.NoError(t, err)
	require.Len(t, src.Supertypes, 1)
	assert.Equal(t, "Base", src.Supertypes[0].Name)
}
