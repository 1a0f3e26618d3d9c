package commbus

import (
	"context"
	"testing"
	"time"

	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingInvocation struct{}

func (pingInvocation) Category() string { return "command" }

func TestRemoteDispatcher_RegisterAndDispatch(t *testing.T) {
	d := NewRemoteDispatcher(time.Second)
	d.SetLogger(NoopBusLogger())

	var methodID rmi.Identifier
	called := false
	require.NoError(t, d.RegisterMethod(methodID, func(ctx context.Context, msg Message) (any, error) {
		called = true
		return "pong", nil
	}))

	result, err := d.Dispatch(context.Background(), methodID, pingInvocation{})
	require.NoError(t, err)
	assert.True(t, called)
	assert.Equal(t, "pong", result)
}

func TestRemoteDispatcher_NoHandler(t *testing.T) {
	d := NewRemoteDispatcher(time.Second)
	var methodID rmi.Identifier

	_, err := d.Dispatch(context.Background(), methodID, pingInvocation{})
	require.Error(t, err)
	var target *NoHandlerError
	assert.ErrorAs(t, err, &target)
}

func TestRemoteDispatcher_DuplicateRegistration(t *testing.T) {
	d := NewRemoteDispatcher(time.Second)
	var methodID rmi.Identifier
	handler := func(ctx context.Context, msg Message) (any, error) { return nil, nil }

	require.NoError(t, d.RegisterMethod(methodID, handler))
	err := d.RegisterMethod(methodID, handler)
	require.Error(t, err)
	var target *HandlerAlreadyRegisteredError
	assert.ErrorAs(t, err, &target)
}
