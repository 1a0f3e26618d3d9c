package rmi

import "context"

// Transport moves an encoded invocation to a remote endpoint and returns its
// encoded response. Referenced only by interface: no implementation ships
// in this package, matching the separation between descriptor model and
// wire transport.
type Transport interface {
	// Send delivers a pre-encoded invocation addressed by method Identifier
	// and returns the encoded response, or an error if the round trip
	// failed before a response was produced.
	Send(ctx context.Context, method Identifier, payload []byte) (response []byte, err error)
}

// SessionExecutor runs one resolved invocation against a concrete stub
// implementation once a MethodDescriptor has been matched by ID. It is the
// seam a skeleton/dispatch layer implements; commbus.RemoteDispatcher
// demonstrates the routing half without providing an executor itself.
type SessionExecutor interface {
	Execute(ctx context.Context, method *MethodDescriptor, args []any) (result any, err error)
}
