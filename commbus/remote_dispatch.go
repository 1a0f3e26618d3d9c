package commbus

import (
	"context"
	"sync"
	"time"

	"github.com/jeeves-cluster-organization/rmi-introspector/coreengine/rmi"
)

// RemoteDispatcher is InMemoryCommBus's Identifier-keyed sibling: once a
// wire invocation has been resolved to a MethodDescriptor via
// InterfaceDescriptor.MethodByID, it is routed by the compact method
// Identifier instead of a string message type.
type RemoteDispatcher struct {
	handlers     map[rmi.Identifier]HandlerFunc
	queryTimeout time.Duration
	logger       BusLogger
	mu           sync.RWMutex
}

// NewRemoteDispatcher creates an empty dispatcher with the default logger.
func NewRemoteDispatcher(queryTimeout time.Duration) *RemoteDispatcher {
	return &RemoteDispatcher{
		handlers:     make(map[rmi.Identifier]HandlerFunc),
		queryTimeout: queryTimeout,
		logger:       &defaultBusLogger{},
	}
}

// SetLogger sets the logger. Use NoopBusLogger() to disable logging.
func (d *RemoteDispatcher) SetLogger(logger BusLogger) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if logger == nil {
		logger = &defaultBusLogger{}
	}
	d.logger = logger
}

// RegisterMethod registers the handler that serves invocations of method.
// Only one handler per Identifier is allowed.
func (d *RemoteDispatcher) RegisterMethod(method rmi.Identifier, handler HandlerFunc) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[method]; exists {
		return NewHandlerAlreadyRegisteredError(method.String())
	}
	d.handlers[method] = handler
	d.logger.Debug("remote_method_registered", "method_id", method.String())
	return nil
}

// Dispatch routes an incoming invocation by method Identifier, enforcing
// the dispatcher's query timeout, mirroring InMemoryCommBus.QuerySync.
func (d *RemoteDispatcher) Dispatch(ctx context.Context, method rmi.Identifier, invocation Message) (any, error) {
	d.mu.RLock()
	handler, exists := d.handlers[method]
	d.mu.RUnlock()

	if !exists {
		return nil, NewNoHandlerError(method.String())
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, d.queryTimeout)
	defer cancel()

	type result struct {
		value any
		err   error
	}
	resultCh := make(chan result, 1)

	go func() {
		v, e := handler(timeoutCtx, invocation)
		resultCh <- result{value: v, err: e}
	}()

	select {
	case <-timeoutCtx.Done():
		return nil, NewQueryTimeoutError(method.String(), d.queryTimeout.Seconds())
	case res := <-resultCh:
		if res.err != nil {
			d.logger.Warn("remote_dispatch_failed", "method_id", method.String(), "error", res.err.Error())
		}
		return res.value, res.err
	}
}

// HasMethod reports whether a handler is registered for method.
func (d *RemoteDispatcher) HasMethod(method rmi.Identifier) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	_, exists := d.handlers[method]
	return exists
}
