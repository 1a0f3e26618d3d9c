package rmi

import (
	"errors"
	"fmt"
)

// ErrNullInput is returned by Examine when the candidate interface reference
// is absent.
var ErrNullInput = errors.New("rmi: candidate interface source is nil")

// MalformedInterfaceError reports a validation failure found while examining
// a candidate interface: not an interface, not public, missing the mandatory
// remote-failure exception, an asynchronous method with a non-void return,
// or conflicting annotations on an inherited method.
type MalformedInterfaceError struct {
	InterfaceName string
	MethodName    string
	Reason        string
}

func (e *MalformedInterfaceError) Error() string {
	if e.MethodName != "" {
		return fmt.Sprintf("rmi: malformed interface %q: method %q: %s", e.InterfaceName, e.MethodName, e.Reason)
	}
	return fmt.Sprintf("rmi: malformed interface %q: %s", e.InterfaceName, e.Reason)
}

// NewMalformedInterfaceError creates a new MalformedInterfaceError.
func NewMalformedInterfaceError(interfaceName, methodName, reason string) *MalformedInterfaceError {
	return &MalformedInterfaceError{InterfaceName: interfaceName, MethodName: methodName, Reason: reason}
}

// NotFoundError is a normal outcome of MethodByID/FindMethod lookup misses.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("rmi: %s not found: %s", e.Kind, e.Key)
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(kind, key string) *NotFoundError {
	return &NotFoundError{Kind: kind, Key: key}
}

// ExamineTimeoutError is returned by IntrospectionContext.Examine when
// ContextConfig.QueryTimeout elapses before examineLocked returns.
// Introspection itself is not interrupted; it keeps running under the cache
// mutex and will still populate the cache for the next caller.
type ExamineTimeoutError struct {
	InterfaceName  string
	TimeoutSeconds float64
}

func (e *ExamineTimeoutError) Error() string {
	return fmt.Sprintf("rmi: examine %q timed out after %.3fs", e.InterfaceName, e.TimeoutSeconds)
}

// NewExamineTimeoutError creates a new ExamineTimeoutError.
func NewExamineTimeoutError(interfaceName string, timeoutSeconds float64) *ExamineTimeoutError {
	return &ExamineTimeoutError{InterfaceName: interfaceName, TimeoutSeconds: timeoutSeconds}
}
