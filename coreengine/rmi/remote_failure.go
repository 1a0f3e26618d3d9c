package rmi

import "reflect"

// RemoteCallFailure is the standard remote-failure exception every remote
// method must declare, directly or via a supertype in its throws clause.
type RemoteCallFailure struct {
	Message string
}

func (e *RemoteCallFailure) Error() string {
	return "rmi: remote call failure: " + e.Message
}

var remoteCallFailureType = reflect.TypeOf((*RemoteCallFailure)(nil))

func init() {
	RegisterType(remoteCallFailureType)
}

// isSupertypeOrEqual reports whether sup is sub itself, or an interface type
// that sub implements. This is the Go realization of "T is a supertype of,
// or equal to, U" used throughout exception-set comparisons.
func isSupertypeOrEqual(sup, sub reflect.Type) bool {
	if sup == nil || sub == nil {
		return false
	}
	if sup == sub {
		return true
	}
	if sup.Kind() == reflect.Interface {
		return sub.Implements(sup)
	}
	return false
}
