package rmi

import (
	"fmt"
	"time"
)

// ContextConfig configures an IntrospectionContext: a query timeout and a
// logger. Small, validated, JSON-tagged, with a
// Default constructor and a Validate method.
//
// QueryTimeout bounds only the calling goroutine's wait on Examine, not
// introspection itself: a timed-out caller gives up while examineLocked
// keeps running to completion under the cache mutex, so the no-cancellation
// guarantee for an in-flight examine/resolve pass is never violated.
type ContextConfig struct {
	QueryTimeout time.Duration `json:"query_timeout"`
	Logger       Logger        `json:"-"`
}

// DefaultContextConfig returns sane defaults: a 5s query timeout and the
// default log.Printf-backed logger.
func DefaultContextConfig() ContextConfig {
	return ContextConfig{
		QueryTimeout: 5 * time.Second,
		Logger:       &defaultLogger{},
	}
}

// Validate reports a configuration error, if any.
func (c ContextConfig) Validate() error {
	if c.QueryTimeout <= 0 {
		return fmt.Errorf("rmi: query timeout must be positive, got %s", c.QueryTimeout)
	}
	return nil
}
