// Package commbus provides CommBus Message Definitions.
//
// This module defines all message types exchanged on the introspection
// communication bus. Messages are organized by domain.
//
// Categories:
//   - EVENT: Fire-and-forget, fan-out to subscribers
//   - QUERY: Request-response, single handler
//   - COMMAND: Fire-and-forget, single handler
package commbus

// =============================================================================
// MESSAGE CATEGORIES
// =============================================================================

// MessageCategory represents message routing categories.
type MessageCategory string

const (
	// MessageCategoryEvent represents fire-and-forget, fan-out to all subscribers.
	MessageCategoryEvent MessageCategory = "event"
	// MessageCategoryQuery represents request-response, single handler.
	MessageCategoryQuery MessageCategory = "query"
	// MessageCategoryCommand represents fire-and-forget, single handler.
	MessageCategoryCommand MessageCategory = "command"
)

// HealthStatus represents canonical health status values.
type HealthStatus string

const (
	HealthStatusHealthy   HealthStatus = "healthy"
	HealthStatusDegraded  HealthStatus = "degraded"
	HealthStatusUnhealthy HealthStatus = "unhealthy"
	HealthStatusUnknown   HealthStatus = "unknown"
)

// =============================================================================
// STUB INVOCATION LIFECYCLE EVENTS
// =============================================================================

// InvocationStarted is emitted when a remote stub begins processing a call.
// Subscribers: telemetry, trace logging.
type InvocationStarted struct {
	StubName     string         `json:"stub_name"`
	SessionID    string         `json:"session_id"`
	RequestID    string         `json:"request_id"`
	InvocationID string         `json:"invocation_id"`
	Payload      map[string]any `json:"payload,omitempty"`
}

// Category implements the Message interface.
func (m *InvocationStarted) Category() string { return string(MessageCategoryEvent) }

// InvocationCompleted is emitted when a remote stub finishes processing a call.
// Subscribers: telemetry, trace logging.
type InvocationCompleted struct {
	StubName     string         `json:"stub_name"`
	SessionID    string         `json:"session_id"`
	RequestID    string         `json:"request_id"`
	InvocationID string         `json:"invocation_id"`
	Status       string         `json:"status"` // "success", "error", "skipped"
	DurationMS   int            `json:"duration_ms"`
	Error        *string        `json:"error,omitempty"`
	Payload      map[string]any `json:"payload,omitempty"`
}

// Category implements the Message interface.
func (m *InvocationCompleted) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// METHOD DISPATCH EVENTS
// =============================================================================

// DispatchStarted is emitted when a method dispatch begins.
// Subscribers: telemetry, progress reporting.
type DispatchStarted struct {
	MethodName    string            `json:"method_name"`
	SessionID     string            `json:"session_id"`
	RequestID     string            `json:"request_id"`
	StepNumber    int               `json:"step_number"`
	TotalSteps    int               `json:"total_steps"`
	ParamsPreview map[string]string `json:"params_preview,omitempty"`
}

// Category implements the Message interface.
func (m *DispatchStarted) Category() string { return string(MessageCategoryEvent) }

// DispatchCompleted is emitted when method dispatch finishes.
// Subscribers: telemetry, progress reporting.
type DispatchCompleted struct {
	MethodName      string  `json:"method_name"`
	SessionID       string  `json:"session_id"`
	RequestID       string  `json:"request_id"`
	Status          string  `json:"status"` // "success", "error", "timeout"
	ExecutionTimeMS int     `json:"execution_time_ms"`
	Error           *string `json:"error,omitempty"`
	ErrorType       *string `json:"error_type,omitempty"`
}

// Category implements the Message interface.
func (m *DispatchCompleted) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// SESSION LIFECYCLE EVENTS
// =============================================================================

// SessionOpened is emitted when a new introspection session starts.
type SessionOpened struct {
	SessionID    string `json:"session_id"`
	RequestID    string `json:"request_id"`
	InvocationID string `json:"invocation_id"`
	Query        string `json:"query"`
	UserID       string `json:"user_id"`
}

// Category implements the Message interface.
func (m *SessionOpened) Category() string { return string(MessageCategoryEvent) }

// SessionClosed is emitted when a session completes (success or failure).
type SessionClosed struct {
	SessionID           string  `json:"session_id"`
	RequestID            string  `json:"request_id"`
	InvocationID         string  `json:"invocation_id"`
	Status               string  `json:"status"` // "completed", "error", "cancelled"
	DurationMS           int     `json:"duration_ms"`
	RoundTripsCompleted  int     `json:"round_trips_completed"`
	Error                *string `json:"error,omitempty"`
}

// Category implements the Message interface.
func (m *SessionClosed) Category() string { return string(MessageCategoryEvent) }

// ResolvePhaseTransition is emitted when a resolve walk moves to a new phase.
type ResolvePhaseTransition struct {
	SessionID    string `json:"session_id"`
	RequestID    string `json:"request_id"`
	InvocationID string `json:"invocation_id"`
	FromPhase    string `json:"from_phase"`
	ToPhase      string `json:"to_phase"`
	PhaseNumber  int    `json:"phase_number"`
}

// Category implements the Message interface.
func (m *ResolvePhaseTransition) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// CONFIG QUERIES
// =============================================================================

// GetStubMethodAccess queries which methods a stub may dispatch.
type GetStubMethodAccess struct {
	StubName string `json:"stub_name"`
}

// Category implements the Message interface.
func (m *GetStubMethodAccess) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetStubMethodAccess) IsQuery() {}

// StubMethodAccessResponse is the response for GetStubMethodAccess query.
type StubMethodAccessResponse struct {
	AllowedMethods []string `json:"allowed_methods"`
	DeniedMethods  []string `json:"denied_methods,omitempty"`
}

// GetTransportEndpoint queries transport configuration for a stub.
type GetTransportEndpoint struct {
	StubName string `json:"stub_name"`
}

// Category implements the Message interface.
func (m *GetTransportEndpoint) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetTransportEndpoint) IsQuery() {}

// TransportEndpointResponse is the response for GetTransportEndpoint query.
type TransportEndpointResponse struct {
	Address      string   `json:"address"`
	Timeout      *float64 `json:"timeout_seconds,omitempty"`
	MaxFrameSize *int     `json:"max_frame_size,omitempty"`
	Secure       bool     `json:"secure"`
}

// GetCodecConfig queries wire codec configuration.
type GetCodecConfig struct {
	Codec string `json:"codec"`
}

// Category implements the Message interface.
func (m *GetCodecConfig) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetCodecConfig) IsQuery() {}

// CodecConfigResponse is the response for GetCodecConfig query.
type CodecConfigResponse struct {
	Codec           string            `json:"codec"`
	ContentTypes    []string          `json:"content_types"`
	FieldAliases    map[string]string `json:"field_aliases"`
	RegisteredTypes []string          `json:"registered_types"`
}

// GetInterfaceDescriptor queries a cached interface descriptor by name, or
// all descriptors if Key is nil.
type GetInterfaceDescriptor struct {
	Key *string `json:"key,omitempty"` // nil = get all descriptors
}

// Category implements the Message interface.
func (m *GetInterfaceDescriptor) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetInterfaceDescriptor) IsQuery() {}

// InterfaceDescriptorResponse is the response for GetInterfaceDescriptor query.
type InterfaceDescriptorResponse struct {
	Values map[string]any `json:"values"`
}

// =============================================================================
// HEALTH CHECK EVENTS
// =============================================================================

// HealthCheckRequest requests health check from a component.
type HealthCheckRequest struct {
	Component string `json:"component"` // "introspector", "cache", "transport"
}

// Category implements the Message interface.
func (m *HealthCheckRequest) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *HealthCheckRequest) IsQuery() {}

// HealthCheckResponse is the response for HealthCheckRequest.
type HealthCheckResponse struct {
	Component string         `json:"component"`
	Status    string         `json:"status"` // "healthy", "degraded", "unhealthy"
	Details   map[string]any `json:"details,omitempty"`
	LatencyMS *int           `json:"latency_ms,omitempty"`
}

// =============================================================================
// BROADCAST EVENTS
// =============================================================================

// StubBroadcast is a broadcast message to connected observers.
// Unified broadcast channel for introspection progress updates.
type StubBroadcast struct {
	SessionID string         `json:"session_id"`
	EventType string         `json:"event_type"` // "invocation_update", "dispatch_progress", "result_chunk"
	Payload   map[string]any `json:"payload,omitempty"`
}

// Category implements the Message interface.
func (m *StubBroadcast) Category() string { return string(MessageCategoryEvent) }

// InvocationResultChunk is a streaming response chunk.
type InvocationResultChunk struct {
	SessionID string `json:"session_id"`
	RequestID string `json:"request_id"`
	Content   string `json:"content"`
	IsFinal   bool   `json:"is_final"`
}

// Category implements the Message interface.
func (m *InvocationResultChunk) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// CACHE COMMANDS
// =============================================================================

// InvalidateInterfaceCache is a command to evict entries from the identity
// cache. Key nil invalidates every cached descriptor.
type InvalidateInterfaceCache struct {
	CacheName string  `json:"cache_name"`
	Key       *string `json:"key,omitempty"` // nil = invalidate all
}

// Category implements the Message interface.
func (m *InvalidateInterfaceCache) Category() string { return string(MessageCategoryCommand) }

// =============================================================================
// INTERFACE CATALOG QUERIES
// =============================================================================

// GetInterfaceCatalog queries interface catalog information.
type GetInterfaceCatalog struct {
	InterfaceIDs    []string `json:"interface_ids,omitempty"` // nil = get all exposed interfaces
	IncludeInternal bool     `json:"include_internal"`
}

// Category implements the Message interface.
func (m *GetInterfaceCatalog) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetInterfaceCatalog) IsQuery() {}

// InterfaceCatalogResponse is the response for GetInterfaceCatalog query.
type InterfaceCatalogResponse struct {
	Interfaces []map[string]any `json:"interfaces"`
}

// GetInterfaceEntry queries a single cached interface entry.
type GetInterfaceEntry struct {
	InterfaceID string `json:"interface_id"`
}

// Category implements the Message interface.
func (m *GetInterfaceEntry) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetInterfaceEntry) IsQuery() {}

// InterfaceEntryResponse is the response for GetInterfaceEntry query.
type InterfaceEntryResponse struct {
	Found bool           `json:"found"`
	Entry map[string]any `json:"entry,omitempty"`
}

// =============================================================================
// METHOD DESCRIPTOR QUERIES
// =============================================================================

// GetMethodDescriptor queries a single method descriptor by name and version.
type GetMethodDescriptor struct {
	Name    string         `json:"name"`
	Version string         `json:"version"`
	Context map[string]any `json:"context,omitempty"`
}

// Category implements the Message interface.
func (m *GetMethodDescriptor) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *GetMethodDescriptor) IsQuery() {}

// MethodDescriptorResponse is the response for GetMethodDescriptor query.
type MethodDescriptorResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	Signature string `json:"signature"`
	Found     bool   `json:"found"`
}

// ListMethodDescriptors queries every method descriptor known to the cache.
type ListMethodDescriptors struct{}

// Category implements the Message interface.
func (m *ListMethodDescriptors) Category() string { return string(MessageCategoryQuery) }

// IsQuery implements the Query interface.
func (m *ListMethodDescriptors) IsQuery() {}

// ListMethodDescriptorsResponse is the response for ListMethodDescriptors query.
type ListMethodDescriptorsResponse struct {
	Methods map[string][]string `json:"methods"` // name -> list of versions
}

// =============================================================================
// DOMAIN EVENTS (Remote Interface Introspection Specific)
// =============================================================================

// InterfaceExamined is emitted after an introspector finishes examining a
// source interface, whether the descriptor was freshly built or served from
// the cache.
type InterfaceExamined struct {
	InvocationID string   `json:"invocation_id"`
	InterfaceID  string   `json:"interface_id"`
	StubName     string   `json:"stub_name"`
	FromCache    bool     `json:"from_cache"`
	MethodNames  []string `json:"method_names,omitempty"`
}

// Category implements the Message interface.
func (m *InterfaceExamined) Category() string { return string(MessageCategoryEvent) }

// IntrospectionFailed is emitted when examine rejects a malformed or null
// interface source.
type IntrospectionFailed struct {
	InvocationID string `json:"invocation_id"`
	StubName     string `json:"stub_name"`
	Reason       string `json:"reason"`
}

// Category implements the Message interface.
func (m *IntrospectionFailed) Category() string { return string(MessageCategoryEvent) }

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// TypedMessage is an optional interface for messages that can provide their own type name.
// This is useful for dynamically-typed messages like those from gRPC.
type TypedMessage interface {
	Message
	MessageType() string
}

// GetMessageType returns the type name of a message for routing.
func GetMessageType(msg Message) string {
	// First check if the message can provide its own type
	if typed, ok := msg.(TypedMessage); ok {
		return typed.MessageType()
	}

	// Otherwise use the static type switch
	switch msg.(type) {
	case *InvocationStarted:
		return "InvocationStarted"
	case *InvocationCompleted:
		return "InvocationCompleted"
	case *DispatchStarted:
		return "DispatchStarted"
	case *DispatchCompleted:
		return "DispatchCompleted"
	case *SessionOpened:
		return "SessionOpened"
	case *SessionClosed:
		return "SessionClosed"
	case *ResolvePhaseTransition:
		return "ResolvePhaseTransition"
	case *GetStubMethodAccess:
		return "GetStubMethodAccess"
	case *GetTransportEndpoint:
		return "GetTransportEndpoint"
	case *GetCodecConfig:
		return "GetCodecConfig"
	case *GetInterfaceDescriptor:
		return "GetInterfaceDescriptor"
	case *HealthCheckRequest:
		return "HealthCheckRequest"
	case *StubBroadcast:
		return "StubBroadcast"
	case *InvocationResultChunk:
		return "InvocationResultChunk"
	case *InvalidateInterfaceCache:
		return "InvalidateInterfaceCache"
	case *GetInterfaceCatalog:
		return "GetInterfaceCatalog"
	case *GetInterfaceEntry:
		return "GetInterfaceEntry"
	case *GetMethodDescriptor:
		return "GetMethodDescriptor"
	case *ListMethodDescriptors:
		return "ListMethodDescriptors"
	case *InterfaceExamined:
		return "InterfaceExamined"
	case *IntrospectionFailed:
		return "IntrospectionFailed"
	default:
		return "Unknown"
	}
}
