package rmi

import "encoding/json"

// wireMethodDescriptor is the JSON wire form of MethodDescriptor.
type wireMethodDescriptor struct {
	ID                    Identifier             `json:"id"`
	Name                  string                 `json:"name"`
	Return                *ParameterDescriptor   `json:"return,omitempty"`
	Parameters            []*ParameterDescriptor `json:"parameters"`
	Exceptions            []*ParameterDescriptor `json:"exceptions"`
	Asynchronous          bool                   `json:"asynchronous"`
	Idempotent            bool                   `json:"idempotent"`
	ResponseTimeoutMillis int64                  `json:"response_timeout_millis"`
}

// MarshalJSON implements json.Marshaler.
func (m *MethodDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireMethodDescriptor{
		ID:                    m.id,
		Name:                  m.name,
		Return:                m.ret,
		Parameters:            m.parameters,
		Exceptions:            m.exceptions,
		Asynchronous:          m.asynchronous,
		Idempotent:            m.idempotent,
		ResponseTimeoutMillis: m.responseTimeoutMillis,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
func (m *MethodDescriptor) UnmarshalJSON(data []byte) error {
	var w wireMethodDescriptor
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	m.id = w.ID
	m.name = w.Name
	m.ret = w.Return
	m.parameters = w.Parameters
	m.exceptions = w.Exceptions
	m.asynchronous = w.Asynchronous
	m.idempotent = w.Idempotent
	m.responseTimeoutMillis = w.ResponseTimeoutMillis
	return nil
}

// wireInterfaceDescriptor is the JSON wire form of InterfaceDescriptor.
type wireInterfaceDescriptor struct {
	ID      Identifier          `json:"id"`
	Name    string              `json:"name"`
	Methods []*MethodDescriptor `json:"methods"`
}

// MarshalJSON implements json.Marshaler.
func (d *InterfaceDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireInterfaceDescriptor{ID: d.id, Name: d.name, Methods: d.methods})
}

// UnmarshalJSON implements json.Unmarshaler. The receiver is registered in
// the default context's cache by Identifier before its Methods are decoded,
// not after: a self-referential descriptor nests a remote-typed
// ParameterDescriptor that resolves against this same Identifier mid-decode,
// so registering only once the full unmarshal returns would have the nested
// lookup miss against a descriptor that technically exists but isn't
// published yet. This mirrors examineLocked's own publish-before-resolve
// ordering, just for the JSON codec instead of the live Examine path.
func (d *InterfaceDescriptor) UnmarshalJSON(data []byte) error {
	var idOnly struct {
		ID Identifier `json:"id"`
	}
	if err := json.Unmarshal(data, &idOnly); err != nil {
		return err
	}
	d.id = idOnly.ID

	defaultContext.cache.mu.Lock()
	defaultContext.cache.descriptorsByID[d.id] = d
	defaultContext.cache.mu.Unlock()

	var w wireInterfaceDescriptor
	if err := json.Unmarshal(data, &w); err != nil {
		// The stub published above never got its Name/Methods filled in;
		// leaving it registered would let a later lookup by this Identifier
		// silently resolve to an empty descriptor instead of failing the
		// way it would have had the stub never been published.
		defaultContext.cache.mu.Lock()
		delete(defaultContext.cache.descriptorsByID, d.id)
		defaultContext.cache.mu.Unlock()
		return err
	}
	d.name = w.Name
	d.methods = w.Methods
	return nil
}
