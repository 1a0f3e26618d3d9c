package rmi

import (
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sync/atomic"

	"github.com/google/uuid"
)

// processNamespace scopes every Identifier generated by this process to a
// single session; two processes never collide even if their sequence
// counters happen to align.
var processNamespace = uuid.New()

var identifierSeq uint64

// Identifier is a stable, comparable, wire-serializable handle assigned
// exactly once per introspected descriptor. Two Identifiers are equal iff
// they were produced by the same introspection: repeated introspection of
// the same source interface returns the cached descriptor, and therefore
// the same Identifier, rather than recomputing one.
type Identifier struct {
	bytes [16]byte
}

// newIdentifier derives a fresh Identifier from the process namespace and a
// monotonic sequence number via uuid.NewSHA1, giving a deterministic,
// collision-free 16-byte token without a global counter race.
func newIdentifier() Identifier {
	seq := atomic.AddUint64(&identifierSeq, 1)
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)
	u := uuid.NewSHA1(processNamespace, seqBytes)
	var id Identifier
	copy(id.bytes[:], u[:])
	return id
}

// Equal reports whether two Identifiers were assigned to the same descriptor.
func (id Identifier) Equal(other Identifier) bool {
	return id.bytes == other.bytes
}

// String returns the compact hex wire form of the Identifier.
func (id Identifier) String() string {
	return hex.EncodeToString(id.bytes[:])
}

// MarshalJSON implements json.Marshaler, emitting the compact hex form.
func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}

// UnmarshalJSON implements json.Unmarshaler.
func (id *Identifier) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	decoded, err := hex.DecodeString(s)
	if err != nil {
		return err
	}
	if len(decoded) != len(id.bytes) {
		return fmt.Errorf("rmi: invalid identifier length %d", len(decoded))
	}
	copy(id.bytes[:], decoded)
	return nil
}
