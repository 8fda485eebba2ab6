package sim

import "sync/atomic"

// EntityID is a unique identifier for anything that lives in the physics world.
// IDs are never reused within a session.
type EntityID uint64

// InvalidEntityID represents an invalid or null entity reference.
const InvalidEntityID EntityID = 0

// IDSource hands out monotonic entity IDs
type IDSource struct {
	next atomic.Uint64
}

// Next returns a fresh EntityID
func (s *IDSource) Next() EntityID {
	return EntityID(s.next.Add(1))
}
