package coordinator

import (
	"time"

	"vod-coordinator/internal/catalog"
	"vod-coordinator/internal/engine"
)

// SessionID uniquely identifies one connected viewer. IDs are positive,
// issued in strictly increasing order starting at 1, and never reused.
type SessionID int64

// Phase is the lifecycle position of a streaming session.
type Phase int

const (
	// PhaseIdle: no asset bound, no engine loaded.
	PhaseIdle Phase = iota
	// PhasePrepared: asset bound and engine loaded, playback not started.
	PhasePrepared
	// PhaseStreaming: engine is playing on the allocated endpoint.
	PhaseStreaming
)

// String returns the lowercase name of the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePrepared:
		return "prepared"
	case PhaseStreaming:
		return "streaming"
	default:
		return "unknown"
	}
}

// playbackBinding is the data a session carries only while an asset is bound.
// Keeping asset, engine and endpoint together means a session can never be
// streaming without all three.
type playbackBinding struct {
	asset    catalog.Asset
	engine   engine.Engine
	endpoint EndpointDescriptor
}

// StreamingSession is one viewer's server-side state. The binding pointer is
// non-nil exactly when phase is not PhaseIdle.
type StreamingSession struct {
	ID           SessionID
	phase        Phase
	binding      *playbackBinding
	lastActivity time.Time
}

// SessionSnapshot is a read-only copy of a session's observable state,
// safe to use outside the registry lock.
type SessionSnapshot struct {
	ID           SessionID
	Phase        Phase
	BoundAsset   catalog.AssetID // zero when no asset is bound
	Endpoint     string          // empty when no asset is bound
	LastActivity time.Time
}

// snapshot copies the session's observable state.
func (s *StreamingSession) snapshot() SessionSnapshot {
	snap := SessionSnapshot{
		ID:           s.ID,
		Phase:        s.phase,
		LastActivity: s.lastActivity,
	}
	if s.binding != nil {
		snap.BoundAsset = s.binding.asset.ID
		snap.Endpoint = s.binding.endpoint.URI
	}
	return snap
}
