// Package engine defines the media-engine capability the coordinator drives.
// An engine instance owns one playback pipeline: it reads a source, encodes,
// and publishes on whatever sink it was configured with at load time. The
// coordinator never touches media data itself.
package engine

import "time"

// PlaybackState is the coarse lifecycle of one engine instance.
type PlaybackState int

const (
	StateIdle PlaybackState = iota
	StateLoaded
	StatePlaying
	StatePaused
	StateStopped
)

// String returns the lowercase name of the state.
func (s PlaybackState) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoaded:
		return "loaded"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Engine is one playback instance. Implementations are not required to be
// safe for concurrent use; the coordinator serializes calls per session.
type Engine interface {
	// Load points the engine at a media source and configures its output
	// sink. Loading again replaces the previous source.
	Load(source, sinkOption string) error

	// Play starts (or resumes) playback of the loaded source.
	Play() error

	// Pause pauses playback without releasing the source.
	Pause() error

	// Seek jumps to the given offset from the start of the source.
	Seek(offset time.Duration) error

	// SetVolume sets the output volume in percent (0-100).
	SetVolume(percent int) error

	// Stop halts playback. The engine can be loaded again afterwards.
	Stop() error

	// State reports the engine's current playback state.
	State() PlaybackState

	// Close releases all engine resources. The engine is unusable afterwards.
	Close() error
}

// Factory creates a fresh engine instance for one session.
type Factory func() (Engine, error)
