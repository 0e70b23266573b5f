package coordinator

import (
	"fmt"
	"sync"
	"time"

	"vod-coordinator/internal/catalog"
	"vod-coordinator/internal/engine"
)

// Registry owns every streaming session and all transitions on them. One
// registry-wide mutex guards the session map, the counters, and each state
// transition, so concurrent requests on the same session resolve to a serial
// order: of two racing StartStreaming calls exactly one wins and the other
// observes ErrAlreadyStreaming.
type Registry struct {
	mu        sync.RWMutex
	store     SessionStore
	newEngine engine.Factory
	alloc     Allocator

	nextID    SessionID // identity high-water mark; never decremented
	connected int
	streaming int

	now func() time.Time
}

// NewRegistry constructs a registry with a default in-memory session store.
func NewRegistry(newEngine engine.Factory, alloc Allocator) *Registry {
	return NewRegistryWithStore(NewInMemorySessionStore(), newEngine, alloc)
}

// NewRegistryWithStore constructs a registry using the given SessionStore.
// Useful for testing or for plugging in a different storage backend.
func NewRegistryWithStore(store SessionStore, newEngine engine.Factory, alloc Allocator) *Registry {
	return &Registry{
		store:     store,
		newEngine: newEngine,
		alloc:     alloc,
		now:       time.Now,
	}
}

// Connect allocates the next session identity and creates an empty session.
// It never fails.
func (r *Registry) Connect() SessionID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	r.connected++
	r.store.SetSession(&StreamingSession{
		ID:           r.nextID,
		phase:        PhaseIdle,
		lastActivity: r.now(),
	})
	return r.nextID
}

// Get returns a read-only snapshot of the session, or ErrSessionNotFound.
func (r *Registry) Get(id SessionID) (SessionSnapshot, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	sess, ok := r.store.GetSession(id)
	if !ok {
		return SessionSnapshot{}, ErrSessionNotFound
	}
	return sess.snapshot(), nil
}

// Prepare binds the asset to the session and loads it into the session's
// engine, creating one if the session has none yet. Legal from Idle or
// Prepared; re-preparing overwrites the previous binding. Returns the
// endpoint the viewer should receive the stream on.
func (r *Registry) Prepare(id SessionID, asset catalog.Asset) (EndpointDescriptor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.lookupLocked(id)
	if err != nil {
		return EndpointDescriptor{}, err
	}
	if sess.phase == PhaseStreaming {
		return EndpointDescriptor{}, ErrAlreadyStreaming
	}

	var eng engine.Engine
	if sess.binding != nil {
		eng = sess.binding.engine
	} else {
		eng, err = r.newEngine()
		if err != nil {
			return EndpointDescriptor{}, fmt.Errorf("create media engine: %w", err)
		}
	}

	ep := r.alloc.Endpoint(id, asset.ID)
	if err := eng.Load(asset.SourceRef, r.alloc.SinkOption(id, asset.ID)); err != nil {
		eng.Close()
		sess.phase = PhaseIdle
		sess.binding = nil
		return EndpointDescriptor{}, fmt.Errorf("load movie %d: %w", asset.ID, err)
	}

	sess.phase = PhasePrepared
	sess.binding = &playbackBinding{asset: asset, engine: eng, endpoint: ep}
	return ep, nil
}

// Start begins playback for a prepared session. Exactly one of two
// concurrent Start calls on the same session can succeed.
func (r *Registry) Start(id SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.lookupLocked(id)
	if err != nil {
		return err
	}
	switch sess.phase {
	case PhaseStreaming:
		return ErrAlreadyStreaming
	case PhaseIdle:
		return ErrNotPrepared
	}

	if err := sess.binding.engine.Play(); err != nil {
		return fmt.Errorf("start playback: %w", err)
	}
	sess.phase = PhaseStreaming
	r.streaming++
	return nil
}

// Seek jumps a streaming session to the given offset and resumes playback.
// Streaming state is unchanged.
func (r *Registry) Seek(id SessionID, offset time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.lookupLocked(id)
	if err != nil {
		return err
	}
	if sess.phase != PhaseStreaming {
		return ErrNotStreaming
	}

	if err := sess.binding.engine.Seek(offset); err != nil {
		return fmt.Errorf("seek playback: %w", err)
	}
	if err := sess.binding.engine.Play(); err != nil {
		return fmt.Errorf("resume playback: %w", err)
	}
	return nil
}

// Stop halts a streaming session and resets it to Idle, preserving its
// identity so it can prepare another asset without reconnecting.
func (r *Registry) Stop(id SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.lookupLocked(id)
	if err != nil {
		return err
	}
	if sess.phase != PhaseStreaming {
		return ErrNotStreaming
	}

	r.releaseLocked(sess)
	return nil
}

// Reset clears the session's binding and streaming state back to Idle,
// preserving its identity. Any loaded engine is stopped and closed.
func (r *Registry) Reset(id SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, err := r.lookupLocked(id)
	if err != nil {
		return err
	}
	if sess.phase == PhaseStreaming {
		r.releaseLocked(sess)
		return nil
	}
	r.closeBindingLocked(sess)
	return nil
}

// Remove deletes the session outright and decrements the connected count.
// Playback side effects are the caller's concern; Disconnect combines both.
func (r *Registry) Remove(id SessionID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store.GetSession(id); !ok {
		return ErrSessionNotFound
	}
	r.store.DeleteSession(id)
	r.connected--
	return nil
}

// Disconnect removes the session, stopping playback first if it was
// streaming. The returned flag distinguishes the stopped-by-disconnect
// outcome from a plain exit.
func (r *Registry) Disconnect(id SessionID) (wasStreaming bool, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sess, ok := r.store.GetSession(id)
	if !ok {
		return false, ErrSessionNotFound
	}

	wasStreaming = sess.phase == PhaseStreaming
	if wasStreaming {
		r.releaseLocked(sess)
	} else {
		r.closeBindingLocked(sess)
	}

	r.store.DeleteSession(id)
	r.connected--
	return wasStreaming, nil
}

// ReapIdle disconnects every session whose last activity is older than
// maxIdle, with full disconnect side effects. It returns the reaped ids.
// maxIdle <= 0 disables reaping.
func (r *Registry) ReapIdle(maxIdle time.Duration) []SessionID {
	if maxIdle <= 0 {
		return nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	deadline := r.now().Add(-maxIdle)
	var reaped []SessionID
	for _, id := range r.store.ListSessionIDs() {
		sess, ok := r.store.GetSession(id)
		if !ok || sess.lastActivity.After(deadline) {
			continue
		}
		if sess.phase == PhaseStreaming {
			r.releaseLocked(sess)
		} else {
			r.closeBindingLocked(sess)
		}
		r.store.DeleteSession(id)
		r.connected--
		reaped = append(reaped, id)
	}
	return reaped
}

// ConnectedCount returns the number of live sessions.
func (r *Registry) ConnectedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.connected
}

// StreamingCount returns the number of sessions currently streaming.
func (r *Registry) StreamingCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.streaming
}

// LastSessionID returns the identity high-water mark.
func (r *Registry) LastSessionID() SessionID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.nextID
}

// lookupLocked finds a session and refreshes its activity timestamp. Every
// control call addressed to a session doubles as its liveness heartbeat.
// Caller must hold r.mu in write mode.
func (r *Registry) lookupLocked(id SessionID) (*StreamingSession, error) {
	sess, ok := r.store.GetSession(id)
	if !ok {
		return nil, ErrSessionNotFound
	}
	sess.lastActivity = r.now()
	return sess, nil
}

// releaseLocked stops a streaming session's engine and returns the session
// to Idle, decrementing the streaming count. Caller must hold r.mu in write
// mode and have checked phase == PhaseStreaming.
func (r *Registry) releaseLocked(sess *StreamingSession) {
	sess.binding.engine.Stop()
	sess.binding.engine.Close()
	sess.phase = PhaseIdle
	sess.binding = nil
	r.streaming--
}

// closeBindingLocked closes a non-streaming session's engine, if any, and
// clears the binding. Caller must hold r.mu in write mode.
func (r *Registry) closeBindingLocked(sess *StreamingSession) {
	if sess.binding != nil {
		sess.binding.engine.Close()
	}
	sess.phase = PhaseIdle
	sess.binding = nil
}
