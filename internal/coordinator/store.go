package coordinator

// SessionStore is the storage abstraction for session state. The Registry
// uses it for all reads and writes and provides the locking; implementations
// need not be safe for concurrent use on their own.
type SessionStore interface {
	GetSession(id SessionID) (*StreamingSession, bool)
	SetSession(s *StreamingSession)
	DeleteSession(id SessionID)
	ListSessionIDs() []SessionID
}

// InMemorySessionStore is an in-memory implementation of SessionStore.
type InMemorySessionStore struct {
	sessions map[SessionID]*StreamingSession
}

// NewInMemorySessionStore returns a new empty in-memory store.
func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{
		sessions: make(map[SessionID]*StreamingSession),
	}
}

// GetSession implements SessionStore.GetSession.
func (s *InMemorySessionStore) GetSession(id SessionID) (*StreamingSession, bool) {
	sess, ok := s.sessions[id]
	return sess, ok
}

// SetSession implements SessionStore.SetSession.
func (s *InMemorySessionStore) SetSession(sess *StreamingSession) {
	s.sessions[sess.ID] = sess
}

// DeleteSession implements SessionStore.DeleteSession.
func (s *InMemorySessionStore) DeleteSession(id SessionID) {
	delete(s.sessions, id)
}

// ListSessionIDs implements SessionStore.ListSessionIDs.
func (s *InMemorySessionStore) ListSessionIDs() []SessionID {
	ids := make([]SessionID, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	return ids
}
