package coordinator

import (
	"testing"
)

func TestInMemorySessionStore_GetSetDelete(t *testing.T) {
	store := NewInMemorySessionStore()

	_, ok := store.GetSession(SessionID(1))
	if ok {
		t.Error("expected not found for empty store")
	}

	sess := &StreamingSession{ID: SessionID(1), phase: PhaseIdle}
	store.SetSession(sess)

	got, ok := store.GetSession(SessionID(1))
	if !ok || got != sess {
		t.Errorf("GetSession: ok=%v, got %p want %p", ok, got, sess)
	}

	store.DeleteSession(SessionID(1))
	if _, ok := store.GetSession(SessionID(1)); ok {
		t.Error("expected not found after delete")
	}
}

func TestInMemorySessionStore_SetSession_replaces(t *testing.T) {
	store := NewInMemorySessionStore()
	s1 := &StreamingSession{ID: SessionID(7), phase: PhaseIdle}
	s2 := &StreamingSession{ID: SessionID(7), phase: PhaseIdle}
	store.SetSession(s1)
	store.SetSession(s2)

	got, ok := store.GetSession(SessionID(7))
	if !ok || got != s2 {
		t.Errorf("SetSession should replace: got %p want %p", got, s2)
	}
}

func TestInMemorySessionStore_ListSessionIDs(t *testing.T) {
	store := NewInMemorySessionStore()
	if ids := store.ListSessionIDs(); len(ids) != 0 {
		t.Errorf("expected empty id list, got %v", ids)
	}

	store.SetSession(&StreamingSession{ID: SessionID(1)})
	store.SetSession(&StreamingSession{ID: SessionID(2)})

	ids := store.ListSessionIDs()
	if len(ids) != 2 {
		t.Fatalf("expected 2 ids, got %v", ids)
	}
	seen := map[SessionID]bool{}
	for _, id := range ids {
		seen[id] = true
	}
	if !seen[1] || !seen[2] {
		t.Errorf("expected ids 1 and 2, got %v", ids)
	}
}

func TestNewRegistryWithStore(t *testing.T) {
	// Verify the registry works with an explicitly injected store.
	store := NewInMemorySessionStore()
	reg := NewRegistryWithStore(store, newFakeEngineFactory(nil), NewAllocator("localhost", 8554))

	id := reg.Connect()
	if id != 1 {
		t.Fatalf("Connect: got id %d want 1", id)
	}

	if _, ok := store.GetSession(id); !ok {
		t.Error("injected store should contain session after Connect")
	}
}
