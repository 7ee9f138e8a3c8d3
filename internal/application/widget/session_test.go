package widget

import (
	"testing"
	"time"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func (c *fakeClock) advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestStore(ttl time.Duration, max int) (*SessionStore, *fakeClock) {
	clock := &fakeClock{t: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	store := NewSessionStore(newScriptedUseCase(), "Kyiv", ttl, max, nil)
	store.now = clock.now
	return store, clock
}

func TestSessionStoreGetCreatesAndReuses(t *testing.T) {
	store, _ := newTestStore(time.Minute, 10)

	id, c := store.Get("")
	if id == "" || c == nil {
		t.Fatal("expected a new session")
	}
	if c.View().Input != "Kyiv" {
		t.Fatalf("new widget should start with the default city, got %q", c.View().Input)
	}

	sameID, same := store.Get(id)
	if sameID != id || same != c {
		t.Fatal("existing session not reused")
	}

	otherID, other := store.Get("unknown-id")
	if otherID == "unknown-id" || other == c {
		t.Fatal("unknown id must get a fresh session")
	}
	if store.Len() != 2 {
		t.Fatalf("len: %d", store.Len())
	}
}

func TestSessionStoreSweepClosesIdleSessions(t *testing.T) {
	store, clock := newTestStore(time.Minute, 10)

	oldID, old := store.Get("")
	clock.advance(45 * time.Second)
	freshID, _ := store.Get("")
	clock.advance(30 * time.Second)

	if removed := store.Sweep(); removed != 1 {
		t.Fatalf("expected 1 expired session, got %d", removed)
	}
	if newID, _ := store.Get(oldID); newID == oldID {
		t.Fatal("expired session still reachable")
	}
	if id, _ := store.Get(freshID); id != freshID {
		t.Fatal("fresh session was swept")
	}

	// a closed controller never fetches
	wait(t, old.Submit())
	if old.View().State.IsLoading() {
		t.Fatal("closed controller started a request")
	}
}

func TestSessionStoreEvictsLeastRecentlyUsed(t *testing.T) {
	store, _ := newTestStore(time.Hour, 2)

	a, _ := store.Get("")
	b, _ := store.Get("")
	store.Get(a) // a is now most recent
	store.Get("")

	if store.Len() != 2 {
		t.Fatalf("len: %d", store.Len())
	}
	if id, _ := store.Get(b); id == b {
		t.Fatal("least recently used session should have been evicted")
	}
}

func TestSessionStoreClose(t *testing.T) {
	store, _ := newTestStore(time.Hour, 5)
	store.Get("")
	store.Get("")
	store.Close()
	if store.Len() != 0 {
		t.Fatalf("len after close: %d", store.Len())
	}
}
