package eventbag

import (
	"runtime"
	"testing"
	"time"
	"weak"
)

func TestHandlerIDStates(t *testing.T) {
	tests := []struct {
		name         string
		act          func(h *HandlerID)
		wantReleased bool
		wantLen      int
		wantDetached bool
	}{
		{
			name:         "armed",
			act:          func(h *HandlerID) {},
			wantReleased: true,
			wantLen:      0,
		},
		{
			name:         "detached",
			act:          func(h *HandlerID) { h.Detach() },
			wantReleased: false,
			wantLen:      1,
			wantDetached: true,
		},
		{
			name:         "detached twice",
			act:          func(h *HandlerID) { h.Detach(); h.Detach() },
			wantReleased: false,
			wantLen:      1,
			wantDetached: true,
		},
		{
			name:         "already released",
			act:          func(h *HandlerID) { h.Release() },
			wantReleased: false,
			wantLen:      0,
		},
		{
			name:         "detach after release",
			act:          func(h *HandlerID) { h.Release(); h.Detach() },
			wantReleased: false,
			wantLen:      0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bag := NewBag[func()]()
			h := bag.Add(func() {})

			tt.act(h)

			if got := h.Release(); got != tt.wantReleased {
				t.Errorf("Expected Release to return %v, got %v", tt.wantReleased, got)
			}
			if bag.Len() != tt.wantLen {
				t.Errorf("Expected %d handlers, got %d", tt.wantLen, bag.Len())
			}
			if h.Detached() != tt.wantDetached {
				t.Errorf("Expected Detached %v, got %v", tt.wantDetached, h.Detached())
			}
		})
	}
}

func TestHandlerIDUnique(t *testing.T) {
	bag := NewBag[func()]()
	seen := make(map[uint64]bool)

	for range 100 {
		h := bag.Add(func() {})
		if seen[h.ID()] {
			t.Fatalf("Id %d handed out twice", h.ID())
		}
		seen[h.ID()] = true
		h.Release()
	}
}

func TestHandlerIDString(t *testing.T) {
	bag := NewBag[func()]()
	bag.Add(func() {}).Detach()
	h := bag.Add(func() {})
	defer h.Release()

	if got := h.String(); got != "HandlerID(1)" {
		t.Errorf("Expected HandlerID(1), got %s", got)
	}
}

func TestHandlerIDReleaseAfterBagCollected(t *testing.T) {
	h, ref := orphanedID()

	waitFor(t, "bag storage to be collected", func() bool { return ref.Value() == nil })

	if h.Release() {
		t.Error("Expected release against a collected bag to remove nothing")
	}
}

func TestHandlerIDReleasedWhenUnreachable(t *testing.T) {
	bag := NewBag[func()]()
	bag.Add(func() {}).Detach()
	_ = bag.Add(func() {})

	waitFor(t, "unreachable id to remove its handler", func() bool { return bag.Len() == 1 })
}

func TestHandlerIDCapturedByHandlerStaysRegistered(t *testing.T) {
	bag := NewBagOnce[func()]()
	holder := &struct{ id *HandlerID }{}
	holder.id = bag.Add(func() { _ = holder.id })

	for range 3 {
		runtime.GC()
	}
	time.Sleep(10 * time.Millisecond)

	if bag.Len() != 1 {
		t.Errorf("Expected handler kept alive by its own id to stay registered, got %d", bag.Len())
	}
}

func orphanedID() (*HandlerID, weak.Pointer[store[func()]]) {
	bag := NewBag[func()]()
	h := bag.Add(func() {})
	return h, weak.Make(bag.r.store())
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("Timed out waiting for %s", what)
		}
		runtime.GC()
		time.Sleep(5 * time.Millisecond)
	}
}
