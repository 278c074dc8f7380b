package eventbag

import (
	"runtime"
	"strconv"
	"sync/atomic"
)

const (
	handlerArmed int32 = iota
	handlerDetached
	handlerReleased
)

// HandlerID keeps a registered handler in its bag. Once released, explicitly
// with Release or automatically when the HandlerID becomes unreachable, the
// handler is removed. Detach prevents the removal.
//
// A HandlerID only refers weakly to its bag, so a bag that has been garbage
// collected turns Release into a no-op.
type HandlerID struct {
	id      uint64
	owner   any
	remove  func() bool
	state   atomic.Int32
	cleanup runtime.Cleanup
}

func newHandlerID(id uint64, owner any, remove func() bool) *HandlerID {
	h := &HandlerID{
		id:     id,
		owner:  owner,
		remove: remove,
	}
	h.cleanup = runtime.AddCleanup(h, func(remove func() bool) { remove() }, remove)
	return h
}

// ID returns the numeric id of the handler inside its bag.
func (h *HandlerID) ID() uint64 {
	return h.id
}

// Detach leaves the handler registered for the rest of the bag's lifetime.
// It has no effect on an id that has already been released.
func (h *HandlerID) Detach() {
	if h.state.CompareAndSwap(handlerArmed, handlerDetached) {
		h.cleanup.Stop()
	}
}

// Release removes the handler from its bag unless the id was detached.
// It reports whether a handler was actually removed. Calling it more than
// once is safe.
func (h *HandlerID) Release() bool {
	if !h.state.CompareAndSwap(handlerArmed, handlerReleased) {
		return false
	}
	h.cleanup.Stop()
	return h.remove()
}

// Detached reports whether Detach was called before any release.
func (h *HandlerID) Detached() bool {
	return h.state.Load() == handlerDetached
}

func (h *HandlerID) String() string {
	return "HandlerID(" + strconv.FormatUint(h.id, 10) + ")"
}
