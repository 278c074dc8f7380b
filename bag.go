package eventbag

import "sync"

// registry lazily creates the store so that zero-value bags are usable.
type registry[F any] struct {
	once sync.Once
	st   *store[F]
}

func (r *registry[F]) store() *store[F] {
	r.once.Do(func() {
		if r.st == nil {
			r.st = newStore[F]()
		}
	})
	return r.st
}

func (r *registry[F]) add(fn F) *HandlerID {
	st := r.store()
	return st.handlerID(st.add(fn))
}

func (r *registry[F]) remove(h *HandlerID) bool {
	if h == nil {
		return false
	}
	st := r.store()
	if h.owner != any(st.self) {
		return false
	}
	return st.remove(h.id)
}

// Bag holds persistent event handlers of type F. Handlers are called in the
// order they were added and stay registered until removed.
//
// A Bag is safe for concurrent use, and handlers may add, remove or call
// handlers of the same bag. The zero value is an empty bag. A Bag must not be
// copied after first use.
type Bag[F any] struct {
	r registry[F]
}

// NewBag returns an empty Bag configured with opts.
func NewBag[F any](opts ...Option) *Bag[F] {
	b := &Bag[F]{}
	b.r.st = newStore[F](opts...)
	return b
}

// Add registers fn and returns the id that owns the registration.
func (b *Bag[F]) Add(fn F) *HandlerID {
	return b.r.add(fn)
}

// Remove unregisters the handler behind h. It reports whether a handler was
// removed; ids from another bag, or already removed, report false.
func (b *Bag[F]) Remove(h *HandlerID) bool {
	return b.r.remove(h)
}

// Call invokes wrapper with each registered handler. The set of handlers is
// taken when Call starts, without holding any lock while wrapper runs.
// Handlers added during the pass are not visited, and handlers removed
// during the pass are skipped if their turn has not come yet.
func (b *Bag[F]) Call(wrapper func(F)) {
	for _, s := range b.r.store().snapshot() {
		if s.done.Load() {
			continue
		}
		wrapper(s.fn)
	}
}

// Len returns the number of registered handlers.
func (b *Bag[F]) Len() int {
	return b.r.store().len()
}
