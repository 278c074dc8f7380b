package eventbag

// BagOnce holds event handlers that run at most once, such as close or
// teardown notifications. Calling the bag removes every handler it runs.
//
// Concurrent calls never run a handler twice: each handler is claimed by
// exactly one of them. A handler removed before it is claimed never runs.
// The zero value is an empty bag. A BagOnce must not be copied after first
// use.
type BagOnce[F any] struct {
	r registry[F]
}

// NewBagOnce returns an empty BagOnce configured with opts.
func NewBagOnce[F any](opts ...Option) *BagOnce[F] {
	b := &BagOnce[F]{}
	b.r.st = newStore[F](opts...)
	return b
}

// Add registers fn and returns the id that owns the registration.
// Detaching the id keeps fn registered until it runs.
func (b *BagOnce[F]) Add(fn F) *HandlerID {
	return b.r.add(fn)
}

// Remove unregisters the handler behind h if it has not run yet.
func (b *BagOnce[F]) Remove(h *HandlerID) bool {
	return b.r.remove(h)
}

// Call takes every registered handler out of the bag and invokes wrapper
// with each one, in the order they were added.
//
// If wrapper panics, the handlers of this pass that have not been reached
// are put back before the panic continues.
func (b *BagOnce[F]) Call(wrapper func(F)) {
	st := b.r.store()
	pending := st.drain()
	next := 0
	defer func() {
		if next < len(pending) {
			st.restore(pending[next:])
		}
	}()

	for next < len(pending) {
		s := pending[next]
		next++
		if st.consume(s) {
			wrapper(s.fn)
		}
	}
}

// Len returns the number of handlers that have not run or been removed.
func (b *BagOnce[F]) Len() int {
	return b.r.store().len()
}
