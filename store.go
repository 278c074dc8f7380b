package eventbag

import (
	"cmp"
	"slices"
	"sync"
	"sync/atomic"
	"weak"

	"go.uber.org/zap"
)

// slot is one registered handler. done flips exactly once, under the store
// lock, when the slot is removed or consumed.
type slot[F any] struct {
	id   uint64
	fn   F
	done atomic.Bool
}

// store is the shared state behind a Bag or BagOnce. Only the bag value holds
// it strongly; handler ids reach it through self.
type store[F any] struct {
	mu     sync.Mutex
	slots  []*slot[F]
	index  map[uint64]*slot[F]
	nextID uint64

	self   weak.Pointer[store[F]]
	name   string
	logger *zap.Logger
}

func newStore[F any](opts ...Option) *store[F] {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	st := &store[F]{
		index:  make(map[uint64]*slot[F]),
		name:   cfg.name,
		logger: cfg.logger,
	}
	st.self = weak.Make(st)
	return st
}

func (st *store[F]) add(fn F) uint64 {
	st.mu.Lock()
	id := st.nextID
	st.nextID++
	s := &slot[F]{id: id, fn: fn}
	st.slots = append(st.slots, s)
	st.index[id] = s
	st.mu.Unlock()

	st.logger.Debug("Handler added", zap.String("bag", st.name), zap.Uint64("handlerId", id))
	return id
}

func (st *store[F]) remove(id uint64) bool {
	st.mu.Lock()
	s, ok := st.index[id]
	if !ok {
		st.mu.Unlock()
		return false
	}
	delete(st.index, id)
	s.done.Store(true)
	// A drained BagOnce slot is indexed but no longer in slots.
	if i, found := st.position(id); found {
		st.slots = slices.Delete(st.slots, i, i+1)
	}
	st.mu.Unlock()

	st.logger.Debug("Handler removed", zap.String("bag", st.name), zap.Uint64("handlerId", id))
	return true
}

// position must be called with mu held. slots is sorted by id because ids
// are handed out in increasing order and restore keeps the order.
func (st *store[F]) position(id uint64) (int, bool) {
	return slices.BinarySearchFunc(st.slots, id, func(s *slot[F], target uint64) int {
		return cmp.Compare(s.id, target)
	})
}

func (st *store[F]) snapshot() []*slot[F] {
	st.mu.Lock()
	defer st.mu.Unlock()
	return slices.Clone(st.slots)
}

// drain hands every queued slot to the caller. The slots stay indexed until
// consume claims them, so remove can still cancel one that has not fired.
func (st *store[F]) drain() []*slot[F] {
	st.mu.Lock()
	defer st.mu.Unlock()
	slots := st.slots
	st.slots = nil
	return slots
}

func (st *store[F]) consume(s *slot[F]) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s.done.Load() {
		return false
	}
	s.done.Store(true)
	delete(st.index, s.id)
	return true
}

// restore puts drained slots that were never claimed back into the queue.
func (st *store[F]) restore(rest []*slot[F]) {
	st.mu.Lock()
	restored := 0
	for _, s := range rest {
		if s.done.Load() {
			continue
		}
		st.slots = append(st.slots, s)
		restored++
	}
	slices.SortFunc(st.slots, func(a, b *slot[F]) int {
		return cmp.Compare(a.id, b.id)
	})
	st.mu.Unlock()

	if restored > 0 {
		st.logger.Debug("Unfired handlers restored after panic",
			zap.String("bag", st.name),
			zap.Int("count", restored))
	}
}

func (st *store[F]) len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.index)
}

func (st *store[F]) handlerID(id uint64) *HandlerID {
	self := st.self
	name, logger := st.name, st.logger
	return newHandlerID(id, self, func() bool {
		live := self.Value()
		if live == nil {
			logger.Debug("Handler released after bag was collected",
				zap.String("bag", name),
				zap.Uint64("handlerId", id))
			return false
		}
		return live.remove(id)
	})
}
