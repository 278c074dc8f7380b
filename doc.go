// Package eventbag provides thread-safe containers for event handlers.
//
// A Bag keeps handlers until they are removed; a BagOnce runs each handler at
// most once and drops it afterwards. Adding a handler returns a *HandlerID
// which owns the registration:
//
//	bag := eventbag.NewBag[func(*Frame)]()
//	id := bag.Add(func(f *Frame) { ... })
//	defer id.Release()
//
//	eventbag.CallSimple1(bag, frame)
//
// Handlers run synchronously on the goroutine that calls the bag. No lock is
// held while a handler runs, so handlers may add, remove, release or call
// handlers of the same bag.
//
// An armed HandlerID that becomes unreachable removes its handler when the
// garbage collector gets to it. Call Detach to keep the handler registered
// for as long as the bag lives.
package eventbag
