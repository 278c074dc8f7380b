package eventbag

// Caller is implemented by Bag and BagOnce.
type Caller[F any] interface {
	Call(wrapper func(F))
}

// The CallSimple family calls every handler of a bag whose handler type is a
// plain func of zero to five arguments. For a Bag the handlers stay
// registered; for a BagOnce they are consumed.
//
// Handler types must be unnamed func types, e.g. Bag[func(*Event)].

// CallSimple calls each handler without arguments.
func CallSimple(c Caller[func()]) {
	c.Call(func(fn func()) { fn() })
}

// CallSimple1 calls each handler with a1.
func CallSimple1[A1 any](c Caller[func(A1)], a1 A1) {
	c.Call(func(fn func(A1)) { fn(a1) })
}

// CallSimple2 calls each handler with a1 and a2.
func CallSimple2[A1, A2 any](c Caller[func(A1, A2)], a1 A1, a2 A2) {
	c.Call(func(fn func(A1, A2)) { fn(a1, a2) })
}

func CallSimple3[A1, A2, A3 any](c Caller[func(A1, A2, A3)], a1 A1, a2 A2, a3 A3) {
	c.Call(func(fn func(A1, A2, A3)) { fn(a1, a2, a3) })
}

func CallSimple4[A1, A2, A3, A4 any](c Caller[func(A1, A2, A3, A4)], a1 A1, a2 A2, a3 A3, a4 A4) {
	c.Call(func(fn func(A1, A2, A3, A4)) { fn(a1, a2, a3, a4) })
}

func CallSimple5[A1, A2, A3, A4, A5 any](c Caller[func(A1, A2, A3, A4, A5)], a1 A1, a2 A2, a3 A3, a4 A4, a5 A5) {
	c.Call(func(fn func(A1, A2, A3, A4, A5)) { fn(a1, a2, a3, a4, a5) })
}
