package jv

// cell is implemented by every heap-backed value representation: stringCell,
// arrayCell, objectCell, literalNumberCell, and invalidCell. Inline kinds
// (Null, False, True, native-double Number, message-less Invalid) carry a
// nil cell and never reach these methods.
type cell interface {
	// refCount returns the embedded refcounted's current count.
	refCount() int
	// share increments the refcount and returns the same cell, for use when
	// a Value is copied.
	share() cell
	// release decrements the refcount and reports whether it reached zero;
	// on reaching zero the cell itself frees any Values it holds.
	release() bool
}

// refcounted is embedded by every cell implementation. It is a plain int,
// not an atomic: a Value graph is not safe to mutate from more than one
// goroutine at a time, so there is nothing here to synchronize.
type refcounted struct {
	count int
}

func newRefcounted() refcounted {
	return refcounted{count: 1}
}

func (r *refcounted) refCount() int {
	return r.count
}

func (r *refcounted) incRef() {
	r.count++
}

// decRef decrements the count and reports whether it has reached zero.
func (r *refcounted) decRef() bool {
	r.count--
	return r.count == 0
}

// unique reports whether c is non-nil and held by exactly one Value.
func unique(c cell) bool {
	return c != nil && c.refCount() == 1
}
