package jv

// Value is a handle onto one of the eight kinds described by [Kind]. The
// zero Value is not valid to use; construct one with [Null], [Bool],
// [Number], [NumberFromLiteral], [String], [Array], [Object], [Invalid], or
// [InvalidWithMsg].
//
// Value is small and copyable by assignment. Copying a Value that wraps a
// heap cell (String, Array, Object, or a literal-precision Number) does not
// duplicate the underlying storage — it shares the cell and bumps its
// refcount. Call [Value.Copy] explicitly whenever a Value is about to be
// retained beyond the scope it was received in (stored in a struct field,
// appended to a slice that outlives the call), mirroring the C API's
// jv_copy discipline. Call [Value.Free] when a retained Value is done with,
// so the last owner can release the shared cell.
type Value struct {
	kind Kind

	// offset and size give the (offset, length) view of an Array value into
	// its backing store; [Value.Slice] adjusts them so that several Arrays
	// can share one backing store. For every other kind they are unused.
	offset int
	size   int

	// num holds the native double for an inline (non-literal) Number.
	num float64

	c cell
}

// Null returns the JSON null value.
func Null() Value {
	return Value{kind: KindNull}
}

// Bool returns the JSON true or false value for b.
func Bool(b bool) Value {
	if b {
		return Value{kind: KindTrue}
	}
	return Value{kind: KindFalse}
}

// Kind reports which JSON shape v holds.
func (v Value) Kind() Kind {
	return v.kind
}

// IsValid reports whether v is anything other than an Invalid value.
func (v Value) IsValid() bool {
	return v.kind != KindInvalid
}

// RefCount returns the number of live Value handles sharing v's backing
// cell. Inline kinds (Null, True, False, a native-double Number, a
// message-less Invalid) are always reported as 1, matching jv_get_refcnt's
// treatment of unboxed values in the source implementation.
func (v Value) RefCount() int {
	if v.c == nil {
		return 1
	}
	return v.c.refCount()
}

// Copy returns a Value sharing v's backing cell, incrementing its refcount
// if it has one. Use this whenever a received Value will be retained beyond
// the current call.
func (v Value) Copy() Value {
	if v.c != nil {
		v.c = v.c.share()
	}
	return v
}

// Free releases v's claim on its backing cell. After Free, v must not be
// used again. Values of inline kinds need not be explicitly freed; calling
// Free on one is a harmless no-op.
func (v Value) Free() {
	if v.c != nil {
		v.c.release()
	}
}

// makeUnique returns a cell that v's caller can mutate in place: c itself if
// it is already uniquely held, or a freshly cloned copy otherwise. clone is
// called at most once and must return an independent cell holding the same
// logical value.
func makeUnique(c cell, clone func() cell) cell {
	if unique(c) {
		return c
	}
	c.release()
	return clone()
}
