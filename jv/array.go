package jv

import "math"

// maxArrayIndex is the largest array index this package accepts, matching
// the source's (INT_MAX>>2)-relative bound used to keep offset+index
// arithmetic from overflowing its packed representation. Go's Value carries
// plain ints, so the bound here exists only to keep indexes sane, not to
// protect a bitfield.
const maxArrayIndex = math.MaxInt32 >> 2

// arrayCell is the shared backing store for one or more Array Values. A
// Value's offset/size fields select a window into elems; multiple Array
// Values can share one arrayCell (and therefore one backing slice) without
// copying, the same way [Value.Slice] shares storage in the source.
type arrayCell struct {
	refcounted
	elems []Value
}

func (c *arrayCell) share() cell {
	c.incRef()
	return c
}

func (c *arrayCell) release() bool {
	if c.decRef() {
		for _, e := range c.elems {
			e.Free()
		}
		return true
	}
	return false
}

// Array returns an Array Value holding copies of elems. Ownership of each
// element in elems is transferred to the new array, matching jv_array_set's
// calling convention.
func Array(elems ...Value) Value {
	backing := make([]Value, len(elems))
	copy(backing, elems)
	return Value{kind: KindArray, size: len(elems), c: &arrayCell{refcounted: newRefcounted(), elems: backing}}
}

func (v Value) arrayCell() *arrayCell {
	return v.c.(*arrayCell)
}

// ArrayLength returns the number of elements in Array v.
func (v Value) ArrayLength() int {
	return v.size
}

// ArrayGet returns a copy of the element at index i in Array v, or Invalid
// if i is out of range.
func (v Value) ArrayGet(i int) Value {
	if i < 0 || i >= v.size {
		return InvalidWithMsgString("Out of bounds array index")
	}
	return v.arrayCell().elems[v.offset+i].Copy()
}

// cloneArrayCell makes a private copy of v's visible window [offset,
// offset+size) as a fresh, uniquely-held arrayCell.
func (v Value) cloneArrayCell() cell {
	old := v.arrayCell()
	backing := make([]Value, v.size)
	for i := range backing {
		backing[i] = old.elems[v.offset+i].Copy()
	}
	return &arrayCell{refcounted: newRefcounted(), elems: backing}
}

// ArraySet returns a copy of Array v with index i set to val. A negative i
// is interpreted relative to the end of the array. Setting an index beyond
// the current length extends the array, filling the gap with Null.
// Ownership of val is transferred to the array.
func (v Value) ArraySet(i int, val Value) Value {
	size := v.size

	if i < 0 {
		i += size
		if i < 0 {
			val.Free()
			return InvalidWithMsgString("Out of bounds negative array index")
		}
	}
	if i > maxArrayIndex {
		val.Free()
		return InvalidWithMsgString("Array index too large")
	}

	v.c = makeUnique(v.c, v.cloneArrayCell)
	c := v.arrayCell()
	abs := v.offset + i

	if i >= size {
		needLen := abs + 1
		for len(c.elems) < needLen {
			c.elems = append(c.elems, Null())
		}
		for j := v.offset + size; j < abs; j++ {
			c.elems[j].Free()
			c.elems[j] = Null()
		}
		v.size = i + 1
	}

	c.elems[abs].Free()
	c.elems[abs] = val
	return v
}

// ArrayAppend returns a copy of Array v with val appended at the end.
// Ownership of val is transferred to the array.
func (v Value) ArrayAppend(val Value) Value {
	return v.ArraySet(v.size, val)
}

// ArrayConcat returns the Array holding the elements of a followed by the
// elements of b. Ownership of both a and b transfers to the result: a's
// backing storage is grown in place (via the same uniqueness check as
// ArrayAppend) to receive b's elements, and b's cell is always released,
// matching jv_array_concat's reuse-a/free-b convention.
func ArrayConcat(a, b Value) Value {
	bc := b.arrayCell()
	out := a
	for i := 0; i < b.size; i++ {
		out = out.ArrayAppend(bc.elems[b.offset+i].Copy())
	}
	b.Free()
	return out
}

// Slice returns the subarray of Array v from index start (inclusive) to end
// (exclusive), with negative indices and out-of-range bounds handled per
// clampSliceParams. A non-empty result shares v's backing storage; an empty
// result is always a fresh, independent empty array.
func (v Value) Slice(start, end int) Value {
	length := v.size
	start, end = clampSliceParams(length, start, end)

	if start == end {
		return Array()
	}

	out := v.Copy()
	out.offset = v.offset + start
	out.size = end - start
	return out
}

// ArrayIndexes returns, as an Array of Numbers, the starting indexes of
// every occurrence of the elements of needle as a contiguous subsequence of
// haystack. Ownership of both haystack and needle transfers to the result;
// both are freed before it is returned, matching jv_array_indexes.
func ArrayIndexes(haystack, needle Value) Value {
	n := needle.ArrayLength()
	length := haystack.ArrayLength()

	var out []Value
	if n > 0 && n <= length {
	outer:
		for i := 0; i+n <= length; i++ {
			for j := 0; j < n; j++ {
				a := haystack.ArrayGet(i + j)
				b := needle.ArrayGet(j)
				eq := a.Equal(b)
				a.Free()
				b.Free()
				if !eq {
					continue outer
				}
			}
			out = append(out, Number(float64(i)))
		}
	}

	haystack.Free()
	needle.Free()
	return Array(out...)
}
