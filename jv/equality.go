package jv

import (
	"bytes"
	"math"
)

// Equal reports whether v and other represent the same JSON value:
// structural equality for Array/Object/String, numeric equality for
// Number (see [NumberCmp]), and kind equality for Null/True/False.
// Values of different kinds are never equal, and an Invalid value is never
// equal to anything, including another Invalid value.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull, KindTrue, KindFalse:
		return true
	case KindNumber:
		return NumberCmp(v, other) == 0
	case KindString:
		return bytes.Equal(v.stringCell().data, other.stringCell().data)
	case KindArray:
		return arrayEqual(v, other)
	case KindObject:
		return objectEqual(v, other)
	default: // KindInvalid
		return false
	}
}

func arrayEqual(a, b Value) bool {
	if a.size != b.size {
		return false
	}
	for i := 0; i < a.size; i++ {
		x, y := a.ArrayGet(i), b.ArrayGet(i)
		eq := x.Equal(y)
		x.Free()
		y.Free()
		if !eq {
			return false
		}
	}
	return true
}

// arrayContains reports whether every element of other is contained by some
// element of v, mirroring jvp_array_contains's nested, order-independent
// scan rather than a positional subsequence search.
func arrayContains(v, other Value) bool {
	for i := 0; i < other.size; i++ {
		ov := other.ArrayGet(i)
		found := false
		for j := 0; j < v.size; j++ {
			vv := v.ArrayGet(j)
			if vv.Contains(ov) {
				found = true
			}
			vv.Free()
			if found {
				break
			}
		}
		ov.Free()
		if !found {
			return false
		}
	}
	return true
}

func objectEqual(a, b Value) bool {
	if a.ObjectLength() != b.ObjectLength() {
		return false
	}
	equal := true
	a.ObjectEach(func(k, av Value) bool {
		if !b.ObjectHas(k) {
			av.Free()
			k.Free()
			equal = false
			return false
		}
		bv := b.ObjectGet(k)
		if !av.Equal(bv) {
			equal = false
		}
		av.Free()
		bv.Free()
		k.Free()
		return equal
	})
	return equal
}

// Identical is a stricter test than Equal: two Values are identical only if
// they are bitwise the same, which for Number additionally means two NaNs
// with different bit patterns are not identical, and a literal-decimal
// Number is never identical to a native-double Number even when
// NumberCmp reports them equal.
func (v Value) Identical(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindNull, KindTrue, KindFalse:
		return true
	case KindNumber:
		_, aLit := v.literalCell()
		_, bLit := other.literalCell()
		if aLit != bLit {
			return false
		}
		if aLit {
			return v.c == other.c
		}
		return math.Float64bits(v.num) == math.Float64bits(other.num)
	case KindString, KindArray, KindObject:
		return v.c == other.c && v.offset == other.offset && v.size == other.size
	default: // KindInvalid
		return v.c == other.c
	}
}

// Contains reports whether v structurally contains other: for Objects,
// every key of other is present in v with a value that contains other's;
// for Arrays, every element of other is contained by some element of v,
// independent of position or order; for Strings, other's text is a byte
// substring of v's; for every other kind, Contains falls back to Equal. A
// kind mismatch is always false.
func (v Value) Contains(other Value) bool {
	if v.kind != other.kind {
		return false
	}

	switch v.kind {
	case KindObject:
		ok := true
		other.ObjectEach(func(k, ov Value) bool {
			if !v.ObjectHas(k) {
				ok = false
				ov.Free()
				k.Free()
				return false
			}
			vv := v.ObjectGet(k)
			if !vv.Contains(ov) {
				ok = false
			}
			vv.Free()
			ov.Free()
			k.Free()
			return ok
		})
		return ok
	case KindArray:
		return arrayContains(v, other)
	case KindString:
		if other.StringLengthBytes() == 0 {
			return true
		}
		return bytes.Contains(v.stringCell().data, other.stringCell().data)
	default:
		return v.Equal(other)
	}
}
