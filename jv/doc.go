// Package jv implements an immutable-by-contract, structurally-shared JSON
// value representation.
//
// A [Value] is a small, copyable handle (a tagged union in spirit, a struct
// in practice) over one of eight kinds: Invalid, Null, False, True, Number,
// String, Array, or Object. Null/False/True/Invalid-without-message and
// native-double Numbers are carried entirely inline — they never touch the
// heap and sharing them is free. Strings, Arrays, Objects, and
// arbitrary-precision Numbers are backed by a reference-counted heap cell;
// copying a [Value] of one of these kinds increments the cell's refcount
// rather than duplicating the underlying storage, and mutation only ever
// happens after the cell has been made privately owned (copy-on-write).
//
// The package follows a five-stage processing pipeline wherever a Value is
// mutated through one of its "setter" operations:
//
//  1. the caller hands over ownership of the receiver Value (Go passes by
//     value, so this is implicit: once passed to a setter, the caller's copy
//     must not be used again except through the returned Value);
//  2. the setter checks whether the backing cell is uniquely held;
//  3. if shared, a private clone of the cell is made (jvp_*_unshare in the
//     original C, makeUnique in this port);
//  4. the mutation is applied in place on the now-unique cell;
//  5. the (possibly new) Value is returned to the caller.
//
// There is no internal locking anywhere in this package: a single Value
// graph must not be mutated from more than one goroutine concurrently. Pass
// copies across goroutine boundaries and treat each goroutine's copies as
// independent once no further sharing occurs between them.
package jv
