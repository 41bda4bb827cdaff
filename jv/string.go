package jv

import (
	"bytes"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/spaolacci/murmur3"
)

// hashSeed is the seed used for every string's cached MurmurHash3-32 hash.
const hashSeed = 0x432A9843

// stringCell backs a String Value: a flat UTF-8 byte buffer plus a cached
// hash and codepoint count, both invalidated on mutation. Go's append
// already grows the backing array geometrically, so unlike the source's
// manual allocsz bookkeeping this cell just leans on append, and Copy shares
// the whole cell (not the bytes) — the COW discipline lives in makeUnique,
// not in the growth arithmetic.
type stringCell struct {
	refcounted

	data []byte

	mu        sync.Mutex
	hashValid bool
	hash      uint32
	cpLenOK   bool
	cpLen     int
}

func (c *stringCell) share() cell {
	c.incRef()
	return c
}

func (c *stringCell) release() bool {
	return c.decRef()
}

func (c *stringCell) clone() cell {
	cp := make([]byte, len(c.data))
	copy(cp, c.data)
	return &stringCell{refcounted: newRefcounted(), data: cp}
}

// String returns a String Value holding s. Any byte sequence in s that is
// not valid UTF-8 is replaced with U+FFFD, matching the repair-at-the-
// boundary policy untrusted input is subjected to in the source.
func String(s string) Value {
	return stringValue(repairUTF8([]byte(s)))
}

// StringFromBytes is like String but takes raw bytes directly, avoiding a
// UTF-8-validity round trip through the string type when the caller already
// has a []byte.
func StringFromBytes(b []byte) Value {
	return stringValue(repairUTF8(b))
}

func stringValue(repaired []byte) Value {
	return Value{kind: KindString, c: &stringCell{refcounted: newRefcounted(), data: repaired}}
}

// repairUTF8 returns b unchanged if it is already valid UTF-8, or a copy
// with every ill-formed byte sequence replaced by U+FFFD otherwise.
func repairUTF8(b []byte) []byte {
	if utf8.Valid(b) {
		return b
	}

	out := make([]byte, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		if r == utf8.RuneError && size <= 1 {
			out = utf8.AppendRune(out, utf8.RuneError)
			b = b[1:]
			continue
		}
		out = append(out, b[:size]...)
		b = b[size:]
	}
	return out
}

func (v Value) stringCell() *stringCell {
	return v.c.(*stringCell)
}

// StringValue returns v's contents as a Go string. v must be a String.
func (v Value) StringValue() string {
	return string(v.stringCell().data)
}

// StringLengthBytes returns the number of UTF-8 bytes in String v.
func (v Value) StringLengthBytes() int {
	return len(v.stringCell().data)
}

// StringLengthCodepoints returns the number of Unicode codepoints in
// String v.
func (v Value) StringLengthCodepoints() int {
	c := v.stringCell()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.cpLenOK {
		c.cpLen = utf8.RuneCount(c.data)
		c.cpLenOK = true
	}
	return c.cpLen
}

// stringHash returns v's cached MurmurHash3-32 hash, computing it on first
// use.
func (v Value) stringHash() uint32 {
	c := v.stringCell()

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.hashValid {
		c.hash = murmur3.Sum32WithSeed(c.data, hashSeed)
		c.hashValid = true
	}
	return c.hash
}

// StringConcat returns the concatenation of String values v and other.
// Ownership of both transfers to the result: v's backing buffer is grown
// in place to receive other's bytes when v is uniquely held, and other's
// cell is always released.
func (v Value) StringConcat(other Value) Value {
	v = v.StringAppendBuf(other.stringCell().data)
	other.Free()
	return v
}

// StringAppendBuf appends b, which must already be valid UTF-8, to String v
// in place when v is uniquely held, letting Go's append grow the backing
// buffer geometrically, or appends onto a freshly cloned buffer otherwise.
// Ownership of v transfers to the result.
func (v Value) StringAppendBuf(b []byte) Value {
	v.c = makeUnique(v.c, v.stringCell().clone)
	c := v.stringCell()
	c.data = append(c.data, b...)
	c.hashValid = false
	c.cpLenOK = false
	return v
}

// StringAppendStr appends s to String v in place, repairing any ill-formed
// UTF-8 the same way [String] does.
func (v Value) StringAppendStr(s string) Value {
	return v.StringAppendBuf(repairUTF8([]byte(s)))
}

// StringAppendCodepoint appends the UTF-8 encoding of cp to String v in
// place, replacing a scalar value outside the valid range (including the
// UTF-16 surrogate range) with U+FFFD.
func (v Value) StringAppendCodepoint(cp rune) Value {
	if !utf8.ValidRune(cp) {
		cp = utf8.RuneError
	}
	return v.StringAppendBuf(utf8.AppendRune(nil, cp))
}

// StringSlice returns the substring of String v from codepoint index start
// (inclusive) to end (exclusive), with negative indices and out-of-range
// bounds handled per clampSliceParams.
func (v Value) StringSlice(start, end int) Value {
	c := v.stringCell()
	length := v.StringLengthCodepoints()
	start, end = clampSliceParams(length, start, end)

	if start == 0 && end == length {
		return v.Copy()
	}

	byteStart := codepointOffsetToByte(c.data, start)
	byteEnd := codepointOffsetToByte(c.data, end)

	buf := make([]byte, byteEnd-byteStart)
	copy(buf, c.data[byteStart:byteEnd])
	return stringValue(buf)
}

func codepointOffsetToByte(data []byte, cpOffset int) int {
	i := 0
	for n := 0; n < cpOffset && i < len(data); n++ {
		_, size := utf8.DecodeRune(data[i:])
		i += size
	}
	return i
}

// StringIndexes returns, as an Array of Numbers, the codepoint offsets of
// every (possibly overlapping) occurrence of needle in haystack. An empty
// needle matches nowhere, matching the source's treatment of empty-needle
// search as producing no index results outside of Contains (which
// special-cases it to true). Ownership of both haystack and needle
// transfers to the result; both are freed before it is returned.
func StringIndexes(haystack, needle Value) Value {
	h := haystack.stringCell().data
	n := needle.stringCell().data

	var out []Value
	if len(n) > 0 {
		byteOff := 0
		cpOff := 0
		for {
			idx := bytes.Index(h[byteOff:], n)
			if idx < 0 {
				break
			}
			cpOff += utf8.RuneCount(h[byteOff : byteOff+idx])
			out = append(out, Number(float64(cpOff)))

			_, size := utf8.DecodeRune(h[byteOff+idx:])
			cpOff++
			byteOff += idx + size
		}
	}

	haystack.Free()
	needle.Free()
	return Array(out...)
}

// StringSplit splits String v on every occurrence of sep. An empty
// separator splits into one element per codepoint. Ownership of both v and
// sep transfers to the result; both are freed before it returns.
func (v Value) StringSplit(sep Value) []Value {
	s := v.StringValue()
	sepStr := sep.StringValue()

	var out []Value
	if sepStr == "" {
		runes := []rune(s)
		out = make([]Value, len(runes))
		for i, r := range runes {
			out[i] = String(string(r))
		}
	} else {
		parts := strings.Split(s, sepStr)
		out = make([]Value, len(parts))
		for i, p := range parts {
			out[i] = String(p)
		}
	}

	v.Free()
	sep.Free()
	return out
}

// StringRepeat returns String v repeated n times, or Null if n is negative.
// Ownership of v transfers to the result.
func (v Value) StringRepeat(n int) Value {
	if n < 0 {
		v.Free()
		return Null()
	}
	out := stringValue(bytes.Repeat(v.stringCell().data, n))
	v.Free()
	return out
}

// Explode returns an Array of Number values, one per codepoint of
// String v, holding each codepoint's scalar value. Ownership of v
// transfers to the result.
func (v Value) Explode() Value {
	runes := []rune(v.StringValue())
	elems := make([]Value, len(runes))
	for i, r := range runes {
		elems[i] = Number(float64(r))
	}
	v.Free()
	return Array(elems...)
}

// Implode builds a String from an Array of Number codepoints. A codepoint
// outside the valid scalar range (including the UTF-16 surrogate range) is
// replaced with U+FFFD, matching jv_string_implode. Ownership of
// codepoints transfers to the result.
func Implode(codepoints Value) Value {
	n := codepoints.ArrayLength()

	var sb strings.Builder
	for i := 0; i < n; i++ {
		cp := codepoints.ArrayGet(i)
		r := rune(cp.NumberValue())
		if !utf8.ValidRune(r) {
			r = utf8.RuneError
		}
		sb.WriteRune(r)
		cp.Free()
	}
	codepoints.Free()
	return String(sb.String())
}
