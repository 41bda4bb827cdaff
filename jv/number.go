package jv

import (
	"math"
	"regexp"
	"sync"

	"github.com/shopspring/decimal"
)

// literalNumberCell backs a Number Value parsed from decimal text whose
// exact digit sequence must be preserved (e.g. "1.50" must round-trip as
// "1.50", not "1.5"). Native-double Numbers never allocate one: their value
// lives inline in Value.num.
type literalNumberCell struct {
	refcounted

	dec decimal.Decimal

	mu      sync.Mutex
	lit     string
	litOK   bool
	dbl     float64
	dblOK   bool
}

func (c *literalNumberCell) share() cell {
	c.incRef()
	return c
}

func (c *literalNumberCell) release() bool {
	return c.decRef()
}

func newLiteralNumber(d decimal.Decimal) Value {
	return Value{kind: KindNumber, c: &literalNumberCell{refcounted: newRefcounted(), dec: d}}
}

// Number returns a native-double Number Value. NaN and +/-Inf are both
// accepted, matching jv_number's unconditional wrapping of its argument.
func Number(x float64) Value {
	return Value{kind: KindNumber, num: x}
}

var (
	nanPattern = regexp.MustCompile(`(?i)^[+-]?s?nan(\d*)$`)
	infPattern = regexp.MustCompile(`(?i)^([+-]?)(inf|infinity)$`)
)

// NumberFromLiteral parses literal as arbitrary-precision decimal text and
// returns a Number Value that preserves its exact digit sequence through
// [Value.NumberLiteral]. A bare "nan" (no payload digits) collapses to the
// same native NaN that [Number] produces, since a payload-less NaN has no
// digits to preserve. A NaN with a nonempty payload, or text that is not
// valid decimal syntax at all, returns an Invalid value. "inf"/"infinity"
// (in either sign) are returned as native +/-Inf Numbers: the underlying
// decimal representation has no infinity of its own, so there is no literal
// text to preserve for it either.
func NumberFromLiteral(literal string) Value {
	if m := nanPattern.FindStringSubmatch(literal); m != nil {
		if m[1] != "" {
			return InvalidWithMsgString("Invalid numeric literal (NaN with payload is not supported)")
		}
		return Number(math.NaN())
	}

	if m := infPattern.FindStringSubmatch(literal); m != nil {
		if m[1] == "-" {
			return Number(math.Inf(-1))
		}
		return Number(math.Inf(1))
	}

	d, err := decimal.NewFromString(literal)
	if err != nil {
		return InvalidWithMsgString("Invalid numeric literal")
	}
	return newLiteralNumber(d)
}

func (v Value) literalCell() (*literalNumberCell, bool) {
	if v.kind != KindNumber || v.c == nil {
		return nil, false
	}
	return v.c.(*literalNumberCell), true
}

// NumberHasLiteral reports whether v is a Number carrying preserved literal
// decimal text, as opposed to a plain native double.
func (v Value) NumberHasLiteral() bool {
	_, ok := v.literalCell()
	return ok
}

// NumberLiteral returns v's preserved literal decimal text and true, or ""
// and false if v is not a Number or has no literal text (a native-double
// Number).
func (v Value) NumberLiteral() (string, bool) {
	c, ok := v.literalCell()
	if !ok {
		return "", false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.litOK {
		if exp := c.dec.Exponent(); exp < 0 {
			c.lit = c.dec.StringFixed(-exp)
		} else {
			c.lit = c.dec.String()
		}
		c.litOK = true
	}
	return c.lit, true
}

// NumberValue returns v's value as a float64, materializing it from the
// preserved decimal text on first use if v is a literal Number.
func (v Value) NumberValue() float64 {
	c, ok := v.literalCell()
	if !ok {
		return v.num
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dblOK {
		f, _ := c.dec.Float64()
		c.dbl = f
		c.dblOK = true
	}
	return c.dbl
}

// IsInteger reports whether v is a Number with no fractional part.
func (v Value) IsInteger() bool {
	if v.kind != KindNumber {
		return false
	}
	if c, ok := v.literalCell(); ok {
		return c.dec.Exponent() >= 0 || c.dec.Equal(c.dec.Truncate(0))
	}
	x := v.NumberValue()
	return !math.IsInf(x, 0) && x == math.Trunc(x)
}

// IsNaN reports whether v is a Number holding NaN.
func (v Value) IsNaN() bool {
	return v.kind == KindNumber && v.c == nil && math.IsNaN(v.num)
}

// NumberAbs returns the absolute value of Number v.
func (v Value) NumberAbs() Value {
	if c, ok := v.literalCell(); ok {
		return newLiteralNumber(c.dec.Abs())
	}
	return Number(math.Abs(v.NumberValue()))
}

// NumberNegate returns the negation of Number v.
func (v Value) NumberNegate() Value {
	if c, ok := v.literalCell(); ok {
		return newLiteralNumber(c.dec.Neg())
	}
	return Number(-v.NumberValue())
}

// NumberCmp orders two Number values, returning -1, 0, or 1. When both sides
// carry preserved literal text, the comparison is exact decimal comparison;
// otherwise both sides are materialized to float64 first. As with the
// source implementation, comparing against NaN never reports -1 or 0, so it
// is not a total order.
func NumberCmp(a, b Value) int {
	ac, aOK := a.literalCell()
	bc, bOK := b.literalCell()
	if aOK && bOK {
		return ac.dec.Cmp(bc.dec)
	}

	da, db := a.NumberValue(), b.NumberValue()
	switch {
	case da < db:
		return -1
	case da == db:
		return 0
	default:
		return 1
	}
}
