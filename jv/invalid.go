package jv

// invalidCell carries the optional error message for an Invalid value.
// Invalid-without-message values never allocate one: they carry a nil c,
// which is what InvalidHasMsg checks to tell them apart from Invalid values
// that carry a message.
type invalidCell struct {
	refcounted
	msg Value // holds a String, or Null if none was given
}

func (c *invalidCell) share() cell {
	c.incRef()
	return c
}

func (c *invalidCell) release() bool {
	if c.decRef() {
		c.msg.Free()
		return true
	}
	return false
}

// Invalid returns a message-less Invalid value. Use this for errors whose
// cause is already clear from context.
func Invalid() Value {
	return Value{kind: KindInvalid}
}

// InvalidWithMsg returns an Invalid value carrying msg as its error message.
// msg is typically a String Value but any kind is accepted, mirroring
// jv_invalid_with_msg.
func InvalidWithMsg(msg Value) Value {
	return Value{kind: KindInvalid, c: &invalidCell{refcounted: newRefcounted(), msg: msg}}
}

// InvalidWithMsgString returns an Invalid value with a String error message.
func InvalidWithMsgString(msg string) Value {
	return InvalidWithMsg(String(msg))
}

// InvalidHasMsg reports whether v (which must be Invalid) carries an error
// message.
func (v Value) InvalidHasMsg() bool {
	return v.kind == KindInvalid && v.c != nil
}

// InvalidGetMsg returns v's error message, or Null if v carries none. It
// does not assert v.Kind() == KindInvalid: like jv_invalid_get_msg, it is
// safe to call on values that may or may not be Invalid and treats any
// other kind as message-less. Ownership of v transfers to the result: v's
// cell is released before InvalidGetMsg returns, so callers that still need
// v afterward must pass v.Copy() instead.
func (v Value) InvalidGetMsg() Value {
	if v.kind != KindInvalid || v.c == nil {
		v.Free()
		return Null()
	}
	msg := v.c.(*invalidCell).msg.Copy()
	v.Free()
	return msg
}

// Error implements the error interface so an Invalid Value can be returned
// directly from functions with a conventional Go `error` result, using its
// message (or a generic fallback) as the error text. v itself is left
// valid: Error borrows a reference via Copy before handing it to the
// consuming InvalidGetMsg.
func (v Value) Error() string {
	msg := v.Copy().InvalidGetMsg()
	defer msg.Free()

	if msg.Kind() == KindString {
		return msg.StringValue()
	}
	return "invalid jv.Value (not an error)"
}
