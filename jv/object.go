package jv

// defaultObjectCapacity is the slot capacity a fresh Object starts with,
// matching DEFAULT_OBJECT_SIZE in the source.
const defaultObjectCapacity = 8

// maxObjectCapacity bounds rehash growth the same way maxArrayIndex bounds
// array indexes: a sanity ceiling carried over from the source's
// size > INT_MAX>>2 check, not a real constraint on a Go slice.
const maxObjectCapacity = maxArrayIndex

// objSlot is one entry in an objectCell's insertion-ordered slot list.
// Deleted slots are tombstoned in place (key/value freed, deleted set) so
// live chain links elsewhere in the bucket table stay valid without a
// separate compaction pass on every delete.
type objSlot struct {
	key     Value
	value   Value
	hash    uint32
	next    int // index of the next slot in this bucket's chain, -1 if none
	deleted bool
}

// objectCell is the shared backing store for an Object Value: an
// insertion-ordered slot list plus a power-of-two bucket table mapping each
// key's MurmurHash3-32 hash to the head of its chain, exactly as
// jvp_object_find_bucket/add_slot describe, recast onto Go slices instead of
// raw arrays.
type objectCell struct {
	refcounted

	slots    []objSlot
	buckets  []int // len == 2*capacity, -1 marks an empty chain head
	capacity int
	live     int
}

func (c *objectCell) share() cell {
	c.incRef()
	return c
}

func (c *objectCell) release() bool {
	if c.decRef() {
		for _, s := range c.slots {
			if !s.deleted {
				s.key.Free()
				s.value.Free()
			}
		}
		return true
	}
	return false
}

func newObjectCell(capacity int) *objectCell {
	return &objectCell{
		refcounted: newRefcounted(),
		capacity:   capacity,
		buckets:    newBuckets(capacity * 2),
	}
}

func newBuckets(n int) []int {
	b := make([]int, n)
	for i := range b {
		b[i] = -1
	}
	return b
}

// Object returns a new, empty Object Value with the source's default
// initial capacity of 8 slots.
func Object() Value {
	return Value{kind: KindObject, c: newObjectCell(defaultObjectCapacity)}
}

func (v Value) objectCell() *objectCell {
	return v.c.(*objectCell)
}

func (c *objectCell) mask() uint32 {
	return uint32(len(c.buckets) - 1)
}

// find returns the slot index holding key, or -1 if not present.
func (c *objectCell) find(key string, hash uint32) int {
	for i := c.buckets[hash&c.mask()]; i != -1; i = c.slots[i].next {
		s := &c.slots[i]
		if !s.deleted && s.hash == hash && s.key.StringValue() == key {
			return i
		}
	}
	return -1
}

// insert adds a new slot for (key, value), rehashing first if the slot
// list has no room. The caller must already have checked that key is not
// present.
func (c *objectCell) insert(key, value Value, hash uint32) error {
	if len(c.slots) >= c.capacity {
		if c.capacity > maxObjectCapacity/2 {
			return errObjectTooBig
		}
		c.rehash(c.capacity * 2)
	}

	idx := len(c.slots)
	b := hash & c.mask()
	c.slots = append(c.slots, objSlot{key: key, value: value, hash: hash, next: c.buckets[b]})
	c.buckets[b] = idx
	c.live++
	return nil
}

// rehash doubles capacity and rebuilds the bucket table, compacting out
// tombstoned slots in the process (their insertion-order position is
// simply dropped, which is fine since they no longer iterate).
func (c *objectCell) rehash(newCapacity int) {
	old := c.slots
	c.capacity = newCapacity
	c.buckets = newBuckets(newCapacity * 2)
	c.slots = make([]objSlot, 0, len(old))

	for _, s := range old {
		if s.deleted {
			continue
		}
		idx := len(c.slots)
		b := s.hash & c.mask()
		s.next = c.buckets[b]
		c.slots = append(c.slots, s)
		c.buckets[b] = idx
	}
}

var errObjectTooBig = invalidErr("Object too big")

type invalidErr string

func (e invalidErr) Error() string { return string(e) }

// cloneObjectCell makes a private, uniquely-held copy of an objectCell,
// preserving insertion order and key/value ownership (each retained key and
// value is Copy()'d into the clone).
func cloneObjectCell(src *objectCell) cell {
	dst := &objectCell{
		refcounted: newRefcounted(),
		capacity:   src.capacity,
		buckets:    append([]int(nil), src.buckets...),
		slots:      make([]objSlot, len(src.slots)),
		live:       src.live,
	}
	for i, s := range src.slots {
		if !s.deleted {
			s.key = s.key.Copy()
			s.value = s.value.Copy()
		}
		dst.slots[i] = s
	}
	return dst
}

// ObjectLength returns the number of live key/value pairs in Object v.
func (v Value) ObjectLength() int {
	return v.objectCell().live
}

// ObjectGet returns a copy of the value associated with key in Object v, or
// Invalid if key is absent. key must be a String.
func (v Value) ObjectGet(key Value) Value {
	c := v.objectCell()
	k := key.StringValue()
	idx := c.find(k, key.stringHash())
	if idx < 0 {
		return InvalidWithMsgString("Object key not found")
	}
	return c.slots[idx].value.Copy()
}

// ObjectHas reports whether key is present in Object v.
func (v Value) ObjectHas(key Value) bool {
	c := v.objectCell()
	return c.find(key.StringValue(), key.stringHash()) >= 0
}

// ObjectSet returns a copy of Object v with key bound to val, replacing any
// existing binding in place (preserving that key's original insertion
// position) or appending a new one. Ownership of key and val transfers to
// the object.
func (v Value) ObjectSet(key, val Value) Value {
	v.c = makeUnique(v.c, func() cell { return cloneObjectCell(v.objectCell()) })
	c := v.objectCell()

	hash := key.stringHash()
	if idx := c.find(key.StringValue(), hash); idx >= 0 {
		c.slots[idx].value.Free()
		c.slots[idx].value = val
		key.Free()
		return v
	}

	if err := c.insert(key, val, hash); err != nil {
		key.Free()
		val.Free()
		return InvalidWithMsgString(err.Error())
	}
	return v
}

// ObjectDelete returns a copy of Object v with key's binding removed, if
// any. Deleting an absent key is a no-op.
func (v Value) ObjectDelete(key Value) Value {
	v.c = makeUnique(v.c, func() cell { return cloneObjectCell(v.objectCell()) })
	c := v.objectCell()

	idx := c.find(key.StringValue(), key.stringHash())
	if idx >= 0 {
		c.slots[idx].key.Free()
		c.slots[idx].value.Free()
		c.slots[idx].key = Value{}
		c.slots[idx].value = Value{}
		c.slots[idx].deleted = true
		c.live--
	}
	return v
}

// ObjectEach calls fn once per live key/value pair in Object v, in
// insertion order, stopping early if fn returns false. Keys and values
// passed to fn are owned by the caller and must be Free'd (or retained via
// Copy) before fn returns.
func (v Value) ObjectEach(fn func(key, value Value) bool) {
	c := v.objectCell()
	for _, s := range c.slots {
		if s.deleted {
			continue
		}
		if !fn(s.key.Copy(), s.value.Copy()) {
			return
		}
	}
}

// ObjectMerge returns an Object containing every key of a, then every key
// of b, with b's bindings overriding a's for shared keys. Ownership of both
// a and b transfers to the result: a's backing storage is reused in place
// (via ObjectSet's uniqueness check) to receive b's bindings, and b's cell
// is always released.
func ObjectMerge(a, b Value) Value {
	out := a
	b.ObjectEach(func(k, val Value) bool {
		out = out.ObjectSet(k, val)
		return true
	})
	b.Free()
	return out
}

// ObjectMergeRecursive is like ObjectMerge, except that when a key is
// present in both operands and both values are Objects, the merge
// recurses into them instead of b's value simply replacing a's. Ownership
// of both a and b transfers to the result the same way ObjectMerge's does.
func ObjectMergeRecursive(a, b Value) Value {
	out := a
	b.ObjectEach(func(k, bval Value) bool {
		if out.ObjectHas(k) {
			aval := out.ObjectGet(k)
			if aval.Kind() == KindObject && bval.Kind() == KindObject {
				merged := ObjectMergeRecursive(aval, bval)
				out = out.ObjectSet(k, merged)
				return true
			}
			aval.Free()
		}
		out = out.ObjectSet(k, bval)
		return true
	})
	b.Free()
	return out
}
