package attrib

import (
	"cmp"
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Entry is one kind/value pair of a [Set].
type Entry struct {
	Kind  Kind
	Value Value
}

// Set is an ordered mapping from attribute kind to attribute value.
// Iteration is always by ascending kind.
//
// A Set used as a request may hold nil values, meaning "explicitly unset".
// The active state of a guardian never does.
//
// The zero Set is empty and ready to use. A nil *Set reads as empty.
type Set struct {
	entries []Entry

	// scratch is the buffer the next merge is built in; it is swapped
	// with entries afterwards so steady-state merges do not allocate.
	scratch []Entry
}

// NewSet returns a set holding the given attributes under their own kinds.
// It panics if two attributes share a kind.
func NewSet(attrs ...Attribute) *Set {
	entries := make([]Entry, len(attrs))
	for i, a := range attrs {
		entries[i] = Entry{Kind: a.Kind(), Value: a}
	}
	return NewSetFromEntries(entries...)
}

// NewSetFromEntries returns a set holding the given entries. Entries may
// come in any order and may carry nil values.
// It panics if two entries share a kind.
func NewSetFromEntries(entries ...Entry) *Set {
	s := &Set{entries: slices.Clone(entries)}
	slices.SortStableFunc(s.entries, func(a, b Entry) int {
		return cmp.Compare(a.Kind, b.Kind)
	})
	for i := 1; i < len(s.entries); i++ {
		if s.entries[i].Kind == s.entries[i-1].Kind {
			panic("attrib: duplicate kind " + s.entries[i].Kind.String())
		}
	}
	return s
}

func (s *Set) search(k Kind) (int, bool) {
	return slices.BinarySearchFunc(s.entries, k, func(e Entry, k Kind) int {
		return cmp.Compare(e.Kind, k)
	})
}

// Put stores v under k, replacing any previous value.
// A nil v records an explicit unset; see [Set.Unset].
func (s *Set) Put(k Kind, v Value) {
	i, found := s.search(k)
	if found {
		s.entries[i].Value = v
		return
	}
	s.entries = slices.Insert(s.entries, i, Entry{Kind: k, Value: v})
}

// Add stores a under its own kind.
func (s *Set) Add(a Attribute) {
	s.Put(a.Kind(), a)
}

// Unset records that k should be explicitly unset when the set is used
// as a request.
func (s *Set) Unset(k Kind) {
	s.Put(k, nil)
}

// Delete removes k from the set. It reports whether k was present.
func (s *Set) Delete(k Kind) bool {
	i, found := s.search(k)
	if !found {
		return false
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return true
}

// Get returns the value stored under k. The value may be nil if k was
// explicitly unset.
func (s *Set) Get(k Kind) (Value, bool) {
	if s == nil {
		return nil, false
	}
	i, found := s.search(k)
	if !found {
		return nil, false
	}
	return s.entries[i].Value, true
}

// Has reports whether k is present in the set, including as an unset.
func (s *Set) Has(k Kind) bool {
	_, ok := s.Get(k)
	return ok
}

// Len returns the number of entries.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Kinds returns the kinds of the set in ascending order.
func (s *Set) Kinds() []Kind {
	if s == nil {
		return nil
	}
	kinds := make([]Kind, len(s.entries))
	for i, e := range s.entries {
		kinds[i] = e.Kind
	}
	return kinds
}

// Entries returns a copy of the entries in ascending kind order.
func (s *Set) Entries() []Entry {
	if s == nil {
		return nil
	}
	return slices.Clone(s.entries)
}

// All iterates over the entries in ascending kind order.
// The set must not be modified during iteration.
func (s *Set) All() iter.Seq2[Kind, Value] {
	return func(yield func(Kind, Value) bool) {
		if s == nil {
			return
		}
		for _, e := range s.entries {
			if !yield(e.Kind, e.Value) {
				return
			}
		}
	}
}

// Clone returns an independent copy of the set. Values are shared, which
// is safe because values are immutable.
func (s *Set) Clone() *Set {
	if s == nil {
		return &Set{}
	}
	return &Set{entries: slices.Clone(s.entries)}
}

// Clear removes all entries, keeping the allocated storage.
func (s *Set) Clear() {
	clear(s.entries)
	s.entries = s.entries[:0]
}

// Equal reports whether both sets hold the same kinds with values that
// compare equal. Nil values only equal nil values.
func (s *Set) Equal(other *Set) bool {
	if s.Len() != other.Len() {
		return false
	}
	for i := range s.Len() {
		a, b := s.entries[i], other.entries[i]
		if a.Kind != b.Kind {
			return false
		}
		if a.Value == nil || b.Value == nil {
			if a.Value != b.Value {
				return false
			}
			continue
		}
		if a.Value.CompareTo(b.Value) != 0 {
			return false
		}
	}
	return true
}

// Validate reports an entry whose value is an [Attribute] of another
// kind, as [Set.Put] allows storing any value under any kind.
func (s *Set) Validate() error {
	for k, v := range s.All() {
		if a, ok := v.(Attribute); ok && a.Kind() != k {
			return fmt.Errorf("attrib: %v value stored under kind %v", a.Kind(), k)
		}
	}
	return nil
}

// String returns a human readable representation like
// "{Blend: additive, Color: (1,0,0,1)}".
func (s *Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for k, v := range s.All() {
		if b.Len() > 1 {
			b.WriteString(", ")
		}
		b.WriteString(k.String())
		b.WriteString(": ")
		if v == nil {
			b.WriteString("unset")
		} else {
			fmt.Fprint(&b, v)
		}
	}
	b.WriteByte('}')
	return b.String()
}
