// Package flags implements the fixed-width bit-sets used for object and race flags.
package flags

import (
	"encoding/binary"
	"fmt"
	"math/bits"
	"strings"
)

// Words is the number of 64-bit words in a Set.
const Words = 2

// Width is the number of addressable flags in a Set.
const Width = Words * 64

// Flag is a bit index inside a Set. Flag 0 is reserved as "none":
// it is never stored and Has(0) is always false.
type Flag uint16

// None is the reserved empty flag.
const None Flag = 0

// Set is a fixed-width bit-set. It is a value type: assignment copies it
// and == compares it bit for bit, so a Set can be used as a map key.
type Set [Words]uint64

// Of builds a Set with the given flags on.
func Of(fs ...Flag) Set {
	var s Set
	for _, f := range fs {
		s.On(f)
	}
	return s
}

func (f Flag) valid() bool {
	return f != None && int(f) < Width
}

// Has reports whether flag f is on.
func (s Set) Has(f Flag) bool {
	if !f.valid() {
		return false
	}
	return s[f/64]&(1<<(f%64)) != 0
}

// On turns flag f on. Out-of-range flags and None are ignored.
func (s *Set) On(f Flag) {
	if !f.valid() {
		return
	}
	s[f/64] |= 1 << (f % 64)
}

// Off turns flag f off.
func (s *Set) Off(f Flag) {
	if !f.valid() {
		return
	}
	s[f/64] &^= 1 << (f % 64)
}

// Copy overwrites s with src.
func (s *Set) Copy(src Set) {
	*s = src
}

// Inter keeps only the flags present in both s and o.
func (s *Set) Inter(o Set) {
	for i := range s {
		s[i] &= o[i]
	}
}

// Union adds all flags of o to s.
func (s *Set) Union(o Set) {
	for i := range s {
		s[i] |= o[i]
	}
}

// Intersect returns s ∩ o without modifying either operand.
func (s Set) Intersect(o Set) Set {
	s.Inter(o)
	return s
}

// Equal reports whether both sets have exactly the same flags.
func (s Set) Equal(o Set) bool {
	return s == o
}

// IsEmpty reports whether no flag is on.
func (s Set) IsEmpty() bool {
	for _, w := range s {
		if w != 0 {
			return false
		}
	}
	return true
}

// Count returns the number of flags that are on.
func (s Set) Count() int {
	n := 0
	for _, w := range s {
		n += bits.OnesCount64(w)
	}
	return n
}

// Flags returns the flags that are on, ascending.
func (s Set) Flags() []Flag {
	out := make([]Flag, 0, s.Count())
	for i, w := range s {
		for w != 0 {
			b := bits.TrailingZeros64(w)
			out = append(out, Flag(i*64+b))
			w &^= 1 << b
		}
	}
	return out
}

// Bytes returns the little-endian byte representation of the set.
func (s Set) Bytes() []byte {
	buf := make([]byte, Words*8)
	for i, w := range s {
		binary.LittleEndian.PutUint64(buf[i*8:], w)
	}
	return buf
}

// FromBytes decodes a set produced by Bytes.
func FromBytes(b []byte) (Set, error) {
	var s Set
	if len(b) != Words*8 {
		return s, fmt.Errorf("flag set must be %d bytes, got %d", Words*8, len(b))
	}
	for i := range s {
		s[i] = binary.LittleEndian.Uint64(b[i*8:])
	}
	return s, nil
}

// String renders the set as "{1,5,17}".
func (s Set) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range s.Flags() {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%d", f)
	}
	b.WriteByte('}')
	return b.String()
}
