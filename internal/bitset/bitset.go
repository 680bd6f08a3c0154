// Package bitset provides the append-only bit buffer used to assemble
// QR segment and codeword streams.
package bitset

import "fmt"

// Bitset is a variable-length sequence of bits. Bits are appended
// most-significant first, matching the QR bit stream convention.
type Bitset struct {
	bits []byte
	n    int
}

// New returns an empty Bitset.
func New() *Bitset {
	return &Bitset{}
}

// Len returns the number of bits stored.
func (b *Bitset) Len() int {
	return b.n
}

// AppendUint appends the low length bits of v, most significant first.
func (b *Bitset) AppendUint(v uint32, length int) {
	if length < 0 || length > 32 {
		panic(fmt.Sprintf("qrforge: bit length %d out of range", length))
	}
	for i := length - 1; i >= 0; i-- {
		b.AppendBit(v>>uint(i)&1 == 1)
	}
}

// AppendBit appends a single bit.
func (b *Bitset) AppendBit(v bool) {
	if b.n%8 == 0 {
		b.bits = append(b.bits, 0)
	}
	if v {
		b.bits[b.n/8] |= 0x80 >> uint(b.n%8)
	}
	b.n++
}

// AppendByte appends all 8 bits of v.
func (b *Bitset) AppendByte(v byte) {
	b.AppendUint(uint32(v), 8)
}

// AppendBits appends the contents of other.
func (b *Bitset) AppendBits(other *Bitset) {
	for i := 0; i < other.n; i++ {
		b.AppendBit(other.At(i))
	}
}

// At returns the i'th bit.
func (b *Bitset) At(i int) bool {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("qrforge: bit index %d out of range [0,%d)", i, b.n))
	}
	return b.bits[i/8]&(0x80>>uint(i%8)) != 0
}

// Bytes returns the bit stream as bytes. The length must be a whole
// number of codewords; segment assembly guarantees this after padding.
func (b *Bitset) Bytes() []byte {
	if b.n%8 != 0 {
		panic(fmt.Sprintf("qrforge: fractional codeword (%d bits)", b.n))
	}
	out := make([]byte, b.n/8)
	copy(out, b.bits)
	return out
}

// String renders the bits for debugging, grouped by byte.
func (b *Bitset) String() string {
	s := make([]byte, 0, b.n+b.n/8)
	for i := 0; i < b.n; i++ {
		if i > 0 && i%8 == 0 {
			s = append(s, ' ')
		}
		if b.At(i) {
			s = append(s, '1')
		} else {
			s = append(s, '0')
		}
	}
	return string(s)
}
