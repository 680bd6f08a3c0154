// Package codeword turns a terminated segment bit stream into the final
// interleaved data + error correction codeword sequence for a symbol.
package codeword

import (
	"fmt"

	"github.com/wispkit/qrforge/internal/bitset"
	"github.com/wispkit/qrforge/internal/gf256"
	"github.com/wispkit/qrforge/internal/symbol"
)

// Pad bytes alternate to avoid long constant runs in sparse symbols.
const (
	padEven = 0xec
	padOdd  = 0x11
)

// Block pairs a run of data codewords with its correction codewords.
type Block struct {
	Data []byte
	EC   []byte
}

// Terminate appends the terminator (up to 4 zero bits, truncated at
// capacity), pads to a codeword boundary, and fills the remaining data
// capacity with alternating pad bytes.
func Terminate(b *bitset.Bitset, version int, level symbol.Level) error {
	capacity := symbol.DataCodewords(version, level) * 8
	if b.Len() > capacity {
		return fmt.Errorf("bit stream of %d bits exceeds %d-bit capacity of version %d-%s",
			b.Len(), capacity, version, level)
	}
	for n := 0; n < 4 && b.Len() < capacity; n++ {
		b.AppendBit(false)
	}
	for b.Len()%8 != 0 {
		b.AppendBit(false)
	}
	for pad := byte(padEven); b.Len() < capacity; {
		b.AppendByte(pad)
		if pad == padEven {
			pad = padOdd
		} else {
			pad = padEven
		}
	}
	return nil
}

// SplitBlocks divides the padded data codewords into the version's
// error correction blocks and computes the correction codewords for
// each with a Reed-Solomon encoder over GF(256).
func SplitBlocks(data []byte, version int, level symbol.Level) []Block {
	groups := symbol.Blocks(version, level)
	var blocks []Block
	off := 0
	for _, g := range groups {
		rs := gf256.NewRSEncoder(g.ECWords)
		for i := 0; i < g.Blocks; i++ {
			d := data[off : off+g.DataWords]
			blocks = append(blocks, Block{Data: d, EC: rs.Encode(d)})
			off += g.DataWords
		}
	}
	if off != len(data) {
		panic(fmt.Sprintf("qrforge: block split consumed %d of %d data codewords (version %d-%s)",
			off, len(data), version, level))
	}
	return blocks
}

// Interleave produces the final codeword stream: data codewords taken
// round-robin across blocks, then correction codewords the same way.
func Interleave(blocks []Block) []byte {
	total := 0
	maxData, maxEC := 0, 0
	for _, bl := range blocks {
		total += len(bl.Data) + len(bl.EC)
		if len(bl.Data) > maxData {
			maxData = len(bl.Data)
		}
		if len(bl.EC) > maxEC {
			maxEC = len(bl.EC)
		}
	}
	out := make([]byte, 0, total)
	for i := 0; i < maxData; i++ {
		for _, bl := range blocks {
			if i < len(bl.Data) {
				out = append(out, bl.Data[i])
			}
		}
	}
	for i := 0; i < maxEC; i++ {
		for _, bl := range blocks {
			if i < len(bl.EC) {
				out = append(out, bl.EC[i])
			}
		}
	}
	return out
}

// Build runs the full codeword stage: terminate and pad the bit stream,
// split into blocks, attach correction codewords, and interleave.
func Build(b *bitset.Bitset, version int, level symbol.Level) ([]byte, error) {
	if err := Terminate(b, version, level); err != nil {
		return nil, err
	}
	stream := Interleave(SplitBlocks(b.Bytes(), version, level))
	if len(stream) != symbol.TotalCodewords(version) {
		panic(fmt.Sprintf("qrforge: codeword stream is %d words, version %d holds %d",
			len(stream), version, symbol.TotalCodewords(version)))
	}
	return stream, nil
}
