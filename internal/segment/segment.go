// Package segment converts input text into QR bit segments, choosing
// the most compact legal mix of numeric, alphanumeric, byte and kanji
// modes.
package segment

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"

	"github.com/wispkit/qrforge/internal/bitset"
)

// Mode is a QR segment encoding mode.
type Mode int

const (
	Numeric Mode = iota
	Alphanumeric
	Byte
	Kanji
)

func (m Mode) String() string {
	switch m {
	case Numeric:
		return "numeric"
	case Alphanumeric:
		return "alphanumeric"
	case Byte:
		return "byte"
	case Kanji:
		return "kanji"
	}
	return fmt.Sprintf("mode(%d)", int(m))
}

// indicator holds the 4-bit mode indicators.
var indicator = [4]uint32{Numeric: 1, Alphanumeric: 2, Byte: 4, Kanji: 8}

// countLength holds the character count field width per mode and
// version size class (1-9, 10-26, 27-40).
var countLength = [4][3]int{
	Numeric:      {10, 12, 14},
	Alphanumeric: {9, 11, 13},
	Byte:         {8, 16, 16},
	Kanji:        {8, 10, 12},
}

// NumClasses is the number of version size classes.
const NumClasses = 3

// ClassOf returns the size class of a version (0: 1-9, 1: 10-26, 2: 27-40).
func ClassOf(version int) int {
	switch {
	case version <= 9:
		return 0
	case version <= 26:
		return 1
	default:
		return 2
	}
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// alphaValue maps a byte to its alphanumeric code, or -1.
var alphaValue = func() [256]int8 {
	var t [256]int8
	for i := range t {
		t[i] = -1
	}
	for i, c := range []byte(alphanumericCharset) {
		t[c] = int8(i)
	}
	return t
}()

func isNumeric(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlphanumeric(r rune) bool {
	return r < 256 && alphaValue[byte(r)] >= 0
}

// isKanji reports whether r encodes to a two-byte Shift JIS sequence in
// the QR kanji subset (0x8140-0x9FFC, 0xE040-0xEBBF).
func isKanji(r rune) bool {
	if r < 0x80 {
		return false
	}
	enc, err := japanese.ShiftJIS.NewEncoder().String(string(r))
	if err != nil || len(enc) != 2 {
		return false
	}
	hi, lo := enc[0], enc[1]
	if (hi < 0x81 || hi > 0x9f) && (hi < 0xe0 || hi > 0xeb) {
		return false
	}
	if hi == 0xeb && lo > 0xbf {
		return false
	}
	return lo >= 0x40 && lo != 0x7f && lo <= 0xfc
}

// modeOf returns the narrowest mode accepting r.
func modeOf(r rune) Mode {
	switch {
	case isNumeric(r):
		return Numeric
	case isAlphanumeric(r):
		return Alphanumeric
	case isKanji(r):
		return Kanji
	default:
		return Byte
	}
}

// A Segment is an immutable run of text tagged with its encoding mode.
type Segment struct {
	Mode Mode
	Text string
}

// payloadBits returns the encoded payload length in bits, excluding the
// mode indicator and count field.
func (s Segment) payloadBits() int {
	switch s.Mode {
	case Numeric:
		n := len(s.Text)
		return 10*(n/3) + [3]int{0, 4, 7}[n%3]
	case Alphanumeric:
		n := len(s.Text)
		return 11*(n/2) + 6*(n%2)
	case Kanji:
		return 13 * utf8.RuneCountInString(s.Text)
	default:
		return 8 * len(s.Text)
	}
}

// headerBits returns the mode indicator plus count field width for the
// given size class.
func headerBits(m Mode, class int) int {
	return 4 + countLength[m][class]
}

// Bits returns the full encoded length of the segment in bits at the
// given size class.
func (s Segment) Bits(class int) int {
	return headerBits(s.Mode, class) + s.payloadBits()
}

// TotalBits sums the encoded lengths of segs at the given size class.
func TotalBits(segs []Segment, class int) int {
	total := 0
	for _, s := range segs {
		total += s.Bits(class)
	}
	return total
}

// widen returns the more general of two modes when their runs are
// joined. Kanji text folded into another mode is carried as its UTF-8
// bytes, so any mix involving kanji widens to byte.
func widen(a, b Mode) Mode {
	if a == b {
		return a
	}
	if a == Kanji || b == Kanji {
		return Byte
	}
	if a > b {
		return a
	}
	return b
}

// Split partitions value into segments whose total encoded length is
// minimal for the given size class: maximal same-mode runs first, then
// adjacent runs are merged whenever the wider shared mode costs less
// than paying a second segment header.
func Split(value string, class int) []Segment {
	if value == "" {
		return nil
	}
	var segs []Segment
	start := 0
	first, _ := utf8.DecodeRuneInString(value)
	cur := modeOf(first)
	for i, r := range value {
		if m := modeOf(r); m != cur {
			segs = append(segs, Segment{Mode: cur, Text: value[start:i]})
			cur, start = m, i
		}
	}
	segs = append(segs, Segment{Mode: cur, Text: value[start:]})

	// Merge passes: join neighbours while it shrinks the stream.
	for {
		improved := false
		for i := 0; i+1 < len(segs); i++ {
			a, b := segs[i], segs[i+1]
			merged := Segment{Mode: widen(a.Mode, b.Mode), Text: a.Text + b.Text}
			if merged.Bits(class) <= a.Bits(class)+b.Bits(class) {
				segs[i] = merged
				segs = append(segs[:i+1], segs[i+2:]...)
				improved = true
				break
			}
		}
		if !improved {
			return segs
		}
	}
}

// Encode appends the segments' headers and payloads to b at the given
// size class.
func Encode(segs []Segment, class int, b *bitset.Bitset) error {
	for _, s := range segs {
		if err := s.encode(class, b); err != nil {
			return err
		}
	}
	return nil
}

func (s Segment) encode(class int, b *bitset.Bitset) error {
	count := len(s.Text)
	if s.Mode == Kanji {
		count = utf8.RuneCountInString(s.Text)
	}
	if limit := 1<<uint(countLength[s.Mode][class]) - 1; count > limit {
		return fmt.Errorf("segment of %d characters overflows %s count field (max %d)",
			count, s.Mode, limit)
	}
	b.AppendUint(indicator[s.Mode], 4)
	b.AppendUint(uint32(count), countLength[s.Mode][class])
	switch s.Mode {
	case Numeric:
		return s.encodeNumeric(b)
	case Alphanumeric:
		return s.encodeAlphanumeric(b)
	case Kanji:
		return s.encodeKanji(b)
	default:
		for i := 0; i < len(s.Text); i++ {
			b.AppendByte(s.Text[i])
		}
		return nil
	}
}

func (s Segment) encodeNumeric(b *bitset.Bitset) error {
	t := s.Text
	for i := 0; i < len(t); i++ {
		if t[i] < '0' || t[i] > '9' {
			return fmt.Errorf("non-digit byte %q in numeric segment", t[i])
		}
	}
	for len(t) >= 3 {
		v := uint32(t[0]-'0')*100 + uint32(t[1]-'0')*10 + uint32(t[2]-'0')
		b.AppendUint(v, 10)
		t = t[3:]
	}
	switch len(t) {
	case 2:
		b.AppendUint(uint32(t[0]-'0')*10+uint32(t[1]-'0'), 7)
	case 1:
		b.AppendUint(uint32(t[0]-'0'), 4)
	}
	return nil
}

func (s Segment) encodeAlphanumeric(b *bitset.Bitset) error {
	t := s.Text
	for i := 0; i < len(t); i++ {
		if alphaValue[t[i]] < 0 {
			return fmt.Errorf("non-alphanumeric byte %q in alphanumeric segment", t[i])
		}
	}
	for len(t) >= 2 {
		v := uint32(alphaValue[t[0]])*45 + uint32(alphaValue[t[1]])
		b.AppendUint(v, 11)
		t = t[2:]
	}
	if len(t) == 1 {
		b.AppendUint(uint32(alphaValue[t[0]]), 6)
	}
	return nil
}

func (s Segment) encodeKanji(b *bitset.Bitset) error {
	enc, err := japanese.ShiftJIS.NewEncoder().String(s.Text)
	if err != nil {
		return fmt.Errorf("kanji segment not Shift JIS encodable: %w", err)
	}
	if len(enc)%2 != 0 {
		return fmt.Errorf("kanji segment has odd Shift JIS length %d", len(enc))
	}
	for i := 0; i < len(enc); i += 2 {
		hi, lo := uint32(enc[i]), uint32(enc[i+1])
		var base uint32
		switch {
		case hi >= 0x81 && hi <= 0x9f:
			base = 0x8140
		case hi >= 0xe0 && hi <= 0xeb:
			base = 0xc140
		default:
			return fmt.Errorf("byte pair %#04x outside QR kanji range", hi<<8|lo)
		}
		v := (hi<<8 | lo) - base
		b.AppendUint((v>>8)*0xc0+(v&0xff), 13)
	}
	return nil
}

// DescribeModes returns a compact human readable mode summary, e.g.
// "byte(16)" or "alphanumeric(5)+numeric(12)". Used by CLI verbose output.
func DescribeModes(segs []Segment) string {
	parts := make([]string, len(segs))
	for i, s := range segs {
		n := len(s.Text)
		if s.Mode == Kanji {
			n = utf8.RuneCountInString(s.Text)
		}
		parts[i] = fmt.Sprintf("%s(%d)", s.Mode, n)
	}
	return strings.Join(parts, "+")
}
