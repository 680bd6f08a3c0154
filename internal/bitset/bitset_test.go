package bitset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAppendUint(t *testing.T) {
	tests := []struct {
		name   string
		value  uint32
		length int
		want   string
	}{
		{name: "single bit", value: 1, length: 1, want: "1"},
		{name: "mode indicator", value: 4, length: 4, want: "0100"},
		{name: "count field", value: 11, length: 9, want: "000001011"},
		{name: "leading zeros kept", value: 1, length: 8, want: "00000001"},
		{name: "zero length", value: 0, length: 0, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.AppendUint(tt.value, tt.length)
			require.Equal(t, tt.length, b.Len())
			require.Equal(t, tt.want, b.String())
		})
	}
}

func TestAppendAcrossByteBoundary(t *testing.T) {
	b := New()
	b.AppendUint(0b0100, 4)
	b.AppendUint(0b000001011, 9)
	require.Equal(t, 13, b.Len())
	require.Equal(t, "0100000001011", b.String())

	require.True(t, b.At(1))
	require.False(t, b.At(2))
	require.True(t, b.At(11))
}

func TestAppendByteAndBits(t *testing.T) {
	a := New()
	a.AppendByte(0xA5)

	b := New()
	b.AppendByte(0x3C)
	a.AppendBits(b)

	require.Equal(t, 16, a.Len())
	require.Equal(t, []byte{0xA5, 0x3C}, a.Bytes())
}

func TestAppendBit(t *testing.T) {
	b := New()
	for _, v := range []bool{true, false, true, true, false, true, false, true} {
		b.AppendBit(v)
	}
	require.Equal(t, []byte{0xB5}, b.Bytes())
}

func TestBytesPanicsOnPartialCodeword(t *testing.T) {
	b := New()
	b.AppendUint(0b101, 3)
	require.Panics(t, func() { b.Bytes() })
}
