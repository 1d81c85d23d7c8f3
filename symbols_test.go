package ask433

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestEncodeNibbleTable(t *testing.T) {
	for n := 0; n < 16; n++ {
		sym := EncodeNibble(byte(n))
		assert.Equal(t, symbols[n], sym)
		assert.NotEqual(t, -1, int(revSymbols[sym]), "symbol %d must reverse-decode", n)
	}
}

func TestDecodePairInvalid(t *testing.T) {
	_, ok := DecodePair(0x00, 0x0D) // 0x00 is not a 4b6b codeword
	assert.False(t, ok)

	_, ok = DecodePair(0x0D, 0x00)
	assert.False(t, ok)

	_, ok = DecodePair(0xFF, 0x0D)
	assert.False(t, ok)
}

func TestEncodeDecodeByteRoundTrip(t *testing.T) {
	for b := 0; b < 256; b++ {
		hi, lo := EncodeByte(byte(b))
		got, ok := DecodePair(hi, lo)
		require.True(t, ok)
		assert.Equal(t, byte(b), got)
	}
}

func TestEncodeDecodeBufferRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := rapid.SliceOfN(rapid.Byte(), 0, 67).Draw(t, "input")
		encoded := EncodeBuffer(input)
		assert.Equal(t, len(input)*2, len(encoded))

		decoded, ok := DecodeBuffer(encoded)
		require.True(t, ok)
		assert.Equal(t, input, decoded)
	})
}

func TestDecodeBufferOddLength(t *testing.T) {
	_, ok := DecodeBuffer([]byte{0x0D})
	assert.False(t, ok)
}
