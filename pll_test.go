package ask433

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// feedBuffer drives a PLL with pre-encoded on-air symbol bytes (already
// 6-bit-per-tick expanded, LSB-first) at one tick per bit sample,
// ticksPerBit samples per bit.
func feedBuffer(p *softwarePLL, onAir []byte, ticksPerBit int) {
	for _, b := range onAir {
		for bit := 0; bit < 6; bit++ {
			high := b&(1<<uint(bit)) != 0
			for i := 0; i < ticksPerBit; i++ {
				p.update(high)
			}
		}
	}
}

func TestPLLLocksOnStartSymbol(t *testing.T) {
	p := newSoftwarePLL(2, false)
	feedBuffer(p, preamble[:], 2)
	assert.True(t, p.active, "PLL should be locked after the preamble")
}

func TestPLLRoundTripBuffer(t *testing.T) {
	e := newTxEngine(2)
	e.build(BroadcastAddr, BroadcastAddr, 0, 0, []byte("AB"))

	p := newSoftwarePLL(2, false)
	feedBuffer(p, e.buf, 2)

	require.True(t, p.full)
	crc := crcBuffer(crcInit, p.buf)
	assert.Equal(t, crcGood, crc)
}

func TestPLLAbortsOnBadLength(t *testing.T) {
	p := newSoftwarePLL(2, false)
	// Preamble, then a length byte of 6 (below the minimum of 7).
	onAir := append([]byte{}, preamble[:]...)
	hi, lo := EncodeByte(6)
	onAir = append(onAir, hi, lo)
	feedBuffer(p, onAir, 2)

	assert.False(t, p.active)
	assert.EqualValues(t, 1, p.rxBad)
	assert.False(t, p.full)
}

func TestPLLAbortsOnInvalidSymbol(t *testing.T) {
	p := newSoftwarePLL(2, false)
	onAir := append([]byte{}, preamble[:]...)
	onAir = append(onAir, 0x00, 0x00) // not valid 4b6b symbols
	feedBuffer(p, onAir, 2)

	assert.False(t, p.active)
	assert.EqualValues(t, 1, p.rxBad)
}

func TestPLLResetClearsState(t *testing.T) {
	p := newSoftwarePLL(2, false)
	feedBuffer(p, preamble[:], 2)
	require.True(t, p.active)

	p.reset()
	assert.False(t, p.active)
	assert.False(t, p.full)
	assert.Zero(t, p.bitCount)
	assert.Empty(t, p.buf)
}
