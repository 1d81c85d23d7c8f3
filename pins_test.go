package ask433

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleepDisablesDisableableRxPin(t *testing.T) {
	rx := &memPin{}
	d := New(&memPin{}, rx, nil, 8, false, false)

	d.SetModeRx()
	high, err := rx.Get()
	require.NoError(t, err)
	assert.False(t, high)

	rx.high = true
	d.SetModeSleep()
	assert.True(t, rx.disabled, "Sleep must disable a DisableablePin RX line")

	got, err := rx.Get()
	require.NoError(t, err)
	assert.False(t, got, "a disabled pin reads low regardless of its underlying state")

	d.SetModeRx()
	assert.False(t, rx.disabled, "re-entering Rx must re-enable the pin")
}
