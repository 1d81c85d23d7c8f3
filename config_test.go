package ask433

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.EqualValues(t, 8, cfg.TicksPerBit)
	assert.EqualValues(t, BroadcastAddr, cfg.ThisAddress)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "station.yaml")
	yaml := `
ticks_per_bit: 4
this_address: 66
promiscuous: true
log_level: debug
gpio:
  chip_path: /dev/gpiochip0
  tx_line: 17
  rx_line: 27
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.EqualValues(t, 4, cfg.TicksPerBit)
	assert.EqualValues(t, 66, cfg.ThisAddress)
	assert.True(t, cfg.Promiscuous)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "/dev/gpiochip0", cfg.GPIO.ChipPath)
	assert.Equal(t, 17, cfg.GPIO.TXLine)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
