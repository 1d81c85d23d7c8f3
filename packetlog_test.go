package ask433

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPacketLogRecordsAndRotates(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "ask433-%Y%m%d.csv")

	l, err := NewPacketLog(pattern)
	require.NoError(t, err)
	defer l.Close()

	day1 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, l.Record(day1, "tx", BroadcastAddr, BroadcastAddr, 2))

	day2 := day1.Add(36 * time.Hour)
	require.NoError(t, l.Record(day2, "rx-good", 0x42, 0xFF, 5))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2, "one file per day expanded by the strftime pattern")
}
