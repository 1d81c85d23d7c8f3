package ask433

import (
	"encoding/csv"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// PacketLog appends one CSV row per transmitted, accepted or rejected
// packet to a
// daily-rotated file. pattern is an strftime format string (e.g.
// "ask433-%Y%m%d.csv") expanded against the current day; a new file is
// opened whenever the expansion changes.
type PacketLog struct {
	mu       sync.Mutex
	pattern  string
	openName string
	file     *os.File
	w        *csv.Writer
}

// NewPacketLog validates pattern (an strftime format string) for later
// use. No file is opened until the first Record call.
func NewPacketLog(pattern string) (*PacketLog, error) {
	if _, err := strftime.Format(pattern, time.Now()); err != nil {
		return nil, fmt.Errorf("ask433: packet log pattern: %w", err)
	}
	return &PacketLog{pattern: pattern}, nil
}

func (l *PacketLog) rollIfNeeded(now time.Time) error {
	name, err := strftime.Format(l.pattern, now)
	if err != nil {
		return fmt.Errorf("ask433: packet log pattern: %w", err)
	}
	if name == l.openName && l.file != nil {
		return nil
	}
	if l.file != nil {
		l.w.Flush()
		_ = l.file.Close()
	}
	f, err := os.OpenFile(name, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	l.file = f
	l.w = csv.NewWriter(f)
	l.openName = name
	return nil
}

// Record appends one row: timestamp, direction (the Driver writes "tx",
// "rx-good", "rx-bad-crc" or "rx-addr-mismatch"), to and from headers, and
// payload length. now is a caller-supplied timestamp
// so the hot Tick path never has to call time.Now() itself.
func (l *PacketLog) Record(now time.Time, direction string, to, from byte, payloadLen int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.rollIfNeeded(now); err != nil {
		return err
	}
	row := []string{
		now.Format(time.RFC3339),
		direction,
		fmt.Sprintf("%02x", to),
		fmt.Sprintf("%02x", from),
		fmt.Sprintf("%d", payloadLen),
	}
	if err := l.w.Write(row); err != nil {
		return err
	}
	l.w.Flush()
	return l.w.Error()
}

// Close flushes and closes the currently open file, if any.
func (l *PacketLog) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.file == nil {
		return nil
	}
	l.w.Flush()
	err := l.file.Close()
	l.file = nil
	return err
}
