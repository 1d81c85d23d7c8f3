package ask433

import (
	"bufio"
	"fmt"
	"io"

	"github.com/creack/pty"
	"github.com/pkg/term"
)

// SerialBridge exposes a Guarded driver's Send/Receive over a byte stream
// using a small length-prefixed framing: a one-byte length followed by
// that many payload bytes, in each direction. It lets an external process
// (or a real serial cable) drive the modem without linking against this
// module.
type SerialBridge struct {
	g    *Guarded
	r    *bufio.Reader
	w    io.Writer
	done chan struct{}
}

// NewSerialBridge wraps an already-open stream (a pty, a term.Term, or any
// io.ReadWriter) around g.
func NewSerialBridge(g *Guarded, rw io.ReadWriter) *SerialBridge {
	return &SerialBridge{g: g, r: bufio.NewReader(rw), w: rw, done: make(chan struct{})}
}

// OpenPTYBridge allocates a pseudo-terminal pair and returns a bridge over
// the master side plus the slave's device path, so a separate process can
// open the slave and exchange framed packets.
func OpenPTYBridge(g *Guarded) (*SerialBridge, string, error) {
	master, slave, err := pty.Open()
	if err != nil {
		return nil, "", fmt.Errorf("ask433: open pty: %w", err)
	}
	name := slave.Name()
	_ = slave.Close()
	return NewSerialBridge(g, master), name, nil
}

// OpenSerialBridge opens a real serial device in raw mode at baud and
// returns a bridge over it.
func OpenSerialBridge(g *Guarded, device string, baud int) (*SerialBridge, error) {
	t, err := term.Open(device, term.RawMode)
	if err != nil {
		return nil, fmt.Errorf("ask433: open serial %s: %w", device, err)
	}
	if baud != 0 {
		if err := t.SetSpeed(baud); err != nil {
			return nil, fmt.Errorf("ask433: set speed %d on %s: %w", baud, device, err)
		}
	}
	return NewSerialBridge(g, t), nil
}

// RunOutbound reads length-prefixed frames from the stream and Sends each
// as a packet, until the stream errors or Stop is called.
func (b *SerialBridge) RunOutbound() error {
	for {
		select {
		case <-b.done:
			return nil
		default:
		}
		n, err := b.r.ReadByte()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}
		buf := make([]byte, n)
		if _, err := io.ReadFull(b.r, buf); err != nil {
			return err
		}
		b.g.Send(buf)
	}
}

// RunInbound polls Receive and writes each accepted payload as a
// length-prefixed frame to the stream, until Stop is called.
func (b *SerialBridge) RunInbound(poll func() ([]byte, bool)) error {
	for {
		select {
		case <-b.done:
			return nil
		default:
		}
		payload, ok := poll()
		if !ok {
			continue
		}
		if len(payload) > 0xFF {
			continue
		}
		frame := make([]byte, 1+len(payload))
		frame[0] = byte(len(payload))
		copy(frame[1:], payload)
		if _, err := b.w.Write(frame); err != nil {
			return err
		}
	}
}

// Stop halts RunOutbound/RunInbound.
func (b *SerialBridge) Stop() { close(b.done) }
