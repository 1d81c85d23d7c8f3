package ask433

import (
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Driver is a single ASK/OOK modem instance. It owns its TX/RX/PTT pins for
// its entire lifetime and is not safe for concurrent use: if Tick is driven
// from an interrupt while Send/Available/Receive are called from another
// context, the caller must serialize access (see WithDriver in
// ticksource.go).
type Driver struct {
	mode Mode

	tx  OutputPin
	rx  InputPin
	ptt OutputPin // may be nil

	pttInverted bool

	pll   *softwarePLL
	txEng txEngine // embedded by value; built fresh per Send

	ticksPerBit byte

	thisAddress byte
	promiscuous bool

	TxHeaderTo    byte
	TxHeaderFrom  byte
	TxHeaderID    byte
	TxHeaderFlags byte

	RxHeaderTo    byte
	RxHeaderFrom  byte
	RxHeaderID    byte
	RxHeaderFlags byte

	rxGood     uint16
	rxBufValid bool

	log       *charmlog.Logger
	packetLog *PacketLog
	clock     func() time.Time
}

// New builds a Driver. ptt may be nil if the hardware has no PTT line.
// ticksPerBit is typically 8 (giving 2 kbit/s at a 16 kHz tick rate).
func New(tx OutputPin, rx InputPin, ptt OutputPin, ticksPerBit byte, pttInverted, rxInverted bool) *Driver {
	_ = tx.Set(false)
	d := &Driver{
		mode:         Idle,
		tx:           tx,
		rx:           rx,
		ptt:          ptt,
		pttInverted:  pttInverted,
		pll:          newSoftwarePLL(ticksPerBit, rxInverted),
		txEng:        *newTxEngine(ticksPerBit),
		ticksPerBit:  ticksPerBit,
		thisAddress:  BroadcastAddr,
		TxHeaderTo:   BroadcastAddr,
		TxHeaderFrom: BroadcastAddr,
		log:          charmlog.New(nil),
		clock:        time.Now,
	}
	d.log.SetLevel(charmlog.FatalLevel + 1) // discard by default; SetLogger to enable
	return d
}

// SetPacketLog attaches a packet log; Record calls happen from Send/
// startTx and from validateRxBuf, never from Tick itself.
func (d *Driver) SetPacketLog(l *PacketLog) { d.packetLog = l }

// SetLogger replaces the driver's logger. Logging only happens at mode
// transitions and packet completion/rejection, never per sample. The one
// place Tick itself logs is when a transmission completes (the Tx to Idle
// change and a "tx done" line, both at debug level).
func (d *Driver) SetLogger(l *charmlog.Logger) {
	if l == nil {
		return
	}
	d.log = l
}

// SetAddress sets this device's address, used by Available/Receive to
// decide whether an incoming packet is addressed to us.
func (d *Driver) SetAddress(addr byte) { d.thisAddress = addr }

// SetPromiscuous enables or disables delivery of packets not addressed to
// this device or the broadcast address.
func (d *Driver) SetPromiscuous(p bool) { d.promiscuous = p }

// Mode returns the driver's current top-level state.
func (d *Driver) Mode() Mode { return d.mode }

// TxGood returns the number of packets fully transmitted.
func (d *Driver) TxGood() uint16 { return d.txEng.good }

// RxGood returns the number of packets accepted (valid CRC and address).
func (d *Driver) RxGood() uint16 { return d.rxGood }

// RxBad returns the number of packets discarded for a bad length field,
// invalid symbol, or failed CRC.
func (d *Driver) RxBad() uint16 { return d.pll.rxBad }

func (d *Driver) writePTT(on bool) {
	if d.ptt == nil {
		return
	}
	state := on
	if d.pttInverted {
		state = !state
	}
	_ = d.ptt.Set(state)
}

// SetModeIdle deasserts PTT and drives TX low.
func (d *Driver) SetModeIdle() {
	if d.mode == Idle {
		return
	}
	d.writePTT(false)
	_ = d.tx.Set(false)
	d.mode = Idle
	d.log.Debug("mode change", "mode", d.mode)
}

// SetModeRx deasserts PTT, drives TX low, and resets the PLL so a fresh
// hunt for the start symbol begins from a known state.
func (d *Driver) SetModeRx() {
	if d.mode == Rx {
		return
	}
	d.writePTT(false)
	_ = d.tx.Set(false)
	if dis, ok := d.rx.(DisableablePin); ok {
		_ = dis.Enable()
	}
	d.pll.reset()
	d.mode = Rx
	d.log.Debug("mode change", "mode", d.mode)
}

// SetModeSleep deasserts PTT, drives TX low, and — if the RX pin supports
// it — disables it. Sleep is a real power-down, not just an idle enum
// value: a receiver wired through a DisableablePin stops drawing receive
// current while asleep.
func (d *Driver) SetModeSleep() {
	if d.mode == Sleep {
		return
	}
	d.writePTT(false)
	_ = d.tx.Set(false)
	if dis, ok := d.rx.(DisableablePin); ok {
		_ = dis.Disable()
	}
	d.pll.reset()
	d.mode = Sleep
	d.log.Debug("mode change", "mode", d.mode)
}

func (d *Driver) setModeTx() {
	if d.mode == Tx {
		return
	}
	d.writePTT(true)
	d.mode = Tx
	d.log.Debug("mode change", "mode", d.mode)
}

// Send encodes payload into a packet addressed with the driver's current
// TxHeader* fields, waits (busy-waiting if necessary) for any in-flight
// transmission to finish, then starts transmitting. It returns false only
// if payload is too long; no state changes in that case.
//
// Send busy-waits on the caller's goroutine; it never calls Tick itself.
// This is the one caller-visible blocking point in this API — a caller
// that wants non-blocking semantics should use SendNonBlocking instead.
func (d *Driver) Send(payload []byte) bool {
	if len(payload) > MaxMessage {
		return false
	}
	for d.mode == Tx {
		// Busy-wait for the previous transmission to drain. The core
		// takes no locks of its own — if Tick is driven from an
		// interrupt concurrently with this call, the caller must be
		// the one serializing access, e.g. via Guarded in
		// ticksource.go. Guarded.Send does this waiting itself between
		// short critical sections and calls Send only once the driver
		// has left Tx, so under Guarded this loop does not spin.
	}
	d.startTx(payload)
	return true
}

// SendNonBlocking is the non-blocking form of Send: it returns
// ErrBusyTransmitting instead of waiting when a transmission is already in
// flight, and ErrPayloadTooLong if payload exceeds MaxMessage.
func (d *Driver) SendNonBlocking(payload []byte) error {
	if len(payload) > MaxMessage {
		return ErrPayloadTooLong
	}
	if d.mode == Tx {
		return ErrBusyTransmitting
	}
	d.startTx(payload)
	return nil
}

func (d *Driver) startTx(payload []byte) {
	d.txEng.build(d.TxHeaderTo, d.TxHeaderFrom, d.TxHeaderID, d.TxHeaderFlags, payload)
	d.setModeTx()
	d.log.Debug("tx start", "len", len(payload), "to", d.TxHeaderTo)
	if d.packetLog != nil {
		_ = d.packetLog.Record(d.clock(), "tx", d.TxHeaderTo, d.TxHeaderFrom, len(payload))
	}
}

// Available forces Rx mode (unless currently transmitting), validates any
// newly completed PLL buffer, and reports whether a valid packet is
// waiting to be consumed by Receive.
func (d *Driver) Available() bool {
	if d.mode == Tx {
		return false
	}
	d.SetModeRx()
	if d.pll.full {
		d.validateRxBuf()
		d.pll.full = false
	}
	return d.rxBufValid
}

func (d *Driver) validateRxBuf() {
	crc := crcBuffer(crcInit, d.pll.buf)
	if crc != crcGood {
		d.pll.rxBad++
		d.rxBufValid = false
		d.log.Debug("rx bad crc")
		if d.packetLog != nil {
			_ = d.packetLog.Record(d.clock(), "rx-bad-crc", 0, 0, len(d.pll.buf))
		}
		return
	}

	d.RxHeaderTo = d.pll.buf[1]
	d.RxHeaderFrom = d.pll.buf[2]
	d.RxHeaderID = d.pll.buf[3]
	d.RxHeaderFlags = d.pll.buf[4]

	accept := d.promiscuous || d.RxHeaderTo == d.thisAddress || d.RxHeaderTo == BroadcastAddr
	if !accept {
		d.rxBufValid = false
		d.log.Debug("rx address mismatch", "to", d.RxHeaderTo)
		if d.packetLog != nil {
			_ = d.packetLog.Record(d.clock(), "rx-addr-mismatch", d.RxHeaderTo, d.RxHeaderFrom, len(d.pll.buf))
		}
		return
	}
	d.rxGood++
	d.rxBufValid = true
	d.log.Debug("rx good", "from", d.RxHeaderFrom, "len", len(d.pll.buf))
	if d.packetLog != nil {
		_ = d.packetLog.Record(d.clock(), "rx-good", d.RxHeaderTo, d.RxHeaderFrom, len(d.pll.buf))
	}
}

// Receive returns the payload of the currently available packet, clearing
// rxBufValid so the same packet is not returned twice. It returns
// (nil, false) if Available() is false.
func (d *Driver) Receive() ([]byte, bool) {
	if !d.Available() {
		return nil, false
	}
	d.rxBufValid = false
	msgLen := len(d.pll.buf) - 2
	payload := make([]byte, msgLen-(HeaderLen+1))
	copy(payload, d.pll.buf[HeaderLen+1:msgLen])
	return payload, true
}

// Tick advances the driver's state machine by one timing tick. It must be
// called at exactly 2000*ticksPerBit Hz. Apart from the debug log lines
// written when a transmission completes (see SetLogger), Tick performs no
// I/O and no allocation, and completes in bounded time.
func (d *Driver) Tick() {
	switch d.mode {
	case Rx:
		rx, _ := d.rx.Get()
		d.pll.update(rx)
		// Validation (CRC check, address filtering, logging) happens
		// lazily from Available/Receive, not here: it can log and
		// touch the packet log's file, neither of which belongs in a
		// per-sample hot path.
	case Tx:
		bit, emitted, finished := d.txEng.tick()
		if finished {
			d.SetModeIdle()
			d.log.Debug("tx done", "good", d.txEng.good)
			return
		}
		if emitted {
			_ = d.tx.Set(bit)
		}
	default:
		// Idle and Sleep: no per-tick work.
	}
}
