package ask433

// OutputPin is a single digital output line. Implementations are expected
// to treat Set as infallible in practice; the driver discards a returned
// error without retrying, escalating or logging it. GPIO failures are
// ignored by the core and may be handled by the caller's pin
// implementation.
type OutputPin interface {
	Set(high bool) error
}

// InputPin is a single digital input line, sampled once per tick.
type InputPin interface {
	Get() (high bool, err error)
}

// DisableablePin is an OutputPin or InputPin that can additionally be put
// into a high-impedance/disabled state. Sleep mode uses this, when the
// configured RX pin supports it, to actually power the front end down
// rather than merely stop polling it.
type DisableablePin interface {
	Disable() error
	Enable() error
}

// memPin is an in-memory OutputPin/InputPin/DisableablePin used by tests.
// Reading or writing it never fails.
type memPin struct {
	high     bool
	disabled bool
}

func (p *memPin) Set(high bool) error {
	p.high = high
	return nil
}

func (p *memPin) Get() (bool, error) {
	if p.disabled {
		return false, nil
	}
	return p.high, nil
}

func (p *memPin) Disable() error {
	p.disabled = true
	return nil
}

func (p *memPin) Enable() error {
	p.disabled = false
	return nil
}

// SharedWire connects one Driver's TX output to another Driver's RX input
// for in-process loopback testing and demos, with no hardware involved.
type SharedWire struct {
	state bool
}

// Output returns the OutputPin side, to pass as a Driver's tx argument.
func (w *SharedWire) Output() OutputPin { return (*wireOutput)(w) }

// Input returns the InputPin side, to pass as a Driver's rx argument.
func (w *SharedWire) Input() InputPin { return (*wireInput)(w) }

type wireOutput SharedWire

func (w *wireOutput) Set(high bool) error {
	w.state = high
	return nil
}

type wireInput SharedWire

func (w *wireInput) Get() (bool, error) { return w.state, nil }

// NopOutput discards every write; it is used for the unused TX/PTT side of
// a receive-only driver.
type NopOutput struct{}

func (NopOutput) Set(bool) error { return nil }

// NopInput always reads low; it is used for the unused RX side of a
// transmit-only driver.
type NopInput struct{}

func (NopInput) Get() (bool, error) { return false, nil }
