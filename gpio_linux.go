//go:build linux

package ask433

import (
	"fmt"

	"github.com/jochenvg/go-udev"
	"github.com/warthog618/go-gpiocdev"
)

// gpiocdevPin implements OutputPin, InputPin, and DisableablePin against a
// single line of a Linux GPIO character device. The same type serves all
// three roles; which interfaces a caller uses is determined by how the
// line was requested (AsOutput vs AsInput).
type gpiocdevPin struct {
	line   *gpiocdev.Line
	chip   string
	isTX   bool
	offset int
}

// OpenOutputLine requests offset on chip as an output, driven low
// initially.
func OpenOutputLine(chip string, offset int) (*gpiocdevPin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("ask433"))
	if err != nil {
		return nil, fmt.Errorf("ask433: request output line %s:%d: %w", chip, offset, err)
	}
	return &gpiocdevPin{line: line, chip: chip, isTX: true, offset: offset}, nil
}

// OpenInputLine requests offset on chip as an input.
func OpenInputLine(chip string, offset int) (*gpiocdevPin, error) {
	line, err := gpiocdev.RequestLine(chip, offset, gpiocdev.AsInput, gpiocdev.WithConsumer("ask433"))
	if err != nil {
		return nil, fmt.Errorf("ask433: request input line %s:%d: %w", chip, offset, err)
	}
	return &gpiocdevPin{line: line, chip: chip, offset: offset}, nil
}

func (p *gpiocdevPin) Set(high bool) error {
	v := 0
	if high {
		v = 1
	}
	return p.line.SetValue(v)
}

func (p *gpiocdevPin) Get() (bool, error) {
	v, err := p.line.Value()
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// Disable releases the underlying line request, putting it back into a
// high-impedance/kernel-default state.
func (p *gpiocdevPin) Disable() error {
	return p.line.Close()
}

// Enable re-requests the line with its original direction after Disable.
func (p *gpiocdevPin) Enable() error {
	var (
		line *gpiocdev.Line
		err  error
	)
	if p.isTX {
		line, err = gpiocdev.RequestLine(p.chip, p.offset, gpiocdev.AsOutput(0), gpiocdev.WithConsumer("ask433"))
	} else {
		line, err = gpiocdev.RequestLine(p.chip, p.offset, gpiocdev.AsInput, gpiocdev.WithConsumer("ask433"))
	}
	if err != nil {
		return err
	}
	p.line = line
	return nil
}

// FindGPIOChip enumerates gpiochip devices via udev and returns the device
// node of the first one whose named property matches value, so a config
// file can say "the RF hat's chip" by udev property instead of a
// hardcoded /dev/gpiochipN path that can shift across reboots.
func FindGPIOChip(property, value string) (string, error) {
	u := udev.Udev{}
	enum := u.NewEnumerate()
	if err := enum.AddMatchSubsystem("gpio"); err != nil {
		return "", fmt.Errorf("ask433: udev match gpio subsystem: %w", err)
	}
	devices, err := enum.Devices()
	if err != nil {
		return "", fmt.Errorf("ask433: udev enumerate: %w", err)
	}
	for _, d := range devices {
		if d.PropertyValue(property) == value {
			if node := d.Devnode(); node != "" {
				return node, nil
			}
		}
	}
	return "", fmt.Errorf("ask433: no gpiochip with %s=%s", property, value)
}
