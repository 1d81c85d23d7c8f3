package ask433

import (
	"fmt"

	"github.com/xylo04/goHamlib"
)

// HamlibPTT keys a transmitter through a hamlib-controlled radio's CAT PTT
// command instead of a raw GPIO line, for stations where PTT is wired
// through the radio's computer interface rather than a bare transistor. It
// satisfies OutputPin so a Driver can use it as its ptt argument without
// knowing which backend is in use.
type HamlibPTT struct {
	rig *goHamlib.Rig
}

// OpenHamlibPTT opens a hamlib rig by model number and port (e.g.
// "/dev/ttyUSB0") and returns a PTT backend keying it.
func OpenHamlibPTT(model int, port string) (*HamlibPTT, error) {
	rig := &goHamlib.Rig{}
	if err := rig.Init(model); err != nil {
		return nil, fmt.Errorf("ask433: hamlib init model %d: %w", model, err)
	}
	rig.SetConf("rig_pathname", port)
	if err := rig.Open(); err != nil {
		return nil, fmt.Errorf("ask433: hamlib open %s: %w", port, err)
	}
	return &HamlibPTT{rig: rig}, nil
}

// Set asserts or deasserts PTT on the rig's current VFO.
func (h *HamlibPTT) Set(high bool) error {
	state := goHamlib.RIG_PTT_OFF
	if high {
		state = goHamlib.RIG_PTT_ON
	}
	return h.rig.SetPTT(goHamlib.RIG_VFO_CURR, state)
}

// Close releases the underlying rig handle.
func (h *HamlibPTT) Close() error {
	return h.rig.Close()
}
