// Command ask433serial bridges a Driver's packets over a pseudo-terminal
// (or a real serial device) using a one-byte length-prefixed framing, so a
// separate process can exchange packets without linking against this
// module.
package main

import (
	"fmt"
	"os"

	"github.com/kb0drn/ask433"
	"github.com/kb0drn/ask433/internal/obs"
	"github.com/spf13/pflag"
)

func main() {
	var (
		device      = pflag.StringP("device", "d", "", "real serial device to bridge (default: allocate a pty)")
		baud        = pflag.IntP("baud", "b", 9600, "baud rate when --device is set")
		ticksPerBit = pflag.Uint8P("ticks-per-bit", "t", 8, "PLL ticks per bit period")
		logLevel    = pflag.StringP("log-level", "l", "info", "debug, info, warn, error")
	)
	pflag.Parse()

	log := obs.New(*logLevel)

	// RF pins are wired up the same way cmd/ask433agent does it (via
	// gpio_linux.go) in a real deployment; this demo uses no-op pins so it
	// can run on any platform to exercise the framing bridge alone.
	drv := ask433.New(ask433.NopOutput{}, ask433.NopInput{}, nil, *ticksPerBit, false, false)
	drv.SetLogger(log)
	guarded := ask433.NewGuarded(drv)
	ticker := ask433.NewBusyLoopTicker(guarded, *ticksPerBit)
	ticker.Start()
	defer ticker.Stop()

	var bridge *ask433.SerialBridge
	if *device == "" {
		b, slaveName, err := ask433.OpenPTYBridge(guarded)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ask433serial: %v\n", err)
			os.Exit(1)
		}
		log.Info("allocated pty", "slave", slaveName)
		bridge = b
	} else {
		b, err := ask433.OpenSerialBridge(guarded, *device, *baud)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ask433serial: %v\n", err)
			os.Exit(1)
		}
		bridge = b
	}
	defer bridge.Stop()

	go func() {
		if err := bridge.RunInbound(guarded.Receive); err != nil {
			log.Error("inbound bridge", "err", err)
		}
	}()
	if err := bridge.RunOutbound(); err != nil {
		log.Error("outbound bridge", "err", err)
	}
}
