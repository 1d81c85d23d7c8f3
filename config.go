package ask433

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration for an ask433 station, loaded from a
// single YAML file. There is no layering or hot-reload; a station restarts
// to pick up changes.
type Config struct {
	// TicksPerBit is the number of Tick calls per bit period. 8 gives
	// 2 kbit/s at a 16 kHz tick rate.
	TicksPerBit byte `yaml:"ticks_per_bit"`

	// ThisAddress is this station's address; BroadcastAddr (0xFF) by
	// default. Packets to BroadcastAddr are always accepted; packets to
	// any other address only when it equals ThisAddress or Promiscuous is
	// set.
	ThisAddress byte `yaml:"this_address"`

	// Promiscuous delivers every CRC-valid packet regardless of
	// destination address.
	Promiscuous bool `yaml:"promiscuous"`

	// RXInverted and PTTInverted flip the polarity of the RX sample and
	// PTT output respectively, for modules wired active-low.
	RXInverted  bool `yaml:"rx_inverted"`
	PTTInverted bool `yaml:"ptt_inverted"`

	// GPIO names the TX/RX/PTT lines when using the Linux gpiocdev
	// backend (see gpio_linux.go). PTTLine is used only when HasPTT is
	// set; otherwise there is no PTT pin.
	GPIO struct {
		ChipMatch string `yaml:"chip_match"` // udev property to match a gpiochip by, e.g. "ID_MODEL=rf-hat"
		ChipPath  string `yaml:"chip_path"`  // explicit fallback, e.g. "/dev/gpiochip0"
		TXLine    int    `yaml:"tx_line"`
		RXLine    int    `yaml:"rx_line"`
		PTTLine   int    `yaml:"ptt_line"`
		HasPTT    bool   `yaml:"has_ptt"`
	} `yaml:"gpio"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	// PacketLogPattern is an strftime pattern for the daily packet log
	// file (see packetlog.go); empty disables packet logging.
	PacketLogPattern string `yaml:"packet_log_pattern"`

	// MetricsAddr, if non-empty, is the address cmd/ask433agent serves
	// Prometheus metrics on (see metrics.go).
	MetricsAddr string `yaml:"metrics_addr"`

	// AdvertiseMDNS opts into advertising MetricsAddr over mDNS (see
	// mdns.go).
	AdvertiseMDNS bool `yaml:"advertise_mdns"`
}

// DefaultConfig returns ticks_per_bit=8, this_address=BroadcastAddr,
// promiscuous=false, log_level=info.
func DefaultConfig() Config {
	c := Config{
		TicksPerBit: 8,
		ThisAddress: BroadcastAddr,
		LogLevel:    "info",
	}
	return c
}

// LoadConfig reads and parses a YAML config file, filling any field the
// file omits from DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("ask433: open config: %w", err)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("ask433: parse config: %w", err)
	}
	return cfg, nil
}
