package ask433

import "github.com/prometheus/client_golang/prometheus"

// Metrics is a set of Prometheus collectors mirroring a Driver's counters.
// It does not read the driver itself; call Observe after each poll (from
// Available/Receive, never from Tick) to keep per-sample work out of the
// hot path.
type Metrics struct {
	TxGood prometheus.Counter
	RxGood prometheus.Counter
	RxBad  prometheus.Counter
	Mode   prometheus.Gauge

	prevTxGood, prevRxGood, prevRxBad uint16
}

// NewMetrics builds a Metrics set and registers it with reg. Pass
// prometheus.DefaultRegisterer to use the global registry.
func NewMetrics(reg prometheus.Registerer, constLabels prometheus.Labels) *Metrics {
	m := &Metrics{
		TxGood: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ask433_tx_good_total",
			Help:        "Packets fully transmitted.",
			ConstLabels: constLabels,
		}),
		RxGood: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ask433_rx_good_total",
			Help:        "Packets received with a valid CRC and accepted address.",
			ConstLabels: constLabels,
		}),
		RxBad: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "ask433_rx_bad_total",
			Help:        "Packets discarded for a bad length field, invalid symbol, or failed CRC.",
			ConstLabels: constLabels,
		}),
		Mode: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "ask433_mode",
			Help:        "Current driver mode: 0=Idle 1=Tx 2=Rx 3=Sleep.",
			ConstLabels: constLabels,
		}),
	}
	reg.MustRegister(m.TxGood, m.RxGood, m.RxBad, m.Mode)
	return m
}

// Observe snapshots d's counters and mode into m, advancing the running
// totals it keeps internally so repeated calls for the same driver add
// only the delta since the last call.
func (m *Metrics) Observe(d *Driver) {
	addDelta(m.TxGood, &m.prevTxGood, d.TxGood())
	addDelta(m.RxGood, &m.prevRxGood, d.RxGood())
	addDelta(m.RxBad, &m.prevRxBad, d.RxBad())
	m.Mode.Set(float64(d.Mode()))
}

// addDelta adds the increase from *prev to cur to c, or the raw value of
// cur if cur < *prev (the counter wrapped or the driver was replaced).
func addDelta(c prometheus.Counter, prev *uint16, cur uint16) {
	if cur >= *prev {
		c.Add(float64(cur - *prev))
	} else {
		c.Add(float64(cur))
	}
	*prev = cur
}
