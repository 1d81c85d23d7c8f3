// Command ask433agent runs a Driver against real GPIO lines, serves its
// counters as Prometheus metrics, and optionally advertises itself over
// mDNS.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kb0drn/ask433"
	"github.com/kb0drn/ask433/internal/obs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
)

func main() {
	var (
		configPath = pflag.StringP("config", "c", "/etc/ask433/agent.yaml", "path to YAML config")
	)
	pflag.Parse()

	cfg, err := ask433.LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ask433agent: %v\n", err)
		os.Exit(1)
	}

	log := obs.New(cfg.LogLevel)

	chipPath := cfg.GPIO.ChipPath
	if cfg.GPIO.ChipMatch != "" {
		prop, value, _ := strings.Cut(cfg.GPIO.ChipMatch, "=")
		found, err := ask433.FindGPIOChip(prop, value)
		switch {
		case err == nil:
			chipPath = found
		case chipPath == "":
			log.Fatal("find gpio chip", "err", err)
		default:
			log.Warn("find gpio chip, using chip_path", "err", err)
		}
	}

	tx, err := ask433.OpenOutputLine(chipPath, cfg.GPIO.TXLine)
	if err != nil {
		log.Fatal("open tx line", "err", err)
	}
	rx, err := ask433.OpenInputLine(chipPath, cfg.GPIO.RXLine)
	if err != nil {
		log.Fatal("open rx line", "err", err)
	}
	var ptt ask433.OutputPin
	if cfg.GPIO.HasPTT {
		ptt, err = ask433.OpenOutputLine(chipPath, cfg.GPIO.PTTLine)
		if err != nil {
			log.Fatal("open ptt line", "err", err)
		}
	}

	drv := ask433.New(tx, rx, ptt, cfg.TicksPerBit, cfg.PTTInverted, cfg.RXInverted)
	drv.SetLogger(log)
	drv.SetAddress(cfg.ThisAddress)
	drv.SetPromiscuous(cfg.Promiscuous)

	if cfg.PacketLogPattern != "" {
		pl, err := ask433.NewPacketLog(cfg.PacketLogPattern)
		if err != nil {
			log.Fatal("packet log", "err", err)
		}
		drv.SetPacketLog(pl)
		defer pl.Close()
	}

	guarded := ask433.NewGuarded(drv)
	ticker := ask433.NewBusyLoopTicker(guarded, cfg.TicksPerBit)
	ticker.Start()
	defer ticker.Stop()

	reg := prometheus.NewRegistry()
	metrics := ask433.NewMetrics(reg, nil)
	go pollMetrics(guarded, metrics)

	if cfg.MetricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.MetricsAddr, Handler: mux}
		go func() {
			log.Info("serving metrics", "addr", cfg.MetricsAddr)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Error("metrics server", "err", err)
			}
		}()

		if cfg.AdvertiseMDNS {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			go func() {
				if err := ask433.AdvertiseMDNS(ctx, "ask433 station", metricsPort(cfg.MetricsAddr)); err != nil {
					log.Error("mdns advertise", "err", err)
				}
			}()
		}
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh
	log.Info("shutting down")
}

func pollMetrics(g *ask433.Guarded, m *ask433.Metrics) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for range ticker.C {
		g.WithDriver(m.Observe)
	}
}

func metricsPort(addr string) int {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			var port int
			fmt.Sscanf(addr[i+1:], "%d", &port)
			return port
		}
	}
	return 0
}
