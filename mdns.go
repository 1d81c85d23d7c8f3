package ask433

import (
	"context"
	"fmt"

	"github.com/brutella/dnssd"
)

// AdvertiseService is the mDNS/DNS-SD service type used to advertise an
// ask433 station's metrics/control HTTP endpoint.
const AdvertiseService = "_ask433._tcp"

// AdvertiseMDNS announces name on port over mDNS until ctx is canceled. It
// runs the dnssd responder loop on the calling goroutine, so callers
// typically invoke it via `go AdvertiseMDNS(...)`.
func AdvertiseMDNS(ctx context.Context, name string, port int) error {
	cfg := dnssd.Config{
		Name: name,
		Type: AdvertiseService,
		Port: port,
	}
	sv, err := dnssd.NewService(cfg)
	if err != nil {
		return fmt.Errorf("ask433: mdns service: %w", err)
	}
	rp, err := dnssd.NewResponder()
	if err != nil {
		return fmt.Errorf("ask433: mdns responder: %w", err)
	}
	if _, err := rp.Add(sv); err != nil {
		return fmt.Errorf("ask433: mdns add: %w", err)
	}
	return rp.Respond(ctx)
}
