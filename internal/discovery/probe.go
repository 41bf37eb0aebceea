// Package discovery implements the best-effort local network probe. Homeys
// answer an identity header on a well-known endpoint of their gateway
// address, which lets the CLI skip the cloud relay for nearby devices.
package discovery

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultPingPath is the well-known identity endpoint on a Homey.
	DefaultPingPath = "/api/manager/webserver/ping"

	// identityHeader carries the Homey ID in a ping response.
	identityHeader = "X-Homey-Id"

	// privateFirstOctet is the subnet convention Homeys hand out addresses
	// in: every adapter address 10.x.y.z implies a candidate gateway 10.x.y.1.
	privateFirstOctet = 10

	DefaultTimeout = time.Second
)

type Prober struct {
	client   *http.Client
	pingPath string

	// addrs enumerates local adapter addresses, injectable for tests.
	addrs func() ([]net.Addr, error)
}

func New(timeout time.Duration, pingPath string) *Prober {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if pingPath == "" {
		pingPath = DefaultPingPath
	}
	return &Prober{
		client:   &http.Client{Timeout: timeout},
		pingPath: pingPath,
		addrs:    net.InterfaceAddrs,
	}
}

// Scan probes every candidate gateway derived from local adapter addresses
// and returns found Homeys as a map of Homey ID to gateway address. Probe
// failures are swallowed per adapter; the result may be empty but Scan
// itself never fails. Duplicate IDs resolve last-write-wins in enumeration
// order.
func (p *Prober) Scan(ctx context.Context) map[string]string {
	addrs, err := p.addrs()
	if err != nil {
		log.Debug().Err(err).Msg("enumerating network adapters failed")
		return nil
	}

	found := make(map[string]string)
	for _, addr := range addrs {
		gateway, ok := candidateGateway(addr)
		if !ok {
			continue
		}
		id, ok := p.ping(ctx, gateway)
		if !ok {
			continue
		}
		log.Debug().Str("homey", id).Str("address", gateway).Msg("found homey on local network")
		found[id] = gateway
	}
	return found
}

// candidateGateway derives the probe target from one adapter address:
// the .1 host on the same /24, only for the 10.0.0.0/8 convention.
func candidateGateway(addr net.Addr) (string, bool) {
	var ip net.IP
	switch v := addr.(type) {
	case *net.IPNet:
		ip = v.IP
	case *net.IPAddr:
		ip = v.IP
	default:
		return "", false
	}

	ip = ip.To4()
	if ip == nil || ip[0] != privateFirstOctet {
		return "", false
	}

	gateway := net.IPv4(ip[0], ip[1], ip[2], 1)
	return gateway.String(), true
}

// ping probes one candidate gateway and returns the Homey ID it identifies
// as, if any.
func (p *Prober) ping(ctx context.Context, gateway string) (string, bool) {
	req, err := http.NewRequestWithContext(ctx, "GET", "http://"+gateway+p.pingPath, nil)
	if err != nil {
		return "", false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", false
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		return "", false
	}
	id := resp.Header.Get(identityHeader)
	if id == "" {
		return "", false
	}
	return id, true
}
