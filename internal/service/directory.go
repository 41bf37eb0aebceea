package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/darmiel/homeyctl/internal/core"
)

// HubDirectory caches the list of Homeys belonging to the account and
// enriches records with locally discovered addresses.
type HubDirectory struct {
	sessions *SessionManager
	prober   core.LocalProber

	hubs []*core.Hub
	user core.AuthenticatedUser
}

func NewHubDirectory(sessions *SessionManager, prober core.LocalProber) *HubDirectory {
	return &HubDirectory{
		sessions: sessions,
		prober:   prober,
	}
}

type GetHomeysOptions struct {
	// Cache returns the in-process list unchanged when one exists,
	// skipping both the fetch and the probe.
	Cache bool

	// Local runs the local discovery probe against a freshly fetched list.
	Local bool
}

// GetHomeys returns the account's Homeys. With Cache set and a list already
// fetched, the identical slice is returned without any I/O.
func (d *HubDirectory) GetHomeys(ctx context.Context, opts GetHomeysOptions) ([]*core.Hub, error) {
	if opts.Cache && d.hubs != nil {
		return d.hubs, nil
	}

	if err := d.sessions.EnsureSession(ctx); err != nil {
		return nil, err
	}

	if d.user == nil {
		user, err := d.sessions.Profile(ctx)
		if err != nil {
			return nil, err
		}
		d.user = user
	}

	hubs, err := d.user.GetHomeys(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing homeys: %w", err)
	}
	d.hubs = hubs

	if opts.Local {
		d.enrich(ctx, hubs)
	}
	return hubs, nil
}

// GetHomey resolves one Homey by ID, reusing the cached directory when
// possible. A cold fetch is local-aware so resolution can prefer a direct
// address.
func (d *HubDirectory) GetHomey(ctx context.Context, id string) (*core.Hub, error) {
	hubs, err := d.GetHomeys(ctx, GetHomeysOptions{Cache: true, Local: true})
	if err != nil {
		return nil, err
	}
	for _, hub := range hubs {
		if hub.ID == id {
			return hub, nil
		}
	}
	return nil, fmt.Errorf("homey %q: %w", id, ErrHomeyNotFound)
}

// enrich attaches locally discovered addresses to matching records.
// Discovery is best-effort; an empty scan result leaves the list untouched.
func (d *HubDirectory) enrich(ctx context.Context, hubs []*core.Hub) {
	found := d.prober.Scan(ctx)
	if len(found) == 0 {
		return
	}
	for _, hub := range hubs {
		if address, ok := found[hub.ID]; ok {
			hub.LocalAddress = address
			log.Debug().Str("homey", hub.ID).Str("address", address).Msg("homey reachable locally")
		}
	}
}
