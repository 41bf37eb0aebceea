package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/mitchellh/mapstructure"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/homeyctl/internal/core"
)

// ActiveResolver owns the "currently selected Homey" concept: it persists
// the selection, drives interactive (re)selection, and builds the live
// authenticated handle, preferring local reachability over the cloud relay.
type ActiveResolver struct {
	settings  core.SettingsStore
	directory *HubDirectory
	sessions  *SessionManager
	prompt    core.Prompter

	// handle is the process-lifetime cache; repeated resolutions do not
	// re-authenticate.
	handle *core.Handle
}

func NewActiveResolver(settings core.SettingsStore, sessions *SessionManager, directory *HubDirectory, prompt core.Prompter) *ActiveResolver {
	return &ActiveResolver{
		settings:  settings,
		directory: directory,
		sessions:  sessions,
		prompt:    prompt,
	}
}

// Selection returns the persisted active selection, if any.
func (r *ActiveResolver) Selection() (*core.Selection, bool) {
	raw, ok := r.settings.Get(activeSelectionKey)
	if !ok {
		return nil, false
	}
	var selection core.Selection
	if err := mapstructure.Decode(raw, &selection); err != nil || selection.ID == "" {
		return nil, false
	}
	return &selection, true
}

type SelectOptions struct {
	// ID selects by exact identifier, bypassing the prompt.
	ID string

	// Name selects by display name; names are not unique, the first
	// directory match wins.
	Name string

	// Filter is an optional expression narrowing the interactive list,
	// e.g. `State startsWith "online" or Local`. When empty, only online
	// Homeys are offered.
	Filter string
}

// Select picks a Homey (explicitly or interactively) and persists it as the
// active selection.
func (r *ActiveResolver) Select(ctx context.Context, opts SelectOptions) error {
	// always a fresh, local-aware fetch: selecting against stale state
	// would persist hubs that may be gone already
	hubs, err := r.directory.GetHomeys(ctx, GetHomeysOptions{Local: true})
	if err != nil {
		return err
	}

	var chosen *core.Hub
	switch {
	case opts.ID != "":
		for _, hub := range hubs {
			if hub.ID == opts.ID {
				chosen = hub
				break
			}
		}
	case opts.Name != "":
		for _, hub := range hubs {
			if hub.Name == opts.Name {
				chosen = hub
				break
			}
		}
	default:
		chosen, err = r.selectInteractively(hubs, opts.Filter)
		if err != nil {
			return err
		}
	}

	if chosen == nil {
		return fmt.Errorf("%w: nothing matched", ErrInvalidSelection)
	}

	if err := r.settings.Set(activeSelectionKey, core.Selection{ID: chosen.ID, Name: chosen.Name}); err != nil {
		return fmt.Errorf("persisting selection: %w", err)
	}
	// the previous handle (if any) points at the old selection
	r.handle = nil

	log.Info().Msgf("marked %s as your active Homey", color.New(color.Bold).Sprint(chosen.Name))
	return nil
}

func (r *ActiveResolver) selectInteractively(hubs []*core.Hub, filter string) (*core.Hub, error) {
	candidates, err := filterHubs(hubs, filter)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: no homey matches the filter", ErrInvalidSelection)
	}

	options := make([]core.SelectOption, 0, len(candidates))
	for _, hub := range candidates {
		label := fmt.Sprintf("%s (%s)", hub.Name, ColorState(hub.State))
		if hub.LocalAddress != "" {
			label += color.New(color.Faint).Sprintf(" @ %s", hub.LocalAddress)
		}
		options = append(options, core.SelectOption{Value: hub.ID, Label: label})
	}

	value, err := r.prompt.Select("Choose your active Homey:", options)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSelection, err)
	}
	for _, hub := range candidates {
		if hub.ID == value {
			return hub, nil
		}
	}
	return nil, fmt.Errorf("%w: unknown choice %q", ErrInvalidSelection, value)
}

// Unselect clears the persisted active selection.
func (r *ActiveResolver) Unselect() error {
	if err := r.settings.Unset(activeSelectionKey); err != nil {
		return fmt.Errorf("clearing selection: %w", err)
	}
	r.handle = nil
	log.Info().Msg("cleared your active Homey")
	return nil
}

// Reset drops the cached handle. Wired to SessionManager.OnLogout.
func (r *ActiveResolver) Reset() {
	r.handle = nil
}

// GetActiveHomey resolves the active selection to a live authenticated
// handle. Without a selection it first drives interactive selection. The
// handle is cached for the remainder of the process.
func (r *ActiveResolver) GetActiveHomey(ctx context.Context) (*core.Handle, error) {
	if r.handle != nil {
		return r.handle, nil
	}

	selection, ok := r.Selection()
	if !ok {
		if err := r.Select(ctx, SelectOptions{}); err != nil {
			return nil, err
		}
		if selection, ok = r.Selection(); !ok {
			return nil, ErrInvalidSelection
		}
	}

	hub, err := r.directory.GetHomey(ctx, selection.ID)
	if err != nil {
		if errors.Is(err, ErrHomeyNotFound) {
			return nil, fmt.Errorf("%q (%s): %w", selection.Name, selection.ID, ErrHomeyNoLongerExists)
		}
		return nil, err
	}

	handle, err := r.sessions.Cloud().Authenticate(ctx, hub)
	if err != nil {
		return nil, fmt.Errorf("authenticating to %q: %w", hub.Name, err)
	}

	// prefer the direct path whenever discovery found one
	if hub.LocalAddress != "" {
		handle.BaseURL = "http://" + hub.LocalAddress
	} else {
		handle.BaseURL = hub.RemoteURL
	}
	handle.Name = hub.Name

	r.handle = handle
	return handle, nil
}
