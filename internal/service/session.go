package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"

	"github.com/darmiel/homeyctl/internal/core"
)

// SessionManager owns the lifecycle of the authenticated cloud session:
// lazy construction, one-time legacy token migration, login, logout and
// profile retrieval with cache fallback. One instance per process.
type SessionManager struct {
	settings core.SettingsStore
	prompt   core.Prompter

	// connect builds the cloud session on first use.
	connect func() core.CloudSession

	cloud core.CloudSession

	// OnLogout is invoked after a successful logout so dependents can drop
	// handles the session can no longer authenticate.
	OnLogout func()
}

func NewSessionManager(settings core.SettingsStore, prompt core.Prompter, connect func() core.CloudSession) *SessionManager {
	return &SessionManager{
		settings: settings,
		prompt:   prompt,
		connect:  connect,
	}
}

// EnsureSession initializes the cloud session if needed and triggers an
// interactive login when the restored state is not authenticated.
// It is idempotent.
func (m *SessionManager) EnsureSession(ctx context.Context) error {
	m.ensureCloud(ctx)
	if !m.cloud.IsLoggedIn() {
		return m.Login(ctx)
	}
	return nil
}

// ensureCloud constructs the session and runs the legacy token migration,
// without forcing a login.
func (m *SessionManager) ensureCloud(ctx context.Context) core.CloudSession {
	if m.cloud != nil {
		return m.cloud
	}
	cloud := m.connect()
	m.migrateLegacyToken(ctx, cloud)
	m.cloud = cloud
	return cloud
}

// migrateLegacyToken moves a pre-1.0 plain token into the session state.
// The legacy key is erased afterwards in every case, the migration runs
// at most once.
func (m *SessionManager) migrateLegacyToken(ctx context.Context, cloud core.CloudSession) {
	raw, ok := m.settings.Get(legacyTokenKey)
	if !ok {
		return
	}
	defer func() {
		_ = m.settings.Unset(legacyTokenKey)
	}()

	value, ok := raw.(string)
	if !ok || value == "" {
		return
	}
	token, err := core.DecodeToken(value)
	if err != nil {
		log.Warn().Err(err).Msg("discarding unreadable legacy token")
		return
	}
	if err := cloud.SetToken(ctx, token); err != nil {
		log.Warn().Err(err).Msg("migrating legacy token failed")
		return
	}
	log.Debug().Msg("migrated legacy token to session state")
}

// Login prompts for a pasted account token and applies it to the session.
// Decode and application failures are reported to the user and end the
// attempt without committing a token; the command can simply be re-run.
func (m *SessionManager) Login(ctx context.Context) error {
	cloud := m.ensureCloud(ctx)

	raw, err := m.prompt.Input("Paste the account token from your Homey dashboard:")
	if err != nil {
		return fmt.Errorf("reading token: %w", err)
	}

	token, err := core.DecodeToken(strings.TrimSpace(raw))
	if err != nil {
		log.Error().Msgf("that does not look like a valid account token: %v", err)
		return nil
	}
	if err := cloud.SetToken(ctx, token); err != nil {
		log.Error().Msgf("could not apply the account token: %v", err)
		return nil
	}

	user, err := cloud.AuthenticatedUser(ctx)
	if err != nil {
		log.Error().Msgf("token accepted but the profile fetch failed: %v", err)
		return nil
	}

	log.Info().Msgf("you are now logged in as %s", color.New(color.Bold).Sprint(user.Fullname()))
	return nil
}

// Logout invalidates the session's authentication and clears the active
// selection. A logged-out session must not keep pointing at a Homey it can
// no longer authenticate against.
func (m *SessionManager) Logout(ctx context.Context) error {
	cloud := m.ensureCloud(ctx)
	if err := cloud.Logout(ctx); err != nil {
		return fmt.Errorf("logging out: %w", err)
	}
	if err := m.settings.Unset(activeSelectionKey); err != nil {
		return fmt.Errorf("clearing active homey: %w", err)
	}
	if m.OnLogout != nil {
		m.OnLogout()
	}
	log.Info().Msg("you are now logged out")
	return nil
}

// Profile returns the authenticated identity, falling back to the session's
// cached identity when the live fetch fails. This is the only place stale
// identity data is tolerated.
func (m *SessionManager) Profile(ctx context.Context) (core.AuthenticatedUser, error) {
	if err := m.EnsureSession(ctx); err != nil {
		return nil, err
	}

	user, err := m.cloud.AuthenticatedUser(ctx)
	if err != nil {
		cached, cacheErr := m.cloud.CachedAuthenticatedUser()
		if cacheErr != nil {
			return nil, fmt.Errorf("fetching profile: %w", err)
		}
		log.Debug().Err(err).Msg("profile fetch failed, using cached identity")
		return cached, nil
	}
	return user, nil
}

// Cloud exposes the underlying session to collaborators that need direct
// access (e.g. Homey authentication). EnsureSession must have run first.
func (m *SessionManager) Cloud() core.CloudSession {
	return m.cloud
}
