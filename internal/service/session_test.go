package service

import (
	"context"
	"testing"

	"github.com/darmiel/homeyctl/internal/core"
)

func validToken(t *testing.T) string {
	t.Helper()
	raw, err := core.EncodeToken(&core.AccountToken{AccessToken: "at-1", RefreshToken: "rt-1"})
	if err != nil {
		t.Fatal(err)
	}
	return raw
}

func newSessionFixture(cloud *fakeCloud, prompt *fakePrompt) (*SessionManager, *fakeSettings) {
	settings := newFakeSettings()
	m := NewSessionManager(settings, prompt, func() core.CloudSession { return cloud })
	return m, settings
}

func TestLegacyTokenMigrationRunsOnce(t *testing.T) {
	cloud := &fakeCloud{user: &fakeUser{id: "user-1", fullname: "Jane Doe"}}
	m, settings := newSessionFixture(cloud, &fakePrompt{})
	_ = settings.Set(legacyTokenKey, validToken(t))

	if err := m.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}

	if got := len(cloud.setTokenCalls); got != 1 {
		t.Fatalf("SetToken called %d times, want 1", got)
	}
	if cloud.setTokenCalls[0].AccessToken != "at-1" {
		t.Errorf("migrated token = %q, want at-1", cloud.setTokenCalls[0].AccessToken)
	}
	if _, ok := settings.Get(legacyTokenKey); ok {
		t.Error("legacy key should be erased after migration")
	}

	// second initialization performs no further migration
	if err := m.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}
	m2 := NewSessionManager(settings, &fakePrompt{}, func() core.CloudSession { return cloud })
	if err := m2.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}
	if got := len(cloud.setTokenCalls); got != 1 {
		t.Errorf("SetToken called %d times after re-init, want 1", got)
	}
}

func TestLegacyMigrationDiscardsUnreadableToken(t *testing.T) {
	cloud := &fakeCloud{loggedIn: true}
	m, settings := newSessionFixture(cloud, &fakePrompt{})
	_ = settings.Set(legacyTokenKey, "not base64 at all")

	if err := m.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}
	if len(cloud.setTokenCalls) != 0 {
		t.Error("unreadable legacy token must not be applied")
	}
	if _, ok := settings.Get(legacyTokenKey); ok {
		t.Error("legacy key should be erased even when unreadable")
	}
}

func TestEnsureSessionTriggersLogin(t *testing.T) {
	cloud := &fakeCloud{user: &fakeUser{id: "user-1", fullname: "Jane Doe"}}
	prompt := &fakePrompt{inputs: []string{validToken(t)}}
	m, _ := newSessionFixture(cloud, prompt)

	if err := m.EnsureSession(context.Background()); err != nil {
		t.Fatalf("EnsureSession() error = %v", err)
	}
	if prompt.inputCalls != 1 {
		t.Errorf("Input called %d times, want 1 (auto-login)", prompt.inputCalls)
	}
	if !cloud.IsLoggedIn() {
		t.Error("session should be logged in after auto-login")
	}
}

func TestLoginBadTokenCommitsNothing(t *testing.T) {
	cloud := &fakeCloud{}
	prompt := &fakePrompt{inputs: []string{"certainly-not-a-token"}}
	m, _ := newSessionFixture(cloud, prompt)

	// the failure is reported, not raised; the user can simply retry
	if err := m.Login(context.Background()); err != nil {
		t.Fatalf("Login() error = %v, want nil", err)
	}
	if len(cloud.setTokenCalls) != 0 {
		t.Error("no token must be committed on decode failure")
	}
}

func TestLoginSuccess(t *testing.T) {
	cloud := &fakeCloud{user: &fakeUser{id: "user-1", fullname: "Jane Doe"}}
	prompt := &fakePrompt{inputs: []string{"  " + validToken(t) + "\n"}}
	m, _ := newSessionFixture(cloud, prompt)

	if err := m.Login(context.Background()); err != nil {
		t.Fatalf("Login() error = %v", err)
	}
	if len(cloud.setTokenCalls) != 1 {
		t.Fatalf("SetToken called %d times, want 1", len(cloud.setTokenCalls))
	}
}

func TestLogoutClearsActiveSelection(t *testing.T) {
	cloud := &fakeCloud{loggedIn: true}
	m, settings := newSessionFixture(cloud, &fakePrompt{})
	_ = settings.Set(activeSelectionKey, core.Selection{ID: "abc123", Name: "Home"})

	var hookCalled bool
	m.OnLogout = func() { hookCalled = true }

	if err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}
	if cloud.logoutCalls != 1 {
		t.Errorf("Logout called %d times, want 1", cloud.logoutCalls)
	}
	if _, ok := settings.Get(activeSelectionKey); ok {
		t.Error("active selection must be cleared on logout")
	}
	if !hookCalled {
		t.Error("OnLogout hook should fire")
	}
}

func TestProfileFallsBackToCachedIdentity(t *testing.T) {
	cached := &fakeUser{id: "user-1", fullname: "Jane Doe (cached)"}
	cloud := &fakeCloud{
		loggedIn:   true,
		userErr:    context.DeadlineExceeded,
		cachedUser: cached,
	}
	m, _ := newSessionFixture(cloud, &fakePrompt{})

	user, err := m.Profile(context.Background())
	if err != nil {
		t.Fatalf("Profile() error = %v", err)
	}
	if user.Fullname() != "Jane Doe (cached)" {
		t.Errorf("Fullname = %q, want cached identity", user.Fullname())
	}
}

func TestProfileFailsWithoutCache(t *testing.T) {
	cloud := &fakeCloud{loggedIn: true, userErr: context.DeadlineExceeded}
	m, _ := newSessionFixture(cloud, &fakePrompt{})

	if _, err := m.Profile(context.Background()); err == nil {
		t.Fatal("Profile() expected error when live fetch and cache both fail")
	}
}
