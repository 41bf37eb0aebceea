package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/darmiel/homeyctl/internal/core"
)

type resolverFixture struct {
	resolver *ActiveResolver
	sessions *SessionManager
	settings *fakeSettings
	cloud    *fakeCloud
	prompt   *fakePrompt
	prober   *fakeProber
}

func newResolverFixture(hubs []*core.Hub, found map[string]string) *resolverFixture {
	settings := newFakeSettings()
	cloud := &fakeCloud{loggedIn: true, user: &fakeUser{id: "user-1", fullname: "Jane Doe", hubs: hubs}}
	prompt := &fakePrompt{}
	prober := &fakeProber{found: found}

	sessions := NewSessionManager(settings, prompt, func() core.CloudSession { return cloud })
	directory := NewHubDirectory(sessions, prober)
	resolver := NewActiveResolver(settings, sessions, directory, prompt)
	sessions.OnLogout = resolver.Reset

	return &resolverFixture{
		resolver: resolver,
		sessions: sessions,
		settings: settings,
		cloud:    cloud,
		prompt:   prompt,
		prober:   prober,
	}
}

func (f *resolverFixture) selectHub(id, name string) {
	_ = f.settings.Set(activeSelectionKey, core.Selection{ID: id, Name: name})
}

func TestGetActiveHomeyPrefersLocalAddress(t *testing.T) {
	f := newResolverFixture(testHubs(), map[string]string{"abc123": "10.0.0.1"})
	f.selectHub("abc123", "Home")

	handle, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatalf("GetActiveHomey() error = %v", err)
	}
	if handle.BaseURL != "http://10.0.0.1" {
		t.Errorf("BaseURL = %q, want local address even though a relay URL exists", handle.BaseURL)
	}
	if handle.Name != "Home" {
		t.Errorf("Name = %q, want Home", handle.Name)
	}
}

func TestGetActiveHomeyFallsBackToRelay(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.selectHub("abc123", "Home")

	handle, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatalf("GetActiveHomey() error = %v", err)
	}
	if handle.BaseURL != "https://abc123.connect.example.com" {
		t.Errorf("BaseURL = %q, want the relay URL", handle.BaseURL)
	}
}

func TestGetActiveHomeyStaleSelection(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.selectHub("gone789", "Old House")

	_, err := f.resolver.GetActiveHomey(context.Background())
	if !errors.Is(err, ErrHomeyNoLongerExists) {
		t.Fatalf("GetActiveHomey() error = %v, want ErrHomeyNoLongerExists", err)
	}
}

func TestGetActiveHomeyCachesHandle(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.selectHub("abc123", "Home")

	first, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	second, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("repeated resolution must return the cached handle")
	}
	if f.cloud.authCalls != 1 {
		t.Errorf("Authenticate called %d times, want 1", f.cloud.authCalls)
	}
}

func TestGetActiveHomeyEntersSelectionWhenUnselected(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.prompt.selectValue = "abc123"

	handle, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatalf("GetActiveHomey() error = %v", err)
	}
	if f.prompt.selectCalls != 1 {
		t.Errorf("Select prompt called %d times, want 1", f.prompt.selectCalls)
	}
	if handle.Name != "Home" {
		t.Errorf("Name = %q, want Home", handle.Name)
	}
	if sel, ok := f.resolver.Selection(); !ok || sel.ID != "abc123" {
		t.Errorf("Selection = %+v/%v, want persisted abc123", sel, ok)
	}
}

func TestSelectByNameFirstMatchWins(t *testing.T) {
	hubs := []*core.Hub{
		{ID: "first", Name: "Home", State: "online", RemoteURL: "https://first.example.com"},
		{ID: "second", Name: "Home", State: "online", RemoteURL: "https://second.example.com"},
	}
	f := newResolverFixture(hubs, nil)

	if err := f.resolver.Select(context.Background(), SelectOptions{Name: "Home"}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	sel, ok := f.resolver.Selection()
	if !ok || sel.ID != "first" {
		t.Errorf("Selection.ID = %v, want first (first list match wins)", sel)
	}
}

func TestSelectByUnknownIDFails(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)

	err := f.resolver.Select(context.Background(), SelectOptions{ID: "nope"})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("Select() error = %v, want ErrInvalidSelection", err)
	}
	if _, ok := f.resolver.Selection(); ok {
		t.Error("failed selection must not persist anything")
	}
}

func TestInteractiveSelectionDefaultsToOnline(t *testing.T) {
	hubs := []*core.Hub{
		{ID: "on1", Name: "Home", State: "online_stable", RemoteURL: "https://on1.example.com"},
		{ID: "off1", Name: "Cabin", State: "offline", RemoteURL: "https://off1.example.com"},
		{ID: "on2", Name: "Garage", State: "online", RemoteURL: "https://on2.example.com"},
	}
	f := newResolverFixture(hubs, nil)
	f.prompt.selectValue = "on2"

	if err := f.resolver.Select(context.Background(), SelectOptions{}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}
	if got := len(f.prompt.lastOptions); got != 2 {
		t.Fatalf("prompt offered %d options, want 2 online ones", got)
	}
	for _, opt := range f.prompt.lastOptions {
		if opt.Value == "off1" {
			t.Error("offline homey must not be offered by default")
		}
	}
}

func TestInteractiveSelectionAborted(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.prompt.selectErr = errors.New("ctrl-c")

	err := f.resolver.Select(context.Background(), SelectOptions{})
	if !errors.Is(err, ErrInvalidSelection) {
		t.Fatalf("Select() error = %v, want ErrInvalidSelection", err)
	}
}

func TestUnselectClearsSelection(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.selectHub("abc123", "Home")

	if err := f.resolver.Unselect(); err != nil {
		t.Fatalf("Unselect() error = %v", err)
	}
	if _, ok := f.resolver.Selection(); ok {
		t.Error("selection should be gone after Unselect")
	}
}

func TestLogoutForcesReselection(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	f.selectHub("abc123", "Home")

	if _, err := f.resolver.GetActiveHomey(context.Background()); err != nil {
		t.Fatal(err)
	}

	if err := f.sessions.Logout(context.Background()); err != nil {
		t.Fatalf("Logout() error = %v", err)
	}

	// the next resolution must re-enter selection instead of serving the
	// cached handle
	f.cloud.loggedIn = true
	f.prompt.selectValue = "def456"
	f.cloud.user.hubs[1].State = "online"

	handle, err := f.resolver.GetActiveHomey(context.Background())
	if err != nil {
		t.Fatalf("GetActiveHomey() after logout error = %v", err)
	}
	if f.prompt.selectCalls != 1 {
		t.Errorf("Select prompt called %d times after logout, want 1", f.prompt.selectCalls)
	}
	if handle.Name != "Cabin" {
		t.Errorf("Name = %q, want Cabin", handle.Name)
	}
}

func TestSelectionDecodesPersistedMap(t *testing.T) {
	f := newResolverFixture(testHubs(), nil)
	// values reloaded from disk come back as generic JSON maps
	_ = f.settings.Set(activeSelectionKey, map[string]any{"id": "abc123", "name": "Home"})

	sel, ok := f.resolver.Selection()
	if !ok {
		t.Fatal("Selection() should decode a generic map")
	}
	if sel.ID != "abc123" || sel.Name != "Home" {
		t.Errorf("Selection = %+v", sel)
	}
}

func TestSelectionLabelsAreDecorated(t *testing.T) {
	hubs := []*core.Hub{
		{ID: "reb", Name: "Attic", State: "rebooting_update", RemoteURL: "https://reb.example.com"},
	}
	f := newResolverFixture(hubs, map[string]string{"reb": "10.0.0.1"})
	f.prompt.selectValue = "reb"

	if err := f.resolver.Select(context.Background(), SelectOptions{Filter: "true"}); err != nil {
		t.Fatalf("Select() error = %v", err)
	}

	label := f.prompt.lastOptions[0].Label
	if !strings.Contains(label, "rebooting") || strings.Contains(label, "rebooting_update") {
		t.Errorf("label = %q, want the first state segment only", label)
	}
	if !strings.Contains(label, "10.0.0.1") {
		t.Errorf("label = %q, want discovered address shown", label)
	}
}
