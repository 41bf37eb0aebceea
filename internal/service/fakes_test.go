package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/darmiel/homeyctl/internal/core"
)

// fakeSettings is an in-memory core.SettingsStore.
type fakeSettings struct {
	values map[string]any
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{values: make(map[string]any)}
}

func (s *fakeSettings) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

func (s *fakeSettings) Set(key string, value any) error {
	s.values[key] = value
	return nil
}

func (s *fakeSettings) Unset(key string) error {
	delete(s.values, key)
	return nil
}

// fakeUser implements core.AuthenticatedUser over a fixed hub list.
type fakeUser struct {
	id       string
	fullname string
	hubs     []*core.Hub
	hubsErr  error

	getHomeysCalls int
}

func (u *fakeUser) ID() string       { return u.id }
func (u *fakeUser) Fullname() string { return u.fullname }

func (u *fakeUser) GetHomeys(context.Context) ([]*core.Hub, error) {
	u.getHomeysCalls++
	if u.hubsErr != nil {
		return nil, u.hubsErr
	}
	return u.hubs, nil
}

// fakeCloud implements core.CloudSession.
type fakeCloud struct {
	loggedIn bool
	user     *fakeUser
	userErr  error

	cachedUser *fakeUser

	setTokenCalls []*core.AccountToken
	setTokenErr   error
	logoutCalls   int
	authCalls     int
	authErr       error
}

func (c *fakeCloud) SetToken(_ context.Context, token *core.AccountToken) error {
	if c.setTokenErr != nil {
		return c.setTokenErr
	}
	c.setTokenCalls = append(c.setTokenCalls, token)
	c.loggedIn = true
	return nil
}

func (c *fakeCloud) IsLoggedIn() bool { return c.loggedIn }

func (c *fakeCloud) Logout(context.Context) error {
	c.logoutCalls++
	c.loggedIn = false
	return nil
}

func (c *fakeCloud) AuthenticatedUser(context.Context) (core.AuthenticatedUser, error) {
	if c.userErr != nil {
		return nil, c.userErr
	}
	return c.user, nil
}

func (c *fakeCloud) CachedAuthenticatedUser() (core.AuthenticatedUser, error) {
	if c.cachedUser == nil {
		return nil, errors.New("no cached user")
	}
	return c.cachedUser, nil
}

func (c *fakeCloud) Authenticate(_ context.Context, hub *core.Hub) (*core.Handle, error) {
	c.authCalls++
	if c.authErr != nil {
		return nil, c.authErr
	}
	return &core.Handle{
		Name:    hub.Name,
		BaseURL: hub.RemoteURL,
		Token:   "scoped-" + hub.ID,
	}, nil
}

// fakePrompt implements core.Prompter with canned answers.
type fakePrompt struct {
	inputs []string

	selectValue string
	selectErr   error

	inputCalls  int
	selectCalls int
	lastOptions []core.SelectOption
}

func (p *fakePrompt) Input(string) (string, error) {
	if p.inputCalls >= len(p.inputs) {
		return "", fmt.Errorf("unexpected input prompt")
	}
	answer := p.inputs[p.inputCalls]
	p.inputCalls++
	return answer, nil
}

func (p *fakePrompt) Select(_ string, options []core.SelectOption) (string, error) {
	p.selectCalls++
	p.lastOptions = options
	if p.selectErr != nil {
		return "", p.selectErr
	}
	return p.selectValue, nil
}

// fakeProber implements core.LocalProber with a fixed scan result.
type fakeProber struct {
	found map[string]string
	scans int
}

func (p *fakeProber) Scan(context.Context) map[string]string {
	p.scans++
	return p.found
}
