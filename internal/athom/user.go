package athom

import (
	"context"
	"strings"

	"github.com/darmiel/homeyctl/internal/core"
)

// User is the profile of the session owner.
type User struct {
	client *Client
	data   profileData
}

var _ core.AuthenticatedUser = (*User)(nil)

func (u *User) ID() string {
	return u.data.UserID
}

func (u *User) Fullname() string {
	name := strings.TrimSpace(u.data.FirstName + " " + u.data.LastName)
	if name == "" {
		return u.data.Email
	}
	return name
}

// GetHomeys lists all Homeys belonging to this user.
func (u *User) GetHomeys(ctx context.Context) ([]*core.Hub, error) {
	hubs := make([]*core.Hub, 0)
	if _, err := u.client.get(ctx, u.client.apiRoot+"/user/me/homeys", &hubs); err != nil {
		return nil, err
	}
	return hubs, nil
}
