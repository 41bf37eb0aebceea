package core

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// AccountToken is the account-level bearer token the user pastes at login.
// On the wire (and in the legacy settings key) it is JSON wrapped in base64.
type AccountToken struct {
	AccessToken  string `json:"access_token" mapstructure:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty" mapstructure:"refresh_token"`
	TokenType    string `json:"token_type,omitempty" mapstructure:"token_type"`
	ExpiresIn    int    `json:"expires_in,omitempty" mapstructure:"expires_in"`
}

// DecodeToken parses a pasted base64(JSON) account token.
func DecodeToken(raw string) (*AccountToken, error) {
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("decoding token: %w", err)
	}
	var token AccountToken
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parsing token: %w", err)
	}
	if token.AccessToken == "" {
		return nil, fmt.Errorf("token has no access_token")
	}
	return &token, nil
}

// EncodeToken is the inverse of DecodeToken.
func EncodeToken(token *AccountToken) (string, error) {
	data, err := json.Marshal(token)
	if err != nil {
		return "", fmt.Errorf("marshalling token: %w", err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
