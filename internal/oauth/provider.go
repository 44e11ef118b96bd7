package oauth

import (
	"encoding/json"
	"fmt"

	"github.com/feedlink/feedlink/internal/domain"
)

// ClientAuthMode selects where the client credentials go on the token request.
type ClientAuthMode int

const (
	// AuthBasic sends client id/secret as an HTTP basic auth header.
	AuthBasic ClientAuthMode = iota
	// AuthBody sends client id/secret as form body parameters.
	AuthBody
)

// Provider describes one OAuth2 provider's capability set: endpoints, scopes,
// client-auth placement, PKCE use and how to pull the stable account id out of
// the profile response. Both supported providers share the same two-call
// shape (exchange, then profile); only these fields differ.
type Provider struct {
	Name         string
	AuthorizeURL string
	TokenURL     string
	ProfileURL   string
	Scopes       []string
	AuthMode     ClientAuthMode
	UsePKCE      bool

	// ExtraAuthParams are provider-specific additions to the authorize URL.
	ExtraAuthParams map[string]string

	// ExtractAccountID pulls the stable identifying field out of a profile
	// response body.
	ExtractAccountID func(body []byte) (string, error)
}

// Twitter returns the descriptor for the Twitter/X OAuth2 shape: basic-auth
// token endpoint, PKCE, and the handle at data.username of /2/users/me.
func Twitter() Provider {
	return Provider{
		Name:         domain.ProviderTwitter,
		AuthorizeURL: "https://twitter.com/i/oauth2/authorize",
		TokenURL:     "https://api.twitter.com/2/oauth2/token",
		ProfileURL:   "https://api.twitter.com/2/users/me",
		Scopes:       []string{"tweet.read", "users.read", "offline.access"},
		AuthMode:     AuthBasic,
		UsePKCE:      true,
		ExtractAccountID: func(body []byte) (string, error) {
			var payload struct {
				Data struct {
					Username string `json:"username"`
				} `json:"data"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", fmt.Errorf("failed to parse profile response: %w", err)
			}
			if payload.Data.Username == "" {
				return "", fmt.Errorf("profile response missing data.username")
			}
			return payload.Data.Username, nil
		},
	}
}

// Google returns the descriptor for the Google OAuth2 shape: secret in the
// token request body, no PKCE, and the account email from the userinfo
// endpoint.
func Google() Provider {
	return Provider{
		Name:         domain.ProviderGoogle,
		AuthorizeURL: "https://accounts.google.com/o/oauth2/auth",
		TokenURL:     "https://oauth2.googleapis.com/token",
		ProfileURL:   "https://www.googleapis.com/oauth2/v1/userinfo",
		Scopes:       []string{"email", "profile"},
		AuthMode:     AuthBody,
		UsePKCE:      false,
		ExtraAuthParams: map[string]string{
			"access_type": "offline",
		},
		ExtractAccountID: func(body []byte) (string, error) {
			var payload struct {
				Email string `json:"email"`
			}
			if err := json.Unmarshal(body, &payload); err != nil {
				return "", fmt.Errorf("failed to parse profile response: %w", err)
			}
			if payload.Email == "" {
				return "", fmt.Errorf("profile response missing email")
			}
			return payload.Email, nil
		},
	}
}
