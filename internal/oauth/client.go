package oauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/feedlink/feedlink/internal/domain"
)

const (
	// requestTimeout bounds every outbound provider call.
	requestTimeout = 10 * time.Second

	// maxErrorBodyBytes limits how much of a provider error body is carried
	// around for diagnostics.
	maxErrorBodyBytes = 4 << 10
)

// ExchangeError reports a failed authorization-code exchange with the
// provider's status and body for diagnostics. Authorization codes are
// single-use, so the exchange is never retried.
type ExchangeError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("%s: %s: status %d: %s", e.Provider, domain.ErrMsgExchangeFailed, e.Status, e.Body)
}

func (e *ExchangeError) Unwrap() error { return domain.ErrExchangeFailed }

// ProfileError reports a failed or malformed profile fetch.
type ProfileError struct {
	Provider string
	Status   int
	Body     string
}

func (e *ProfileError) Error() string {
	return fmt.Sprintf("%s: %s: status %d: %s", e.Provider, domain.ErrMsgProfileFailed, e.Status, e.Body)
}

func (e *ProfileError) Unwrap() error { return domain.ErrProfileFailed }

// Client performs the two-step authorization-code flow against one provider.
type Client struct {
	provider     Provider
	clientID     string
	clientSecret string
	redirectURI  string
	httpClient   *http.Client
}

// NewClient creates a client for the given provider and credentials.
func NewClient(provider Provider, clientID, clientSecret, redirectURI string) *Client {
	return &Client{
		provider:     provider,
		clientID:     clientID,
		clientSecret: clientSecret,
		redirectURI:  redirectURI,
		httpClient:   &http.Client{Timeout: requestTimeout},
	}
}

// ProviderName returns the descriptor name this client serves.
func (c *Client) ProviderName() string { return c.provider.Name }

// UsePKCE reports whether this provider requires a PKCE pair per flow.
func (c *Client) UsePKCE() bool { return c.provider.UsePKCE }

// AuthorizeURL composes the provider authorization URL for one flow. All
// parameters are percent-encoded; scopes come from the descriptor, never from
// user input. codeChallenge is ignored for providers without PKCE.
func (c *Client) AuthorizeURL(state, codeChallenge string) string {
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", c.clientID)
	q.Set("redirect_uri", c.redirectURI)
	q.Set("scope", strings.Join(c.provider.Scopes, " "))
	q.Set("state", state)
	if c.provider.UsePKCE && codeChallenge != "" {
		q.Set("code_challenge", codeChallenge)
		q.Set("code_challenge_method", "S256")
	}
	for k, v := range c.provider.ExtraAuthParams {
		q.Set(k, v)
	}
	return c.provider.AuthorizeURL + "?" + q.Encode()
}

// Exchange swaps an authorization code for a bearer access token.
func (c *Client) Exchange(ctx context.Context, code, codeVerifier string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", c.redirectURI)
	if c.provider.UsePKCE && codeVerifier != "" {
		form.Set("code_verifier", codeVerifier)
	}
	if c.provider.AuthMode == AuthBody {
		form.Set("client_id", c.clientID)
		form.Set("client_secret", c.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.provider.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.provider.AuthMode == AuthBasic {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrExchangeFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrExchangeFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ExchangeError{Provider: c.provider.Name, Status: resp.StatusCode, Body: string(body)}
	}

	var payload struct {
		AccessToken string `json:"access_token"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || payload.AccessToken == "" {
		return "", &ExchangeError{Provider: c.provider.Name, Status: resp.StatusCode, Body: "response missing access_token"}
	}

	return payload.AccessToken, nil
}

// Profile fetches the provider profile and extracts the stable account id.
func (c *Client) Profile(ctx context.Context, accessToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.provider.ProfileURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build profile request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrProfileFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	if err != nil {
		return "", fmt.Errorf("%w: reading response: %v", domain.ErrProfileFailed, err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &ProfileError{Provider: c.provider.Name, Status: resp.StatusCode, Body: string(body)}
	}

	accountID, err := c.provider.ExtractAccountID(body)
	if err != nil {
		return "", &ProfileError{Provider: c.provider.Name, Status: resp.StatusCode, Body: err.Error()}
	}

	return accountID, nil
}
