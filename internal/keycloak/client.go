package keycloak

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Config holds the identity provider endpoints and client credentials.
type Config struct {
	AuthURI      string `yaml:"auth-uri"`
	TokenURI     string `yaml:"token-uri"`
	LogoutURI    string `yaml:"logout-uri"`
	JWKSURI      string `yaml:"jwks-uri"`
	ClientID     string `yaml:"client-id"`
	ClientSecret string `yaml:"client-secret"`
}

// ErrExchangeRejected marks a token exchange the provider refused.
var ErrExchangeRejected = errors.New("keycloak: exchange rejected")

// TokenBundle is the token set returned by the provider.
type TokenBundle struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

// Client talks to the Keycloak OpenID Connect endpoints.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// NewClient creates a provider client from cfg.
func NewClient(cfg Config) *Client {
	return &Client{cfg: cfg, httpClient: &http.Client{Timeout: 10 * time.Second}}
}

// LoginURL builds the authorize redirect. forceLogin appends prompt=login so
// the provider re-asks for credentials even with an active session.
func (c *Client) LoginURL(redirectURI string, forceLogin bool) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	q.Set("response_type", "code")
	q.Set("scope", "openid")
	q.Set("redirect_uri", redirectURI)
	if forceLogin {
		q.Set("prompt", "login")
	}
	return c.cfg.AuthURI + "?" + q.Encode()
}

// LogoutURL builds the RP-initiated logout redirect.
func (c *Client) LogoutURL(postLogoutRedirectURI, idTokenHint string) string {
	q := url.Values{}
	q.Set("client_id", c.cfg.ClientID)
	if postLogoutRedirectURI != "" {
		q.Set("post_logout_redirect_uri", postLogoutRedirectURI)
	}
	if idTokenHint != "" {
		q.Set("id_token_hint", idTokenHint)
	}
	return c.cfg.LogoutURI + "?" + q.Encode()
}

// ExchangeCode swaps an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, code, redirectURI string) (*TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	return c.postToken(ctx, form)
}

// ExchangeCredentials performs the resource-owner password grant.
func (c *Client) ExchangeCredentials(ctx context.Context, username, password string) (*TokenBundle, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("scope", "openid")
	return c.postToken(ctx, form)
}

func (c *Client) postToken(ctx context.Context, form url.Values) (*TokenBundle, error) {
	form.Set("client_id", c.cfg.ClientID)
	if c.cfg.ClientSecret != "" {
		form.Set("client_secret", c.cfg.ClientSecret)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("keycloak: build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, errDo := c.httpClient.Do(req)
	if errDo != nil {
		return nil, fmt.Errorf("keycloak: token request: %w", errDo)
	}
	defer func() { _ = resp.Body.Close() }()

	body, errRead := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if errRead != nil {
		return nil, fmt.Errorf("keycloak: read token response: %w", errRead)
	}
	if resp.StatusCode >= 400 && resp.StatusCode < 500 {
		return nil, fmt.Errorf("%w: status %d", ErrExchangeRejected, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("keycloak: token endpoint returned status %d", resp.StatusCode)
	}

	bundle := &TokenBundle{}
	if errDecode := json.Unmarshal(body, bundle); errDecode != nil {
		return nil, fmt.Errorf("keycloak: decode token response: %w", errDecode)
	}
	return bundle, nil
}
