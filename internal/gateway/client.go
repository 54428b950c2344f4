// Package gateway implements the HTTP client for the remote authentication
// service. It normalises the three remote calls (login, register, identity
// fetch) into the AuthGateway port and classifies every failure as a
// *domain.AuthError. It never touches the session store.
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/secureauth/webclient/internal/api/metrics"
	"github.com/secureauth/webclient/internal/core/domain"
	"github.com/secureauth/webclient/internal/core/ports"
)

// Client talks to the remote auth gateway at a configured base URL. No
// retries: a failed request surfaces an error and the user resubmits.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// New creates a Client. httpClient may be nil, in which case
// http.DefaultClient is used (no timeout beyond the transport's own).
func New(baseURL string, httpClient *http.Client, log zerolog.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		log:     log,
	}
}

var _ ports.AuthGateway = (*Client)(nil)

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Login submits credentials form-encoded, then fetches the user record with
// the issued token. Both calls must succeed: a token whose identity fetch
// fails is dropped and the operation fails with ErrIdentityFetch, so the
// caller never holds a token without its user.
func (c *Client) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	start := time.Now()

	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveGatewayRequest("login", "network_failure", start)
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveGatewayRequest("login", "rejected", start)
		c.log.Debug().Int("status", resp.StatusCode).Msg("login rejected by gateway")
		return nil, domain.NewAuthError(domain.ErrInvalidCredentials, remoteMessage(body, "detail", "message"), nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		metrics.ObserveGatewayRequest("login", "error", start)
		return nil, domain.NewAuthError(domain.ErrIdentityFetch, "", err)
	}

	user, err := c.CurrentUser(ctx, tr.AccessToken)
	if err != nil {
		metrics.ObserveGatewayRequest("login", "identity_fetch_failed", start)
		return nil, domain.NewAuthError(domain.ErrIdentityFetch, "", err)
	}

	metrics.ObserveGatewayRequest("login", "ok", start)
	return &ports.LoginResult{Token: tr.AccessToken, User: user}, nil
}

// Register submits the registration payload as JSON. When the response
// carries a token, the identity fetch is best-effort: its failure degrades to
// "account created, not logged in" rather than failing the operation, unlike
// Login where both calls must succeed.
func (c *Client) Register(ctx context.Context, email, username, password string) (*ports.RegisterResult, error) {
	start := time.Now()

	payload, err := json.Marshal(map[string]string{
		"email":    email,
		"username": username,
		"password": password,
	})
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/register", strings.NewReader(string(payload)))
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveGatewayRequest("register", "network_failure", start)
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveGatewayRequest("register", "rejected", start)
		c.log.Debug().Int("status", resp.StatusCode).Msg("registration rejected by gateway")
		return nil, domain.NewAuthError(domain.ErrValidationRejected, remoteMessage(body, "message", "detail"), nil)
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil || tr.AccessToken == "" {
		// Account created but no token issued: success without a session.
		metrics.ObserveGatewayRequest("register", "ok_no_session", start)
		return &ports.RegisterResult{}, nil
	}

	user, err := c.CurrentUser(ctx, tr.AccessToken)
	if err != nil {
		c.log.Warn().Err(err).Msg("identity fetch after registration failed, account created without session")
		metrics.ObserveGatewayRequest("register", "ok_no_session", start)
		return &ports.RegisterResult{}, nil
	}

	metrics.ObserveGatewayRequest("register", "ok", start)
	return &ports.RegisterResult{Token: tr.AccessToken, User: user}, nil
}

// CurrentUser fetches the identity record for a bearer token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*domain.User, error) {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/auth/me", nil)
	if err != nil {
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.http.Do(req)
	if err != nil {
		metrics.ObserveGatewayRequest("me", "network_failure", start)
		return nil, domain.NewAuthError(domain.ErrNetworkFailure, "", err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		metrics.ObserveGatewayRequest("me", "rejected", start)
		return nil, domain.NewAuthError(domain.ErrIdentityFetch, remoteMessage(body, "detail", "message"), nil)
	}

	var user domain.User
	if err := json.Unmarshal(body, &user); err != nil {
		metrics.ObserveGatewayRequest("me", "error", start)
		return nil, domain.NewAuthError(domain.ErrIdentityFetch, "", err)
	}

	metrics.ObserveGatewayRequest("me", "ok", start)
	return &user, nil
}

// remoteMessage extracts the first non-empty string among keys from a JSON
// error body. Returns "" when the body is not JSON or carries none of them.
func remoteMessage(body []byte, keys ...string) string {
	var fields map[string]any
	if err := json.Unmarshal(body, &fields); err != nil {
		return ""
	}
	for _, k := range keys {
		if msg, ok := fields[k].(string); ok && msg != "" {
			return msg
		}
	}
	return ""
}
