// SPDX-License-Identifier: Apache-2.0

package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"

	httplib "github.com/searchhintio/searchhint/internal/http"
	"github.com/searchhintio/searchhint/internal/json"
)

// TokenProvider returns a bearer token valid for the catalog API.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// clientCredentialsProvider implements the AAD client credentials flow and
// caches the token until close to its expiry. It is owned by the client that
// constructs it, there is no process wide session state.
type clientCredentialsProvider struct {
	httpClient httplib.Client
	clock      clockwork.Clock

	tokenURL     string
	clientID     string
	clientSecret string
	scope        string

	mutex       sync.Mutex
	cachedToken string
	expiresAt   time.Time
}

// expirySkew is subtracted from the token lifetime so a token is refreshed
// before it actually expires mid request.
const expirySkew = 2 * time.Minute

const aadTokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"

func newClientCredentialsProvider(cfg *Config, httpClient httplib.Client, clock clockwork.Clock) *clientCredentialsProvider {
	return &clientCredentialsProvider{
		httpClient:   httpClient,
		clock:        clock,
		tokenURL:     fmt.Sprintf(aadTokenURLFormat, cfg.TenantID),
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		scope:        defaultTokenScope,
	}
}

func (p *clientCredentialsProvider) Token(ctx context.Context) (string, error) {
	p.mutex.Lock()
	defer p.mutex.Unlock()

	if p.cachedToken != "" && p.clock.Now().Before(p.expiresAt) {
		return p.cachedToken, nil
	}

	token, expiresIn, err := p.requestToken(ctx)
	if err != nil {
		return "", err
	}

	p.cachedToken = token
	p.expiresAt = p.clock.Now().Add(time.Duration(expiresIn)*time.Second - expirySkew)
	return token, nil
}

func (p *clientCredentialsProvider) requestToken(ctx context.Context) (token string, expiresIn int64, err error) {
	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_id", p.clientID)
	form.Set("client_secret", p.clientSecret)
	form.Set("scope", p.scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("requesting token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, fmt.Errorf("reading token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResponse struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &tokenResponse); err != nil {
		return "", 0, fmt.Errorf("unmarshaling token response: %w", err)
	}
	if tokenResponse.AccessToken == "" {
		return "", 0, errEmptyToken
	}

	return tokenResponse.AccessToken, tokenResponse.ExpiresIn, nil
}
