package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/lestrrat-go/jwx/v3/jwt"
)

const (
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"

	jwtBearerGrantType = "urn:ietf:params:oauth:grant-type:jwt-bearer"
	assertionLifetime  = time.Hour
)

// TokenSource exchanges a signed service-account assertion for an access
// token. It caches nothing, every call performs a fresh exchange.
type TokenSource struct {
	account    *ServiceAccount
	key        jwk.Key
	httpClient *http.Client
	now        func() time.Time
}

func NewTokenSource(account *ServiceAccount, httpClient *http.Client) (*TokenSource, error) {

	key, err := jwk.ParseKey([]byte(account.PrivateKey), jwk.WithPEM(true))
	if err != nil {
		return nil, fmt.Errorf("failed to parse service account private key: %w", err)
	}

	if account.PrivateKeyID != "" {
		if err := key.Set(jwk.KeyIDKey, account.PrivateKeyID); err != nil {
			return nil, fmt.Errorf("failed to set key id: %w", err)
		}
	}

	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &TokenSource{
		account:    account,
		key:        key,
		httpClient: httpClient,
		now:        time.Now,
	}, nil
}

// Assertion builds the RS256 JWT presented to the token endpoint.
func (t *TokenSource) Assertion() (string, error) {

	now := t.now()

	token, err := jwt.NewBuilder().
		Issuer(t.account.ClientEmail).
		Audience([]string{t.account.TokenURI}).
		IssuedAt(now).
		Expiration(now.Add(assertionLifetime)).
		Claim("scope", SpreadsheetsScope).
		Build()
	if err != nil {
		return "", fmt.Errorf("failed to build assertion: %w", err)
	}

	signed, err := jwt.Sign(token, jwt.WithKey(jwa.RS256(), t.key))
	if err != nil {
		return "", fmt.Errorf("failed to sign assertion: %w", err)
	}

	return string(signed), nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

func (t *TokenSource) Token(ctx context.Context) (string, error) {

	assertion, err := t.Assertion()
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("grant_type", jwtBearerGrantType)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.account.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to exchange assertion: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("token exchange failed with status %d: %s", resp.StatusCode, string(body))
	}

	var out tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("failed to decode token response: %w", err)
	}

	if out.AccessToken == "" {
		return "", fmt.Errorf("token response has no access_token")
	}

	return out.AccessToken, nil
}
