package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lestrrat-go/jwx/v3/jwa"
	"github.com/lestrrat-go/jwx/v3/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenSourceExchange(t *testing.T) {
	var assertion string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, jwtBearerGrantType, r.PostForm.Get("grant_type"))
		assertion = r.PostForm.Get("assertion")

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"ya29.token","token_type":"Bearer","expires_in":3599}`))
	}))
	defer srv.Close()

	private, account := newTestAccount(t, srv.URL)

	source, err := NewTokenSource(account, srv.Client())
	require.NoError(t, err)

	token, err := source.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ya29.token", token)

	parsed, err := jwt.Parse([]byte(assertion), jwt.WithKey(jwa.RS256(), &private.PublicKey))
	require.NoError(t, err)

	issuer, _ := parsed.Issuer()
	assert.Equal(t, account.ClientEmail, issuer)

	audience, _ := parsed.Audience()
	assert.Equal(t, []string{srv.URL}, audience)

	var scope string
	require.NoError(t, parsed.Get("scope", &scope))
	assert.Equal(t, SpreadsheetsScope, scope)

	issuedAt, _ := parsed.IssuedAt()
	expiration, _ := parsed.Expiration()
	assert.Equal(t, assertionLifetime, expiration.Sub(issuedAt))

	header, err := base64.RawURLEncoding.DecodeString(strings.Split(assertion, ".")[0])
	require.NoError(t, err)

	var fields map[string]string
	require.NoError(t, json.Unmarshal(header, &fields))
	assert.Equal(t, "RS256", fields["alg"])
	assert.Equal(t, "key-1", fields["kid"])
}

func TestTokenSourceExchangeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
	}))
	defer srv.Close()

	_, account := newTestAccount(t, srv.URL)

	source, err := NewTokenSource(account, srv.Client())
	require.NoError(t, err)

	_, err = source.Token(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestNewTokenSourceBadKey(t *testing.T) {
	_, err := NewTokenSource(&ServiceAccount{ClientEmail: "a@b.c", PrivateKey: "not a pem"}, nil)
	assert.Error(t, err)
}
