package relay

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/json"
	"encoding/pem"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestKey(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKCS8PrivateKey(key)
	require.NoError(t, err)

	block := pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der})

	return key, string(block)
}

func newTestAccount(t *testing.T, tokenURI string) (*rsa.PrivateKey, *ServiceAccount) {
	t.Helper()

	key, pemKey := newTestKey(t)

	data, err := json.Marshal(map[string]string{
		"type":           "service_account",
		"project_id":     "fundpath-test",
		"private_key_id": "key-1",
		"private_key":    pemKey,
		"client_email":   "relay@fundpath-test.iam.gserviceaccount.com",
		"token_uri":      tokenURI,
	})
	require.NoError(t, err)

	account, err := ParseServiceAccount(data)
	require.NoError(t, err)

	return key, account
}
