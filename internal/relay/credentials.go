package relay

import (
	"encoding/json"
	"errors"
	"fmt"
)

const defaultTokenURI = "https://oauth2.googleapis.com/token"

// ServiceAccount is the subset of a Google service-account key file the
// relay needs to mint access tokens.
type ServiceAccount struct {
	Type         string `json:"type"`
	ProjectID    string `json:"project_id"`
	PrivateKeyID string `json:"private_key_id"`
	PrivateKey   string `json:"private_key"`
	ClientEmail  string `json:"client_email"`
	TokenURI     string `json:"token_uri"`
}

func ParseServiceAccount(data []byte) (*ServiceAccount, error) {

	if len(data) == 0 {
		return nil, errors.New("service account json is empty")
	}

	var account = new(ServiceAccount)
	if err := json.Unmarshal(data, account); err != nil {
		return nil, fmt.Errorf("failed to decode service account json: %w", err)
	}

	if account.ClientEmail == "" {
		return nil, errors.New("service account is missing client_email")
	}

	if account.PrivateKey == "" {
		return nil, errors.New("service account is missing private_key")
	}

	if account.TokenURI == "" {
		account.TokenURI = defaultTokenURI
	}

	return account, nil
}
