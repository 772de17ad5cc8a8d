package vault

import (
	"fmt"

	"github.com/hashicorp/vault/api"
)

type SecretManager struct {
	client *api.Client
}

func NewSecretManager(address, token string) (*SecretManager, error) {
	config := api.DefaultConfig()
	config.Address = address

	client, err := api.NewClient(config)
	if err != nil {
		return nil, err
	}

	client.SetToken(token)

	return &SecretManager{client: client}, nil
}

// GetServiceAccountKey returns the raw service-account key JSON stored
// under secret/data/notification, field "service_account_key".
func (sm *SecretManager) GetServiceAccountKey() ([]byte, error) {
	secret, err := sm.client.Logical().Read("secret/data/notification")
	if err != nil {
		return nil, err
	}
	if secret == nil || secret.Data == nil {
		return nil, fmt.Errorf("no secret at secret/data/notification")
	}

	data, ok := secret.Data["data"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("unexpected secret layout at secret/data/notification")
	}
	raw, ok := data["service_account_key"].(string)
	if !ok {
		return nil, fmt.Errorf("service_account_key missing from notification secret")
	}
	return []byte(raw), nil
}
