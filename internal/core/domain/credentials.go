package domain

import "fmt"

// Credentials is the decrypted, provider-typed credential set for a
// connection. Only the fields for the connection's provider are populated.
type Credentials struct {
	// Anchorage
	AccessKey  string `json:"access_key,omitempty"`
	SigningKey string `json:"signing_key,omitempty"` // hex-encoded Ed25519 seed

	// Fireblocks
	APIKey     string `json:"api_key,omitempty"`
	PrivateKey string `json:"private_key,omitempty"` // PEM-encoded RSA key

	// BitGo
	AccessToken      string `json:"access_token,omitempty"`
	WalletPassphrase string `json:"wallet_passphrase,omitempty"` // spend operations only
}

// Validate checks the credential shape against the provider's schema.
func (c Credentials) Validate(provider Provider) error {
	switch provider {
	case ProviderAnchorage:
		if c.AccessKey == "" || c.SigningKey == "" {
			return fmt.Errorf("anchorage credentials require access_key and signing_key")
		}
	case ProviderFireblocks:
		if c.APIKey == "" || c.PrivateKey == "" {
			return fmt.Errorf("fireblocks credentials require api_key and private_key")
		}
	case ProviderBitGo:
		if c.AccessToken == "" {
			return fmt.Errorf("bitgo credentials require access_token")
		}
	default:
		return fmt.Errorf("unknown provider %q", provider)
	}
	return nil
}
