package service

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/chambershq/chambers/internal/platform/domain"
	"github.com/chambershq/chambers/pkg/cryptox"
)

// assignEncryptionKey mints the tenant's field-encryption secret at creation
// time. The secret is a random UUID sealed with AES-256-GCM under the process
// master key, so the tenants table only ever holds ciphertext. Whoever needs
// the raw value recovers it with cryptox.DecryptSecret.
//
// Runs exactly once per tenant: a record that already carries a key is left
// alone, and nothing else in the codebase writes this field.
func assignEncryptionKey(t *domain.Tenant) error {
	if t.EncryptionKey != "" {
		return nil
	}

	material, err := uuid.NewRandom()
	if err != nil {
		return fmt.Errorf("generate key material: %w", err)
	}

	sealed, err := cryptox.EncryptSecret([]byte(material.String()))
	if err != nil {
		return fmt.Errorf("seal tenant key: %w", err)
	}

	t.EncryptionKey = sealed
	return nil
}
