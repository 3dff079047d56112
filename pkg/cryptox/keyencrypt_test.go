package cryptox_test

import (
	"encoding/base64"
	"os"
	"testing"

	"github.com/chambershq/chambers/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptSecret(t *testing.T) {
	os.Setenv("CHAMBERS_MASTER_KEY", "test-master-key-for-encryption-12345")
	t.Cleanup(func() {
		os.Unsetenv("CHAMBERS_MASTER_KEY")
		cryptox.ResetMasterKeyForTesting()
	})

	secret := []byte("7be4derc-1b34-4f2a-9c3e-assignment-secret")

	encrypted, err := cryptox.EncryptSecret(secret)
	require.NoError(t, err)
	require.NotEmpty(t, encrypted)

	// Must be valid base64 so it survives a text column round-trip.
	_, err = base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)

	decrypted, err := cryptox.DecryptSecret(encrypted)
	require.NoError(t, err)
	require.Equal(t, secret, decrypted, "decrypted data should match original")
}

func TestEncryptSecretNonDeterministic(t *testing.T) {
	os.Setenv("CHAMBERS_MASTER_KEY", "test-master-key-multiple-times-xyz")
	t.Cleanup(func() {
		os.Unsetenv("CHAMBERS_MASTER_KEY")
		cryptox.ResetMasterKeyForTesting()
	})

	secret := []byte("sensitive-tenant-secret-12345")

	// Random nonce per call, so two encryptions never collide
	encrypted1, err := cryptox.EncryptSecret(secret)
	require.NoError(t, err)

	encrypted2, err := cryptox.EncryptSecret(secret)
	require.NoError(t, err)

	require.NotEqual(t, encrypted1, encrypted2, "multiple encryptions should produce different ciphertexts")

	decrypted1, err := cryptox.DecryptSecret(encrypted1)
	require.NoError(t, err)
	require.Equal(t, secret, decrypted1)

	decrypted2, err := cryptox.DecryptSecret(encrypted2)
	require.NoError(t, err)
	require.Equal(t, secret, decrypted2)
}

func TestDecryptInvalidData(t *testing.T) {
	os.Setenv("CHAMBERS_MASTER_KEY", "test-master-key-invalid-data")
	t.Cleanup(func() {
		os.Unsetenv("CHAMBERS_MASTER_KEY")
		cryptox.ResetMasterKeyForTesting()
	})

	_, err := cryptox.DecryptSecret("not!!valid!!base64")
	require.Error(t, err, "non-base64 input should fail")

	_, err = cryptox.DecryptSecret(base64.StdEncoding.EncodeToString([]byte("short")))
	require.Error(t, err)
	require.Contains(t, err.Error(), "too short")
}

func TestDecryptTamperedData(t *testing.T) {
	os.Setenv("CHAMBERS_MASTER_KEY", "test-master-key-tampered")
	t.Cleanup(func() {
		os.Unsetenv("CHAMBERS_MASTER_KEY")
		cryptox.ResetMasterKeyForTesting()
	})

	encrypted, err := cryptox.EncryptSecret([]byte("original-data"))
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(encrypted)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xFF // Flip bits in the auth tag

	_, err = cryptox.DecryptSecret(base64.StdEncoding.EncodeToString(raw))
	require.Error(t, err, "decrypting tampered data should fail")
}

func TestMasterKeyFromFile(t *testing.T) {
	tmpfile, err := os.CreateTemp("", "masterkey-*.key")
	require.NoError(t, err)
	defer os.Remove(tmpfile.Name())

	_, err = tmpfile.Write([]byte("file-based-master-key-content-xyz"))
	require.NoError(t, err)
	tmpfile.Close()

	cryptox.ResetMasterKeyForTesting()
	cryptox.SetMasterKeyPath(tmpfile.Name())
	t.Cleanup(func() {
		cryptox.ResetMasterKeyForTesting()
		cryptox.SetMasterKeyPath("")
	})

	encrypted, err := cryptox.EncryptSecret([]byte("test-data-with-file-key"))
	require.NoError(t, err)

	decrypted, err := cryptox.DecryptSecret(encrypted)
	require.NoError(t, err)
	require.Equal(t, []byte("test-data-with-file-key"), decrypted)
}
