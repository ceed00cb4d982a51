package authenc

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
)

func TestEncryptDecrypt(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)

	for _, amount := range []uint64{0, 1, 100_000_000, 1<<64 - 1} {
		ct, err := key.Encrypt(amount)
		require.NoError(t, err)
		got, err := key.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, amount, got)
	}
}

func TestFreshNonce(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)
	a, err := key.Encrypt(5)
	require.NoError(t, err)
	b, err := key.Encrypt(5)
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}

func TestDecryptFailures(t *testing.T) {
	key, err := NewKey()
	require.NoError(t, err)
	other, err := NewKey()
	require.NoError(t, err)

	ct, err := key.Encrypt(10)
	require.NoError(t, err)

	_, err = other.Decrypt(ct)
	require.ErrorIs(t, err, ErrDecryption)

	tampered := ct
	tampered[CiphertextSize-1] ^= 1
	_, err = key.Decrypt(tampered)
	require.ErrorIs(t, err, ErrDecryption)

	_, err = key.Decrypt(Ciphertext{})
	require.ErrorIs(t, err, ErrDecryption)
}

type hashSigner struct{}

func (hashSigner) Address() common.Address { return common.Address{9} }

func (hashSigner) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(message)
	return digest[:], nil
}

func TestDeriveKey(t *testing.T) {
	a, err := DeriveKey(hashSigner{}, common.Address{1})
	require.NoError(t, err)
	b, err := DeriveKey(hashSigner{}, common.Address{1})
	require.NoError(t, err)
	c, err := DeriveKey(hashSigner{}, common.Address{2})
	require.NoError(t, err)
	require.Equal(t, *a, *b)
	require.NotEqual(t, *a, *c)

	ct, err := a.Encrypt(123)
	require.NoError(t, err)
	got, err := b.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, uint64(123), got)

	_, err = KeyFromSignature(nil)
	require.ErrorIs(t, err, ErrInvalidKey)
}
