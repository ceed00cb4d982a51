package elgamal

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
)

func TestEncryptDecrypt(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	for _, amount := range []uint64{0, 1, 55, 65535, 65536, 5_000_000, 100_000_000} {
		ct, _, err := kp.Public.Encrypt(amount)
		require.NoError(t, err)
		got, err := kp.Secret.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, amount, got)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)
	other, err := NewKeypair()
	require.NoError(t, err)

	ct, _, err := kp.Public.Encrypt(42)
	require.NoError(t, err)

	ok, err := other.Secret.VerifyAmount(ct, 42)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = kp.Secret.VerifyAmount(ct, 42)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyAmountBeyondDecryptBound(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	amount := DecryptBound + 7
	ct, _, err := kp.Public.Encrypt(amount)
	require.NoError(t, err)

	ok, err := kp.Secret.VerifyAmount(ct, amount)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestHomomorphicArithmetic(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)

	a, _, err := kp.Public.Encrypt(100)
	require.NoError(t, err)
	b, _, err := kp.Public.Encrypt(30)
	require.NoError(t, err)

	t.Run("add", func(t *testing.T) {
		sum, err := AddCiphertexts(a, b)
		require.NoError(t, err)
		got, err := kp.Secret.Decrypt(sum)
		require.NoError(t, err)
		require.Equal(t, uint64(130), got)
	})

	t.Run("subtract", func(t *testing.T) {
		diff, err := SubtractCiphertexts(a, b)
		require.NoError(t, err)
		got, err := kp.Secret.Decrypt(diff)
		require.NoError(t, err)
		require.Equal(t, uint64(70), got)
	})

	t.Run("public amounts", func(t *testing.T) {
		ct, err := AddAmount(a, 11)
		require.NoError(t, err)
		ct, err = SubtractAmount(ct, 1)
		require.NoError(t, err)
		got, err := kp.Secret.Decrypt(ct)
		require.NoError(t, err)
		require.Equal(t, uint64(110), got)
	})

	t.Run("lo hi", func(t *testing.T) {
		lo, _, err := kp.Public.Encrypt(0x1234)
		require.NoError(t, err)
		hi, _, err := kp.Public.Encrypt(0x5)
		require.NoError(t, err)
		combined, err := CombineLoHi(lo, hi, 16)
		require.NoError(t, err)
		ok, err := kp.Secret.VerifyAmount(combined, 0x51234)
		require.NoError(t, err)
		require.True(t, ok)

		big, _, err := kp.Public.Encrypt(0x60000)
		require.NoError(t, err)
		rest, err := SubtractWithLoHi(big, lo, hi, 16)
		require.NoError(t, err)
		got, err := kp.Secret.Decrypt(rest)
		require.NoError(t, err)
		require.Equal(t, uint64(0x60000-0x51234), got)
	})

	t.Run("zero", func(t *testing.T) {
		got, err := kp.Secret.Decrypt(ZeroCiphertext())
		require.NoError(t, err)
		require.Equal(t, uint64(0), got)

		sum, err := AddCiphertexts(ZeroCiphertext(), a)
		require.NoError(t, err)
		require.Equal(t, a, sum)
	})
}

func TestDecryptOutOfBound(t *testing.T) {
	kp, err := NewKeypair()
	require.NoError(t, err)
	ct, err := kp.Public.EncryptWithOpening(1, ZeroOpening())
	require.NoError(t, err)
	// 0 - 1 wraps to r-1, far beyond the bound
	neg, err := SubtractAmount(ct, 2)
	require.NoError(t, err)
	_, err = kp.Secret.Decrypt(neg)
	require.ErrorIs(t, err, ErrDecryption)
}

func TestGroupedCiphertext(t *testing.T) {
	first, err := NewKeypair()
	require.NoError(t, err)
	second, err := NewKeypair()
	require.NoError(t, err)
	opening, err := NewOpening()
	require.NoError(t, err)

	g, err := EncryptGrouped2(first.Public, second.Public, 777, opening)
	require.NoError(t, err)

	got, err := first.Secret.Decrypt(g.Ciphertext(0))
	require.NoError(t, err)
	require.Equal(t, uint64(777), got)
	got, err = second.Secret.Decrypt(g.Ciphertext(1))
	require.NoError(t, err)
	require.Equal(t, uint64(777), got)

	require.True(t, g.Commitment().VerifyOpening(777, opening))
	require.False(t, g.Commitment().VerifyOpening(778, opening))
}

func TestInvalidEncodings(t *testing.T) {
	var garbage Ciphertext
	for i := range garbage {
		garbage[i] = 0xff
	}
	_, err := AddCiphertexts(garbage, ZeroCiphertext())
	require.ErrorIs(t, err, ErrInvalidPoint)

	var identity PublicKey
	inf := ZeroCiphertext().Commitment()
	copy(identity[:], inf[:])
	_, _, err = identity.Encrypt(1)
	require.ErrorIs(t, err, ErrInvalidPublicKey)

	_, err = KeypairFromSecret(&SecretKey{})
	require.ErrorIs(t, err, ErrInvalidSecretKey)
}

type hashSigner struct {
	addr common.Address
}

func (s hashSigner) Address() common.Address { return s.addr }

func (s hashSigner) Sign(message []byte) ([]byte, error) {
	digest := sha256.Sum256(append(s.addr[:], message...))
	return digest[:], nil
}

func TestDeriveKeypair(t *testing.T) {
	signer := hashSigner{addr: common.Address{1}}
	account := common.Address{2}

	a, err := DeriveKeypair(signer, account)
	require.NoError(t, err)
	b, err := DeriveKeypair(signer, account)
	require.NoError(t, err)
	require.Equal(t, a.Public, b.Public)

	c, err := DeriveKeypair(signer, common.Address{3})
	require.NoError(t, err)
	require.NotEqual(t, a.Public, c.Public)

	ct, _, err := a.Public.Encrypt(9)
	require.NoError(t, err)
	got, err := b.Secret.Decrypt(ct)
	require.NoError(t, err)
	require.Equal(t, uint64(9), got)
}

func TestKeypairFromSignature(t *testing.T) {
	a, err := KeypairFromSignature([]byte("signature one"))
	require.NoError(t, err)
	b, err := KeypairFromSignature([]byte("signature one"))
	require.NoError(t, err)
	c, err := KeypairFromSignature([]byte("signature two"))
	require.NoError(t, err)

	require.Equal(t, a.Public, b.Public)
	require.NotEqual(t, a.Public, c.Public)

	_, err = KeypairFromSignature(nil)
	require.ErrorIs(t, err, ErrInvalidSecretKey)
}
