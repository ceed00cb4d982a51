// Package authenc is the owner-only balance encryption. The available balance
// of a confidential account is kept twice: as an ElGamal ciphertext the ledger
// can do arithmetic on, and as an authenticated ciphertext here that the owner
// can decrypt in constant time regardless of the amount.
package authenc

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"

	"github.com/btcq-org/ctoken/common"
)

const (
	KeySize = chacha20poly1305.KeySize
	// CiphertextSize is nonce || sealed(amount).
	CiphertextSize = chacha20poly1305.NonceSizeX + 8 + chacha20poly1305.Overhead

	// KeySeed is signed together with the account address to derive the key.
	KeySeed = "AeKey"

	hkdfInfo = "ctoken authenticated balance key"
)

var (
	ErrDecryption = errors.New("authenticated decryption failed")
	ErrInvalidKey = errors.New("invalid authenticated encryption key")
)

// Key is a symmetric key.
type Key [KeySize]byte

// Ciphertext is an encrypted u64 amount.
type Ciphertext [CiphertextSize]byte

// NewKey samples a random key.
func NewKey() (*Key, error) {
	var k Key
	if _, err := io.ReadFull(rand.Reader, k[:]); err != nil {
		return nil, fmt.Errorf("fail to sample key: %w", err)
	}
	return &k, nil
}

// DeriveKey derives the symmetric key of a token account from its owner's
// signer.
func DeriveKey(signer common.Signer, account common.Address) (*Key, error) {
	msg := make([]byte, 0, len(KeySeed)+common.AddressLength)
	msg = append(msg, KeySeed...)
	msg = append(msg, account[:]...)

	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("fail to sign key seed: %w", err)
	}
	return KeyFromSignature(sig)
}

// KeyFromSignature expands a seed signature into a key.
func KeyFromSignature(sig []byte) (*Key, error) {
	if len(sig) == 0 {
		return nil, fmt.Errorf("%w: empty signature", ErrInvalidKey)
	}
	var k Key
	r := hkdf.New(sha256.New, sig, nil, []byte(hkdfInfo))
	if _, err := io.ReadFull(r, k[:]); err != nil {
		return nil, fmt.Errorf("fail to expand key: %w", err)
	}
	return &k, nil
}

// Encrypt seals amount under a fresh random nonce.
func (k *Key) Encrypt(amount uint64) (Ciphertext, error) {
	aead, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return Ciphertext{}, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}

	var ct Ciphertext
	nonce := ct[:chacha20poly1305.NonceSizeX]
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return Ciphertext{}, fmt.Errorf("fail to sample nonce: %w", err)
	}

	var plaintext [8]byte
	binary.LittleEndian.PutUint64(plaintext[:], amount)
	sealed := aead.Seal(nil, nonce, plaintext[:], nil)
	copy(ct[chacha20poly1305.NonceSizeX:], sealed)
	return ct, nil
}

// Decrypt opens ct. It fails with ErrDecryption when ct was not produced by
// this key or has been modified.
func (k *Key) Decrypt(ct Ciphertext) (uint64, error) {
	aead, err := chacha20poly1305.NewX(k[:])
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInvalidKey, err)
	}
	nonce := ct[:chacha20poly1305.NonceSizeX]
	plaintext, err := aead.Open(nil, nonce, ct[chacha20poly1305.NonceSizeX:], nil)
	if err != nil {
		return 0, ErrDecryption
	}
	return binary.LittleEndian.Uint64(plaintext), nil
}

func (ct Ciphertext) IsEmpty() bool {
	return ct == Ciphertext{}
}

func (ct Ciphertext) String() string {
	return fmt.Sprintf("%x", ct[:])
}
