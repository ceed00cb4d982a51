package keystore

import (
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"

	"github.com/btcq-org/ctoken/common"
)

var ErrKeyNotFound = errors.New("key not found")

type PrivKey struct {
	Body []byte `json:"body"`
}

type Keystore interface {
	Get(keyName string) (PrivKey, error)
	Put(keyName string, value PrivKey) error
	Delete(keyName string) error
	List() ([]string, error)
}

// GenerateKey creates a new random secp256k1 private key
func GenerateKey() (*PrivKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, err
	}
	return &PrivKey{Body: priv.Serialize()}, nil
}

func GetOrCreateKey(kstore Keystore, keyName string) (*PrivKey, error) {
	privKey, err := kstore.Get(keyName)

	if errors.Is(err, ErrKeyNotFound) {
		newPrivKey, err := GenerateKey()
		if err != nil {
			return nil, err
		}
		err = kstore.Put(keyName, *newPrivKey)
		if err != nil {
			return nil, err
		}
		return newPrivKey, nil
	}
	if err != nil {
		return nil, err
	}
	return &privKey, nil
}

// Signer signs with a local secp256k1 key. Signatures are BIP-340 schnorr
// with deterministic nonces, which key derivation relies on.
type Signer struct {
	priv *btcec.PrivateKey
	addr common.Address
}

var _ common.Signer = (*Signer)(nil)

func NewSigner(key PrivKey) (*Signer, error) {
	if len(key.Body) != btcec.PrivKeyBytesLen {
		return nil, fmt.Errorf("keystore: invalid private key length %d", len(key.Body))
	}
	priv, pub := btcec.PrivKeyFromBytes(key.Body)
	addr, err := common.BytesToAddress(schnorr.SerializePubKey(pub))
	if err != nil {
		return nil, err
	}
	return &Signer{priv: priv, addr: addr}, nil
}

// GenerateSigner returns a signer for a fresh key that is not persisted.
// Used for accounts whose key only has to sign their creation.
func GenerateSigner() (*Signer, error) {
	key, err := GenerateKey()
	if err != nil {
		return nil, err
	}
	return NewSigner(*key)
}

// GetOrCreateSigner loads the named key, creating it when missing.
func GetOrCreateSigner(kstore Keystore, keyName string) (*Signer, error) {
	key, err := GetOrCreateKey(kstore, keyName)
	if err != nil {
		return nil, err
	}
	return NewSigner(*key)
}

// LoadSigner loads the named key.
func LoadSigner(kstore Keystore, keyName string) (*Signer, error) {
	key, err := kstore.Get(keyName)
	if err != nil {
		return nil, fmt.Errorf("keystore: fail to load key '%s': %w", keyName, err)
	}
	return NewSigner(key)
}

func (s *Signer) Address() common.Address {
	return s.addr
}

func (s *Signer) Sign(message []byte) ([]byte, error) {
	digest := common.SignatureDigest(message)
	sig, err := schnorr.Sign(s.priv, digest[:])
	if err != nil {
		return nil, fmt.Errorf("keystore: fail to sign: %w", err)
	}
	return sig.Serialize(), nil
}
