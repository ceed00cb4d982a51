package elgamal

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"

	"github.com/btcq-org/ctoken/common"
)

// KeySeed is signed together with the account address to derive the key.
const KeySeed = "ElGamalSecretKey"

// DeriveKeypair derives the ElGamal key pair of a token account from its
// owner's signer. The same signer and address always give the same keys, so
// the secret never needs to be stored.
func DeriveKeypair(signer common.Signer, account common.Address) (*Keypair, error) {
	msg := make([]byte, 0, len(KeySeed)+common.AddressLength)
	msg = append(msg, KeySeed...)
	msg = append(msg, account[:]...)

	sig, err := signer.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("fail to sign key seed: %w", err)
	}
	return KeypairFromSignature(sig)
}

// KeypairFromSignature hashes a seed signature into a secret scalar.
func KeypairFromSignature(sig []byte) (*Keypair, error) {
	if len(sig) == 0 {
		return nil, fmt.Errorf("%w: empty signature", ErrInvalidSecretKey)
	}
	digest := sha3.Sum512(sig)
	var s fr.Element
	s.SetBytes(digest[:])
	sk, err := NewSecretKeyFromScalar(s)
	if err != nil {
		return nil, err
	}
	return KeypairFromSecret(sk)
}
