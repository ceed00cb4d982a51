package confidential

import (
	"fmt"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// Keys are the encryption keys of one token account. They are derived from
// the owner's signer and the account address and never leave the client.
type Keys struct {
	ElGamal *elgamal.Keypair
	AE      *authenc.Key
}

// DeriveKeys recovers the keys of account from its owner.
func DeriveKeys(owner common.Signer, account common.Address) (*Keys, error) {
	kp, err := elgamal.DeriveKeypair(owner, account)
	if err != nil {
		return nil, fmt.Errorf("fail to derive elgamal keypair: %w", err)
	}
	ae, err := authenc.DeriveKey(owner, account)
	if err != nil {
		return nil, fmt.Errorf("fail to derive ae key: %w", err)
	}
	return &Keys{ElGamal: kp, AE: ae}, nil
}

// Mint is a handle on a confidential mint.
type Mint struct {
	Address   common.Address
	Authority common.Address
	Decimals  uint8
}

// Account is a handle on a confidential token account. Handles of accounts
// owned by someone else carry no Owner and no Keys and can only receive.
type Account struct {
	Address      common.Address
	Mint         common.Address
	Decimals     uint8
	OwnerAddress common.Address
	Pubkey       elgamal.PublicKey

	Owner common.Signer
	Keys  *Keys
}

// HasKeys reports whether the handle can decrypt and spend.
func (a *Account) HasKeys() bool {
	return a.Owner != nil && a.Keys != nil
}

func (a *Account) requireKeys() error {
	if !a.HasKeys() {
		return fmt.Errorf("account %s: no owner keys", a.Address)
	}
	return nil
}
