package testutil

import (
	"crypto/rand"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/keystore"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// GetRandomSigner returns a fresh in-memory signer, it panics on failure.
func GetRandomSigner() *keystore.Signer {
	s, err := keystore.GenerateSigner()
	if err != nil {
		panic(err)
	}
	return s
}

// GetRandomAddress returns random address bytes. The address is not a valid
// public key, use GetRandomSigner when signatures are needed.
func GetRandomAddress() common.Address {
	var addr common.Address
	if _, err := rand.Read(addr[:]); err != nil {
		panic(err)
	}
	return addr
}

// NewTokenAccountState builds the ledger state of a token account holding
// token, as GetAccountState would return it.
func NewTokenAccountState(addr common.Address, token *types.TokenAccount) *types.Account {
	acct := &types.Account{
		Address:  addr,
		Lamports: types.RentExemptMinimum(types.TokenAccountSpace),
		Space:    types.TokenAccountSpace,
	}
	if err := acct.SetData(types.AccountKindToken, token); err != nil {
		panic(err)
	}
	return acct
}
