package keeper

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

func (k Keeper) getMint(store KVStore, addr common.Address) (*types.Account, *types.Mint, error) {
	acct, err := k.GetAccount(store, addr)
	if err != nil {
		return nil, nil, err
	}
	mint, err := acct.Mint()
	if err != nil {
		return nil, nil, err
	}
	return acct, mint, nil
}

func (k Keeper) getToken(store KVStore, addr, mint common.Address) (*types.Account, *types.TokenAccount, error) {
	acct, err := k.GetAccount(store, addr)
	if err != nil {
		return nil, nil, err
	}
	token, err := acct.TokenAccount()
	if err != nil {
		return nil, nil, err
	}
	if !token.Mint.Equals(mint) {
		return nil, nil, types.ErrMintMismatch.Wrapf("account %s holds %s, not %s", addr, token.Mint, mint)
	}
	return acct, token, nil
}

// getOwnedToken loads a token account and checks owner controls it.
func (k Keeper) getOwnedToken(store KVStore, addr, mint, owner common.Address) (*types.Account, *types.TokenAccount, error) {
	acct, token, err := k.getToken(store, addr, mint)
	if err != nil {
		return nil, nil, err
	}
	if !token.Owner.Equals(owner) {
		return nil, nil, types.ErrUnauthorized.Wrapf("%s is not the owner of %s", owner, addr)
	}
	return acct, token, nil
}

// getConfidentialToken is getOwnedToken for accounts that must be
// configured and approved for confidential transfers.
func (k Keeper) getConfidentialToken(store KVStore, addr, mint, owner common.Address) (*types.Account, *types.TokenAccount, error) {
	acct, token, err := k.getOwnedToken(store, addr, mint, owner)
	if err != nil {
		return nil, nil, err
	}
	if err := requireConfidential(addr, token); err != nil {
		return nil, nil, err
	}
	return acct, token, nil
}

func requireConfidential(addr common.Address, token *types.TokenAccount) error {
	if !token.Confidential.Configured {
		return types.ErrAccountNotConfigured.Wrapf("%s", addr)
	}
	if !token.Confidential.Approved {
		return types.ErrAccountNotApproved.Wrapf("%s", addr)
	}
	return nil
}

func (k Keeper) setToken(store KVStore, acct *types.Account, token *types.TokenAccount) error {
	if err := acct.SetData(types.AccountKindToken, token); err != nil {
		return err
	}
	return k.SetAccount(store, acct)
}

// getVerifiedProof loads the proof stored in a verified context of the given kind.
func (k Keeper) getVerifiedProof(store KVStore, addr common.Address, kind zk.ProofKind) (zk.ProofData, error) {
	acct, err := k.GetAccount(store, addr)
	if err != nil {
		return nil, types.ErrInvalidProofContext.Wrapf("%s: %s", addr, err)
	}
	state, err := acct.ProofContext()
	if err != nil {
		return nil, err
	}
	if state.Kind != kind {
		return nil, types.ErrInvalidProofContext.Wrapf("%s holds a %s proof, expected %s", addr, state.Kind, kind)
	}
	if !state.Verified {
		return nil, types.ErrProofNotVerified.Wrapf("%s", addr)
	}
	return state.ProofData()
}

// checkCreditable reports whether token can receive one more pending credit.
func checkCreditable(addr common.Address, token *types.TokenAccount) error {
	c := &token.Confidential
	if !c.AllowConfidentialCredits {
		return types.ErrConfidentialCreditsDisabled.Wrapf("%s", addr)
	}
	if c.PendingBalanceCreditCounter >= c.MaximumPendingBalanceCreditCounter {
		return types.ErrMaximumPendingCreditsExceeded.Wrapf("%s has %d pending credits", addr, c.PendingBalanceCreditCounter)
	}
	return nil
}
