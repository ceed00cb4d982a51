package keeper

import (
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

func (k Keeper) handleMsgConfigureAccount(store KVStore, msg *types.MsgConfigureAccount) error {
	_, mint, err := k.getMint(store, msg.Mint)
	if err != nil {
		return err
	}
	acct, token, err := k.getOwnedToken(store, msg.Account, msg.Mint, msg.Owner)
	if err != nil {
		return err
	}
	if token.Confidential.Configured {
		return types.ErrAccountAlreadyConfigured.Wrapf("%s", msg.Account)
	}
	if err := msg.Proof.Verify(); err != nil {
		return types.ErrProofVerification.Wrapf("pubkey validity: %s", err)
	}

	zero := elgamal.ZeroCiphertext()
	token.Confidential = types.ConfidentialTransferAccount{
		Configured:                         true,
		Approved:                           mint.AutoApproveNewAccounts,
		ElGamalPubkey:                      msg.Proof.Context.Pubkey,
		PendingBalanceLo:                   zero,
		PendingBalanceHi:                   zero,
		AvailableBalance:                   zero,
		DecryptableAvailableBalance:        msg.DecryptableZeroBalance,
		AllowConfidentialCredits:           true,
		AllowNonConfidentialCredits:        true,
		MaximumPendingBalanceCreditCounter: msg.MaximumPendingBalanceCreditCounter,
	}
	k.logger.Debug().Str("account", msg.Account.String()).Bool("approved", mint.AutoApproveNewAccounts).Msg("account configured")
	return k.setToken(store, acct, token)
}

func (k Keeper) handleMsgEnableConfidentialCredits(store KVStore, msg *types.MsgEnableConfidentialCredits) error {
	acct, err := k.GetAccount(store, msg.Account)
	if err != nil {
		return err
	}
	token, err := acct.TokenAccount()
	if err != nil {
		return err
	}
	if !token.Owner.Equals(msg.Owner) {
		return types.ErrUnauthorized.Wrapf("%s is not the owner of %s", msg.Owner, msg.Account)
	}
	if !token.Confidential.Configured {
		return types.ErrAccountNotConfigured.Wrapf("%s", msg.Account)
	}
	token.Confidential.AllowConfidentialCredits = true
	return k.setToken(store, acct, token)
}
