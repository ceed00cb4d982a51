package keeper

import (
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// handleMsgDeposit moves public tokens into the pending balance. The amount
// is public, so the pending limbs are updated without a proof.
func (k Keeper) handleMsgDeposit(store KVStore, msg *types.MsgDeposit) error {
	_, mint, err := k.getMint(store, msg.Mint)
	if err != nil {
		return err
	}
	if mint.Decimals != msg.Decimals {
		return types.ErrDecimalsMismatch.Wrapf("mint has %d decimals, instruction says %d", mint.Decimals, msg.Decimals)
	}
	acct, token, err := k.getConfidentialToken(store, msg.Account, msg.Mint, msg.Owner)
	if err != nil {
		return err
	}
	if token.Amount < msg.Amount {
		return types.ErrInsufficientFunds.Wrapf("%s holds %d, deposit is %d", msg.Account, token.Amount, msg.Amount)
	}
	if err := checkCreditable(msg.Account, token); err != nil {
		return err
	}

	lo, hi := zk.SplitAmount(msg.Amount)
	c := &token.Confidential
	if c.PendingBalanceLo, err = elgamal.AddAmount(c.PendingBalanceLo, lo); err != nil {
		return types.ErrCiphertextMismatch.Wrapf("pending balance lo: %s", err)
	}
	if c.PendingBalanceHi, err = elgamal.AddAmount(c.PendingBalanceHi, hi); err != nil {
		return types.ErrCiphertextMismatch.Wrapf("pending balance hi: %s", err)
	}
	c.PendingBalanceCreditCounter++
	token.Amount -= msg.Amount
	return k.setToken(store, acct, token)
}
