package keeper

import (
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// handleMsgApplyPendingBalance folds the pending limbs into the available
// balance. The owner decrypted exactly ExpectedPendingBalanceCreditCounter
// credits; if more arrived since, the new decryptable balance would be wrong
// and the instruction is rejected.
func (k Keeper) handleMsgApplyPendingBalance(store KVStore, msg *types.MsgApplyPendingBalance) error {
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
	c := &token.Confidential
	if c.PendingBalanceCreditCounter != msg.ExpectedPendingBalanceCreditCounter {
		return types.ErrPendingBalanceCounterMismatch.Wrapf("expected %d, account has %d",
			msg.ExpectedPendingBalanceCreditCounter, c.PendingBalanceCreditCounter)
	}

	pending, err := elgamal.CombineLoHi(c.PendingBalanceLo, c.PendingBalanceHi, zk.TransferAmountLoBits)
	if err != nil {
		return types.ErrCiphertextMismatch.Wrapf("pending balance: %s", err)
	}
	available, err := elgamal.AddCiphertexts(c.AvailableBalance, pending)
	if err != nil {
		return types.ErrCiphertextMismatch.Wrapf("available balance: %s", err)
	}

	zero := elgamal.ZeroCiphertext()
	c.AvailableBalance = available
	c.DecryptableAvailableBalance = msg.NewDecryptableAvailableBalance
	c.PendingBalanceLo = zero
	c.PendingBalanceHi = zero
	c.ExpectedPendingBalanceCreditCounter = msg.ExpectedPendingBalanceCreditCounter
	c.ActualPendingBalanceCreditCounter = c.PendingBalanceCreditCounter
	c.PendingBalanceCreditCounter = 0
	return k.setToken(store, acct, token)
}
