package confidential

import (
	"context"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// ApplyPending folds the pending balance of acct into its available
// balance. It submits even when nothing is pending so the acknowledged
// credit counter catches up.
func (m *Manager) ApplyPending(ctx context.Context, acct *Account) (*Settlement, error) {
	if err := m.requireOwned(acct); err != nil {
		return nil, err
	}
	op := m.begin(OpApplyPending, acct.Address, 0)
	token, err := m.tokenState(ctx, acct.Address)
	if err != nil {
		return nil, op.fail(ctx, err)
	}
	ct := token.Confidential
	if !ct.Configured {
		return nil, op.fail(ctx, types.ErrAccountNotConfigured.Wrapf("%s", acct.Address))
	}

	op.transition(StatePendingProofs)
	pending, err := decryptPending(acct.Keys, ct)
	if err != nil {
		return nil, op.fail(ctx, err)
	}
	available, err := acct.Keys.AE.Decrypt(ct.DecryptableAvailableBalance)
	if err != nil {
		return nil, op.fail(ctx, ErrDecryption.Wrapf("available balance: %s", err))
	}
	total, err := common.SafeAdd(available, pending)
	if err != nil {
		return nil, op.fail(ctx, ErrDecryption.Wrapf("new available balance: %s", err))
	}
	decryptable, err := acct.Keys.AE.Encrypt(total)
	if err != nil {
		return nil, op.fail(ctx, proofConstructionError(err))
	}
	op.amount = pending

	op.transition(StateAwaitingExecution)
	sig, err := m.submit(ctx, []common.Signer{acct.Owner}, &types.MsgApplyPendingBalance{
		Account:                             acct.Address,
		Owner:                               acct.OwnerAddress,
		ExpectedPendingBalanceCreditCounter: ct.PendingBalanceCreditCounter,
		NewDecryptableAvailableBalance:      decryptable,
	})
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	return op.settle(ctx, sig)
}
