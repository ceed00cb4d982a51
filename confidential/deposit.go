package confidential

import (
	"context"

	"cosmossdk.io/math"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// Deposit moves amount whole tokens from the public balance of acct into
// its pending confidential balance. No proofs are involved: the amount is
// public and the ledger encrypts it with a zero opening.
func (m *Manager) Deposit(ctx context.Context, acct *Account, amount math.LegacyDec) (*Settlement, error) {
	if err := m.requireOwned(acct); err != nil {
		return nil, err
	}
	units, err := common.ScaleAmount(amount, acct.Decimals)
	if err != nil {
		return nil, err
	}
	op := m.begin(OpDeposit, acct.Address, units)
	op.transition(StateAwaitingExecution)
	sig, err := m.submit(ctx, []common.Signer{acct.Owner}, &types.MsgDeposit{
		Account:  acct.Address,
		Mint:     acct.Mint,
		Owner:    acct.OwnerAddress,
		Amount:   units,
		Decimals: acct.Decimals,
	})
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	return op.settle(ctx, sig)
}
