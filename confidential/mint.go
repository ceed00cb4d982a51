package confidential

import (
	"context"
	"fmt"

	"cosmossdk.io/math"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// CreateMint creates a confidential mint at the address of mintSigner. New
// accounts are approved automatically and the mint has no auditor.
func (m *Manager) CreateMint(ctx context.Context, mintSigner common.Signer, authority common.Address, decimals uint8) (*Mint, error) {
	op := m.begin(OpCreateMint, mintSigner.Address(), 0)
	rent, err := m.backend.GetRentExemptMinimum(ctx, types.MintSpace)
	if err != nil {
		return nil, op.fail(ctx, err)
	}
	op.transition(StateAwaitingExecution)
	sig, err := m.submit(ctx, []common.Signer{mintSigner},
		&types.MsgCreateAccount{
			From:       m.payer.Address(),
			NewAccount: mintSigner.Address(),
			Lamports:   rent,
			Space:      types.MintSpace,
		},
		&types.MsgInitializeMint{
			Mint:                   mintSigner.Address(),
			MintAuthority:          authority,
			Decimals:               decimals,
			AutoApproveNewAccounts: true,
		},
	)
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	if _, err := op.settle(ctx, sig); err != nil {
		return nil, err
	}
	return &Mint{Address: mintSigner.Address(), Authority: authority, Decimals: decimals}, nil
}

// LoadMint reads the mint at addr.
func (m *Manager) LoadMint(ctx context.Context, addr common.Address) (*Mint, error) {
	acct, err := m.backend.GetAccountState(ctx, addr)
	if err != nil {
		return nil, fmt.Errorf("fail to get mint %s: %w", addr, err)
	}
	mint, err := acct.Mint()
	if err != nil {
		return nil, err
	}
	return &Mint{Address: addr, Authority: mint.MintAuthority, Decimals: mint.Decimals}, nil
}

// MintTo mints public tokens into account. amount is in whole tokens.
func (m *Manager) MintTo(ctx context.Context, mint *Mint, authority common.Signer, account common.Address, amount math.LegacyDec) (*Settlement, error) {
	units, err := common.ScaleAmount(amount, mint.Decimals)
	if err != nil {
		return nil, err
	}
	op := m.begin(OpMintTo, account, units)
	op.transition(StateAwaitingExecution)
	sig, err := m.submit(ctx, []common.Signer{authority}, &types.MsgMintTo{
		Mint:      mint.Address,
		Account:   account,
		Authority: authority.Address(),
		Amount:    units,
	})
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	return op.settle(ctx, sig)
}
