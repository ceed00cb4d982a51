package confidential

import (
	"context"
	"fmt"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// OpenAccount creates a token account for owner at the address of
// accountSigner, configures it for confidential transfers and enables
// confidential credits, all in one transaction.
func (m *Manager) OpenAccount(ctx context.Context, mint *Mint, owner, accountSigner common.Signer) (*Account, error) {
	addr := accountSigner.Address()
	op := m.begin(OpOpenAccount, addr, 0)

	op.transition(StatePendingProofs)
	keys, err := DeriveKeys(owner, addr)
	if err != nil {
		return nil, op.fail(ctx, proofConstructionError(err))
	}
	proof, err := m.generator.PubkeyValidity(keys.ElGamal)
	if err != nil {
		return nil, op.fail(ctx, classifyProofError(err))
	}
	op.proofGenerated(proof.Kind())
	zero, err := keys.AE.Encrypt(0)
	if err != nil {
		return nil, op.fail(ctx, proofConstructionError(err))
	}
	rent, err := m.backend.GetRentExemptMinimum(ctx, types.TokenAccountSpace)
	if err != nil {
		return nil, op.fail(ctx, err)
	}

	op.transition(StateAwaitingExecution)
	sig, err := m.submit(ctx, []common.Signer{accountSigner, owner},
		&types.MsgCreateAccount{
			From:       m.payer.Address(),
			NewAccount: addr,
			Lamports:   rent,
			Space:      types.TokenAccountSpace,
		},
		&types.MsgInitializeAccount{Account: addr, Mint: mint.Address, Owner: owner.Address()},
		&types.MsgConfigureAccount{
			Account:                            addr,
			Mint:                               mint.Address,
			Owner:                              owner.Address(),
			DecryptableZeroBalance:             zero,
			MaximumPendingBalanceCreditCounter: m.maxPendingCredits,
			Proof:                              *proof,
		},
		&types.MsgEnableConfidentialCredits{Account: addr, Owner: owner.Address()},
	)
	if err != nil {
		return nil, op.fail(ctx, submissionError(err))
	}
	op.submitted(sig)
	if _, err := op.settle(ctx, sig); err != nil {
		return nil, err
	}
	return &Account{
		Address:      addr,
		Mint:         mint.Address,
		Decimals:     mint.Decimals,
		OwnerAddress: owner.Address(),
		Pubkey:       keys.ElGamal.Public,
		Owner:        owner,
		Keys:         keys,
	}, nil
}

// LoadAccount recovers the handle of an existing account from its owner.
// The keys are derived again and checked against the account's public key.
func (m *Manager) LoadAccount(ctx context.Context, owner common.Signer, addr common.Address) (*Account, error) {
	acct, err := m.RemoteAccount(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !acct.OwnerAddress.Equals(owner.Address()) {
		return nil, types.ErrUnauthorized.Wrapf("%s is not the owner of %s", owner.Address(), addr)
	}
	keys, err := DeriveKeys(owner, addr)
	if err != nil {
		return nil, err
	}
	if keys.ElGamal.Public != acct.Pubkey {
		return nil, ErrDecryption.Wrapf("derived key does not match account %s", addr)
	}
	acct.Owner = owner
	acct.Keys = keys
	return acct, nil
}

// RemoteAccount returns a receive-only handle on someone else's account.
func (m *Manager) RemoteAccount(ctx context.Context, addr common.Address) (*Account, error) {
	token, err := m.tokenState(ctx, addr)
	if err != nil {
		return nil, err
	}
	if !token.Confidential.Configured {
		return nil, types.ErrAccountNotConfigured.Wrapf("%s", addr)
	}
	mint, err := m.LoadMint(ctx, token.Mint)
	if err != nil {
		return nil, err
	}
	return &Account{
		Address:      addr,
		Mint:         token.Mint,
		Decimals:     mint.Decimals,
		OwnerAddress: token.Owner,
		Pubkey:       token.Confidential.ElGamalPubkey,
	}, nil
}

func (m *Manager) requireOwned(acct *Account) error {
	if err := acct.requireKeys(); err != nil {
		return fmt.Errorf("%w: %w", ErrDecryption, err)
	}
	return nil
}
