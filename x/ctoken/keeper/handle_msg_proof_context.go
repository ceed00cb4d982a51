package keeper

import (
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// handleMsgCreateProofContext stores a proof so a later instruction can
// reference it. Pubkey validity proofs are only ever carried inline.
func (k Keeper) handleMsgCreateProofContext(store KVStore, msg *types.MsgCreateProofContext) error {
	acct, err := k.getUninitialized(store, msg.Context)
	if err != nil {
		return err
	}
	data, err := zk.DecodeProofData(msg.Payload)
	if err != nil {
		return types.ErrInvalidProofData.Wrap(err.Error())
	}
	if data.Kind() == zk.ProofKindPubkeyValidity {
		return types.ErrInvalidProofContext.Wrap("pubkey validity proofs are not stored in contexts")
	}
	if msg.Verify {
		if err := data.Verify(); err != nil {
			return types.ErrProofVerification.Wrapf("%s: %s", data.Kind(), err)
		}
	}
	state := &types.ProofContextState{
		Kind:      data.Kind(),
		Authority: msg.Authority,
		Verified:  msg.Verify,
		Payload:   msg.Payload,
	}
	if err := acct.SetData(types.AccountKindProofContext, state); err != nil {
		return err
	}
	return k.SetAccount(store, acct)
}

func (k Keeper) handleMsgVerifyProof(store KVStore, msg *types.MsgVerifyProof) error {
	acct, err := k.GetAccount(store, msg.Context)
	if err != nil {
		return err
	}
	state, err := acct.ProofContext()
	if err != nil {
		return err
	}
	if !state.Authority.Equals(msg.Authority) {
		return types.ErrUnauthorized.Wrapf("%s is not the authority of %s", msg.Authority, msg.Context)
	}
	if state.Verified {
		return types.ErrProofAlreadyVerified.Wrapf("%s", msg.Context)
	}
	data, err := state.ProofData()
	if err != nil {
		return err
	}
	if err := data.Verify(); err != nil {
		return types.ErrProofVerification.Wrapf("%s: %s", data.Kind(), err)
	}
	state.Verified = true
	if err := acct.SetData(types.AccountKindProofContext, state); err != nil {
		return err
	}
	return k.SetAccount(store, acct)
}

// handleMsgCloseProofContext deletes the context and returns its lamports.
func (k Keeper) handleMsgCloseProofContext(store KVStore, msg *types.MsgCloseProofContext) error {
	acct, err := k.GetAccount(store, msg.Context)
	if err != nil {
		return err
	}
	state, err := acct.ProofContext()
	if err != nil {
		return err
	}
	if !state.Authority.Equals(msg.Authority) {
		return types.ErrUnauthorized.Wrapf("%s is not the authority of %s", msg.Authority, msg.Context)
	}
	if err := k.DeleteAccount(store, msg.Context); err != nil {
		return err
	}
	return k.Credit(store, msg.Destination, acct.Lamports)
}
