package keeper

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

func (k Keeper) handleMsgWithdraw(store KVStore, msg *types.MsgWithdraw) error {
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

	eqData, err := k.getVerifiedProof(store, msg.EqualityProofContext, zk.ProofKindEquality)
	if err != nil {
		return err
	}
	rangeData, err := k.getVerifiedProof(store, msg.RangeProofContext, zk.ProofKindRange)
	if err != nil {
		return err
	}
	eq := eqData.(*zk.CiphertextCommitmentEqualityProofData).Context
	rng := rangeData.(*zk.BatchedRangeProofData).Context

	if eq.Pubkey != token.Confidential.ElGamalPubkey {
		return types.ErrStatementMismatch.Wrap("equality proof is not for the account key")
	}
	if !rangeMatches(rng, []elgamal.Commitment{eq.Commitment}, withdrawRangeBits) {
		return types.ErrStatementMismatch.Wrap("range proof does not cover the new balance")
	}
	newAvailable, err := elgamal.SubtractAmount(token.Confidential.AvailableBalance, msg.Amount)
	if err != nil {
		return types.ErrCiphertextMismatch.Wrap(err.Error())
	}
	if newAvailable != eq.Ciphertext {
		return types.ErrCiphertextMismatch.Wrapf("%s balance changed since the proofs were built", msg.Account)
	}
	amount, err := common.SafeAdd(token.Amount, msg.Amount)
	if err != nil {
		return types.ErrOverflow.Wrap(err.Error())
	}

	token.Amount = amount
	token.Confidential.AvailableBalance = newAvailable
	token.Confidential.DecryptableAvailableBalance = msg.NewDecryptableAvailableBalance
	return k.setToken(store, acct, token)
}
