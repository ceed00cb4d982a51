package keeper

import (
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

var (
	transferRangeBits = []uint8{zk.BalanceBits, zk.TransferAmountLoBits, zk.TransferAmountHiBits}
	withdrawRangeBits = []uint8{zk.BalanceBits}
)

// handleMsgTransfer debits the source available balance and credits the
// destination pending balance in one step. The three referenced proofs
// must describe the same transfer, and the equality proof must be built on
// the current source balance.
func (k Keeper) handleMsgTransfer(store KVStore, msg *types.MsgTransfer) error {
	srcAcct, src, err := k.getConfidentialToken(store, msg.Source, msg.Mint, msg.Owner)
	if err != nil {
		return err
	}
	dstAcct, dst, err := k.getToken(store, msg.Destination, msg.Mint)
	if err != nil {
		return err
	}
	if err := requireConfidential(msg.Destination, dst); err != nil {
		return err
	}
	if err := checkCreditable(msg.Destination, dst); err != nil {
		return err
	}

	eqData, err := k.getVerifiedProof(store, msg.EqualityProofContext, zk.ProofKindEquality)
	if err != nil {
		return err
	}
	validityData, err := k.getVerifiedProof(store, msg.CiphertextValidityProofContext, zk.ProofKindCiphertextValidity)
	if err != nil {
		return err
	}
	rangeData, err := k.getVerifiedProof(store, msg.RangeProofContext, zk.ProofKindRange)
	if err != nil {
		return err
	}
	eq := eqData.(*zk.CiphertextCommitmentEqualityProofData).Context
	validity := validityData.(*zk.BatchedGroupedCiphertextValidityProofData).Context
	rng := rangeData.(*zk.BatchedRangeProofData).Context

	if eq.Pubkey != src.Confidential.ElGamalPubkey {
		return types.ErrStatementMismatch.Wrap("equality proof is not for the source key")
	}
	if validity.FirstPubkey != src.Confidential.ElGamalPubkey || validity.SecondPubkey != dst.Confidential.ElGamalPubkey {
		return types.ErrStatementMismatch.Wrap("ciphertext validity proof keys do not match source and destination")
	}
	lo, hi := validity.GroupedCiphertextLo, validity.GroupedCiphertextHi
	if !rangeMatches(rng, []elgamal.Commitment{eq.Commitment, lo.Commitment(), hi.Commitment()}, transferRangeBits) {
		return types.ErrStatementMismatch.Wrap("range proof does not cover the new balance and transfer amount")
	}

	newAvailable, err := elgamal.SubtractWithLoHi(src.Confidential.AvailableBalance, lo.Ciphertext(0), hi.Ciphertext(0), zk.TransferAmountLoBits)
	if err != nil {
		return types.ErrCiphertextMismatch.Wrap(err.Error())
	}
	if newAvailable != eq.Ciphertext {
		return types.ErrCiphertextMismatch.Wrapf("source %s balance changed since the proofs were built", msg.Source)
	}

	pendingLo, err := elgamal.AddCiphertexts(dst.Confidential.PendingBalanceLo, lo.Ciphertext(1))
	if err != nil {
		return types.ErrCiphertextMismatch.Wrapf("destination pending lo: %s", err)
	}
	pendingHi, err := elgamal.AddCiphertexts(dst.Confidential.PendingBalanceHi, hi.Ciphertext(1))
	if err != nil {
		return types.ErrCiphertextMismatch.Wrapf("destination pending hi: %s", err)
	}

	src.Confidential.AvailableBalance = newAvailable
	src.Confidential.DecryptableAvailableBalance = msg.NewSourceDecryptableAvailableBalance
	dst.Confidential.PendingBalanceLo = pendingLo
	dst.Confidential.PendingBalanceHi = pendingHi
	dst.Confidential.PendingBalanceCreditCounter++

	if err := k.setToken(store, srcAcct, src); err != nil {
		return err
	}
	return k.setToken(store, dstAcct, dst)
}

func rangeMatches(ctx zk.BatchedRangeProofContext, commitments []elgamal.Commitment, bits []uint8) bool {
	if len(ctx.Commitments) != len(commitments) || len(ctx.BitLengths) != len(bits) {
		return false
	}
	for i := range commitments {
		if ctx.Commitments[i] != commitments[i] || ctx.BitLengths[i] != bits[i] {
			return false
		}
	}
	return true
}
