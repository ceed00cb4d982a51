package zk

import "github.com/btcq-org/ctoken/crypto/elgamal"

// ProofBackend produces the individual proofs. The generator only sequences
// calls to it, so an alternative proving system can be plugged in without
// touching the balance logic.
type ProofBackend interface {
	ProvePubkeyValidity(kp *elgamal.Keypair) (*PubkeyValidityProofData, error)
	ProveEquality(
		kp *elgamal.Keypair,
		ct elgamal.Ciphertext,
		commitment elgamal.Commitment,
		amount uint64,
		opening *elgamal.Opening,
	) (*CiphertextCommitmentEqualityProofData, error)
	ProveCiphertextValidity(
		first, second elgamal.PublicKey,
		lo, hi elgamal.GroupedCiphertext2,
		amountLo, amountHi uint64,
		openingLo, openingHi *elgamal.Opening,
	) (*BatchedGroupedCiphertextValidityProofData, error)
	ProveRange(
		commitments []elgamal.Commitment,
		amounts []uint64,
		bitLengths []uint8,
		openings []*elgamal.Opening,
	) (*BatchedRangeProofData, error)
}

// SigmaBackend is the default backend built on the sigma protocols in this
// package.
type SigmaBackend struct{}

var _ ProofBackend = SigmaBackend{}

func (SigmaBackend) ProvePubkeyValidity(kp *elgamal.Keypair) (*PubkeyValidityProofData, error) {
	return NewPubkeyValidityProofData(kp)
}

func (SigmaBackend) ProveEquality(
	kp *elgamal.Keypair,
	ct elgamal.Ciphertext,
	commitment elgamal.Commitment,
	amount uint64,
	opening *elgamal.Opening,
) (*CiphertextCommitmentEqualityProofData, error) {
	return NewCiphertextCommitmentEqualityProofData(kp, ct, commitment, amount, opening)
}

func (SigmaBackend) ProveCiphertextValidity(
	first, second elgamal.PublicKey,
	lo, hi elgamal.GroupedCiphertext2,
	amountLo, amountHi uint64,
	openingLo, openingHi *elgamal.Opening,
) (*BatchedGroupedCiphertextValidityProofData, error) {
	return NewBatchedGroupedCiphertextValidityProofData(first, second, lo, hi, amountLo, amountHi, openingLo, openingHi)
}

func (SigmaBackend) ProveRange(
	commitments []elgamal.Commitment,
	amounts []uint64,
	bitLengths []uint8,
	openings []*elgamal.Opening,
) (*BatchedRangeProofData, error) {
	return NewBatchedRangeProofData(commitments, amounts, bitLengths, openings)
}
