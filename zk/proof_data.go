package zk

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
)

// ProofKind identifies the statement a proof attests to.
type ProofKind uint8

const (
	ProofKindUnknown ProofKind = iota
	ProofKindPubkeyValidity
	ProofKindEquality
	ProofKindCiphertextValidity
	ProofKindRange
)

func (k ProofKind) String() string {
	switch k {
	case ProofKindPubkeyValidity:
		return "PubkeyValidity"
	case ProofKindEquality:
		return "Equality"
	case ProofKindCiphertextValidity:
		return "CiphertextValidity"
	case ProofKindRange:
		return "Range"
	default:
		return "Unknown"
	}
}

// ProofData is a public statement together with its proof.
type ProofData interface {
	Kind() ProofKind
	// Verify returns nil when the proof holds for the statement.
	Verify() error
}

// EncodeProofData serializes d as kind || rlp(d).
func EncodeProofData(d ProofData) ([]byte, error) {
	body, err := rlp.EncodeToBytes(d)
	if err != nil {
		return nil, fmt.Errorf("fail to encode %s proof: %w", d.Kind(), err)
	}
	return append([]byte{byte(d.Kind())}, body...), nil
}

// DecodeProofData is the inverse of EncodeProofData.
func DecodeProofData(b []byte) (ProofData, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("%w: empty payload", ErrInvalidProofData)
	}
	var d ProofData
	switch ProofKind(b[0]) {
	case ProofKindPubkeyValidity:
		d = new(PubkeyValidityProofData)
	case ProofKindEquality:
		d = new(CiphertextCommitmentEqualityProofData)
	case ProofKindCiphertextValidity:
		d = new(BatchedGroupedCiphertextValidityProofData)
	case ProofKindRange:
		d = new(BatchedRangeProofData)
	default:
		return nil, fmt.Errorf("%w: unknown proof kind %d", ErrInvalidProofData, b[0])
	}
	if err := rlp.DecodeBytes(b[1:], d); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	return d, nil
}

// DecodeProofDataKind decodes b and checks it carries the expected kind.
func DecodeProofDataKind(b []byte, kind ProofKind) (ProofData, error) {
	d, err := DecodeProofData(b)
	if err != nil {
		return nil, err
	}
	if d.Kind() != kind {
		return nil, fmt.Errorf("%w: expected %s proof, got %s", ErrInvalidProofData, kind, d.Kind())
	}
	return d, nil
}
