package elgamal

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Commitment is a compressed Pedersen commitment C = xG + rH.
type Commitment [PointSize]byte

// Opening is the randomness r of a commitment. The same opening is shared by
// the commitment and the decrypt handles of a ciphertext.
type Opening struct {
	scalar fr.Element
}

// NewOpening samples a fresh random opening.
func NewOpening() (*Opening, error) {
	s, err := RandomScalar()
	if err != nil {
		return nil, err
	}
	return &Opening{scalar: s}, nil
}

// NewOpeningFromScalar wraps an existing scalar, used when openings are
// derived from other openings (e.g. bit decompositions in range proofs).
func NewOpeningFromScalar(s fr.Element) *Opening {
	return &Opening{scalar: s}
}

// ZeroOpening is the opening of the deterministic encodings the ledger
// produces for public amounts.
func ZeroOpening() *Opening {
	return &Opening{}
}

func (o *Opening) Scalar() fr.Element {
	return o.scalar
}

// Commit computes amount*G + r*H.
func Commit(amount uint64, opening *Opening) Commitment {
	p := CommitPoint(ScalarFromUint64(amount), opening.scalar)
	return Commitment(EncodePoint(&p))
}

// NewCommitment commits to amount under a fresh opening.
func NewCommitment(amount uint64) (Commitment, *Opening, error) {
	opening, err := NewOpening()
	if err != nil {
		return Commitment{}, nil, err
	}
	return Commit(amount, opening), opening, nil
}

// CommitPoint computes x*G + r*H for arbitrary scalars.
func CommitPoint(x, r fr.Element) bn254.G1Affine {
	xG := MulPoint(&G, &x)
	rH := MulPoint(&H, &r)
	return AddPoints(&xG, &rH)
}

func (c Commitment) Point() (bn254.G1Affine, error) {
	return DecodePoint(c[:])
}

// VerifyOpening reports whether c opens to amount under opening.
func (c Commitment) VerifyOpening(amount uint64, opening *Opening) bool {
	return c == Commit(amount, opening)
}
