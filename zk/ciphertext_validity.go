package zk

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// BatchedGroupedCiphertextValidityProofContext states that two grouped
// ciphertexts, the low and high limb of a transfer amount, are well formed
// under FirstPubkey (source) and SecondPubkey (destination): each has a
// single opening shared by its commitment and both handles.
type BatchedGroupedCiphertextValidityProofContext struct {
	FirstPubkey         elgamal.PublicKey
	SecondPubkey        elgamal.PublicKey
	GroupedCiphertextLo elgamal.GroupedCiphertext2
	GroupedCiphertextHi elgamal.GroupedCiphertext2
}

type BatchedGroupedCiphertextValidityProof struct {
	Y0 Point
	Y1 Point
	Y2 Point
	Zr Scalar
	Zx Scalar
}

type BatchedGroupedCiphertextValidityProofData struct {
	Context BatchedGroupedCiphertextValidityProofContext
	Proof   BatchedGroupedCiphertextValidityProof
}

var _ ProofData = (*BatchedGroupedCiphertextValidityProofData)(nil)

func (c BatchedGroupedCiphertextValidityProofContext) transcript() *Transcript {
	t := NewTranscript(TagCiphertextValidity)
	t.Append("first-pubkey", c.FirstPubkey[:])
	t.Append("second-pubkey", c.SecondPubkey[:])
	t.Append("grouped-ciphertext-lo", c.GroupedCiphertextLo[:])
	t.Append("grouped-ciphertext-hi", c.GroupedCiphertextHi[:])
	return t
}

// batchScalar folds the lo and hi limbs into one with the challenge t: lo + t*hi.
func batchScalar(lo, hi, t *fr.Element) fr.Element {
	var out fr.Element
	out.Mul(hi, t)
	out.Add(&out, lo)
	return out
}

func batchPoint(lo, hi *bn254.G1Affine, t *fr.Element) bn254.G1Affine {
	thi := elgamal.MulPoint(hi, t)
	return elgamal.AddPoints(lo, &thi)
}

// NewBatchedGroupedCiphertextValidityProofData proves both limbs at once.
func NewBatchedGroupedCiphertextValidityProofData(
	first, second elgamal.PublicKey,
	lo, hi elgamal.GroupedCiphertext2,
	amountLo, amountHi uint64,
	openingLo, openingHi *elgamal.Opening,
) (*BatchedGroupedCiphertextValidityProofData, error) {
	ctx := BatchedGroupedCiphertextValidityProofContext{
		FirstPubkey:         first,
		SecondPubkey:        second,
		GroupedCiphertextLo: lo,
		GroupedCiphertextHi: hi,
	}
	p1, err := first.Point()
	if err != nil {
		return nil, fmt.Errorf("%w: first pubkey: %s", ErrProofGeneration, err)
	}
	p2, err := second.Point()
	if err != nil {
		return nil, fmt.Errorf("%w: second pubkey: %s", ErrProofGeneration, err)
	}

	tr := ctx.transcript()
	t := tr.ChallengeScalar("t")

	xLo, xHi := elgamal.ScalarFromUint64(amountLo), elgamal.ScalarFromUint64(amountHi)
	rLo, rHi := openingLo.Scalar(), openingHi.Scalar()
	x := batchScalar(&xLo, &xHi, &t)
	r := batchScalar(&rLo, &rHi, &t)

	blinds, err := randomScalars(2)
	if err != nil {
		return nil, err
	}
	yr, yx := blinds[0], blinds[1]

	Y0 := linear(&yr, &elgamal.H, &yx, &elgamal.G)
	Y1 := elgamal.MulPoint(&p1, &yr)
	Y2 := elgamal.MulPoint(&p2, &yr)

	tr.AppendPoint("Y0", newPoint(&Y0))
	tr.AppendPoint("Y1", newPoint(&Y1))
	tr.AppendPoint("Y2", newPoint(&Y2))
	c := tr.ChallengeScalar("c")

	zr := response(&c, &r, &yr)
	zx := response(&c, &x, &yx)

	return &BatchedGroupedCiphertextValidityProofData{
		Context: ctx,
		Proof: BatchedGroupedCiphertextValidityProof{
			Y0: newPoint(&Y0),
			Y1: newPoint(&Y1),
			Y2: newPoint(&Y2),
			Zr: newScalar(&zr),
			Zx: newScalar(&zx),
		},
	}, nil
}

func (d *BatchedGroupedCiphertextValidityProofData) Kind() ProofKind {
	return ProofKindCiphertextValidity
}

func decodeGrouped(g elgamal.GroupedCiphertext2) (c, d1, d2 bn254.G1Affine, err error) {
	if c, err = g.Commitment().Point(); err != nil {
		return
	}
	if d1, err = g.Handle(0).Point(); err != nil {
		return
	}
	d2, err = g.Handle(1).Point()
	return
}

// Verify folds the limbs with t and checks
//
//	zr*H + zx*G == c*C  + Y0
//	zr*P1       == c*D1 + Y1
//	zr*P2       == c*D2 + Y2
func (d *BatchedGroupedCiphertextValidityProofData) Verify() error {
	p1, err := d.Context.FirstPubkey.Point()
	if err != nil {
		return fmt.Errorf("%w: first pubkey: %s", ErrInvalidProofData, err)
	}
	p2, err := d.Context.SecondPubkey.Point()
	if err != nil {
		return fmt.Errorf("%w: second pubkey: %s", ErrInvalidProofData, err)
	}
	cLo, d1Lo, d2Lo, err := decodeGrouped(d.Context.GroupedCiphertextLo)
	if err != nil {
		return fmt.Errorf("%w: grouped ciphertext lo: %s", ErrInvalidProofData, err)
	}
	cHi, d1Hi, d2Hi, err := decodeGrouped(d.Context.GroupedCiphertextHi)
	if err != nil {
		return fmt.Errorf("%w: grouped ciphertext hi: %s", ErrInvalidProofData, err)
	}
	ys, err := decodePoints(d.Proof.Y0, d.Proof.Y1, d.Proof.Y2)
	if err != nil {
		return err
	}
	zs, err := decodeScalars(d.Proof.Zr, d.Proof.Zx)
	if err != nil {
		return err
	}
	zr, zx := zs[0], zs[1]

	tr := d.Context.transcript()
	t := tr.ChallengeScalar("t")
	tr.AppendPoint("Y0", d.Proof.Y0)
	tr.AppendPoint("Y1", d.Proof.Y1)
	tr.AppendPoint("Y2", d.Proof.Y2)
	c := tr.ChallengeScalar("c")

	C := batchPoint(&cLo, &cHi, &t)
	D1 := batchPoint(&d1Lo, &d1Hi, &t)
	D2 := batchPoint(&d2Lo, &d2Hi, &t)

	lhs0 := linear(&zr, &elgamal.H, &zx, &elgamal.G)
	cC := elgamal.MulPoint(&C, &c)
	rhs0 := elgamal.AddPoints(&cC, &ys[0])

	lhs1 := elgamal.MulPoint(&p1, &zr)
	cD1 := elgamal.MulPoint(&D1, &c)
	rhs1 := elgamal.AddPoints(&cD1, &ys[1])

	lhs2 := elgamal.MulPoint(&p2, &zr)
	cD2 := elgamal.MulPoint(&D2, &c)
	rhs2 := elgamal.AddPoints(&cD2, &ys[2])

	if !lhs0.Equal(&rhs0) || !lhs1.Equal(&rhs1) || !lhs2.Equal(&rhs2) {
		return fmt.Errorf("%w: grouped ciphertext validity", ErrProofVerification)
	}
	return nil
}
