package zk

import (
	"fmt"

	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// CiphertextCommitmentEqualityProofContext states that Ciphertext (under
// Pubkey) and Commitment hide the same amount.
type CiphertextCommitmentEqualityProofContext struct {
	Pubkey     elgamal.PublicKey
	Ciphertext elgamal.Ciphertext
	Commitment elgamal.Commitment
}

type CiphertextCommitmentEqualityProof struct {
	Y0 Point
	Y1 Point
	Y2 Point
	Zs Scalar
	Zx Scalar
	Zr Scalar
}

type CiphertextCommitmentEqualityProofData struct {
	Context CiphertextCommitmentEqualityProofContext
	Proof   CiphertextCommitmentEqualityProof
}

var _ ProofData = (*CiphertextCommitmentEqualityProofData)(nil)

func (c CiphertextCommitmentEqualityProofContext) transcript() *Transcript {
	t := NewTranscript(TagEquality)
	t.Append("pubkey", c.Pubkey[:])
	t.Append("ciphertext", c.Ciphertext[:])
	t.Append("commitment", c.Commitment[:])
	return t
}

// NewCiphertextCommitmentEqualityProofData proves that ct, which kp can
// decrypt to amount, and commitment = amount*G + opening*H hide the same
// value. The ciphertext's own opening is not needed, which is what allows
// proving statements about ciphertexts the ledger computed homomorphically.
func NewCiphertextCommitmentEqualityProofData(
	kp *elgamal.Keypair,
	ct elgamal.Ciphertext,
	commitment elgamal.Commitment,
	amount uint64,
	opening *elgamal.Opening,
) (*CiphertextCommitmentEqualityProofData, error) {
	ctx := CiphertextCommitmentEqualityProofContext{
		Pubkey:     kp.Public,
		Ciphertext: ct,
		Commitment: commitment,
	}
	p, err := kp.Public.Point()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}
	_, d, err := ct.Points()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}

	blinds, err := randomScalars(3)
	if err != nil {
		return nil, err
	}
	ys, yx, yr := blinds[0], blinds[1], blinds[2]

	Y0 := elgamal.MulPoint(&p, &ys)
	Y1 := linear(&yx, &elgamal.G, &ys, &d)
	Y2 := linear(&yx, &elgamal.G, &yr, &elgamal.H)

	t := ctx.transcript()
	t.AppendPoint("Y0", newPoint(&Y0))
	t.AppendPoint("Y1", newPoint(&Y1))
	t.AppendPoint("Y2", newPoint(&Y2))
	c := t.ChallengeScalar("c")

	s := kp.Secret.Scalar()
	x := elgamal.ScalarFromUint64(amount)
	r := opening.Scalar()
	zs := response(&c, &s, &ys)
	zx := response(&c, &x, &yx)
	zr := response(&c, &r, &yr)

	return &CiphertextCommitmentEqualityProofData{
		Context: ctx,
		Proof: CiphertextCommitmentEqualityProof{
			Y0: newPoint(&Y0),
			Y1: newPoint(&Y1),
			Y2: newPoint(&Y2),
			Zs: newScalar(&zs),
			Zx: newScalar(&zx),
			Zr: newScalar(&zr),
		},
	}, nil
}

func (d *CiphertextCommitmentEqualityProofData) Kind() ProofKind {
	return ProofKindEquality
}

// Verify checks
//
//	zs*P         == c*H  + Y0
//	zx*G + zs*D  == c*C  + Y1
//	zx*G + zr*H  == c*C' + Y2
func (d *CiphertextCommitmentEqualityProofData) Verify() error {
	p, err := d.Context.Pubkey.Point()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	C, D, err := d.Context.Ciphertext.Points()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	commitment, err := d.Context.Commitment.Point()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	ys, err := decodePoints(d.Proof.Y0, d.Proof.Y1, d.Proof.Y2)
	if err != nil {
		return err
	}
	zs, err := decodeScalars(d.Proof.Zs, d.Proof.Zx, d.Proof.Zr)
	if err != nil {
		return err
	}

	t := d.Context.transcript()
	t.AppendPoint("Y0", d.Proof.Y0)
	t.AppendPoint("Y1", d.Proof.Y1)
	t.AppendPoint("Y2", d.Proof.Y2)
	c := t.ChallengeScalar("c")

	lhs0 := elgamal.MulPoint(&p, &zs[0])
	cH := elgamal.MulPoint(&elgamal.H, &c)
	rhs0 := elgamal.AddPoints(&cH, &ys[0])

	lhs1 := linear(&zs[1], &elgamal.G, &zs[0], &D)
	cC := elgamal.MulPoint(&C, &c)
	rhs1 := elgamal.AddPoints(&cC, &ys[1])

	lhs2 := linear(&zs[1], &elgamal.G, &zs[2], &elgamal.H)
	cCommitment := elgamal.MulPoint(&commitment, &c)
	rhs2 := elgamal.AddPoints(&cCommitment, &ys[2])

	if !lhs0.Equal(&rhs0) || !lhs1.Equal(&rhs1) || !lhs2.Equal(&rhs2) {
		return fmt.Errorf("%w: ciphertext commitment equality", ErrProofVerification)
	}
	return nil
}
