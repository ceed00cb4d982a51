package zk

import (
	"fmt"

	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// PubkeyValidityProofContext is the public statement: the prover knows the
// secret key s behind Pubkey, i.e. s*P = H.
type PubkeyValidityProofContext struct {
	Pubkey elgamal.PublicKey
}

type PubkeyValidityProof struct {
	Y Point
	Z Scalar
}

type PubkeyValidityProofData struct {
	Context PubkeyValidityProofContext
	Proof   PubkeyValidityProof
}

var _ ProofData = (*PubkeyValidityProofData)(nil)

func (c PubkeyValidityProofContext) transcript() *Transcript {
	t := NewTranscript(TagPubkeyValidity)
	t.Append("pubkey", c.Pubkey[:])
	return t
}

// NewPubkeyValidityProofData proves knowledge of the secret key of kp.
func NewPubkeyValidityProofData(kp *elgamal.Keypair) (*PubkeyValidityProofData, error) {
	ctx := PubkeyValidityProofContext{Pubkey: kp.Public}
	p, err := kp.Public.Point()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}

	y, err := elgamal.RandomScalar()
	if err != nil {
		return nil, err
	}
	Y := elgamal.MulPoint(&p, &y)

	t := ctx.transcript()
	t.AppendPoint("Y", newPoint(&Y))
	c := t.ChallengeScalar("c")

	s := kp.Secret.Scalar()
	z := response(&c, &s, &y)

	return &PubkeyValidityProofData{
		Context: ctx,
		Proof: PubkeyValidityProof{
			Y: newPoint(&Y),
			Z: newScalar(&z),
		},
	}, nil
}

func (d *PubkeyValidityProofData) Kind() ProofKind {
	return ProofKindPubkeyValidity
}

// Verify checks z*P == c*H + Y.
func (d *PubkeyValidityProofData) Verify() error {
	p, err := d.Context.Pubkey.Point()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	Y, err := d.Proof.Y.decode()
	if err != nil {
		return err
	}
	z, err := d.Proof.Z.decode()
	if err != nil {
		return err
	}

	t := d.Context.transcript()
	t.AppendPoint("Y", d.Proof.Y)
	c := t.ChallengeScalar("c")

	lhs := elgamal.MulPoint(&p, &z)
	cH := elgamal.MulPoint(&elgamal.H, &c)
	rhs := elgamal.AddPoints(&cH, &Y)
	if !lhs.Equal(&rhs) {
		return fmt.Errorf("%w: pubkey validity", ErrProofVerification)
	}
	return nil
}
