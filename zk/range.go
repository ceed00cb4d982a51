package zk

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/btcq-org/ctoken/crypto/elgamal"
)

const (
	// MaxRangeBitLength is the widest single value a range proof covers.
	MaxRangeBitLength = 64
	// MaxBatchedRangeBits caps the total bits of one batched proof.
	MaxBatchedRangeBits = 128
)

// BatchedRangeProofContext states that Commitments[i] hides a value in
// [0, 2^BitLengths[i]).
type BatchedRangeProofContext struct {
	Commitments []elgamal.Commitment
	BitLengths  []uint8
}

// BitProof commits to one bit B = bG + rH and proves b is 0 or 1 with an OR
// of two discrete-log proofs base H: B = rH or B - G = rH. C1 is implied by
// C0 + C1 = c, where c is the challenge of the whole batch.
type BitProof struct {
	B  Point
	A0 Point
	A1 Point
	C0 Scalar
	Z0 Scalar
	Z1 Scalar
}

type BatchedRangeProof struct {
	Bits []BitProof
}

type BatchedRangeProofData struct {
	Context BatchedRangeProofContext
	Proof   BatchedRangeProof
}

var _ ProofData = (*BatchedRangeProofData)(nil)

func (c BatchedRangeProofContext) validate() (int, error) {
	if len(c.Commitments) == 0 {
		return 0, fmt.Errorf("no commitments")
	}
	if len(c.Commitments) != len(c.BitLengths) {
		return 0, fmt.Errorf("%d commitments with %d bit lengths", len(c.Commitments), len(c.BitLengths))
	}
	total := 0
	for _, n := range c.BitLengths {
		if n == 0 || n > MaxRangeBitLength {
			return 0, fmt.Errorf("bit length %d out of range", n)
		}
		total += int(n)
	}
	if total > MaxBatchedRangeBits {
		return 0, fmt.Errorf("%d bits exceed batch maximum %d", total, MaxBatchedRangeBits)
	}
	return total, nil
}

func (c BatchedRangeProofContext) transcript() *Transcript {
	t := NewTranscript(TagRange)
	for i := range c.Commitments {
		t.Append("commitment", c.Commitments[i][:])
		t.AppendUint64("bit-length", uint64(c.BitLengths[i]))
	}
	return t
}

// powerOfTwo returns 2^i as a scalar, i < 64.
func powerOfTwo(i int) fr.Element {
	return elgamal.ScalarFromUint64(uint64(1) << uint(i))
}

type bitWitness struct {
	bit   uint64
	r     fr.Element
	w     fr.Element
	cFake fr.Element
	zFake fr.Element
}

// NewBatchedRangeProofData proves amounts[i] < 2^bitLengths[i] for the
// commitments amounts[i]*G + openings[i]*H.
func NewBatchedRangeProofData(
	commitments []elgamal.Commitment,
	amounts []uint64,
	bitLengths []uint8,
	openings []*elgamal.Opening,
) (*BatchedRangeProofData, error) {
	ctx := BatchedRangeProofContext{
		Commitments: commitments,
		BitLengths:  bitLengths,
	}
	total, err := ctx.validate()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}
	if len(amounts) != len(commitments) || len(openings) != len(commitments) {
		return nil, fmt.Errorf("%w: mismatched range proof inputs", ErrProofGeneration)
	}

	t := ctx.transcript()
	bits := make([]BitProof, 0, total)
	witnesses := make([]bitWitness, 0, total)

	for k, amount := range amounts {
		n := int(bitLengths[k])
		if n < 64 && amount>>uint(n) != 0 {
			return nil, fmt.Errorf("%w: %d does not fit in %d bits", ErrValueOutOfRange, amount, n)
		}

		// pick r_0..r_{n-2} at random and solve for r_{n-1} so that
		// sum(2^i * r_i) equals the commitment opening
		rs, err := randomScalars(n)
		if err != nil {
			return nil, err
		}
		remaining := openings[k].Scalar()
		for i := 0; i < n-1; i++ {
			weight := powerOfTwo(i)
			var wr fr.Element
			wr.Mul(&weight, &rs[i])
			remaining.Sub(&remaining, &wr)
		}
		top := powerOfTwo(n - 1)
		top.Inverse(&top)
		rs[n-1].Mul(&remaining, &top)

		for i := 0; i < n; i++ {
			bit := (amount >> uint(i)) & 1
			b := elgamal.CommitPoint(elgamal.ScalarFromUint64(bit), rs[i])

			rnd, err := randomScalars(3)
			if err != nil {
				return nil, err
			}
			wit := bitWitness{bit: bit, r: rs[i], w: rnd[0], cFake: rnd[1], zFake: rnd[2]}

			aReal := elgamal.MulPoint(&elgamal.H, &wit.w)
			// simulated branch: A = z*H - c*(B - fake*G)
			target := b
			if bit == 0 {
				target = elgamal.SubPoints(&b, &elgamal.G)
			}
			zH := elgamal.MulPoint(&elgamal.H, &wit.zFake)
			cT := elgamal.MulPoint(&target, &wit.cFake)
			aFake := elgamal.SubPoints(&zH, &cT)

			proof := BitProof{B: newPoint(&b)}
			if bit == 0 {
				proof.A0, proof.A1 = newPoint(&aReal), newPoint(&aFake)
			} else {
				proof.A0, proof.A1 = newPoint(&aFake), newPoint(&aReal)
			}
			bits = append(bits, proof)
			witnesses = append(witnesses, wit)
		}
	}

	for i := range bits {
		t.AppendPoint("B", bits[i].B)
		t.AppendPoint("A0", bits[i].A0)
		t.AppendPoint("A1", bits[i].A1)
	}
	c := t.ChallengeScalar("c")

	for i := range bits {
		wit := &witnesses[i]
		var cReal fr.Element
		cReal.Sub(&c, &wit.cFake)
		zReal := response(&cReal, &wit.r, &wit.w)
		if wit.bit == 0 {
			bits[i].C0 = newScalar(&cReal)
			bits[i].Z0 = newScalar(&zReal)
			bits[i].Z1 = newScalar(&wit.zFake)
		} else {
			bits[i].C0 = newScalar(&wit.cFake)
			bits[i].Z0 = newScalar(&wit.zFake)
			bits[i].Z1 = newScalar(&zReal)
		}
	}

	return &BatchedRangeProofData{
		Context: ctx,
		Proof:   BatchedRangeProof{Bits: bits},
	}, nil
}

func (d *BatchedRangeProofData) Kind() ProofKind {
	return ProofKindRange
}

// Verify checks that the weighted bit commitments of each value sum to its
// commitment and that every bit proof holds:
//
//	z0*H == A0 + c0*B
//	z1*H == A1 + (c-c0)*(B-G)
func (d *BatchedRangeProofData) Verify() error {
	total, err := d.Context.validate()
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	if len(d.Proof.Bits) != total {
		return fmt.Errorf("%w: %d bit proofs for %d bits", ErrInvalidProofData, len(d.Proof.Bits), total)
	}

	bitPoints := make([]bn254.G1Affine, total)
	for i := range d.Proof.Bits {
		b, err := d.Proof.Bits[i].B.decode()
		if err != nil {
			return err
		}
		bitPoints[i] = b
	}

	offset := 0
	for k, n := range d.Context.BitLengths {
		expected, err := d.Context.Commitments[k].Point()
		if err != nil {
			return fmt.Errorf("%w: %s", ErrInvalidProofData, err)
		}
		var sum bn254.G1Affine
		for i := 0; i < int(n); i++ {
			weighted := elgamal.MulPointUint64(&bitPoints[offset+i], uint64(1)<<uint(i))
			sum = elgamal.AddPoints(&sum, &weighted)
		}
		if !sum.Equal(&expected) {
			return fmt.Errorf("%w: bit commitments do not sum to commitment %d", ErrProofVerification, k)
		}
		offset += int(n)
	}

	t := d.Context.transcript()
	for i := range d.Proof.Bits {
		t.AppendPoint("B", d.Proof.Bits[i].B)
		t.AppendPoint("A0", d.Proof.Bits[i].A0)
		t.AppendPoint("A1", d.Proof.Bits[i].A1)
	}
	c := t.ChallengeScalar("c")

	for i := range d.Proof.Bits {
		bp := &d.Proof.Bits[i]
		as, err := decodePoints(bp.A0, bp.A1)
		if err != nil {
			return err
		}
		zs, err := decodeScalars(bp.C0, bp.Z0, bp.Z1)
		if err != nil {
			return err
		}
		c0, z0, z1 := zs[0], zs[1], zs[2]
		var c1 fr.Element
		c1.Sub(&c, &c0)

		b := bitPoints[i]
		bMinusG := elgamal.SubPoints(&b, &elgamal.G)

		lhs0 := elgamal.MulPoint(&elgamal.H, &z0)
		c0B := elgamal.MulPoint(&b, &c0)
		rhs0 := elgamal.AddPoints(&as[0], &c0B)

		lhs1 := elgamal.MulPoint(&elgamal.H, &z1)
		c1B := elgamal.MulPoint(&bMinusG, &c1)
		rhs1 := elgamal.AddPoints(&as[1], &c1B)

		if !lhs0.Equal(&rhs0) || !lhs1.Equal(&rhs1) {
			return fmt.Errorf("%w: range bit %d", ErrProofVerification, i)
		}
	}
	return nil
}
