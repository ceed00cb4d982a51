package elgamal

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// PointSize is the size of a compressed G1 point.
const PointSize = bn254.SizeOfG1AffineCompressed

const (
	pedersenHMessage = "ctoken pedersen opening base"
	pedersenHDomain  = "CTOKEN-V01-CS01-with-BN254G1_XMD:SHA-256_SVDW_RO_"
)

var (
	// G is the standard BN254 G1 generator, the base for amounts.
	G bn254.G1Affine
	// H is the base for openings. It is hashed to the curve so nobody knows
	// its discrete log relative to G.
	H bn254.G1Affine

	ErrInvalidPoint = errors.New("invalid curve point")
)

func init() {
	_, _, G, _ = bn254.Generators()

	var err error
	H, err = bn254.HashToG1([]byte(pedersenHMessage), []byte(pedersenHDomain))
	if err != nil {
		panic(fmt.Sprintf("elgamal: fail to derive pedersen base: %s", err))
	}
}

// EncodePoint compresses p.
func EncodePoint(p *bn254.G1Affine) [PointSize]byte {
	return p.Bytes()
}

// DecodePoint decompresses and validates a point.
func DecodePoint(b []byte) (bn254.G1Affine, error) {
	var p bn254.G1Affine
	if len(b) != PointSize {
		return p, fmt.Errorf("%w: length %d", ErrInvalidPoint, len(b))
	}
	if _, err := p.SetBytes(b); err != nil {
		return p, fmt.Errorf("%w: %s", ErrInvalidPoint, err)
	}
	return p, nil
}

// MulPoint returns s*p.
func MulPoint(p *bn254.G1Affine, s *fr.Element) bn254.G1Affine {
	var out bn254.G1Affine
	out.ScalarMultiplication(p, s.BigInt(new(big.Int)))
	return out
}

// MulPointUint64 returns v*p.
func MulPointUint64(p *bn254.G1Affine, v uint64) bn254.G1Affine {
	var out bn254.G1Affine
	out.ScalarMultiplication(p, new(big.Int).SetUint64(v))
	return out
}

// AddPoints returns a+b.
func AddPoints(a, b *bn254.G1Affine) bn254.G1Affine {
	var out bn254.G1Affine
	out.Add(a, b)
	return out
}

// SubPoints returns a-b.
func SubPoints(a, b *bn254.G1Affine) bn254.G1Affine {
	var neg, out bn254.G1Affine
	neg.Neg(b)
	out.Add(a, &neg)
	return out
}

// ScalarFromUint64 lifts v into the scalar field.
func ScalarFromUint64(v uint64) fr.Element {
	var s fr.Element
	s.SetUint64(v)
	return s
}

// RandomScalar samples a uniformly random non-zero scalar.
func RandomScalar() (fr.Element, error) {
	var s fr.Element
	for {
		if _, err := s.SetRandom(); err != nil {
			return s, fmt.Errorf("fail to sample scalar: %w", err)
		}
		if !s.IsZero() {
			return s, nil
		}
	}
}

// EncodeScalar returns the canonical big-endian encoding of s.
func EncodeScalar(s *fr.Element) [fr.Bytes]byte {
	return s.Bytes()
}

// DecodeScalar parses a canonical scalar encoding.
func DecodeScalar(b []byte) (fr.Element, error) {
	var s fr.Element
	if err := s.SetBytesCanonical(b); err != nil {
		return s, fmt.Errorf("invalid scalar: %w", err)
	}
	return s, nil
}
