package zk

import (
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// Point is a compressed curve point inside a proof.
type Point [elgamal.PointSize]byte

// Scalar is a canonical big-endian scalar inside a proof.
type Scalar [fr.Bytes]byte

func newPoint(p *bn254.G1Affine) Point {
	return Point(elgamal.EncodePoint(p))
}

func (p Point) decode() (bn254.G1Affine, error) {
	pt, err := elgamal.DecodePoint(p[:])
	if err != nil {
		return pt, fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	return pt, nil
}

func newScalar(s *fr.Element) Scalar {
	return Scalar(s.Bytes())
}

func (s Scalar) decode() (fr.Element, error) {
	e, err := elgamal.DecodeScalar(s[:])
	if err != nil {
		return e, fmt.Errorf("%w: %s", ErrInvalidProofData, err)
	}
	return e, nil
}

func decodeScalars(in ...Scalar) ([]fr.Element, error) {
	out := make([]fr.Element, len(in))
	for i, s := range in {
		e, err := s.decode()
		if err != nil {
			return nil, err
		}
		out[i] = e
	}
	return out, nil
}

func decodePoints(in ...Point) ([]bn254.G1Affine, error) {
	out := make([]bn254.G1Affine, len(in))
	for i, p := range in {
		pt, err := p.decode()
		if err != nil {
			return nil, err
		}
		out[i] = pt
	}
	return out, nil
}

// linear returns a*p + b*q.
func linear(a *fr.Element, p *bn254.G1Affine, b *fr.Element, q *bn254.G1Affine) bn254.G1Affine {
	ap := elgamal.MulPoint(p, a)
	bq := elgamal.MulPoint(q, b)
	return elgamal.AddPoints(&ap, &bq)
}

// response returns c*secret + blind.
func response(c, secret, blind *fr.Element) fr.Element {
	var z fr.Element
	z.Mul(c, secret)
	z.Add(&z, blind)
	return z
}

func randomScalars(n int) ([]fr.Element, error) {
	out := make([]fr.Element, n)
	for i := range out {
		s, err := elgamal.RandomScalar()
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}
