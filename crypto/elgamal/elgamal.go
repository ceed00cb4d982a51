// Package elgamal implements twisted ElGamal encryption over BN254 G1.
//
// A ciphertext of amount m under public key P = s^-1 * H is the pair
// (C, D) = (mG + rH, rP). C is a Pedersen commitment to m, so proofs about
// committed values apply directly to ciphertexts. Decryption recovers
// mG = C - sD and solves a bounded discrete log.
package elgamal

import (
	"errors"
	"fmt"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

const (
	// CiphertextSize is the encoded size of a commitment plus one handle.
	CiphertextSize = 2 * PointSize
)

var (
	ErrInvalidSecretKey = errors.New("invalid elgamal secret key")
	ErrInvalidPublicKey = errors.New("invalid elgamal public key")
	ErrDecryption       = errors.New("elgamal decryption failed")
)

// PublicKey is the compressed point P = s^-1 * H.
type PublicKey [PointSize]byte

// DecryptHandle is the compressed point D = r * P.
type DecryptHandle [PointSize]byte

// Ciphertext is a commitment followed by a decrypt handle.
type Ciphertext [CiphertextSize]byte

// SecretKey is the scalar s.
type SecretKey struct {
	scalar fr.Element
}

// Keypair holds an ElGamal key pair.
type Keypair struct {
	Public PublicKey
	Secret *SecretKey
}

// NewKeypair samples a random key pair.
func NewKeypair() (*Keypair, error) {
	s, err := RandomScalar()
	if err != nil {
		return nil, err
	}
	return KeypairFromSecret(&SecretKey{scalar: s})
}

// NewSecretKeyFromScalar wraps s, rejecting zero.
func NewSecretKeyFromScalar(s fr.Element) (*SecretKey, error) {
	if s.IsZero() {
		return nil, ErrInvalidSecretKey
	}
	return &SecretKey{scalar: s}, nil
}

// KeypairFromSecret computes the public key of sk.
func KeypairFromSecret(sk *SecretKey) (*Keypair, error) {
	if sk == nil || sk.scalar.IsZero() {
		return nil, ErrInvalidSecretKey
	}
	var inv fr.Element
	inv.Inverse(&sk.scalar)
	p := MulPoint(&H, &inv)
	return &Keypair{
		Public: PublicKey(EncodePoint(&p)),
		Secret: sk,
	}, nil
}

func (sk *SecretKey) Scalar() fr.Element {
	return sk.scalar
}

// Point decodes the key and rejects the identity.
func (pk PublicKey) Point() (bn254.G1Affine, error) {
	p, err := DecodePoint(pk[:])
	if err != nil {
		return p, fmt.Errorf("%w: %s", ErrInvalidPublicKey, err)
	}
	if p.IsInfinity() {
		return p, fmt.Errorf("%w: identity", ErrInvalidPublicKey)
	}
	return p, nil
}

func (pk PublicKey) IsEmpty() bool {
	return pk == PublicKey{}
}

func (pk PublicKey) String() string {
	return fmt.Sprintf("%x", pk[:])
}

// DecryptHandle computes r*P for the given opening.
func (pk PublicKey) DecryptHandle(opening *Opening) (DecryptHandle, error) {
	p, err := pk.Point()
	if err != nil {
		return DecryptHandle{}, err
	}
	d := MulPoint(&p, &opening.scalar)
	return DecryptHandle(EncodePoint(&d)), nil
}

// EncryptWithOpening encrypts amount using the supplied opening.
func (pk PublicKey) EncryptWithOpening(amount uint64, opening *Opening) (Ciphertext, error) {
	handle, err := pk.DecryptHandle(opening)
	if err != nil {
		return Ciphertext{}, err
	}
	return NewCiphertext(Commit(amount, opening), handle), nil
}

// Encrypt encrypts amount under a fresh opening.
func (pk PublicKey) Encrypt(amount uint64) (Ciphertext, *Opening, error) {
	opening, err := NewOpening()
	if err != nil {
		return Ciphertext{}, nil, err
	}
	ct, err := pk.EncryptWithOpening(amount, opening)
	if err != nil {
		return Ciphertext{}, nil, err
	}
	return ct, opening, nil
}

func (h DecryptHandle) Point() (bn254.G1Affine, error) {
	return DecodePoint(h[:])
}

// NewCiphertext concatenates a commitment and a handle.
func NewCiphertext(c Commitment, h DecryptHandle) Ciphertext {
	var ct Ciphertext
	copy(ct[:PointSize], c[:])
	copy(ct[PointSize:], h[:])
	return ct
}

// ZeroCiphertext is the encryption of zero with a zero opening. It decrypts
// to zero under every key.
func ZeroCiphertext() Ciphertext {
	var inf bn254.G1Affine
	enc := EncodePoint(&inf)
	return NewCiphertext(Commitment(enc), DecryptHandle(enc))
}

func (ct Ciphertext) Commitment() Commitment {
	var c Commitment
	copy(c[:], ct[:PointSize])
	return c
}

func (ct Ciphertext) Handle() DecryptHandle {
	var h DecryptHandle
	copy(h[:], ct[PointSize:])
	return h
}

func (ct Ciphertext) String() string {
	return fmt.Sprintf("%x", ct[:])
}

// Points decodes both components of the ciphertext.
func (ct Ciphertext) Points() (c, d bn254.G1Affine, err error) {
	c, err = DecodePoint(ct[:PointSize])
	if err != nil {
		return c, d, err
	}
	d, err = DecodePoint(ct[PointSize:])
	return c, d, err
}

func ciphertextFromPoints(c, d *bn254.G1Affine) Ciphertext {
	return NewCiphertext(Commitment(EncodePoint(c)), DecryptHandle(EncodePoint(d)))
}

// DecryptPoint returns mG = C - sD.
func (sk *SecretKey) DecryptPoint(ct Ciphertext) (bn254.G1Affine, error) {
	c, d, err := ct.Points()
	if err != nil {
		return bn254.G1Affine{}, err
	}
	sd := MulPoint(&d, &sk.scalar)
	return SubPoints(&c, &sd), nil
}

// Decrypt recovers amounts up to DecryptBound.
func (sk *SecretKey) Decrypt(ct Ciphertext) (uint64, error) {
	m, err := sk.DecryptPoint(ct)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrDecryption, err)
	}
	return solveDiscreteLog(&m)
}

// VerifyAmount reports whether ct encrypts amount under sk. Unlike Decrypt it
// works for any amount.
func (sk *SecretKey) VerifyAmount(ct Ciphertext, amount uint64) (bool, error) {
	m, err := sk.DecryptPoint(ct)
	if err != nil {
		return false, err
	}
	expected := MulPointUint64(&G, amount)
	return m.Equal(&expected), nil
}

// AddCiphertexts returns a ciphertext of the sum of the plaintexts. Both
// inputs must be under the same key.
func AddCiphertexts(a, b Ciphertext) (Ciphertext, error) {
	ac, ad, err := a.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	bc, bd, err := b.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	c := AddPoints(&ac, &bc)
	d := AddPoints(&ad, &bd)
	return ciphertextFromPoints(&c, &d), nil
}

// SubtractCiphertexts returns a ciphertext of a - b.
func SubtractCiphertexts(a, b Ciphertext) (Ciphertext, error) {
	ac, ad, err := a.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	bc, bd, err := b.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	c := SubPoints(&ac, &bc)
	d := SubPoints(&ad, &bd)
	return ciphertextFromPoints(&c, &d), nil
}

// ScaleCiphertext returns a ciphertext of factor times the plaintext.
func ScaleCiphertext(ct Ciphertext, factor uint64) (Ciphertext, error) {
	c, d, err := ct.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	sc := MulPointUint64(&c, factor)
	sd := MulPointUint64(&d, factor)
	return ciphertextFromPoints(&sc, &sd), nil
}

// AddAmount adds a public amount to the plaintext of ct.
func AddAmount(ct Ciphertext, amount uint64) (Ciphertext, error) {
	c, d, err := ct.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	mg := MulPointUint64(&G, amount)
	out := AddPoints(&c, &mg)
	return ciphertextFromPoints(&out, &d), nil
}

// SubtractAmount subtracts a public amount from the plaintext of ct.
func SubtractAmount(ct Ciphertext, amount uint64) (Ciphertext, error) {
	c, d, err := ct.Points()
	if err != nil {
		return Ciphertext{}, err
	}
	mg := MulPointUint64(&G, amount)
	out := SubPoints(&c, &mg)
	return ciphertextFromPoints(&out, &d), nil
}

// CombineLoHi returns lo + 2^loBits * hi.
func CombineLoHi(lo, hi Ciphertext, loBits uint) (Ciphertext, error) {
	shifted, err := ScaleCiphertext(hi, uint64(1)<<loBits)
	if err != nil {
		return Ciphertext{}, err
	}
	return AddCiphertexts(lo, shifted)
}

// SubtractWithLoHi returns left - (lo + 2^loBits * hi).
func SubtractWithLoHi(left, lo, hi Ciphertext, loBits uint) (Ciphertext, error) {
	combined, err := CombineLoHi(lo, hi, loBits)
	if err != nil {
		return Ciphertext{}, err
	}
	return SubtractCiphertexts(left, combined)
}
