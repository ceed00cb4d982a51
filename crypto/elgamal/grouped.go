package elgamal

import "fmt"

// GroupedCiphertext2Size is the encoded size of a commitment with two handles.
const GroupedCiphertext2Size = 3 * PointSize

// GroupedCiphertext2 encrypts one amount under two public keys with a shared
// commitment: (C, D1, D2) = (xG + rH, rP1, rP2). Each (C, Di) pair is a
// regular ciphertext under Pi.
type GroupedCiphertext2 [GroupedCiphertext2Size]byte

// EncryptGrouped2 encrypts amount under first and second using opening.
func EncryptGrouped2(first, second PublicKey, amount uint64, opening *Opening) (GroupedCiphertext2, error) {
	h1, err := first.DecryptHandle(opening)
	if err != nil {
		return GroupedCiphertext2{}, fmt.Errorf("first handle: %w", err)
	}
	h2, err := second.DecryptHandle(opening)
	if err != nil {
		return GroupedCiphertext2{}, fmt.Errorf("second handle: %w", err)
	}
	c := Commit(amount, opening)

	var g GroupedCiphertext2
	copy(g[:PointSize], c[:])
	copy(g[PointSize:2*PointSize], h1[:])
	copy(g[2*PointSize:], h2[:])
	return g, nil
}

func (g GroupedCiphertext2) Commitment() Commitment {
	var c Commitment
	copy(c[:], g[:PointSize])
	return c
}

// Handle returns the decrypt handle for key index 0 or 1.
func (g GroupedCiphertext2) Handle(index int) DecryptHandle {
	var h DecryptHandle
	switch index {
	case 0:
		copy(h[:], g[PointSize:2*PointSize])
	case 1:
		copy(h[:], g[2*PointSize:])
	default:
		panic(fmt.Sprintf("grouped ciphertext has no handle %d", index))
	}
	return h
}

// Ciphertext extracts the regular ciphertext for key index 0 or 1.
func (g GroupedCiphertext2) Ciphertext(index int) Ciphertext {
	return NewCiphertext(g.Commitment(), g.Handle(index))
}

func (g GroupedCiphertext2) String() string {
	return fmt.Sprintf("%x", g[:])
}
