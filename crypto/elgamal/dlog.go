package elgamal

import (
	"fmt"
	"sync"

	"github.com/consensys/gnark-crypto/ecc/bn254"
)

const (
	dlogBabySteps = 1 << 16
	// DecryptBound is the exclusive upper bound on amounts Decrypt can recover.
	DecryptBound = uint64(dlogBabySteps) * dlogBabySteps
)

var (
	dlogOnce  sync.Once
	dlogTable map[[PointSize]byte]uint32
	// -2^16 * G
	dlogGiantStep bn254.G1Affine
)

// buildDlogTable precomputes j*G for j < 2^16. It runs once per process.
func buildDlogTable() {
	table := make(map[[PointSize]byte]uint32, dlogBabySteps)
	var acc bn254.G1Affine
	for j := uint32(0); j < dlogBabySteps; j++ {
		table[acc.Bytes()] = j
		acc.Add(&acc, &G)
	}
	// acc is now 2^16 * G
	dlogGiantStep.Neg(&acc)
	dlogTable = table
}

// solveDiscreteLog finds m < DecryptBound with m*G == target using baby-step
// giant-step.
func solveDiscreteLog(target *bn254.G1Affine) (uint64, error) {
	dlogOnce.Do(buildDlogTable)

	cur := *target
	for i := uint64(0); i < dlogBabySteps; i++ {
		if j, ok := dlogTable[cur.Bytes()]; ok {
			return i*dlogBabySteps + uint64(j), nil
		}
		cur.Add(&cur, &dlogGiantStep)
	}
	return 0, fmt.Errorf("%w: amount exceeds decryption bound", ErrDecryption)
}
