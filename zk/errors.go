package zk

import (
	"errors"
	"fmt"
)

var (
	// ErrProofGeneration is the root of every error returned while building proofs.
	ErrProofGeneration = errors.New("proof generation failed")

	ErrAmountTooLarge       = fmt.Errorf("%w: amount exceeds maximum transfer amount", ErrProofGeneration)
	ErrInsufficientBalance  = fmt.Errorf("%w: amount exceeds available balance", ErrProofGeneration)
	ErrInconsistentSnapshot = fmt.Errorf("%w: encrypted and decryptable balances disagree", ErrProofGeneration)
	ErrValueOutOfRange      = fmt.Errorf("%w: value does not fit in bit length", ErrProofGeneration)

	ErrInvalidProofData  = errors.New("invalid proof data")
	ErrProofVerification = errors.New("proof verification failed")
)
