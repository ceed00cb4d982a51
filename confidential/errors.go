package confidential

import (
	"errors"
	"fmt"
	"strings"

	errorsmod "cosmossdk.io/errors"

	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// Codespace is the error codespace of the confidential transfer client.
const Codespace = "confidential"

var (
	// ErrSnapshotStale means the account moved on between proof generation
	// and execution. Rebuilding the proofs from fresh state fixes it.
	ErrSnapshotStale     = errorsmod.Register(Codespace, 2, "balance snapshot is stale")
	ErrProofConstruction = errorsmod.Register(Codespace, 3, "proof construction failed")
	ErrContextCreation   = errorsmod.Register(Codespace, 4, "proof context creation failed")
	ErrContextClose      = errorsmod.Register(Codespace, 5, "proof context close failed")
	ErrSubmission        = errorsmod.Register(Codespace, 6, "submission failed")
	ErrDecryption        = errorsmod.Register(Codespace, 7, "decryption failed")
)

// OperationError is returned when an operation fails after it started. Err
// is the failure, Cleanup the outcome of closing the proof contexts the
// operation had opened (nil when cleanup succeeded or nothing was open).
type OperationError struct {
	Op      Operation
	State   State
	Err     error
	Cleanup error
}

func (e *OperationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s failed in state %s: %s", e.Op, e.State, e.Err)
	if e.Cleanup != nil {
		fmt.Fprintf(&sb, " (cleanup: %s)", e.Cleanup)
	}
	return sb.String()
}

// Unwrap exposes both the failure and the cleanup error to errors.Is.
func (e *OperationError) Unwrap() []error {
	out := make([]error, 0, 2)
	if e.Err != nil {
		out = append(out, e.Err)
	}
	if e.Cleanup != nil {
		out = append(out, e.Cleanup)
	}
	return out
}

func proofConstructionError(err error) error {
	return fmt.Errorf("%w: %w", ErrProofConstruction, err)
}

// submissionError classifies a rejected consuming instruction. Ledger
// rejections caused by a moved balance become ErrSnapshotStale.
func submissionError(err error) error {
	switch {
	case errors.Is(err, ErrSnapshotStale):
		return err
	case errors.Is(err, types.ErrCiphertextMismatch), errors.Is(err, types.ErrPendingBalanceCounterMismatch):
		return fmt.Errorf("%w: %w", ErrSnapshotStale, err)
	default:
		return fmt.Errorf("%w: %w", ErrSubmission, err)
	}
}
