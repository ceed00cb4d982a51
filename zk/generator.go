package zk

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
)

const (
	// TransferAmountLoBits and TransferAmountHiBits split transfer amounts so
	// each limb stays small enough to decrypt.
	TransferAmountLoBits = 16
	TransferAmountHiBits = 32
	// BalanceBits is the range of a balance after an update.
	BalanceBits = 64
	// MaxTransferAmount is the exclusive upper bound on a single transfer,
	// withdraw or deposit.
	MaxTransferAmount = uint64(1) << (TransferAmountLoBits + TransferAmountHiBits)
)

// SplitAmount returns the low 16 bits and the remaining high bits of amount.
func SplitAmount(amount uint64) (lo, hi uint64) {
	return amount & (1<<TransferAmountLoBits - 1), amount >> TransferAmountLoBits
}

// BalanceSnapshot is the source account state the proofs are built against.
// The ledger rejects the operation when its state moved on.
type BalanceSnapshot struct {
	AvailableBalance            elgamal.Ciphertext
	DecryptableAvailableBalance authenc.Ciphertext
}

type TransferArgs struct {
	Amount            uint64
	SourceKeypair     *elgamal.Keypair
	SourceAEKey       *authenc.Key
	Snapshot          BalanceSnapshot
	DestinationPubkey elgamal.PublicKey
}

// TransferProofData is everything a transfer instruction needs.
type TransferProofData struct {
	Amount   uint64
	AmountLo uint64
	AmountHi uint64
	Snapshot BalanceSnapshot

	NewAvailableBalance            uint64
	NewAvailableCiphertext         elgamal.Ciphertext
	NewDecryptableAvailableBalance authenc.Ciphertext

	Equality *CiphertextCommitmentEqualityProofData
	Validity *BatchedGroupedCiphertextValidityProofData
	Range    *BatchedRangeProofData
}

type WithdrawArgs struct {
	Amount   uint64
	Keypair  *elgamal.Keypair
	AEKey    *authenc.Key
	Snapshot BalanceSnapshot
}

// WithdrawProofData is everything a withdraw instruction needs.
type WithdrawProofData struct {
	Amount   uint64
	Snapshot BalanceSnapshot

	NewAvailableBalance            uint64
	NewAvailableCiphertext         elgamal.Ciphertext
	NewDecryptableAvailableBalance authenc.Ciphertext

	Equality *CiphertextCommitmentEqualityProofData
	Range    *BatchedRangeProofData
}

// Generator builds the proof sets for balance operations.
type Generator struct {
	backend ProofBackend
	logger  zerolog.Logger
}

func NewGenerator(backend ProofBackend) *Generator {
	if backend == nil {
		backend = SigmaBackend{}
	}
	return &Generator{
		backend: backend,
		logger:  log.With().Str("module", "zk").Logger(),
	}
}

// PubkeyValidity proves ownership of kp, used when configuring an account.
func (g *Generator) PubkeyValidity(kp *elgamal.Keypair) (*PubkeyValidityProofData, error) {
	return g.backend.ProvePubkeyValidity(kp)
}

// availableBalance decrypts the snapshot and checks both encodings agree.
func availableBalance(kp *elgamal.Keypair, key *authenc.Key, snap BalanceSnapshot) (uint64, error) {
	balance, err := key.Decrypt(snap.DecryptableAvailableBalance)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInconsistentSnapshot, err)
	}
	ok, err := kp.Secret.VerifyAmount(snap.AvailableBalance, balance)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrInconsistentSnapshot, err)
	}
	if !ok {
		return 0, ErrInconsistentSnapshot
	}
	return balance, nil
}

// Transfer builds the equality, ciphertext validity and range proofs of a
// confidential transfer against args.Snapshot.
func (g *Generator) Transfer(ctx context.Context, args TransferArgs) (*TransferProofData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args.Amount >= MaxTransferAmount {
		return nil, fmt.Errorf("%w: %d", ErrAmountTooLarge, args.Amount)
	}
	balance, err := availableBalance(args.SourceKeypair, args.SourceAEKey, args.Snapshot)
	if err != nil {
		return nil, err
	}
	if args.Amount > balance {
		return nil, fmt.Errorf("%w: %d > %d", ErrInsufficientBalance, args.Amount, balance)
	}
	start := time.Now()

	lo, hi := SplitAmount(args.Amount)
	openingLo, err := elgamal.NewOpening()
	if err != nil {
		return nil, err
	}
	openingHi, err := elgamal.NewOpening()
	if err != nil {
		return nil, err
	}
	source := args.SourceKeypair.Public
	groupedLo, err := elgamal.EncryptGrouped2(source, args.DestinationPubkey, lo, openingLo)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}
	groupedHi, err := elgamal.EncryptGrouped2(source, args.DestinationPubkey, hi, openingHi)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}

	// the ledger computes the same ciphertext from its own state
	newCiphertext, err := elgamal.SubtractWithLoHi(
		args.Snapshot.AvailableBalance,
		groupedLo.Ciphertext(0),
		groupedHi.Ciphertext(0),
		TransferAmountLoBits,
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}
	newBalance := balance - args.Amount
	commitment, opening, err := elgamal.NewCommitment(newBalance)
	if err != nil {
		return nil, err
	}

	out := &TransferProofData{
		Amount:                 args.Amount,
		AmountLo:               lo,
		AmountHi:               hi,
		Snapshot:               args.Snapshot,
		NewAvailableBalance:    newBalance,
		NewAvailableCiphertext: newCiphertext,
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		out.Equality, err = g.backend.ProveEquality(args.SourceKeypair, newCiphertext, commitment, newBalance, opening)
		return err
	})
	eg.Go(func() error {
		var err error
		out.Validity, err = g.backend.ProveCiphertextValidity(
			source, args.DestinationPubkey, groupedLo, groupedHi, lo, hi, openingLo, openingHi)
		return err
	})
	eg.Go(func() error {
		var err error
		out.Range, err = g.backend.ProveRange(
			[]elgamal.Commitment{commitment, groupedLo.Commitment(), groupedHi.Commitment()},
			[]uint64{newBalance, lo, hi},
			[]uint8{BalanceBits, TransferAmountLoBits, TransferAmountHiBits},
			[]*elgamal.Opening{opening, openingLo, openingHi},
		)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out.NewDecryptableAvailableBalance, err = args.SourceAEKey.Encrypt(newBalance)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Uint64("amount", args.Amount).
		Dur("elapsed", time.Since(start)).
		Msg("transfer proofs generated")
	return out, nil
}

// Withdraw builds the equality and range proofs of a withdraw against
// args.Snapshot.
func (g *Generator) Withdraw(ctx context.Context, args WithdrawArgs) (*WithdrawProofData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if args.Amount >= MaxTransferAmount {
		return nil, fmt.Errorf("%w: %d", ErrAmountTooLarge, args.Amount)
	}
	balance, err := availableBalance(args.Keypair, args.AEKey, args.Snapshot)
	if err != nil {
		return nil, err
	}
	if args.Amount > balance {
		return nil, fmt.Errorf("%w: %d > %d", ErrInsufficientBalance, args.Amount, balance)
	}
	start := time.Now()

	newCiphertext, err := elgamal.SubtractAmount(args.Snapshot.AvailableBalance, args.Amount)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrProofGeneration, err)
	}
	newBalance := balance - args.Amount
	commitment, opening, err := elgamal.NewCommitment(newBalance)
	if err != nil {
		return nil, err
	}

	out := &WithdrawProofData{
		Amount:                 args.Amount,
		Snapshot:               args.Snapshot,
		NewAvailableBalance:    newBalance,
		NewAvailableCiphertext: newCiphertext,
	}

	eg, _ := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		out.Equality, err = g.backend.ProveEquality(args.Keypair, newCiphertext, commitment, newBalance, opening)
		return err
	})
	eg.Go(func() error {
		var err error
		out.Range, err = g.backend.ProveRange(
			[]elgamal.Commitment{commitment},
			[]uint64{newBalance},
			[]uint8{BalanceBits},
			[]*elgamal.Opening{opening},
		)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	out.NewDecryptableAvailableBalance, err = args.AEKey.Encrypt(newBalance)
	if err != nil {
		return nil, err
	}

	g.logger.Debug().
		Uint64("amount", args.Amount).
		Dur("elapsed", time.Since(start)).
		Msg("withdraw proofs generated")
	return out, nil
}
