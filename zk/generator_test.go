package zk

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
)

type testAccount struct {
	kp  *elgamal.Keypair
	key *authenc.Key
}

func newTestAccount(t *testing.T) testAccount {
	t.Helper()
	key, err := authenc.NewKey()
	require.NoError(t, err)
	return testAccount{kp: newKeypair(t), key: key}
}

func (a testAccount) snapshot(t *testing.T, balance uint64) BalanceSnapshot {
	t.Helper()
	ct, _, err := a.kp.Public.Encrypt(balance)
	require.NoError(t, err)
	dec, err := a.key.Encrypt(balance)
	require.NoError(t, err)
	return BalanceSnapshot{AvailableBalance: ct, DecryptableAvailableBalance: dec}
}

func TestSplitAmount(t *testing.T) {
	lo, hi := SplitAmount(0x123456789)
	require.Equal(t, uint64(0x6789), lo)
	require.Equal(t, uint64(0x12345), hi)
	require.Equal(t, uint64(1<<48), MaxTransferAmount)
}

func TestGeneratorTransfer(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(nil)
	src, dst := newTestAccount(t), newTestAccount(t)
	snap := src.snapshot(t, 100_000_000)

	data, err := gen.Transfer(ctx, TransferArgs{
		Amount:            50_000_000,
		SourceKeypair:     src.kp,
		SourceAEKey:       src.key,
		Snapshot:          snap,
		DestinationPubkey: dst.kp.Public,
	})
	require.NoError(t, err)
	require.Equal(t, uint64(50_000_000), data.NewAvailableBalance)
	require.Equal(t, uint64(50_000_000), data.AmountLo+data.AmountHi<<TransferAmountLoBits)

	require.NoError(t, data.Equality.Verify())
	require.NoError(t, data.Validity.Verify())
	require.NoError(t, data.Range.Verify())

	// statements tie together
	require.Equal(t, data.NewAvailableCiphertext, data.Equality.Context.Ciphertext)
	require.Equal(t, data.Equality.Context.Commitment, data.Range.Context.Commitments[0])
	require.Equal(t, data.Validity.Context.GroupedCiphertextLo.Commitment(), data.Range.Context.Commitments[1])
	require.Equal(t, data.Validity.Context.GroupedCiphertextHi.Commitment(), data.Range.Context.Commitments[2])
	require.Equal(t, []uint8{64, 16, 32}, data.Range.Context.BitLengths)

	ok, err := src.kp.Secret.VerifyAmount(data.NewAvailableCiphertext, 50_000_000)
	require.NoError(t, err)
	require.True(t, ok)
	dec, err := src.key.Decrypt(data.NewDecryptableAvailableBalance)
	require.NoError(t, err)
	require.Equal(t, uint64(50_000_000), dec)

	lo, err := dst.kp.Secret.Decrypt(data.Validity.Context.GroupedCiphertextLo.Ciphertext(1))
	require.NoError(t, err)
	hi, err := dst.kp.Secret.Decrypt(data.Validity.Context.GroupedCiphertextHi.Ciphertext(1))
	require.NoError(t, err)
	require.Equal(t, uint64(50_000_000), lo+hi<<TransferAmountLoBits)
}

func TestGeneratorWithdraw(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(SigmaBackend{})
	acct := newTestAccount(t)
	snap := acct.snapshot(t, 1000)

	data, err := gen.Withdraw(ctx, WithdrawArgs{Amount: 1000, Keypair: acct.kp, AEKey: acct.key, Snapshot: snap})
	require.NoError(t, err)
	require.Equal(t, uint64(0), data.NewAvailableBalance)
	require.NoError(t, data.Equality.Verify())
	require.NoError(t, data.Range.Verify())
	require.Equal(t, data.Equality.Context.Commitment, data.Range.Context.Commitments[0])
}

func TestGeneratorErrors(t *testing.T) {
	ctx := context.Background()
	gen := NewGenerator(nil)
	src, dst := newTestAccount(t), newTestAccount(t)
	snap := src.snapshot(t, 100)

	transfer := func(amount uint64, snap BalanceSnapshot) error {
		_, err := gen.Transfer(ctx, TransferArgs{
			Amount:            amount,
			SourceKeypair:     src.kp,
			SourceAEKey:       src.key,
			Snapshot:          snap,
			DestinationPubkey: dst.kp.Public,
		})
		return err
	}

	t.Run("amount too large", func(t *testing.T) {
		err := transfer(MaxTransferAmount, snap)
		require.ErrorIs(t, err, ErrAmountTooLarge)
		require.ErrorIs(t, err, ErrProofGeneration)

		_, err = gen.Withdraw(ctx, WithdrawArgs{Amount: MaxTransferAmount, Keypair: src.kp, AEKey: src.key, Snapshot: snap})
		require.ErrorIs(t, err, ErrAmountTooLarge)
	})

	t.Run("insufficient balance", func(t *testing.T) {
		require.ErrorIs(t, transfer(101, snap), ErrInsufficientBalance)

		_, err := gen.Withdraw(ctx, WithdrawArgs{Amount: 101, Keypair: src.kp, AEKey: src.key, Snapshot: snap})
		require.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("inconsistent snapshot", func(t *testing.T) {
		stale := snap
		other := src.snapshot(t, 99)
		stale.DecryptableAvailableBalance = other.DecryptableAvailableBalance
		require.ErrorIs(t, transfer(1, stale), ErrInconsistentSnapshot)

		garbled := snap
		garbled.DecryptableAvailableBalance[0] ^= 1
		require.ErrorIs(t, transfer(1, garbled), ErrInconsistentSnapshot)
	})

	t.Run("cancelled", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		_, err := gen.Transfer(cctx, TransferArgs{Amount: 1, SourceKeypair: src.kp, SourceAEKey: src.key, Snapshot: snap})
		require.ErrorIs(t, err, context.Canceled)
	})
}
