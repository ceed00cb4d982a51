package confidential

import (
	"context"

	"cosmossdk.io/math"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

// Balance is the decrypted view of a token account. Amounts are in base
// units.
type Balance struct {
	Account  common.Address
	Decimals uint8

	Public    uint64
	Pending   uint64
	Available uint64

	PendingCredits    uint64
	MaxPendingCredits uint64
}

// UI converts base units into whole tokens.
func (b *Balance) UI(units uint64) math.LegacyDec {
	return common.UnscaleAmount(units, b.Decimals)
}

// Balance decrypts the balances of acct.
func (m *Manager) Balance(ctx context.Context, acct *Account) (*Balance, error) {
	if err := m.requireOwned(acct); err != nil {
		return nil, err
	}
	token, err := m.tokenState(ctx, acct.Address)
	if err != nil {
		return nil, err
	}
	ct := token.Confidential
	if !ct.Configured {
		return nil, types.ErrAccountNotConfigured.Wrapf("%s", acct.Address)
	}
	pending, err := decryptPending(acct.Keys, ct)
	if err != nil {
		return nil, err
	}
	available, err := acct.Keys.AE.Decrypt(ct.DecryptableAvailableBalance)
	if err != nil {
		return nil, ErrDecryption.Wrapf("available balance: %s", err)
	}
	return &Balance{
		Account:           acct.Address,
		Decimals:          acct.Decimals,
		Public:            token.Amount,
		Pending:           pending,
		Available:         available,
		PendingCredits:    ct.PendingBalanceCreditCounter,
		MaxPendingCredits: ct.MaximumPendingBalanceCreditCounter,
	}, nil
}

// decryptPending decrypts both pending limbs separately so each discrete
// log stays within the solver bound.
func decryptPending(keys *Keys, ct types.ConfidentialTransferAccount) (uint64, error) {
	if ct.PendingBalanceLo == elgamal.ZeroCiphertext() && ct.PendingBalanceHi == elgamal.ZeroCiphertext() {
		return 0, nil
	}
	lo, err := keys.ElGamal.Secret.Decrypt(ct.PendingBalanceLo)
	if err != nil {
		return 0, ErrDecryption.Wrapf("pending balance lo: %s", err)
	}
	hi, err := keys.ElGamal.Secret.Decrypt(ct.PendingBalanceHi)
	if err != nil {
		return 0, ErrDecryption.Wrapf("pending balance hi: %s", err)
	}
	if hi > (^uint64(0)-lo)>>zk.TransferAmountLoBits {
		return 0, ErrDecryption.Wrap("pending balance overflows")
	}
	return lo + hi<<zk.TransferAmountLoBits, nil
}
