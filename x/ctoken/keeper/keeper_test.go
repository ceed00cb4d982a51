package keeper_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/x/ctoken/keeper"
	"github.com/btcq-org/ctoken/x/ctoken/types"
	"github.com/btcq-org/ctoken/zk"
)

const testDecimals = 6

type memStore map[string][]byte

func (s memStore) Get(key []byte) ([]byte, error) {
	v, ok := s[string(key)]
	if !ok {
		return nil, keeper.ErrKeyNotFound
	}
	return v, nil
}

func (s memStore) Put(key, value []byte) error {
	s[string(key)] = append([]byte(nil), value...)
	return nil
}

func (s memStore) Delete(key []byte) error {
	delete(s, string(key))
	return nil
}

type holder struct {
	owner   common.Address
	account common.Address
	kp      *elgamal.Keypair
	aeKey   *authenc.Key
}

type fixture struct {
	keeper    keeper.Keeper
	store     memStore
	payer     common.Address
	authority common.Address
	mint      common.Address
	next      byte
}

func initFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		keeper: keeper.NewKeeper(),
		store:  memStore{},
	}
	f.payer = f.newAddress()
	f.authority = f.newAddress()
	require.NoError(t, f.keeper.Credit(f.store, f.payer, 1_000_000_000_000))

	f.mint = f.allocate(t, types.MintSpace)
	require.NoError(t, f.exec(nil, &types.MsgInitializeMint{
		Mint:                   f.mint,
		MintAuthority:          f.authority,
		Decimals:               testDecimals,
		AutoApproveNewAccounts: true,
	}))
	return f
}

func (f *fixture) newAddress() common.Address {
	f.next++
	var addr common.Address
	addr[0] = 0xaa
	addr[31] = f.next
	return addr
}

func (f *fixture) exec(signers common.Addresses, msg types.Msg) error {
	return f.keeper.Execute(f.store, signers, types.MustNewInstruction(msg))
}

// allocate creates a rent exempt account of the given space funded by the payer.
func (f *fixture) allocate(t *testing.T, space uint64) common.Address {
	t.Helper()
	addr := f.newAddress()
	require.NoError(t, f.exec(common.Addresses{f.payer, addr}, &types.MsgCreateAccount{
		From:       f.payer,
		NewAccount: addr,
		Lamports:   types.RentExemptMinimum(space),
		Space:      space,
	}))
	return addr
}

// newHolder creates a configured token account holding minted public tokens.
func (f *fixture) newHolder(t *testing.T, minted uint64) *holder {
	t.Helper()
	h := &holder{owner: f.newAddress()}
	h.account = f.allocate(t, types.TokenAccountSpace)
	require.NoError(t, f.exec(nil, &types.MsgInitializeAccount{Account: h.account, Mint: f.mint, Owner: h.owner}))

	var err error
	h.kp, err = elgamal.NewKeypair()
	require.NoError(t, err)
	h.aeKey, err = authenc.NewKey()
	require.NoError(t, err)
	proof, err := zk.NewPubkeyValidityProofData(h.kp)
	require.NoError(t, err)
	zero, err := h.aeKey.Encrypt(0)
	require.NoError(t, err)
	require.NoError(t, f.exec(common.Addresses{h.owner}, &types.MsgConfigureAccount{
		Account:                            h.account,
		Mint:                               f.mint,
		Owner:                              h.owner,
		DecryptableZeroBalance:             zero,
		MaximumPendingBalanceCreditCounter: types.DefaultMaximumPendingBalanceCreditCounter,
		Proof:                              *proof,
	}))
	if minted > 0 {
		require.NoError(t, f.exec(common.Addresses{f.authority}, &types.MsgMintTo{
			Mint: f.mint, Account: h.account, Authority: f.authority, Amount: minted,
		}))
	}
	return h
}

func (f *fixture) token(t *testing.T, addr common.Address) *types.TokenAccount {
	t.Helper()
	acct, err := f.keeper.GetAccount(f.store, addr)
	require.NoError(t, err)
	token, err := acct.TokenAccount()
	require.NoError(t, err)
	return token
}

func (f *fixture) deposit(h *holder, amount uint64) error {
	return f.exec(common.Addresses{h.owner}, &types.MsgDeposit{
		Account: h.account, Mint: f.mint, Owner: h.owner, Amount: amount, Decimals: testDecimals,
	})
}

// apply decrypts the pending balance the way a client does and applies it.
func (f *fixture) apply(t *testing.T, h *holder) error {
	t.Helper()
	c := f.token(t, h.account).Confidential
	pending, err := elgamal.CombineLoHi(c.PendingBalanceLo, c.PendingBalanceHi, zk.TransferAmountLoBits)
	require.NoError(t, err)
	pendingAmount, err := h.kp.Secret.Decrypt(pending)
	require.NoError(t, err)
	available, err := h.aeKey.Decrypt(c.DecryptableAvailableBalance)
	require.NoError(t, err)
	decryptable, err := h.aeKey.Encrypt(available + pendingAmount)
	require.NoError(t, err)
	return f.exec(common.Addresses{h.owner}, &types.MsgApplyPendingBalance{
		Account:                             h.account,
		Owner:                               h.owner,
		ExpectedPendingBalanceCreditCounter: c.PendingBalanceCreditCounter,
		NewDecryptableAvailableBalance:      decryptable,
	})
}

func (f *fixture) available(t *testing.T, h *holder) uint64 {
	t.Helper()
	amount, err := h.kp.Secret.Decrypt(f.token(t, h.account).Confidential.AvailableBalance)
	require.NoError(t, err)
	return amount
}

func (f *fixture) snapshot(t *testing.T, h *holder) zk.BalanceSnapshot {
	t.Helper()
	c := f.token(t, h.account).Confidential
	return zk.BalanceSnapshot{
		AvailableBalance:            c.AvailableBalance,
		DecryptableAvailableBalance: c.DecryptableAvailableBalance,
	}
}

// openContext stores proof in a fresh context account, verified in place
// unless split.
func (f *fixture) openContext(t *testing.T, proof zk.ProofData, split bool) common.Address {
	t.Helper()
	payload, err := zk.EncodeProofData(proof)
	require.NoError(t, err)
	ctxAddr := f.allocate(t, types.ProofContextSpace(len(payload)))
	require.NoError(t, f.exec(common.Addresses{ctxAddr}, &types.MsgCreateProofContext{
		Context: ctxAddr, Authority: f.payer, Payload: payload, Verify: !split,
	}))
	if split {
		require.NoError(t, f.exec(common.Addresses{f.payer}, &types.MsgVerifyProof{Context: ctxAddr, Authority: f.payer}))
	}
	return ctxAddr
}

func TestCreateAccount(t *testing.T) {
	f := initFixture(t)
	addr := f.newAddress()

	err := f.exec(common.Addresses{f.payer, addr}, &types.MsgCreateAccount{
		From: f.payer, NewAccount: addr, Lamports: types.RentExemptMinimum(100) - 1, Space: 100,
	})
	require.ErrorIs(t, err, types.ErrInsufficientRent)

	err = f.exec(common.Addresses{f.payer}, &types.MsgCreateAccount{
		From: f.payer, NewAccount: addr, Lamports: types.RentExemptMinimum(100), Space: 100,
	})
	require.ErrorIs(t, err, types.ErrMissingSigner)

	before, err := f.keeper.GetAccount(f.store, f.payer)
	require.NoError(t, err)
	require.NoError(t, f.exec(common.Addresses{f.payer, addr}, &types.MsgCreateAccount{
		From: f.payer, NewAccount: addr, Lamports: types.RentExemptMinimum(100), Space: 100,
	}))
	after, err := f.keeper.GetAccount(f.store, f.payer)
	require.NoError(t, err)
	require.Equal(t, before.Lamports-types.RentExemptMinimum(100), after.Lamports)

	err = f.exec(common.Addresses{f.payer, addr}, &types.MsgCreateAccount{
		From: f.payer, NewAccount: addr, Lamports: types.RentExemptMinimum(100), Space: 100,
	})
	require.ErrorIs(t, err, types.ErrAccountAlreadyExists)
}

func TestChargeFee(t *testing.T) {
	f := initFixture(t)
	require.ErrorIs(t, f.keeper.ChargeFee(f.store, f.newAddress(), 5000), types.ErrInsufficientFundsForFee)

	acct, err := f.keeper.GetAccount(f.store, f.payer)
	require.NoError(t, err)
	require.ErrorIs(t, f.keeper.ChargeFee(f.store, f.payer, acct.Lamports+1), types.ErrInsufficientFundsForFee)
	require.NoError(t, f.keeper.ChargeFee(f.store, f.payer, 5000))

	charged, err := f.keeper.GetAccount(f.store, f.payer)
	require.NoError(t, err)
	require.Equal(t, acct.Lamports-5000, charged.Lamports)
}

func TestMintTo(t *testing.T) {
	f := initFixture(t)
	h := f.newHolder(t, 0)

	err := f.exec(common.Addresses{h.owner}, &types.MsgMintTo{Mint: f.mint, Account: h.account, Authority: h.owner, Amount: 10})
	require.ErrorIs(t, err, types.ErrUnauthorized)

	require.NoError(t, f.exec(common.Addresses{f.authority}, &types.MsgMintTo{Mint: f.mint, Account: h.account, Authority: f.authority, Amount: 10}))
	require.Equal(t, uint64(10), f.token(t, h.account).Amount)

	acct, err := f.keeper.GetAccount(f.store, f.mint)
	require.NoError(t, err)
	mint, err := acct.Mint()
	require.NoError(t, err)
	require.Equal(t, uint64(10), mint.Supply)
}

func TestConfigureAccount(t *testing.T) {
	f := initFixture(t)
	h := f.newHolder(t, 0)

	c := f.token(t, h.account).Confidential
	require.True(t, c.Configured)
	require.True(t, c.Approved)
	require.True(t, c.AllowConfidentialCredits)
	require.Equal(t, h.kp.Public, c.ElGamalPubkey)
	require.Equal(t, elgamal.ZeroCiphertext(), c.AvailableBalance)

	proof, err := zk.NewPubkeyValidityProofData(h.kp)
	require.NoError(t, err)
	zero, err := h.aeKey.Encrypt(0)
	require.NoError(t, err)
	err = f.exec(common.Addresses{h.owner}, &types.MsgConfigureAccount{
		Account: h.account, Mint: f.mint, Owner: h.owner,
		DecryptableZeroBalance:             zero,
		MaximumPendingBalanceCreditCounter: 10,
		Proof:                              *proof,
	})
	require.ErrorIs(t, err, types.ErrAccountAlreadyConfigured)

	// a proof for one key does not configure another
	other := f.allocate(t, types.TokenAccountSpace)
	owner := f.newAddress()
	require.NoError(t, f.exec(nil, &types.MsgInitializeAccount{Account: other, Mint: f.mint, Owner: owner}))
	otherKp, err := elgamal.NewKeypair()
	require.NoError(t, err)
	forged := *proof
	forged.Context.Pubkey = otherKp.Public
	err = f.exec(common.Addresses{owner}, &types.MsgConfigureAccount{
		Account: other, Mint: f.mint, Owner: owner,
		DecryptableZeroBalance:             zero,
		MaximumPendingBalanceCreditCounter: 10,
		Proof:                              forged,
	})
	require.ErrorIs(t, err, types.ErrProofVerification)
}
