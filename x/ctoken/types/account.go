package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/constants"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/zk"
)

// AccountKind tells how the data of an account is interpreted.
type AccountKind uint8

const (
	// AccountKindSystem holds lamports only. A system account with space
	// but no data is an uninitialized account waiting for an Initialize*.
	AccountKindSystem AccountKind = iota
	AccountKindMint
	AccountKindToken
	AccountKindProofContext
)

func (k AccountKind) String() string {
	switch k {
	case AccountKindSystem:
		return "system"
	case AccountKindMint:
		return "mint"
	case AccountKindToken:
		return "token"
	case AccountKindProofContext:
		return "proof-context"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

const (
	// MintSpace is the space allocated for a mint account.
	MintSpace = 128
	// TokenAccountSpace is the space allocated for a token account with the
	// confidential transfer extension.
	TokenAccountSpace = 512
	// ProofContextOverhead is the space of a proof context beyond its payload.
	ProofContextOverhead = 64

	// DefaultMaximumPendingBalanceCreditCounter applies when an account
	// configuration does not name one.
	DefaultMaximumPendingBalanceCreditCounter = 65536
)

// ProofContextSpace is the space needed for a proof context with the given payload.
func ProofContextSpace(payloadLen int) uint64 {
	return uint64(payloadLen) + ProofContextOverhead
}

// RentExemptMinimum returns the lamports an account of space bytes must hold:
// (space + overhead) * lamports per byte-year * exemption years.
func RentExemptMinimum(space uint64) uint64 {
	return (space + constants.Get(constants.AccountStorageOverhead)) *
		constants.Get(constants.LamportsPerByteYear) *
		constants.Get(constants.ExemptionThresholdYears)
}

// Account is the ledger state of one address.
type Account struct {
	Address  common.Address `json:"address"`
	Lamports uint64         `json:"lamports"`
	Space    uint64         `json:"space"`
	Kind     AccountKind    `json:"kind"`
	Data     []byte         `json:"data"`
}

// IsUninitialized reports whether the account was allocated but not yet
// initialized by the program.
func (a *Account) IsUninitialized() bool {
	return a.Kind == AccountKindSystem && len(a.Data) == 0
}

// SetData encodes v into the account and switches its kind. The encoding must
// fit the allocated space.
func (a *Account) SetData(kind AccountKind, v interface{}) error {
	data, err := rlp.EncodeToBytes(v)
	if err != nil {
		return fmt.Errorf("fail to encode %s data: %w", kind, err)
	}
	if uint64(len(data)) > a.Space {
		return ErrAccountDataTooSmall.Wrapf("%s needs %d bytes, account %s has %d", kind, len(data), a.Address, a.Space)
	}
	a.Kind = kind
	a.Data = data
	return nil
}

func (a *Account) decode(kind AccountKind, v interface{}) error {
	if a.Kind != kind {
		return ErrInvalidAccountKind.Wrapf("account %s is %s, expected %s", a.Address, a.Kind, kind)
	}
	if err := rlp.DecodeBytes(a.Data, v); err != nil {
		return fmt.Errorf("fail to decode %s account %s: %w", kind, a.Address, err)
	}
	return nil
}

// Mint decodes the account as a mint.
func (a *Account) Mint() (*Mint, error) {
	m := new(Mint)
	if err := a.decode(AccountKindMint, m); err != nil {
		return nil, err
	}
	return m, nil
}

// TokenAccount decodes the account as a token account.
func (a *Account) TokenAccount() (*TokenAccount, error) {
	t := new(TokenAccount)
	if err := a.decode(AccountKindToken, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ProofContext decodes the account as a proof context.
func (a *Account) ProofContext() (*ProofContextState, error) {
	p := new(ProofContextState)
	if err := a.decode(AccountKindProofContext, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Mint is a token mint with the confidential transfer extension.
type Mint struct {
	MintAuthority common.Address
	Supply        uint64
	Decimals      uint8
	// AutoApproveNewAccounts approves accounts for confidential transfers as
	// soon as they are configured.
	AutoApproveNewAccounts bool
	// AuditorPubkey is empty when the mint has no auditor.
	AuditorPubkey elgamal.PublicKey
}

// TokenAccount holds tokens of one mint for one owner.
type TokenAccount struct {
	Mint   common.Address
	Owner  common.Address
	Amount uint64

	Confidential ConfidentialTransferAccount
}

// ConfidentialTransferAccount is the encrypted balance state of a token account.
type ConfidentialTransferAccount struct {
	Configured bool
	Approved   bool

	ElGamalPubkey elgamal.PublicKey

	// PendingBalanceLo and PendingBalanceHi accumulate incoming credits in
	// 16 and 32 bit limbs until the owner applies them.
	PendingBalanceLo elgamal.Ciphertext
	PendingBalanceHi elgamal.Ciphertext

	AvailableBalance            elgamal.Ciphertext
	DecryptableAvailableBalance authenc.Ciphertext

	AllowConfidentialCredits    bool
	AllowNonConfidentialCredits bool

	PendingBalanceCreditCounter        uint64
	MaximumPendingBalanceCreditCounter uint64
	// ExpectedPendingBalanceCreditCounter is the counter value the owner
	// acknowledged with the last apply.
	ExpectedPendingBalanceCreditCounter uint64
	ActualPendingBalanceCreditCounter   uint64
}

// ProofContextState is a verified (or pending verification) proof stored in
// its own account so a later instruction can reference it.
type ProofContextState struct {
	Kind      zk.ProofKind
	Authority common.Address
	Verified  bool
	Payload   []byte
}

// ProofData decodes the stored payload.
func (p *ProofContextState) ProofData() (zk.ProofData, error) {
	d, err := zk.DecodeProofDataKind(p.Payload, p.Kind)
	if err != nil {
		return nil, ErrInvalidProofData.Wrap(err.Error())
	}
	return d, nil
}
