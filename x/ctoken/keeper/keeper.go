package keeper

import (
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/x/ctoken/types"
)

// ErrKeyNotFound is returned by a KVStore when the key is absent.
var ErrKeyNotFound = errors.New("key not found")

// KVStore is the state the program runs against. Implementations scope it to
// one transaction so a failed instruction leaves nothing behind.
type KVStore interface {
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Delete(key []byte) error
}

// Keeper executes the instructions of the confidential token program.
type Keeper struct {
	logger zerolog.Logger
}

func NewKeeper() Keeper {
	return Keeper{
		logger: log.With().Str("module", types.ModuleName).Logger(),
	}
}

// GetAccount loads addr, returning types.ErrAccountNotFound when it does not exist.
func (k Keeper) GetAccount(store KVStore, addr common.Address) (*types.Account, error) {
	raw, err := store.Get(types.AccountKey(addr))
	if errors.Is(err, ErrKeyNotFound) {
		return nil, types.ErrAccountNotFound.Wrapf("%s", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("fail to read account %s: %w", addr, err)
	}
	acct := new(types.Account)
	if err := rlp.DecodeBytes(raw, acct); err != nil {
		return nil, fmt.Errorf("fail to decode account %s: %w", addr, err)
	}
	acct.Address = addr
	return acct, nil
}

func (k Keeper) SetAccount(store KVStore, acct *types.Account) error {
	raw, err := rlp.EncodeToBytes(acct)
	if err != nil {
		return fmt.Errorf("fail to encode account %s: %w", acct.Address, err)
	}
	return store.Put(types.AccountKey(acct.Address), raw)
}

func (k Keeper) DeleteAccount(store KVStore, addr common.Address) error {
	return store.Delete(types.AccountKey(addr))
}

// Credit adds lamports to addr, creating a zero-space system account when
// the address is unknown.
func (k Keeper) Credit(store KVStore, addr common.Address, lamports uint64) error {
	acct, err := k.GetAccount(store, addr)
	if errors.Is(err, types.ErrAccountNotFound) {
		acct = &types.Account{Address: addr}
	} else if err != nil {
		return err
	}
	total, err := common.SafeAdd(acct.Lamports, lamports)
	if err != nil {
		return types.ErrOverflow.Wrapf("lamports of %s: %s", addr, err)
	}
	acct.Lamports = total
	return k.SetAccount(store, acct)
}

// ChargeFee debits the transaction fee from the fee payer.
func (k Keeper) ChargeFee(store KVStore, payer common.Address, fee uint64) error {
	acct, err := k.GetAccount(store, payer)
	if errors.Is(err, types.ErrAccountNotFound) {
		return types.ErrInsufficientFundsForFee.Wrapf("fee payer %s does not exist", payer)
	}
	if err != nil {
		return err
	}
	if acct.Lamports < fee {
		return types.ErrInsufficientFundsForFee.Wrapf("%s has %d, fee is %d", payer, acct.Lamports, fee)
	}
	acct.Lamports -= fee
	return k.SetAccount(store, acct)
}

// Execute runs one instruction. signers are the addresses whose signature
// the transaction carries.
func (k Keeper) Execute(store KVStore, signers common.Addresses, ix types.Instruction) error {
	msg, err := ix.Msg()
	if err != nil {
		return err
	}
	if err := msg.ValidateBasic(); err != nil {
		return err
	}
	for _, addr := range msg.GetSigners() {
		if !signers.Has(addr) {
			return types.ErrMissingSigner.Wrapf("%s requires %s", msg.Type(), addr)
		}
	}

	switch m := msg.(type) {
	case *types.MsgCreateAccount:
		err = k.handleMsgCreateAccount(store, m)
	case *types.MsgInitializeMint:
		err = k.handleMsgInitializeMint(store, m)
	case *types.MsgInitializeAccount:
		err = k.handleMsgInitializeAccount(store, m)
	case *types.MsgMintTo:
		err = k.handleMsgMintTo(store, m)
	case *types.MsgConfigureAccount:
		err = k.handleMsgConfigureAccount(store, m)
	case *types.MsgEnableConfidentialCredits:
		err = k.handleMsgEnableConfidentialCredits(store, m)
	case *types.MsgDeposit:
		err = k.handleMsgDeposit(store, m)
	case *types.MsgApplyPendingBalance:
		err = k.handleMsgApplyPendingBalance(store, m)
	case *types.MsgTransfer:
		err = k.handleMsgTransfer(store, m)
	case *types.MsgWithdraw:
		err = k.handleMsgWithdraw(store, m)
	case *types.MsgCreateProofContext:
		err = k.handleMsgCreateProofContext(store, m)
	case *types.MsgVerifyProof:
		err = k.handleMsgVerifyProof(store, m)
	case *types.MsgCloseProofContext:
		err = k.handleMsgCloseProofContext(store, m)
	default:
		err = types.ErrInvalidRequest.Wrapf("unhandled instruction %s", msg.Type())
	}
	if err != nil {
		k.logger.Debug().Err(err).Str("instruction", msg.Type().String()).Msg("instruction failed")
		return err
	}
	return nil
}
