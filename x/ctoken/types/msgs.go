package types

import (
	"fmt"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/btcq-org/ctoken/common"
)

// MsgType identifies an instruction of the ledger program.
type MsgType uint8

const (
	MsgTypeCreateAccount MsgType = iota + 1
	MsgTypeInitializeMint
	MsgTypeInitializeAccount
	MsgTypeMintTo
	MsgTypeConfigureAccount
	MsgTypeEnableConfidentialCredits
	MsgTypeDeposit
	MsgTypeApplyPendingBalance
	MsgTypeTransfer
	MsgTypeWithdraw
	MsgTypeCreateProofContext
	MsgTypeVerifyProof
	MsgTypeCloseProofContext
)

var msgTypeNames = map[MsgType]string{
	MsgTypeCreateAccount:             "CreateAccount",
	MsgTypeInitializeMint:            "InitializeMint",
	MsgTypeInitializeAccount:         "InitializeAccount",
	MsgTypeMintTo:                    "MintTo",
	MsgTypeConfigureAccount:          "ConfigureAccount",
	MsgTypeEnableConfidentialCredits: "EnableConfidentialCredits",
	MsgTypeDeposit:                   "Deposit",
	MsgTypeApplyPendingBalance:       "ApplyPendingBalance",
	MsgTypeTransfer:                  "Transfer",
	MsgTypeWithdraw:                  "Withdraw",
	MsgTypeCreateProofContext:        "CreateProofContext",
	MsgTypeVerifyProof:               "VerifyProof",
	MsgTypeCloseProofContext:         "CloseProofContext",
}

func (t MsgType) String() string {
	if name, ok := msgTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("MsgType(%d)", uint8(t))
}

// Msg is an instruction of the ledger program.
type Msg interface {
	Type() MsgType
	// ValidateBasic performs stateless validation.
	ValidateBasic() error
	// GetSigners returns the addresses that must sign the transaction.
	GetSigners() common.Addresses
}

func newMsg(t MsgType) (Msg, error) {
	switch t {
	case MsgTypeCreateAccount:
		return new(MsgCreateAccount), nil
	case MsgTypeInitializeMint:
		return new(MsgInitializeMint), nil
	case MsgTypeInitializeAccount:
		return new(MsgInitializeAccount), nil
	case MsgTypeMintTo:
		return new(MsgMintTo), nil
	case MsgTypeConfigureAccount:
		return new(MsgConfigureAccount), nil
	case MsgTypeEnableConfidentialCredits:
		return new(MsgEnableConfidentialCredits), nil
	case MsgTypeDeposit:
		return new(MsgDeposit), nil
	case MsgTypeApplyPendingBalance:
		return new(MsgApplyPendingBalance), nil
	case MsgTypeTransfer:
		return new(MsgTransfer), nil
	case MsgTypeWithdraw:
		return new(MsgWithdraw), nil
	case MsgTypeCreateProofContext:
		return new(MsgCreateProofContext), nil
	case MsgTypeVerifyProof:
		return new(MsgVerifyProof), nil
	case MsgTypeCloseProofContext:
		return new(MsgCloseProofContext), nil
	default:
		return nil, ErrInvalidRequest.Wrapf("unknown instruction type %d", uint8(t))
	}
}

// Instruction is the wire form of a Msg.
type Instruction struct {
	Type MsgType `json:"type"`
	Data []byte  `json:"data"`
}

// NewInstruction encodes msg.
func NewInstruction(msg Msg) (Instruction, error) {
	data, err := rlp.EncodeToBytes(msg)
	if err != nil {
		return Instruction{}, fmt.Errorf("fail to encode %s: %w", msg.Type(), err)
	}
	return Instruction{Type: msg.Type(), Data: data}, nil
}

// MustNewInstruction is NewInstruction for messages that are known to encode.
func MustNewInstruction(msg Msg) Instruction {
	ix, err := NewInstruction(msg)
	if err != nil {
		panic(err)
	}
	return ix
}

// NewInstructions encodes msgs in order.
func NewInstructions(msgs ...Msg) ([]Instruction, error) {
	out := make([]Instruction, 0, len(msgs))
	for _, m := range msgs {
		ix, err := NewInstruction(m)
		if err != nil {
			return nil, err
		}
		out = append(out, ix)
	}
	return out, nil
}

// Msg decodes the instruction.
func (ix Instruction) Msg() (Msg, error) {
	msg, err := newMsg(ix.Type)
	if err != nil {
		return nil, err
	}
	if err := rlp.DecodeBytes(ix.Data, msg); err != nil {
		return nil, ErrInvalidRequest.Wrapf("fail to decode %s: %s", ix.Type, err)
	}
	return msg, nil
}

func requireAddress(name string, addr common.Address) error {
	if addr.IsEmpty() {
		return ErrInvalidRequest.Wrapf("%s is required", name)
	}
	return nil
}
