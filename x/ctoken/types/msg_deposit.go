package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/zk"
)

// MsgDeposit moves public tokens of an account into its pending confidential balance.
type MsgDeposit struct {
	Account  common.Address
	Mint     common.Address
	Owner    common.Address
	Amount   uint64
	Decimals uint8
}

func (m *MsgDeposit) Type() MsgType { return MsgTypeDeposit }

// ValidateBasic performs basic validation of the MsgDeposit message.
func (m *MsgDeposit) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	if err := requireAddress("owner", m.Owner); err != nil {
		return err
	}
	if m.Amount >= zk.MaxTransferAmount {
		return ErrMaximumDepositAmountExceeded.Wrapf("%d >= %d", m.Amount, zk.MaxTransferAmount)
	}
	return nil
}

func (m *MsgDeposit) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
