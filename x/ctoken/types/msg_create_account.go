package types

import "github.com/btcq-org/ctoken/common"

// MsgCreateAccount allocates a new account funded by From.
type MsgCreateAccount struct {
	From       common.Address
	NewAccount common.Address
	Lamports   uint64
	Space      uint64
}

func (m *MsgCreateAccount) Type() MsgType { return MsgTypeCreateAccount }

// ValidateBasic performs basic validation of the MsgCreateAccount message.
func (m *MsgCreateAccount) ValidateBasic() error {
	if err := requireAddress("from", m.From); err != nil {
		return err
	}
	if err := requireAddress("new account", m.NewAccount); err != nil {
		return err
	}
	if m.From.Equals(m.NewAccount) {
		return ErrInvalidRequest.Wrap("new account must differ from funding account")
	}
	return nil
}

func (m *MsgCreateAccount) GetSigners() common.Addresses {
	return common.Addresses{m.From, m.NewAccount}
}
