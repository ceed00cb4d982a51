package types

import "github.com/btcq-org/ctoken/common"

// MsgInitializeAccount turns an allocated account into a token account.
type MsgInitializeAccount struct {
	Account common.Address
	Mint    common.Address
	Owner   common.Address
}

func (m *MsgInitializeAccount) Type() MsgType { return MsgTypeInitializeAccount }

// ValidateBasic performs basic validation of the MsgInitializeAccount message.
func (m *MsgInitializeAccount) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	return requireAddress("owner", m.Owner)
}

func (m *MsgInitializeAccount) GetSigners() common.Addresses {
	return nil
}
