package types

import "github.com/btcq-org/ctoken/common"

// MsgMintTo mints public tokens into a token account.
type MsgMintTo struct {
	Mint      common.Address
	Account   common.Address
	Authority common.Address
	Amount    uint64
}

func (m *MsgMintTo) Type() MsgType { return MsgTypeMintTo }

// ValidateBasic performs basic validation of the MsgMintTo message.
func (m *MsgMintTo) ValidateBasic() error {
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("authority", m.Authority); err != nil {
		return err
	}
	if m.Amount == 0 {
		return ErrInvalidRequest.Wrap("amount must be positive")
	}
	return nil
}

func (m *MsgMintTo) GetSigners() common.Addresses {
	return common.Addresses{m.Authority}
}
