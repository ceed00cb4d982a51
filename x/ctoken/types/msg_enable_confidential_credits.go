package types

import "github.com/btcq-org/ctoken/common"

// MsgEnableConfidentialCredits allows the account to receive confidential transfers.
type MsgEnableConfidentialCredits struct {
	Account common.Address
	Owner   common.Address
}

func (m *MsgEnableConfidentialCredits) Type() MsgType { return MsgTypeEnableConfidentialCredits }

// ValidateBasic performs basic validation of the MsgEnableConfidentialCredits message.
func (m *MsgEnableConfidentialCredits) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	return requireAddress("owner", m.Owner)
}

func (m *MsgEnableConfidentialCredits) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
