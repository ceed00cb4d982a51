package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/elgamal"
)

// MsgInitializeMint turns an allocated account into a mint with the
// confidential transfer extension.
type MsgInitializeMint struct {
	Mint                   common.Address
	MintAuthority          common.Address
	Decimals               uint8
	AutoApproveNewAccounts bool
	AuditorPubkey          elgamal.PublicKey
}

func (m *MsgInitializeMint) Type() MsgType { return MsgTypeInitializeMint }

// ValidateBasic performs basic validation of the MsgInitializeMint message.
func (m *MsgInitializeMint) ValidateBasic() error {
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	if err := requireAddress("mint authority", m.MintAuthority); err != nil {
		return err
	}
	if int(m.Decimals) > common.MaxDecimals {
		return ErrInvalidRequest.Wrapf("decimals %d exceed maximum %d", m.Decimals, common.MaxDecimals)
	}
	if !m.AuditorPubkey.IsEmpty() {
		if _, err := m.AuditorPubkey.Point(); err != nil {
			return ErrInvalidRequest.Wrapf("auditor pubkey: %s", err)
		}
	}
	return nil
}

// GetSigners is empty: the mint account signed its own allocation.
func (m *MsgInitializeMint) GetSigners() common.Addresses {
	return nil
}
