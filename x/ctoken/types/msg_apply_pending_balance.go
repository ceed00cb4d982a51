package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
)

// MsgApplyPendingBalance folds the pending balance into the available
// balance. The owner supplies the new decryptable balance and the credit
// counter it was computed for.
type MsgApplyPendingBalance struct {
	Account                             common.Address
	Owner                               common.Address
	ExpectedPendingBalanceCreditCounter uint64
	NewDecryptableAvailableBalance      authenc.Ciphertext
}

func (m *MsgApplyPendingBalance) Type() MsgType { return MsgTypeApplyPendingBalance }

// ValidateBasic performs basic validation of the MsgApplyPendingBalance message.
func (m *MsgApplyPendingBalance) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("owner", m.Owner); err != nil {
		return err
	}
	if m.NewDecryptableAvailableBalance.IsEmpty() {
		return ErrInvalidRequest.Wrap("new decryptable available balance is required")
	}
	return nil
}

func (m *MsgApplyPendingBalance) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
