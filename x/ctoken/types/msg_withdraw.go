package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/zk"
)

// MsgWithdraw moves tokens from the available confidential balance back to
// the public balance.
type MsgWithdraw struct {
	Account                        common.Address
	Mint                           common.Address
	Owner                          common.Address
	Amount                         uint64
	Decimals                       uint8
	NewDecryptableAvailableBalance authenc.Ciphertext
	EqualityProofContext           common.Address
	RangeProofContext              common.Address
}

func (m *MsgWithdraw) Type() MsgType { return MsgTypeWithdraw }

// ValidateBasic performs basic validation of the MsgWithdraw message.
func (m *MsgWithdraw) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	if err := requireAddress("owner", m.Owner); err != nil {
		return err
	}
	if err := requireAddress("equality proof context", m.EqualityProofContext); err != nil {
		return err
	}
	if err := requireAddress("range proof context", m.RangeProofContext); err != nil {
		return err
	}
	if m.Amount >= zk.MaxTransferAmount {
		return ErrInvalidRequest.Wrapf("amount %d exceeds maximum %d", m.Amount, zk.MaxTransferAmount-1)
	}
	if m.EqualityProofContext.Equals(m.RangeProofContext) {
		return ErrInvalidRequest.Wrap("proof contexts must be distinct")
	}
	if m.NewDecryptableAvailableBalance.IsEmpty() {
		return ErrInvalidRequest.Wrap("new decryptable available balance is required")
	}
	return nil
}

func (m *MsgWithdraw) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
