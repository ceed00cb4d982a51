package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/zk"
)

// MsgConfigureAccount enables confidential transfers on a token account. The
// pubkey validity proof is carried inline: it is small and never referenced
// by another instruction.
type MsgConfigureAccount struct {
	Account                            common.Address
	Mint                               common.Address
	Owner                              common.Address
	DecryptableZeroBalance             authenc.Ciphertext
	MaximumPendingBalanceCreditCounter uint64
	Proof                              zk.PubkeyValidityProofData
}

func (m *MsgConfigureAccount) Type() MsgType { return MsgTypeConfigureAccount }

// ValidateBasic performs basic validation of the MsgConfigureAccount message.
func (m *MsgConfigureAccount) ValidateBasic() error {
	if err := requireAddress("account", m.Account); err != nil {
		return err
	}
	if err := requireAddress("mint", m.Mint); err != nil {
		return err
	}
	if err := requireAddress("owner", m.Owner); err != nil {
		return err
	}
	if m.DecryptableZeroBalance.IsEmpty() {
		return ErrInvalidRequest.Wrap("decryptable zero balance is required")
	}
	if m.MaximumPendingBalanceCreditCounter == 0 {
		return ErrInvalidRequest.Wrap("maximum pending balance credit counter must be positive")
	}
	if m.Proof.Context.Pubkey.IsEmpty() {
		return ErrInvalidRequest.Wrap("elgamal pubkey is required")
	}
	return nil
}

func (m *MsgConfigureAccount) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
