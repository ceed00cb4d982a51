package types

import (
	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
)

// MsgTransfer moves an encrypted amount from the available balance of Source
// to the pending balance of Destination. The proofs live in three proof
// context accounts created beforehand.
type MsgTransfer struct {
	Source                               common.Address
	Mint                                 common.Address
	Destination                          common.Address
	Owner                                common.Address
	NewSourceDecryptableAvailableBalance authenc.Ciphertext
	EqualityProofContext                 common.Address
	CiphertextValidityProofContext       common.Address
	RangeProofContext                    common.Address
}

func (m *MsgTransfer) Type() MsgType { return MsgTypeTransfer }

// ValidateBasic performs basic validation of the MsgTransfer message.
func (m *MsgTransfer) ValidateBasic() error {
	for _, f := range []struct {
		name string
		addr common.Address
	}{
		{"source", m.Source},
		{"mint", m.Mint},
		{"destination", m.Destination},
		{"owner", m.Owner},
		{"equality proof context", m.EqualityProofContext},
		{"ciphertext validity proof context", m.CiphertextValidityProofContext},
		{"range proof context", m.RangeProofContext},
	} {
		if err := requireAddress(f.name, f.addr); err != nil {
			return err
		}
	}
	if m.Source.Equals(m.Destination) {
		return ErrInvalidRequest.Wrap("source and destination must differ")
	}
	contexts := common.Addresses{m.EqualityProofContext, m.CiphertextValidityProofContext, m.RangeProofContext}
	if len(contexts.Distinct()) != len(contexts) {
		return ErrInvalidRequest.Wrap("proof contexts must be distinct")
	}
	if m.NewSourceDecryptableAvailableBalance.IsEmpty() {
		return ErrInvalidRequest.Wrap("new decryptable available balance is required")
	}
	return nil
}

func (m *MsgTransfer) GetSigners() common.Addresses {
	return common.Addresses{m.Owner}
}
