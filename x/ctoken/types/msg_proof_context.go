package types

import "github.com/btcq-org/ctoken/common"

// MsgCreateProofContext stores a proof in an allocated account. With Verify
// set the proof is verified in the same instruction, otherwise a later
// MsgVerifyProof does it.
type MsgCreateProofContext struct {
	Context   common.Address
	Authority common.Address
	Payload   []byte
	Verify    bool
}

func (m *MsgCreateProofContext) Type() MsgType { return MsgTypeCreateProofContext }

// ValidateBasic performs basic validation of the MsgCreateProofContext message.
func (m *MsgCreateProofContext) ValidateBasic() error {
	if err := requireAddress("context", m.Context); err != nil {
		return err
	}
	if err := requireAddress("authority", m.Authority); err != nil {
		return err
	}
	if len(m.Payload) == 0 {
		return ErrInvalidRequest.Wrap("proof payload is required")
	}
	return nil
}

func (m *MsgCreateProofContext) GetSigners() common.Addresses {
	return common.Addresses{m.Context}
}

// MsgVerifyProof verifies a proof stored by an earlier MsgCreateProofContext.
type MsgVerifyProof struct {
	Context   common.Address
	Authority common.Address
}

func (m *MsgVerifyProof) Type() MsgType { return MsgTypeVerifyProof }

// ValidateBasic performs basic validation of the MsgVerifyProof message.
func (m *MsgVerifyProof) ValidateBasic() error {
	if err := requireAddress("context", m.Context); err != nil {
		return err
	}
	return requireAddress("authority", m.Authority)
}

func (m *MsgVerifyProof) GetSigners() common.Addresses {
	return common.Addresses{m.Authority}
}

// MsgCloseProofContext deletes a proof context and returns its lamports to Destination.
type MsgCloseProofContext struct {
	Context     common.Address
	Authority   common.Address
	Destination common.Address
}

func (m *MsgCloseProofContext) Type() MsgType { return MsgTypeCloseProofContext }

// ValidateBasic performs basic validation of the MsgCloseProofContext message.
func (m *MsgCloseProofContext) ValidateBasic() error {
	if err := requireAddress("context", m.Context); err != nil {
		return err
	}
	if err := requireAddress("authority", m.Authority); err != nil {
		return err
	}
	if err := requireAddress("destination", m.Destination); err != nil {
		return err
	}
	if m.Destination.Equals(m.Context) {
		return ErrInvalidRequest.Wrap("destination must differ from context")
	}
	return nil
}

func (m *MsgCloseProofContext) GetSigners() common.Addresses {
	return common.Addresses{m.Authority}
}
