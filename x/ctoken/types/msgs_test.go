package types

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/btcq-org/ctoken/common"
	"github.com/btcq-org/ctoken/crypto/authenc"
	"github.com/btcq-org/ctoken/crypto/elgamal"
	"github.com/btcq-org/ctoken/zk"
)

func testAddress(b byte) common.Address {
	var addr common.Address
	addr[0] = b
	addr[31] = b
	return addr
}

func testDecryptable() authenc.Ciphertext {
	var ct authenc.Ciphertext
	ct[0] = 1
	return ct
}

func TestMsgValidateBasic(t *testing.T) {
	testCases := []struct {
		name      string
		msg       Msg
		expectErr bool
		errMsg    string
	}{
		{
			name:      "create account",
			msg:       &MsgCreateAccount{From: testAddress(1), NewAccount: testAddress(2), Lamports: 10, Space: 128},
			expectErr: false,
		},
		{
			name:      "create account funding itself",
			msg:       &MsgCreateAccount{From: testAddress(1), NewAccount: testAddress(1)},
			expectErr: true,
			errMsg:    "new account must differ",
		},
		{
			name:      "create account missing from",
			msg:       &MsgCreateAccount{NewAccount: testAddress(2)},
			expectErr: true,
			errMsg:    "from is required",
		},
		{
			name:      "initialize mint",
			msg:       &MsgInitializeMint{Mint: testAddress(1), MintAuthority: testAddress(2), Decimals: 6},
			expectErr: false,
		},
		{
			name:      "initialize mint with too many decimals",
			msg:       &MsgInitializeMint{Mint: testAddress(1), MintAuthority: testAddress(2), Decimals: 19},
			expectErr: true,
			errMsg:    "decimals 19 exceed maximum",
		},
		{
			name:      "initialize mint with bad auditor",
			msg:       &MsgInitializeMint{Mint: testAddress(1), MintAuthority: testAddress(2), AuditorPubkey: elgamal.PublicKey(elgamal.ZeroCiphertext().Handle())},
			expectErr: true,
			errMsg:    "auditor pubkey",
		},
		{
			name:      "initialize account missing owner",
			msg:       &MsgInitializeAccount{Account: testAddress(1), Mint: testAddress(2)},
			expectErr: true,
			errMsg:    "owner is required",
		},
		{
			name:      "mint zero",
			msg:       &MsgMintTo{Mint: testAddress(1), Account: testAddress(2), Authority: testAddress(3)},
			expectErr: true,
			errMsg:    "amount must be positive",
		},
		{
			name: "configure account without decryptable balance",
			msg: &MsgConfigureAccount{
				Account: testAddress(1), Mint: testAddress(2), Owner: testAddress(3),
				MaximumPendingBalanceCreditCounter: 10,
			},
			expectErr: true,
			errMsg:    "decryptable zero balance is required",
		},
		{
			name: "configure account without pubkey",
			msg: &MsgConfigureAccount{
				Account: testAddress(1), Mint: testAddress(2), Owner: testAddress(3),
				DecryptableZeroBalance:             testDecryptable(),
				MaximumPendingBalanceCreditCounter: 10,
			},
			expectErr: true,
			errMsg:    "elgamal pubkey is required",
		},
		{
			name:      "deposit",
			msg:       &MsgDeposit{Account: testAddress(1), Mint: testAddress(2), Owner: testAddress(3), Amount: 100},
			expectErr: false,
		},
		{
			name:      "deposit too large",
			msg:       &MsgDeposit{Account: testAddress(1), Mint: testAddress(2), Owner: testAddress(3), Amount: zk.MaxTransferAmount},
			expectErr: true,
			errMsg:    "maximum deposit amount exceeded",
		},
		{
			name:      "apply without decryptable balance",
			msg:       &MsgApplyPendingBalance{Account: testAddress(1), Owner: testAddress(2)},
			expectErr: true,
			errMsg:    "new decryptable available balance is required",
		},
		{
			name: "transfer",
			msg: &MsgTransfer{
				Source: testAddress(1), Mint: testAddress(2), Destination: testAddress(3), Owner: testAddress(4),
				NewSourceDecryptableAvailableBalance: testDecryptable(),
				EqualityProofContext:                 testAddress(5),
				CiphertextValidityProofContext:       testAddress(6),
				RangeProofContext:                    testAddress(7),
			},
			expectErr: false,
		},
		{
			name: "transfer to self",
			msg: &MsgTransfer{
				Source: testAddress(1), Mint: testAddress(2), Destination: testAddress(1), Owner: testAddress(4),
				NewSourceDecryptableAvailableBalance: testDecryptable(),
				EqualityProofContext:                 testAddress(5),
				CiphertextValidityProofContext:       testAddress(6),
				RangeProofContext:                    testAddress(7),
			},
			expectErr: true,
			errMsg:    "source and destination must differ",
		},
		{
			name: "transfer reusing a proof context",
			msg: &MsgTransfer{
				Source: testAddress(1), Mint: testAddress(2), Destination: testAddress(3), Owner: testAddress(4),
				NewSourceDecryptableAvailableBalance: testDecryptable(),
				EqualityProofContext:                 testAddress(5),
				CiphertextValidityProofContext:       testAddress(5),
				RangeProofContext:                    testAddress(7),
			},
			expectErr: true,
			errMsg:    "proof contexts must be distinct",
		},
		{
			name: "transfer missing range context",
			msg: &MsgTransfer{
				Source: testAddress(1), Mint: testAddress(2), Destination: testAddress(3), Owner: testAddress(4),
				NewSourceDecryptableAvailableBalance: testDecryptable(),
				EqualityProofContext:                 testAddress(5),
				CiphertextValidityProofContext:       testAddress(6),
			},
			expectErr: true,
			errMsg:    "range proof context is required",
		},
		{
			name: "withdraw",
			msg: &MsgWithdraw{
				Account: testAddress(1), Mint: testAddress(2), Owner: testAddress(3), Amount: 5,
				NewDecryptableAvailableBalance: testDecryptable(),
				EqualityProofContext:           testAddress(4),
				RangeProofContext:              testAddress(5),
			},
			expectErr: false,
		},
		{
			name:      "create proof context without payload",
			msg:       &MsgCreateProofContext{Context: testAddress(1), Authority: testAddress(2)},
			expectErr: true,
			errMsg:    "proof payload is required",
		},
		{
			name:      "close proof context into itself",
			msg:       &MsgCloseProofContext{Context: testAddress(1), Authority: testAddress(2), Destination: testAddress(1)},
			expectErr: true,
			errMsg:    "destination must differ from context",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.msg.ValidateBasic()
			if tc.expectErr {
				require.Error(t, err)
				require.Contains(t, err.Error(), tc.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestInstructionRoundTrip(t *testing.T) {
	msg := &MsgTransfer{
		Source: testAddress(1), Mint: testAddress(2), Destination: testAddress(3), Owner: testAddress(4),
		NewSourceDecryptableAvailableBalance: testDecryptable(),
		EqualityProofContext:                 testAddress(5),
		CiphertextValidityProofContext:       testAddress(6),
		RangeProofContext:                    testAddress(7),
	}
	ix, err := NewInstruction(msg)
	require.NoError(t, err)
	require.Equal(t, MsgTypeTransfer, ix.Type)

	decoded, err := ix.Msg()
	require.NoError(t, err)
	require.Equal(t, msg, decoded)
	require.Equal(t, common.Addresses{testAddress(4)}, decoded.GetSigners())

	_, err = Instruction{Type: MsgType(99), Data: ix.Data}.Msg()
	require.ErrorIs(t, err, ErrInvalidRequest)

	_, err = Instruction{Type: MsgTypeDeposit, Data: []byte{0xff}}.Msg()
	require.ErrorIs(t, err, ErrInvalidRequest)
}

func TestMsgTypeString(t *testing.T) {
	require.Equal(t, "ApplyPendingBalance", MsgTypeApplyPendingBalance.String())
	require.Equal(t, "MsgType(77)", MsgType(77).String())
}
