package types

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/btcq-org/ctoken/common"
)

// SignatureLength is the size of a BIP-340 signature.
const SignatureLength = 64

// Signature is a transaction signature. The fee payer signature doubles as
// the transaction id.
type Signature [SignatureLength]byte

var NoSignature = Signature{}

// NewSignature parses a base58 encoded signature.
func NewSignature(s string) (Signature, error) {
	raw := base58.Decode(s)
	if len(raw) != SignatureLength {
		return NoSignature, fmt.Errorf("invalid signature: %s", s)
	}
	var sig Signature
	copy(sig[:], raw)
	return sig, nil
}

func (s Signature) IsEmpty() bool {
	return s == NoSignature
}

func (s Signature) String() string {
	return base58.Encode(s[:])
}

func (s Signature) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Signature) UnmarshalText(text []byte) error {
	parsed, err := NewSignature(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// TxMessage is the signed part of a transaction.
type TxMessage struct {
	RecentBlockhash common.Hash
	FeePayer        common.Address
	Instructions    []Instruction
}

// Bytes returns the encoding signers sign over.
func (m *TxMessage) Bytes() ([]byte, error) {
	return rlp.EncodeToBytes(m)
}

// RequiredSigners returns the fee payer followed by the distinct signers
// required by the instructions.
func (m *TxMessage) RequiredSigners() (common.Addresses, error) {
	required := common.Addresses{m.FeePayer}
	for _, ix := range m.Instructions {
		msg, err := ix.Msg()
		if err != nil {
			return nil, err
		}
		required = append(required, msg.GetSigners()...)
	}
	return required.Distinct(), nil
}

type TxSignature struct {
	Signer    common.Address
	Signature Signature
}

// Transaction is an atomic list of instructions with its signatures.
type Transaction struct {
	Message    TxMessage
	Signatures []TxSignature
}

// NewTransaction builds an unsigned transaction.
func NewTransaction(blockhash common.Hash, feePayer common.Address, instructions []Instruction) *Transaction {
	return &Transaction{
		Message: TxMessage{
			RecentBlockhash: blockhash,
			FeePayer:        feePayer,
			Instructions:    instructions,
		},
	}
}

// BuildTransaction builds and signs a transaction. Every signer an
// instruction requires must be among signers or be the fee payer.
func BuildTransaction(blockhash common.Hash, instructions []Instruction, signers []common.Signer, feePayer common.Signer) (*Transaction, error) {
	if feePayer == nil {
		return nil, ErrMissingSigner.Wrap("fee payer is required")
	}
	tx := NewTransaction(blockhash, feePayer.Address(), instructions)
	all := common.DistinctSigners(append([]common.Signer{feePayer}, signers...))
	required, err := tx.Message.RequiredSigners()
	if err != nil {
		return nil, err
	}
	available := common.SignerAddresses(all)
	for _, addr := range required {
		if !available.Has(addr) {
			return nil, ErrMissingSigner.Wrapf("%s", addr)
		}
	}
	if err := tx.Sign(all); err != nil {
		return nil, err
	}
	return tx, nil
}

// Sign appends a signature per signer. Signers that already signed are skipped.
func (tx *Transaction) Sign(signers []common.Signer) error {
	msg, err := tx.Message.Bytes()
	if err != nil {
		return fmt.Errorf("fail to encode transaction message: %w", err)
	}
	for _, s := range signers {
		addr := s.Address()
		if tx.signedBy(addr) {
			continue
		}
		raw, err := s.Sign(msg)
		if err != nil {
			return fmt.Errorf("fail to sign transaction with %s: %w", addr, err)
		}
		if len(raw) != SignatureLength {
			return ErrInvalidSignature.Wrapf("signer %s returned %d bytes", addr, len(raw))
		}
		var sig Signature
		copy(sig[:], raw)
		tx.Signatures = append(tx.Signatures, TxSignature{Signer: addr, Signature: sig})
	}
	return nil
}

func (tx *Transaction) signedBy(addr common.Address) bool {
	for _, s := range tx.Signatures {
		if s.Signer.Equals(addr) {
			return true
		}
	}
	return false
}

// ID returns the fee payer signature, empty when the fee payer has not signed.
func (tx *Transaction) ID() Signature {
	for _, s := range tx.Signatures {
		if s.Signer.Equals(tx.Message.FeePayer) {
			return s.Signature
		}
	}
	return NoSignature
}

// Signers returns the addresses with a signature on the transaction.
func (tx *Transaction) Signers() common.Addresses {
	out := make(common.Addresses, 0, len(tx.Signatures))
	for _, s := range tx.Signatures {
		out = append(out, s.Signer)
	}
	return out
}

// VerifySignatures checks every signature and that all required signers signed.
func (tx *Transaction) VerifySignatures() error {
	msg, err := tx.Message.Bytes()
	if err != nil {
		return fmt.Errorf("fail to encode transaction message: %w", err)
	}
	for _, s := range tx.Signatures {
		if !common.VerifySignature(s.Signer, msg, s.Signature[:]) {
			return ErrInvalidSignature.Wrapf("signature of %s", s.Signer)
		}
	}
	required, err := tx.Message.RequiredSigners()
	if err != nil {
		return err
	}
	signed := tx.Signers()
	for _, addr := range required {
		if !signed.Has(addr) {
			return ErrMissingSigner.Wrapf("%s", addr)
		}
	}
	return nil
}

// Encode serializes the transaction for the wire.
func (tx *Transaction) Encode() ([]byte, error) {
	return rlp.EncodeToBytes(tx)
}

// DecodeTransaction is the inverse of Transaction.Encode.
func DecodeTransaction(b []byte) (*Transaction, error) {
	tx := new(Transaction)
	if err := rlp.DecodeBytes(b, tx); err != nil {
		return nil, ErrInvalidRequest.Wrapf("fail to decode transaction: %s", err)
	}
	return tx, nil
}
