// Package zk implements the sigma-protocol proofs that let the ledger check
// confidential balance updates without learning any amount.
package zk

import (
	"encoding/binary"
	"hash"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"golang.org/x/crypto/sha3"
)

// Domain tags, one per proof type. Each tag seeds its own transcript so a
// proof of one type can never be replayed as another.
const (
	TagPubkeyValidity     = "ctoken/pubkey-validity-proof"
	TagEquality           = "ctoken/ciphertext-commitment-equality-proof"
	TagCiphertextValidity = "ctoken/batched-grouped-ciphertext-validity-proof"
	TagRange              = "ctoken/batched-range-proof"
)

// Transcript is a Fiat-Shamir transcript over keccak256. Prover and verifier
// append the same messages in the same order and derive identical challenges.
type Transcript struct {
	h hash.Hash
}

// NewTranscript starts a transcript domain separated by tag, in the style of
// BIP-340 tagged hashes: keccak(tag) is absorbed twice before any message.
func NewTranscript(tag string) *Transcript {
	tagHash := keccak256([]byte(tag))
	h := sha3.NewLegacyKeccak256()
	h.Write(tagHash)
	h.Write(tagHash)
	return &Transcript{h: h}
}

func keccak256(data ...[]byte) []byte {
	h := sha3.NewLegacyKeccak256()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Append absorbs a labelled message. Lengths are absorbed too so adjacent
// messages cannot be shifted into each other.
func (t *Transcript) Append(label string, data []byte) {
	var n [4]byte
	binary.BigEndian.PutUint32(n[:], uint32(len(label)))
	t.h.Write(n[:])
	t.h.Write([]byte(label))
	binary.BigEndian.PutUint32(n[:], uint32(len(data)))
	t.h.Write(n[:])
	t.h.Write(data)
}

func (t *Transcript) AppendPoint(label string, p Point) {
	t.Append(label, p[:])
}

func (t *Transcript) AppendUint64(label string, v uint64) {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	t.Append(label, b[:])
}

// ChallengeScalar derives a scalar from everything absorbed so far and then
// ratchets the state so the next challenge is independent.
func (t *Transcript) ChallengeScalar(label string) fr.Element {
	t.Append(label, nil)
	digest := t.h.Sum(nil)

	// 512 bits reduced mod r keeps the bias negligible
	wide := make([]byte, 0, 64)
	wide = append(wide, keccak256(digest, []byte{0})...)
	wide = append(wide, keccak256(digest, []byte{1})...)

	var c fr.Element
	c.SetBytes(wide)
	t.h.Write(digest)
	return c
}
