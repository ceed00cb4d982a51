package common

import (
	"crypto/sha256"

	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// Signer is the key-provider interface. It signs ledger transactions and is
// also the root from which per-account encryption keys are derived, so a
// hardware-backed implementation must produce deterministic signatures.
type Signer interface {
	// Address returns the ledger address controlled by the signer.
	Address() Address
	// Sign signs an arbitrary message. Implementations hash the message
	// themselves.
	Sign(message []byte) ([]byte, error)
}

// SignerAddresses returns the addresses of the given signers, in order.
func SignerAddresses(signers []Signer) Addresses {
	out := make(Addresses, 0, len(signers))
	for _, s := range signers {
		out = append(out, s.Address())
	}
	return out
}

// DistinctSigners drops signers whose address already appeared earlier in the list.
func DistinctSigners(signers []Signer) []Signer {
	seen := make(map[Address]struct{}, len(signers))
	out := make([]Signer, 0, len(signers))
	for _, s := range signers {
		if s == nil {
			continue
		}
		if _, ok := seen[s.Address()]; ok {
			continue
		}
		seen[s.Address()] = struct{}{}
		out = append(out, s)
	}
	return out
}

// SignatureDigest is the digest signers sign for a message.
func SignatureDigest(message []byte) [32]byte {
	return sha256.Sum256(message)
}

// VerifySignature checks a BIP-340 signature over message made by the key
// behind addr.
func VerifySignature(addr Address, message, sig []byte) bool {
	pub, err := schnorr.ParsePubKey(addr[:])
	if err != nil {
		return false
	}
	parsed, err := schnorr.ParseSignature(sig)
	if err != nil {
		return false
	}
	digest := SignatureDigest(message)
	return parsed.Verify(digest[:], pub)
}
