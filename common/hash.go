package common

import (
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

const HashLength = 32

// Hash is a 32 byte digest, used for block hashes.
type Hash [HashLength]byte

var EmptyHash = Hash{}

func NewHash(s string) (Hash, error) {
	raw := base58.Decode(s)
	if len(raw) != HashLength {
		return EmptyHash, fmt.Errorf("invalid hash: %s", s)
	}
	var h Hash
	copy(h[:], raw)
	return h, nil
}

func (h Hash) IsEmpty() bool {
	return h == EmptyHash
}

func (h Hash) String() string {
	return base58.Encode(h[:])
}

func (h Hash) MarshalText() ([]byte, error) {
	return []byte(h.String()), nil
}

func (h *Hash) UnmarshalText(text []byte) error {
	parsed, err := NewHash(string(text))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}
