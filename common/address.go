package common

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcutil/base58"
)

// AddressLength is the size of a ledger address. Addresses are x-only
// schnorr public keys, so the holder of the matching key can sign for them.
const AddressLength = 32

// Address identifies an account on the ledger.
type Address [AddressLength]byte

var NoAddress = Address{}

// NewAddress parses a base58 encoded address.
func NewAddress(address string) (Address, error) {
	if len(address) == 0 {
		return NoAddress, fmt.Errorf("address is empty")
	}
	raw := base58.Decode(address)
	if len(raw) != AddressLength {
		return NoAddress, fmt.Errorf("address format not supported: %s", address)
	}
	var addr Address
	copy(addr[:], raw)
	return addr, nil
}

// MustNewAddress is NewAddress for constants and tests, it panics on bad input.
func MustNewAddress(address string) Address {
	addr, err := NewAddress(address)
	if err != nil {
		panic(err)
	}
	return addr
}

// BytesToAddress converts b to an address, b must be exactly AddressLength bytes.
func BytesToAddress(b []byte) (Address, error) {
	if len(b) != AddressLength {
		return NoAddress, fmt.Errorf("invalid address length %d", len(b))
	}
	var addr Address
	copy(addr[:], b)
	return addr, nil
}

func (addr Address) Bytes() []byte {
	return addr[:]
}

func (addr Address) Equals(addr2 Address) bool {
	return bytes.Equal(addr[:], addr2[:])
}

func (addr Address) IsEmpty() bool {
	return addr == NoAddress
}

func (addr Address) Hex() string {
	return hex.EncodeToString(addr[:])
}

func (addr Address) String() string {
	if addr.IsEmpty() {
		return ""
	}
	return base58.Encode(addr[:])
}

// MarshalText encodes the address as base58 so it reads naturally in JSON and config files.
func (addr Address) MarshalText() ([]byte, error) {
	return []byte(addr.String()), nil
}

func (addr *Address) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*addr = NoAddress
		return nil
	}
	parsed, err := NewAddress(string(text))
	if err != nil {
		return err
	}
	*addr = parsed
	return nil
}

type Addresses []Address

// Has check whether addr is in the list
func (addrs Addresses) Has(addr Address) bool {
	for _, a := range addrs {
		if a.Equals(addr) {
			return true
		}
	}
	return false
}

// Distinct return a distinct set of addresses, order is preserved
func (addrs Addresses) Distinct() Addresses {
	var out Addresses
	for _, a := range addrs {
		if !out.Has(a) {
			out = append(out, a)
		}
	}
	return out
}

func (addrs Addresses) Strings() []string {
	out := make([]string, len(addrs))
	for i, a := range addrs {
		out[i] = a.String()
	}
	return out
}
