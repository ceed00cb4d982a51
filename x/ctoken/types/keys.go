package types

import "github.com/btcq-org/ctoken/common"

const (
	// ModuleName defines the module name
	ModuleName = "ctoken"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName
)

var (
	// AccountKeyPrefix is the prefix for account state
	AccountKeyPrefix = []byte("account/")
)

// AccountKey returns the store key of an account.
func AccountKey(addr common.Address) []byte {
	key := make([]byte, 0, len(AccountKeyPrefix)+common.AddressLength)
	key = append(key, AccountKeyPrefix...)
	return append(key, addr[:]...)
}
