package constants

// ConstantName represents the names of the protocol constants used by the
// ledger program and the client.
//
//go:generate stringer -type=ConstantName
type ConstantName int

const (
	// LamportsPerByteYear is the rent charged per byte of account space per year.
	LamportsPerByteYear ConstantName = iota
	// ExemptionThresholdYears is how many years of rent an account must hold
	// to be exempt from rent collection.
	ExemptionThresholdYears
	// AccountStorageOverhead is the per-account space added on top of the data
	// length when computing rent.
	AccountStorageOverhead
	// LamportsPerSignature is the fee charged for each transaction signature.
	LamportsPerSignature
	// MaxRecentBlockhashes is how many recent blockhashes a transaction may reference.
	MaxRecentBlockhashes
	// MaxTransactionSize is the largest encoded transaction the ledger accepts.
	MaxTransactionSize
	// MaximumPendingBalanceCreditCounter is the default cap on the number of
	// credits a confidential account may receive before applying them.
	MaximumPendingBalanceCreditCounter
	// MaxAirdropLamports caps a single airdrop request.
	MaxAirdropLamports
)

func FromString(s string) (ConstantName, bool) {
	switch s {
	case "LamportsPerByteYear":
		return LamportsPerByteYear, true
	case "ExemptionThresholdYears":
		return ExemptionThresholdYears, true
	case "AccountStorageOverhead":
		return AccountStorageOverhead, true
	case "LamportsPerSignature":
		return LamportsPerSignature, true
	case "MaxRecentBlockhashes":
		return MaxRecentBlockhashes, true
	case "MaxTransactionSize":
		return MaxTransactionSize, true
	case "MaximumPendingBalanceCreditCounter":
		return MaximumPendingBalanceCreditCounter, true
	case "MaxAirdropLamports":
		return MaxAirdropLamports, true
	default:
		return 0, false
	}
}

func (c ConstantName) String() string {
	switch c {
	case LamportsPerByteYear:
		return "LamportsPerByteYear"
	case ExemptionThresholdYears:
		return "ExemptionThresholdYears"
	case AccountStorageOverhead:
		return "AccountStorageOverhead"
	case LamportsPerSignature:
		return "LamportsPerSignature"
	case MaxRecentBlockhashes:
		return "MaxRecentBlockhashes"
	case MaxTransactionSize:
		return "MaxTransactionSize"
	case MaximumPendingBalanceCreditCounter:
		return "MaximumPendingBalanceCreditCounter"
	case MaxAirdropLamports:
		return "MaxAirdropLamports"
	default:
		return "Unknown"
	}
}

// Get returns the default value of a constant as uint64.
func Get(name ConstantName) uint64 {
	v, ok := DefaultValues[name]
	if !ok || v < 0 {
		return 0
	}
	return uint64(v)
}
