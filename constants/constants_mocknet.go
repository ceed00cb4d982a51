//go:build mocknet

package constants

// mocknet shortens the blockhash window and the credit cap so the limits are
// easy to reach from tests.
var DefaultValues = map[ConstantName]int64{
	LamportsPerByteYear:                3480,
	ExemptionThresholdYears:            2,
	AccountStorageOverhead:             128,
	LamportsPerSignature:               5000,
	MaxRecentBlockhashes:               16,
	MaxTransactionSize:                 64 * 1024,
	MaximumPendingBalanceCreditCounter: 8,
	MaxAirdropLamports:                 1_000_000_000_000_000,
}
