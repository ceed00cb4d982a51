//go:build !mocknet

package constants

var DefaultValues = map[ConstantName]int64{
	LamportsPerByteYear:                3480,
	ExemptionThresholdYears:            2,
	AccountStorageOverhead:             128,
	LamportsPerSignature:               5000,
	MaxRecentBlockhashes:               150,
	MaxTransactionSize:                 64 * 1024,
	MaximumPendingBalanceCreditCounter: 65536,
	MaxAirdropLamports:                 1_000_000_000_000,
}
