package common

import (
	"fmt"
	"math/big"

	"cosmossdk.io/math"
)

// MaxDecimals is the largest number of decimals a mint may declare. LegacyDec
// carries 18 digits of precision, anything beyond that cannot be scaled exactly.
const MaxDecimals = math.LegacyPrecision

// ScaleAmount converts a UI amount (e.g. "1.5") into base units of a mint with
// the given decimals. Amounts that are negative, carry more precision than the
// mint supports or do not fit in a uint64 are rejected.
func ScaleAmount(amount math.LegacyDec, decimals uint8) (uint64, error) {
	if amount.IsNil() {
		return 0, fmt.Errorf("amount is empty")
	}
	if int(decimals) > MaxDecimals {
		return 0, fmt.Errorf("decimals %d exceed maximum %d", decimals, MaxDecimals)
	}
	if amount.IsNegative() {
		return 0, fmt.Errorf("amount %s is negative", amount)
	}

	scaled := amount.Mul(math.LegacyNewDecFromInt(math.NewIntWithDecimal(1, int(decimals))))
	if !scaled.IsInteger() {
		return 0, fmt.Errorf("amount %s has more than %d decimals", amount, decimals)
	}

	units := scaled.TruncateInt()
	if !units.IsUint64() {
		return 0, fmt.Errorf("amount %s overflows", amount)
	}
	return units.Uint64(), nil
}

// UnscaleAmount converts base units back into a UI amount.
func UnscaleAmount(units uint64, decimals uint8) math.LegacyDec {
	return math.LegacyNewDecFromBigIntWithPrec(new(big.Int).SetUint64(units), int64(decimals))
}

// ParseAmount parses a UI amount string and scales it to base units.
func ParseAmount(amount string, decimals uint8) (uint64, error) {
	dec, err := math.LegacyNewDecFromStr(amount)
	if err != nil {
		return 0, fmt.Errorf("fail to parse amount %q: %w", amount, err)
	}
	return ScaleAmount(dec, decimals)
}
