package common

import (
	"fmt"
	"math/bits"
)

func Max[T int | uint | int64 | uint64](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func Min[T int | uint | int64 | uint64](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// SafeAdd returns a+b or an error when the sum overflows.
func SafeAdd(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, fmt.Errorf("%d + %d overflows", a, b)
	}
	return sum, nil
}

// SafeSub returns a-b or an error when b is larger than a.
func SafeSub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, fmt.Errorf("%d - %d underflows", a, b)
	}
	return diff, nil
}

// SafeMul returns a*b or an error when the product overflows.
func SafeMul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, fmt.Errorf("%d * %d overflows", a, b)
	}
	return lo, nil
}
