package safemath

import "errors"

var (
	ErrOverflow  = errors.New("arithmetic overflow")
	ErrUnderflow = errors.New("arithmetic underflow")
)

// CheckedAddU64 returns a + b, or ErrOverflow if the sum does not fit in a uint64.
func CheckedAddU64(a uint64, b uint64) (uint64, error) {
	sum := a + b
	if sum < a {
		return 0, ErrOverflow
	}
	return sum, nil
}

// CheckedSubU64 returns a - b, or ErrUnderflow if b > a.
func CheckedSubU64(a uint64, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrUnderflow
	}
	return a - b, nil
}

// CheckedMulU64 returns a * b, or ErrOverflow if the product does not fit in a uint64.
func CheckedMulU64(a uint64, b uint64) (uint64, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	product := a * b
	if product/a != b {
		return 0, ErrOverflow
	}
	return product, nil
}

func SaturatingAddU64(a uint64, b uint64) uint64 {
	sum := a + b
	if sum < a {
		return ^uint64(0)
	}
	return sum
}

func SaturatingSubU64(a uint64, b uint64) uint64 {
	if b > a {
		return 0
	}
	return a - b
}
