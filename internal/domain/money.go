package domain

import "math"

// Money is handled internally in the currency's minor unit (int64 cents).
// These conversions are exact for two-decimal-subunit currencies and are the
// only place the minor-unit divisor appears.

const minorUnitDivisor = 100

// MinorUnits converts a major-unit decimal amount to minor units, rounding
// to the nearest integer.
func MinorUnits(major float64) int64 {
	return int64(math.Round(major * minorUnitDivisor))
}

// MajorUnits converts a minor-unit amount back to its major-unit decimal.
func MajorUnits(minor int64) float64 {
	return float64(minor) / minorUnitDivisor
}
