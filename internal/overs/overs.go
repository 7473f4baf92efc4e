// Package overs converts between cricket overs notation and ball counts.
//
// In overs notation the integer part is completed overs and the first
// decimal digit is balls into the next over: 4.2 is 4 overs and 2 balls,
// 26 balls in total. It is not a decimal fraction, so notation values must
// never be summed directly (3.4 + 3.4 is 7.2 overs, not 6.8).
package overs

import "math"

// BallsPerOver is the number of legal deliveries in one over.
const BallsPerOver = 6

// ToBalls converts an overs-notation value to a ball count.
//
// A balls part of 6 or more is malformed but passed through uncorrected, so
// 4.7 yields 31 balls (which reads back as 5.1). Negative input yields 0.
func ToBalls(overs float64) int {
	if overs <= 0 || math.IsNaN(overs) || math.IsInf(overs, 0) {
		return 0
	}
	whole := math.Floor(overs)
	part := math.Round((overs - whole) * 10)
	return int(whole)*BallsPerOver + int(part)
}

// FromBalls converts a ball count to overs notation.
func FromBalls(balls int) float64 {
	if balls <= 0 {
		return 0
	}
	whole := balls / BallsPerOver
	rem := balls % BallsPerOver
	// Round away the binary noise of rem/10 so 26 balls is exactly 4.2.
	return math.Round((float64(whole)+float64(rem)/10)*10) / 10
}

// IsWellFormed reports whether overs is a valid notation value: non-negative
// with a balls part between 0 and 5.
func IsWellFormed(overs float64) bool {
	if overs < 0 || math.IsNaN(overs) || math.IsInf(overs, 0) {
		return false
	}
	whole := math.Floor(overs)
	part := math.Round((overs - whole) * 10)
	return part < BallsPerOver
}

// Sum adds overs-notation values through their ball counts.
func Sum(values ...float64) float64 {
	balls := 0
	for _, v := range values {
		balls += ToBalls(v)
	}
	return FromBalls(balls)
}

// Decimal returns the true number of overs for a ball count (26 balls is
// 4.333... overs). This is the divisor for economy.
func Decimal(balls int) float64 {
	if balls <= 0 {
		return 0
	}
	return float64(balls) / BallsPerOver
}
