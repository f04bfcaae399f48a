package entity

import "math"

// Cents converts a decimal amount (as received on the API boundary) into
// int64 cents. All monetary arithmetic inside the service is integer
// arithmetic on cents; decimals exist only at the JSON edge.
func Cents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// Decimal converts cents back into a display decimal.
func Decimal(cents int64) float64 {
	return float64(cents) / 100
}
