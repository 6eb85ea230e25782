package raffle

import "github.com/shopspring/decimal"

// Total multiplies a per-number price by a ticket count. Going through
// decimal keeps totals like 37 x 2.5 exact instead of accumulating binary
// float error; the result converts back to float64 because the snapshot wire
// format stores plain JSON numbers.
func Total(count int, price float64) float64 {
	return decimal.NewFromFloat(price).
		Mul(decimal.NewFromInt(int64(count))).
		InexactFloat64()
}
