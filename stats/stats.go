// Package stats computes the derived price fields of an asset. All
// functions are pure: the caller persists the result.
package stats

// Update is the recomputed field set produced by a price refresh. The
// window fields are nil when no trailing window was supplied, meaning the
// stored values should be left as they are.
type Update struct {
	PreviousPrice      float64
	Price              float64
	PriceChange        float64
	PriceChangePercent float64
	MinMonthPrice      *float64
	MaxMonthPrice      *float64
	AvgMonthPrice      *float64
}

// Compute derives the updated field set from the stored price, a freshly
// fetched price and an optional trailing window of close prices:
//
//	previous ← old price
//	change   ← new − previous
//	percent  ← change / previous × 100, or 0 when previous is 0
//
// Passing the same value for both prices yields the first-insert state of a
// new asset: previous equals price and both change fields are zero.
func Compute(oldPrice, newPrice float64, closes []float64) Update {
	update := Update{
		PreviousPrice: oldPrice,
		Price:         newPrice,
		PriceChange:   newPrice - oldPrice,
	}
	if oldPrice != 0 {
		update.PriceChangePercent = update.PriceChange / oldPrice * 100
	}
	if min, max, avg, ok := Window(closes); ok {
		update.MinMonthPrice = &min
		update.MaxMonthPrice = &max
		update.AvgMonthPrice = &avg
	}
	return update
}

// Window returns the minimum, maximum and mean of a close-price window in a
// single pass. ok is false for an empty window.
func Window(closes []float64) (min, max, avg float64, ok bool) {
	if len(closes) == 0 {
		return 0, 0, 0, false
	}
	min, max = closes[0], closes[0]
	sum := 0.0
	for _, c := range closes {
		if c < min {
			min = c
		}
		if c > max {
			max = c
		}
		sum += c
	}
	return min, max, sum / float64(len(closes)), true
}
