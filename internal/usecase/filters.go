package usecase

import (
	"sort"
	"strings"

	"github.com/shoplens/backend/internal/domain"
)

// candidate carries a product through the pipeline together with its
// relevance score. Neither field ever leaves the pipeline.
type candidate struct {
	product domain.Product
	score   float64
}

// noiseKeywords mark accessory listings that pollute product searches.
// Matched case-insensitively as substrings of the title.
var noiseKeywords = []string{
	"case",
	"cover",
	"charger",
	"cable",
	"protector",
	"screen guard",
	"tempered glass",
	"back glass",
	"skin",
	"pouch",
	"holster",
	"earphone",
	"headphone",
	"earbuds for",
	"adapter",
	"mount",
	"stand for",
	"strap",
	"stylus",
}

// FilterIrrelevant drops accessory noise and candidates without a title.
// A titleless listing can be neither judged nor displayed.
func FilterIrrelevant(candidates []candidate) []candidate {
	kept := candidates[:0]
	for _, c := range candidates {
		if c.product.Title == "" {
			continue
		}
		if containsNoiseKeyword(c.product.Title) {
			continue
		}
		kept = append(kept, c)
	}
	return kept
}

func containsNoiseKeyword(title string) bool {
	lower := strings.ToLower(title)
	for _, kw := range noiseKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// FilterPriceOutliers removes candidates whose price sits far outside the
// median band [lowBand*median, highBand*median]. Candidates without a price
// always pass. With fewer than three known prices there is not enough signal
// and the input is returned unchanged.
func FilterPriceOutliers(candidates []candidate, lowBand, highBand float64) []candidate {
	prices := make([]float64, 0, len(candidates))
	for _, c := range candidates {
		if c.product.Price != nil {
			prices = append(prices, *c.product.Price)
		}
	}
	if len(prices) < 3 {
		return candidates
	}

	median := medianOf(prices)
	low := lowBand * median
	high := highBand * median

	kept := candidates[:0]
	for _, c := range candidates {
		if c.product.Price == nil {
			kept = append(kept, c)
			continue
		}
		if p := *c.product.Price; p >= low && p <= high {
			kept = append(kept, c)
		}
	}
	return kept
}

// medianOf returns the median using the average-of-two-middles rule for
// even counts. The input slice is sorted in place.
func medianOf(values []float64) float64 {
	sort.Float64s(values)
	n := len(values)
	if n%2 == 1 {
		return values[n/2]
	}
	return (values[n/2-1] + values[n/2]) / 2
}
