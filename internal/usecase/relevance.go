package usecase

import "strings"

// Relevance scoring weights. The score only orders candidates within a
// single query and is discarded before results leave the pipeline.
const (
	tokenMatchBonus    = 0.25 // per query token found in the title
	ratingPresentBonus = 0.20
	pricePresentBonus  = 0.15
)

// scoreRelevance computes a 0..1 relevance score for a candidate from
// query-token overlap plus small bonuses for having a rating and a price.
func scoreRelevance(c candidate, queryTokens []string) float64 {
	titleLower := strings.ToLower(c.product.Title)

	score := 0.0
	for _, tok := range queryTokens {
		if tok != "" && strings.Contains(titleLower, tok) {
			score += tokenMatchBonus
		}
	}
	if score > 1.0 {
		score = 1.0
	}

	if c.product.Rating != nil && *c.product.Rating > 0 {
		score += ratingPresentBonus
	}
	if c.product.Price != nil {
		score += pricePresentBonus
	}

	if score > 1.0 {
		score = 1.0
	}
	if score < 0 {
		score = 0
	}
	return score
}
