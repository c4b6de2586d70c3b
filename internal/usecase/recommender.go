package usecase

import (
	"sort"
	"strings"
)

// RecommenderConfig holds the weights and the per-source trust table used
// to pick the single recommended item. The tables are fixed at construction
// so tests can inject synthetic ones.
type RecommenderConfig struct {
	RelevanceWeight float64
	RatingWeight    float64
	TrustWeight     float64
	DefaultTrust    float64
	TrustScores     map[string]float64
}

// Recommender scores final results with a trust-weighted blend of
// relevance, rating and source reputation.
type Recommender struct {
	relevanceWeight float64
	ratingWeight    float64
	trustWeight     float64
	defaultTrust    float64
	trustEntries    []trustEntry
}

// trustEntry pairs a source-name fragment with its trust coefficient.
// Entries are kept sorted by fragment so a source matching several
// fragments always resolves to the same one.
type trustEntry struct {
	fragment string
	trust    float64
}

func sortedTrustEntries(scores map[string]float64) []trustEntry {
	entries := make([]trustEntry, 0, len(scores))
	for fragment, trust := range scores {
		entries = append(entries, trustEntry{fragment: fragment, trust: trust})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].fragment < entries[j].fragment
	})
	return entries
}

// defaultTrustScores maps known source-name fragments to trust coefficients
var defaultTrustScores = map[string]float64{
	"amazon":   1.00,
	"flipkart": 0.95,
	"croma":    0.90,
	"reliance": 0.88,
	"tata":     0.85,
	"vijay":    0.80,
	"google":   0.70,
}

// NewRecommender creates a recommender, falling back to the standard
// weights (0.45 relevance, 0.25 rating, 0.30 trust) when none are given.
func NewRecommender(config RecommenderConfig) *Recommender {
	scores := config.TrustScores
	if scores == nil {
		scores = defaultTrustScores
	}
	r := &Recommender{
		relevanceWeight: config.RelevanceWeight,
		ratingWeight:    config.RatingWeight,
		trustWeight:     config.TrustWeight,
		defaultTrust:    config.DefaultTrust,
		trustEntries:    sortedTrustEntries(scores),
	}
	if r.relevanceWeight == 0 && r.ratingWeight == 0 && r.trustWeight == 0 {
		r.relevanceWeight = 0.45
		r.ratingWeight = 0.25
		r.trustWeight = 0.30
	}
	if r.defaultTrust == 0 {
		r.defaultTrust = 0.5
	}
	return r
}

// Trust resolves a source name to a trust coefficient by case-insensitive
// substring match, defaulting when the source is unknown. Fragments are
// tried in sorted order, so a source matching several fragments always
// resolves to the alphabetically first one.
func (r *Recommender) Trust(source string) float64 {
	lower := strings.ToLower(source)
	for _, entry := range r.trustEntries {
		if strings.Contains(lower, entry.fragment) {
			return entry.trust
		}
	}
	return r.defaultTrust
}

// FinalScore blends relevance, normalized rating and source trust
func (r *Recommender) FinalScore(c candidate) float64 {
	rating := 0.0
	if c.product.Rating != nil {
		rating = *c.product.Rating / 5.0
	}
	return r.relevanceWeight*c.score + r.ratingWeight*rating + r.trustWeight*r.Trust(c.product.Source)
}

// Recommend returns the index of the best item in the final result set, or
// -1 for an empty set. Ties keep the first-seen maximal item: only a
// strictly higher score displaces the current best.
func (r *Recommender) Recommend(candidates []candidate) int {
	best := -1
	bestScore := -1.0
	for i, c := range candidates {
		if s := r.FinalScore(c); s > bestScore {
			bestScore = s
			best = i
		}
	}
	return best
}
