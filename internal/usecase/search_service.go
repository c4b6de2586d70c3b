package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/shoplens/backend/internal/domain"
	"github.com/shoplens/backend/internal/infrastructure/serpapi"
)

// Pipeline defaults; all of them are empirically tuned and overridable
// through SearchServiceConfig.
const (
	defaultCacheTTL        = 60 * time.Second
	defaultMaxResults      = 6
	maxResultsBound        = 50
	defaultMinScore        = 0.35
	defaultOverfetchFactor = 3
	defaultOutlierLowBand  = 0.4
	defaultOutlierHighBand = 2.5
)

// SearchServiceConfig holds configuration for the search service
type SearchServiceConfig struct {
	CacheTTL        time.Duration
	MinScore        float64
	OverfetchFactor int
	OutlierLowBand  float64
	OutlierHighBand float64
	Recommender     RecommenderConfig
	LinkResolver    LinkResolverConfig
}

// SearchService aggregates product listings for a query: cache, fetch,
// filter, score, outlier removal, dedup, recommendation, link rewriting.
type SearchService struct {
	cache           domain.CacheRepository
	client          domain.ShoppingClient
	recommender     *Recommender
	linkResolver    *LinkResolver
	logger          *zap.Logger
	cacheTTL        time.Duration
	minScore        float64
	overfetchFactor int
	outlierLowBand  float64
	outlierHighBand float64
}

// NewSearchService creates a search service with its dependencies
func NewSearchService(
	cache domain.CacheRepository,
	client domain.ShoppingClient,
	logger *zap.Logger,
	config SearchServiceConfig,
) *SearchService {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SearchService{
		cache:           cache,
		client:          client,
		recommender:     NewRecommender(config.Recommender),
		linkResolver:    NewLinkResolver(config.LinkResolver),
		logger:          logger,
		cacheTTL:        config.CacheTTL,
		minScore:        config.MinScore,
		overfetchFactor: config.OverfetchFactor,
		outlierLowBand:  config.OutlierLowBand,
		outlierHighBand: config.OutlierHighBand,
	}
	if s.cacheTTL <= 0 {
		s.cacheTTL = defaultCacheTTL
	}
	if s.minScore == 0 {
		s.minScore = defaultMinScore
	}
	if s.overfetchFactor <= 0 {
		s.overfetchFactor = defaultOverfetchFactor
	}
	if s.outlierLowBand <= 0 {
		s.outlierLowBand = defaultOutlierLowBand
	}
	if s.outlierHighBand <= 0 {
		s.outlierHighBand = defaultOutlierHighBand
	}
	return s
}

// SearchAll runs the full aggregation pipeline for a query and returns an
// ordered, deduplicated result list with exactly one recommended item when
// the list is non-empty. Upstream failure degrades to an empty list; the
// errors surfaced to callers are an invalid query and a cancelled or
// timed-out context.
func (s *SearchService) SearchAll(ctx context.Context, query string, maxResults int) ([]domain.RankedResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, domain.ErrInvalidRequest
	}
	if maxResults <= 0 {
		maxResults = defaultMaxResults
	}
	if maxResults > maxResultsBound {
		maxResults = maxResultsBound
	}

	cacheKey := s.generateCacheKey(query, maxResults)
	if cached, ok := s.getFromCache(ctx, cacheKey); ok {
		s.logger.Debug("search cache hit", zap.String("key", cacheKey))
		return cached, nil
	}

	// Over-fetch so filtering and dedup still leave enough survivors
	raw, err := s.client.FetchRaw(ctx, query, maxResults*s.overfetchFactor)
	if err != nil {
		// A cancelled or timed-out caller says nothing about the query;
		// surface the error and leave the cache alone.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// Fail closed: upstream trouble degrades to "no results". Caching
		// the empty list keeps failing queries from hammering the provider
		// within one TTL window.
		s.logger.Warn("shopping fetch failed", zap.String("query", query), zap.Error(err))
		empty := []domain.RankedResult{}
		s.setInCache(ctx, cacheKey, empty)
		return empty, nil
	}

	candidates := s.normalizeAndScore(raw, query)
	candidates = FilterPriceOutliers(candidates, s.outlierLowBand, s.outlierHighBand)
	sortCandidates(candidates)
	candidates = s.applyMinScore(candidates, maxResults)
	candidates = Deduplicate(candidates)
	if len(candidates) > maxResults {
		candidates = candidates[:maxResults]
	}

	results := s.finalize(candidates, query)
	s.setInCache(ctx, cacheKey, results)

	s.logger.Info("search completed",
		zap.String("query", query),
		zap.Int("raw", len(raw)),
		zap.Int("results", len(results)))
	return results, nil
}

// normalizeAndScore lifts raw provider records into scored candidates,
// dropping sponsored listings, malformed records and accessory noise.
func (s *SearchService) normalizeAndScore(raw []domain.RawItem, query string) []candidate {
	candidates := make([]candidate, 0, len(raw))
	for _, item := range raw {
		if serpapi.IsSponsored(item) {
			continue
		}
		product := serpapi.MapToProduct(item)
		if product == nil {
			continue
		}
		if product.Price == nil {
			product.Price = ParsePrice(product.PriceRaw)
		}
		candidates = append(candidates, candidate{product: *product})
	}

	candidates = FilterIrrelevant(candidates)

	tokens := tokenizeQuery(query)
	for i := range candidates {
		candidates[i].score = scoreRelevance(candidates[i], tokens)
	}
	return candidates
}

// sortCandidates orders by relevance desc, then price asc with missing
// prices last, then rating desc.
func sortCandidates(candidates []candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		pi, pj := candidates[i].product.Price, candidates[j].product.Price
		switch {
		case pi != nil && pj != nil:
			if *pi != *pj {
				return *pi < *pj
			}
		case pi != nil:
			return true
		case pj != nil:
			return false
		}
		return ratingOrZero(candidates[i]) > ratingOrZero(candidates[j])
	})
}

// applyMinScore drops weakly-relevant candidates, but relaxes the cut when
// it would leave fewer results than requested. Candidates are already
// sorted, so relaxing simply keeps the full ordered list.
func (s *SearchService) applyMinScore(candidates []candidate, maxResults int) []candidate {
	if s.minScore <= 0 {
		return candidates
	}
	kept := 0
	for _, c := range candidates {
		if c.score >= s.minScore {
			kept++
		}
	}
	if kept < maxResults {
		return candidates
	}
	return candidates[:kept]
}

// finalize strips pipeline-internal state, marks the single recommended
// item and resolves outbound links.
func (s *SearchService) finalize(candidates []candidate, query string) []domain.RankedResult {
	results := make([]domain.RankedResult, len(candidates))
	for i, c := range candidates {
		results[i] = domain.RankedResult{Product: c.product, LinkType: domain.LinkTypeDirect}
	}

	if best := s.recommender.Recommend(candidates); best >= 0 {
		results[best].IsRecommended = true
	}

	for i := range results {
		link, linkType := s.linkResolver.Resolve(results[i].Link, results[i].Source, query)
		results[i].Link = link
		results[i].LinkType = linkType
	}
	return results
}

// generateCacheKey builds a deterministic key from the normalized query
// and the effective result bound.
func (s *SearchService) generateCacheKey(query string, maxResults int) string {
	return fmt.Sprintf("products:%s:%d", normalizeForCacheKey(query), maxResults)
}

func (s *SearchService) getFromCache(ctx context.Context, key string) ([]domain.RankedResult, bool) {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil, false
	}
	results, ok := value.([]domain.RankedResult)
	return results, ok
}

func (s *SearchService) setInCache(ctx context.Context, key string, results []domain.RankedResult) {
	if err := s.cache.Set(ctx, key, results, s.cacheTTL); err != nil {
		s.logger.Warn("cache write failed", zap.String("key", key), zap.Error(err))
	}
}
