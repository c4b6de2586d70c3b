package main

import (
	"fmt"
	"log"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/shoplens/backend/config"
	httpDelivery "github.com/shoplens/backend/internal/delivery/http"
	"github.com/shoplens/backend/internal/infrastructure/cache"
	"github.com/shoplens/backend/internal/infrastructure/serpapi"
	"github.com/shoplens/backend/internal/logger"
	"github.com/shoplens/backend/internal/usecase"
)

func main() {
	// A .env file is optional; real deployments use environment variables
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	zlog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zlog.Sync()

	zlog.Info("starting shoplens backend",
		zap.String("environment", cfg.Server.Environment),
		zap.String("port", cfg.Server.Port),
		zap.Duration("cache_ttl", cfg.Cache.TTL))

	// Infrastructure
	memoryCache := cache.NewMemoryCache()
	shoppingClient := serpapi.NewClient(serpapi.ClientConfig{
		APIKey:   cfg.SerpAPI.APIKey,
		BaseURL:  cfg.SerpAPI.BaseURL,
		Engine:   cfg.SerpAPI.Engine,
		Country:  cfg.SerpAPI.Country,
		Language: cfg.SerpAPI.Language,
	}, zlog)

	// Core pipeline
	searchService := usecase.NewSearchService(memoryCache, shoppingClient, zlog,
		usecase.SearchServiceConfig{
			CacheTTL:        cfg.Cache.TTL,
			MinScore:        cfg.Ranking.MinScore,
			OverfetchFactor: cfg.Ranking.OverfetchFactor,
			OutlierLowBand:  cfg.Ranking.OutlierLowBand,
			OutlierHighBand: cfg.Ranking.OutlierHighBand,
			Recommender: usecase.RecommenderConfig{
				RelevanceWeight: cfg.Ranking.RelevanceWeight,
				RatingWeight:    cfg.Ranking.RatingWeight,
				TrustWeight:     cfg.Ranking.TrustWeight,
				DefaultTrust:    cfg.Ranking.DefaultTrust,
				TrustScores:     cfg.Ranking.TrustScores,
			},
			LinkResolver: usecase.LinkResolverConfig{
				MerchantSearchURLs: cfg.Ranking.MerchantSearchURLs,
				AggregatorHosts:    cfg.Ranking.AggregatorHosts,
			},
		})

	handler := httpDelivery.NewHandler(searchService, cfg.Server.SearchTimeout, zlog)
	router := httpDelivery.SetupRouter(cfg, handler)

	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	zlog.Info("server listening", zap.String("addr", addr))

	if err := router.Run(addr); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}
