package domain

import "errors"

var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrUpstreamFailure is returned when the shopping search provider fails
	ErrUpstreamFailure = errors.New("shopping search request failed")

	// ErrNoResults is returned when the provider finds nothing for a query
	ErrNoResults = errors.New("no products found")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")

	// ErrRateLimited is returned when rate limit is exceeded
	ErrRateLimited = errors.New("rate limit exceeded")
)
