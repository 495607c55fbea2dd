// Package httputil provides HTTP utilities for remote image fetching.
//
// # Overview
//
// This package provides infrastructure used when poster elements reference
// remote image sources:
//
//   - [Cache]: File-based response caching
//   - [Retry]: Automatic retry with exponential backoff
//
// # Caching
//
// [Cache] stores fetched payloads in the filesystem (~/.cache/posterkit/)
// with configurable TTL. Posters often reuse the same logo or product
// image across renders; caching avoids re-downloading it every pass.
//
// Usage:
//
//	cache, err := httputil.NewCache("", time.Hour)
//	var data []byte
//	if ok, _ := cache.Get(url, &data); !ok {
//	    data = fetch(url)
//	    cache.Set(url, data)
//	}
//
// Cache keys should be namespaced by consumer to avoid collisions.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//
// It uses exponential backoff to avoid hammering a struggling host:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return fetchOnce()
//	})
//
// # Configuration
//
// Default settings are suitable for most use cases:
//
//   - Cache directory: ~/.cache/posterkit/
//   - Max retries: 3
//   - Base backoff: 1 second
package httputil
