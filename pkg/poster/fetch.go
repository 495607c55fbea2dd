package poster

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/posterkit/posterkit/pkg/errors"
	"github.com/posterkit/posterkit/pkg/httputil"
	"github.com/posterkit/posterkit/pkg/observability"
)

// maxImageBytes caps how much image data a single source may supply.
const maxImageBytes = 32 << 20 // 32 MiB

var imageClient = &http.Client{Timeout: 30 * time.Second}

// loadImageData reads the raw bytes of an image source. Three source
// forms are supported: a base64 data URL, an http(s) URL, and a file
// path. Remote fetches retry transient failures with backoff and, when
// an image cache is configured, reuse previously downloaded bytes.
func loadImageData(ctx context.Context, src string, imageCache *httputil.Cache) ([]byte, error) {
	switch {
	case strings.HasPrefix(src, "data:image/"):
		return decodeDataURL(src)
	case strings.HasPrefix(src, "http://"), strings.HasPrefix(src, "https://"):
		return fetchImage(ctx, src, imageCache)
	default:
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "failed to load image from %s", src)
		}
		return data, nil
	}
}

// decodeDataURL extracts the base64 payload of a data URL.
func decodeDataURL(src string) ([]byte, error) {
	_, payload, found := strings.Cut(src, ",")
	if !found {
		return nil, errors.New(errors.ErrCodeImageLoad, "invalid data URL: missing payload")
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "invalid base64 image data")
	}
	return data, nil
}

// fetchImage downloads an image over HTTP with retry on transient
// failures: network errors and 5xx responses retry, anything else fails
// immediately.
func fetchImage(ctx context.Context, url string, imageCache *httputil.Cache) ([]byte, error) {
	if err := errors.ValidateURL(url); err != nil {
		return nil, err
	}

	if imageCache != nil {
		var cached []byte
		if ok, err := imageCache.Get(url, &cached); ok && err == nil {
			observability.Cache().OnCacheHit(ctx, "image")
			return cached, nil
		}
		observability.Cache().OnCacheMiss(ctx, "image")
	}

	var body []byte
	err := httputil.RetryWithBackoff(ctx, func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}

		observability.HTTP().OnRequest(ctx, req.Method, req.URL.Host, req.URL.Path)
		start := time.Now()
		resp, err := imageClient.Do(req)
		if err != nil {
			observability.HTTP().OnError(ctx, req.Method, req.URL.Host, req.URL.Path, err)
			return &httputil.RetryableError{Err: err}
		}
		defer resp.Body.Close()
		observability.HTTP().OnResponse(ctx, req.Method, req.URL.Host, req.URL.Path, resp.StatusCode, time.Since(start))

		if resp.StatusCode >= 500 {
			return &httputil.RetryableError{Err: fmt.Errorf("server returned %s", resp.Status)}
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("server returned %s", resp.Status)
		}

		body, err = io.ReadAll(io.LimitReader(resp.Body, maxImageBytes+1))
		if err != nil {
			return &httputil.RetryableError{Err: err}
		}
		if len(body) > maxImageBytes {
			return fmt.Errorf("image exceeds %d byte limit", maxImageBytes)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeImageLoad, err, "failed to fetch image from %s", url)
	}

	if imageCache != nil {
		if err := imageCache.Set(url, body); err == nil {
			observability.Cache().OnCacheSet(ctx, "image", len(body))
		}
	}
	return body, nil
}
