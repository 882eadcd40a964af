// Package catalogapi fetches the weapon/mod catalog from the tarkov.dev
// GraphQL API: rate-limited, circuit-breaker-protected, retried with
// exponential backoff, and backed by an on-disk cache keyed on query+vars
// (§6 "Cache layout on disk").
package catalogapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/metrics"
	"github.com/andrescamacho/gunsmith-go/internal/domain/catalog"
	"github.com/andrescamacho/gunsmith-go/internal/domain/shared"
)

const (
	defaultCircuitThreshold = 5
	defaultCircuitTimeout   = 60 * time.Second
)

// Client fetches the raw weapon/mod catalog over GraphQL.
type Client struct {
	httpClient     *http.Client
	rateLimiter    *rate.Limiter
	baseURL        string
	maxRetries     int
	backoffBase    time.Duration
	circuitBreaker *CircuitBreaker
	cache          *DiskCache
	clock          shared.Clock
}

// Config bundles the constructor parameters sourced from config.CatalogConfig.
type Config struct {
	BaseURL         string
	Timeout         time.Duration
	RateRequests    int
	RateBurst       int
	MaxRetries      int
	BackoffBase     time.Duration
	CacheDir        string
	CacheTTLSeconds int64
	CacheVersion    int
}

// NewClient builds a Client. A nil clock uses RealClock.
func NewClient(cfg Config, clock shared.Clock) *Client {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &Client{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		rateLimiter:    rate.NewLimiter(rate.Limit(cfg.RateRequests), cfg.RateBurst),
		baseURL:        cfg.BaseURL,
		maxRetries:     cfg.MaxRetries,
		backoffBase:    cfg.BackoffBase,
		circuitBreaker: NewCircuitBreaker(defaultCircuitThreshold, defaultCircuitTimeout, clock),
		cache:          NewDiskCache(cfg.CacheDir, cfg.CacheTTLSeconds, cfg.CacheVersion, clock),
		clock:          clock,
	}
}

// graphQLRequest is the JSON body every POST carries.
type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
}

type itemsEnvelope struct {
	Items []catalog.RawItem `json:"items"`
}

type graphQLResponse struct {
	Data   itemsEnvelope  `json:"data"`
	Errors []graphQLError `json:"errors"`
}

// FetchAll retrieves every weapon and mod item for the given language and
// game mode, grounded on fetch_all_data's two parallel queries.
func (c *Client) FetchAll(ctx context.Context, lang, gameMode string) (weapons, mods []catalog.RawItem, err error) {
	vars := map[string]any{"lang": lang, "gameMode": gameMode}

	weapons, err = c.runQuery(ctx, "guns", GunsQuery, vars)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching guns: %w", err)
	}
	mods, err = c.runQuery(ctx, "mods", ModsQuery, vars)
	if err != nil {
		return nil, nil, fmt.Errorf("fetching mods: %w", err)
	}
	return weapons, mods, nil
}

// runQuery executes one GraphQL query with cache-first semantics, grounded
// on run_query's cache_path -> load_cache -> POST -> save_cache pipeline.
func (c *Client) runQuery(ctx context.Context, endpoint, query string, variables map[string]any) ([]catalog.RawItem, error) {
	key := c.cache.Key(query, variables)
	if cached := c.cache.Get(key); cached != nil {
		var env itemsEnvelope
		if err := json.Unmarshal(cached, &env); err == nil {
			metrics.RecordCacheLookup("disk", true)
			return env.Items, nil
		}
	}
	metrics.RecordCacheLookup("disk", false)

	var items []catalog.RawItem
	start := time.Now()
	statusCode := 0
	err := c.circuitBreaker.Call(func() error {
		result, code, err := c.postWithRetry(ctx, query, variables)
		statusCode = code
		if err != nil {
			return err
		}
		var env itemsEnvelope
		if err := json.Unmarshal(result, &env); err != nil {
			return fmt.Errorf("failed to decode catalog response: %w", err)
		}
		items = env.Items
		if cacheErr := c.cache.Put(key, result); cacheErr != nil {
			return nil // cache write failure is non-fatal; the fetch itself succeeded
		}
		return nil
	})
	metrics.RecordFetch(endpoint, statusCode, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (c *Client) postWithRetry(ctx context.Context, query string, variables map[string]any) (json.RawMessage, int, error) {
	var lastErr error
	lastStatus := 0
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, 0, fmt.Errorf("rate limiter error: %w", err)
		}

		body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal request: %w", err)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = fmt.Errorf("network error: %w", err)
			if attempt >= c.maxRetries || ctx.Err() != nil {
				break
			}
			c.clock.Sleep(c.backoffBase * time.Duration(1<<attempt))
			continue
		}
		lastStatus = resp.StatusCode

		respBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			lastErr = fmt.Errorf("failed to read response: %w", err)
			break
		}

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("catalog API returned status %d", resp.StatusCode)
			if attempt >= c.maxRetries || ctx.Err() != nil {
				break
			}
			c.clock.Sleep(c.backoffBase * time.Duration(1<<attempt))
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, resp.StatusCode, fmt.Errorf("catalog API returned status %d", resp.StatusCode)
		}

		var parsed graphQLResponse
		if err := json.Unmarshal(respBody, &parsed); err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to parse catalog response: %w", err)
		}
		if len(parsed.Errors) > 0 {
			return nil, resp.StatusCode, fmt.Errorf("catalog API errors: %v", parsed.Errors)
		}

		dataJSON, err := json.Marshal(parsed.Data)
		if err != nil {
			return nil, resp.StatusCode, fmt.Errorf("failed to re-marshal catalog data: %w", err)
		}
		return dataJSON, resp.StatusCode, nil
	}

	return nil, lastStatus, fmt.Errorf("catalog fetch failed after %d attempts: %w", c.maxRetries+1, lastErr)
}
