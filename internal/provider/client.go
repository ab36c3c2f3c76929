// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/config"
	"github.com/tomtom215/stridelog/internal/logging"
	"github.com/tomtom215/stridelog/internal/metrics"
)

// API paths relative to the configured provider URL.
const (
	loginPath      = "/auth/login"
	profilePath    = "/userprofile-service/socialProfile"
	activitiesPath = "/activitylist-service/activities/search/activities"
	detailsPathFmt = "/activity-service/activity/%d/details"
)

// Operation names used in metrics and errors.
const (
	OpLogin   = "login"
	OpResume  = "resume"
	OpList    = "list_activities"
	OpDetails = "activity_details"
)

// maxRetryWait caps a single 429 backoff, including server-sent Retry-After.
const maxRetryWait = 2 * time.Minute

// Client talks to the provider API without credentials. Login and Resume
// turn it into an authenticated Handle.
//
// A Client is safe for concurrent use. Handles created from it share its
// request pacing and circuit breaker.
type Client struct {
	baseURL        string
	httpClient     *http.Client
	limiter        *rate.Limiter
	breaker        *breaker
	maxRetries     int
	retryBaseDelay time.Duration
	now            func() time.Time
}

// NewClient creates a provider client from configuration.
func NewClient(cfg *config.ProviderConfig) *Client {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.Burst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	var cb *breaker
	if cfg.BreakerEnabled {
		cb = newBreaker(cfg)
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.URL, "/"),
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter:        limiter,
		breaker:        cb,
		maxRetries:     cfg.MaxRetries,
		retryBaseDelay: cfg.RetryBaseDelay,
		now:            time.Now,
	}
}

// BreakerState reports the circuit breaker state for diagnostics.
func (c *Client) BreakerState() string {
	return c.breaker.State()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login performs a fresh credential login.
func (c *Client) Login(ctx context.Context, username, password string) (*Handle, error) {
	body, err := json.Marshal(loginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("encode login request: %w", err)
	}

	resp, err := c.doRequestWithRateLimit(ctx, c.httpClient, OpLogin, http.MethodPost, loginPath, nil, body)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(OpLogin, resp)
	}

	var tok oauth2.Token
	if err := decodeJSONResponse(resp, &tok); err != nil {
		return nil, fmt.Errorf("decode login response: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, fmt.Errorf("login response: %w", ErrInvalidSession)
	}
	normalizeLoginToken(&tok, c.now())

	logging.Ctx(ctx).Debug().Str("username", logging.SanitizeUsername(username)).Str("token", logging.SanitizeToken(tok.AccessToken)).Msg("Provider login succeeded")
	return c.newHandle(&tok), nil
}

// Resume restores a handle from a cached session token. Tokens known to be
// expired are rejected without a round trip; otherwise the profile endpoint
// confirms the provider still accepts the token.
func (c *Client) Resume(ctx context.Context, tok *oauth2.Token) (*Handle, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrInvalidSession
	}
	if sessionExpired(tok, c.now()) {
		return nil, ErrSessionExpired
	}

	h := c.newHandle(tok)
	resp, err := c.doRequestWithRateLimit(ctx, h.httpClient, OpResume, http.MethodGet, profilePath, nil, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, statusError(OpResume, resp)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return h, nil
}

func (c *Client) newHandle(tok *oauth2.Token) *Handle {
	own := *tok
	return &Handle{
		client: c,
		token:  &own,
		httpClient: &http.Client{
			Timeout: c.httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(&own),
				Base:   c.httpClient.Transport,
			},
		},
	}
}

// Handle is an authenticated provider session.
type Handle struct {
	client     *Client
	token      *oauth2.Token
	httpClient *http.Client
}

// Token returns a copy of the session token for persistence.
func (h *Handle) Token() *oauth2.Token {
	tok := *h.token
	return &tok
}

// ListActivities returns up to limit raw records starting at offset start.
// Records are expected newest first.
func (h *Handle) ListActivities(ctx context.Context, start, limit int) ([]activity.Raw, error) {
	query := url.Values{}
	query.Set("start", strconv.Itoa(start))
	query.Set("limit", strconv.Itoa(limit))

	return castResult[[]activity.Raw](h.client.breaker.execute(func() (interface{}, error) {
		resp, err := h.client.doRequestWithRateLimit(ctx, h.httpClient, OpList, http.MethodGet, activitiesPath, query, nil)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, statusError(OpList, resp)
		}

		var records []activity.Raw
		if err := decodeJSONResponse(resp, &records); err != nil {
			return nil, fmt.Errorf("decode activity list: %w", err)
		}
		if records == nil {
			records = []activity.Raw{}
		}
		return records, nil
	}))
}

// ActivityDetails returns the decoded detail payload for one activity.
// The payload is usually an object but may be any JSON value.
func (h *Handle) ActivityDetails(ctx context.Context, activityID int64) (interface{}, error) {
	path := fmt.Sprintf(detailsPathFmt, activityID)

	return h.client.breaker.execute(func() (interface{}, error) {
		resp, err := h.client.doRequestWithRateLimit(ctx, h.httpClient, OpDetails, http.MethodGet, path, nil, nil)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, statusError(OpDetails, resp)
		}

		var payload interface{}
		if err := decodeJSONResponse(resp, &payload); err != nil {
			return nil, fmt.Errorf("decode activity details: %w", err)
		}
		return payload, nil
	})
}

// doRequestWithRateLimit performs an HTTP request, retrying on HTTP 429.
// Delays double from retryBaseDelay per attempt unless the provider sends
// Retry-After. Any other status is returned to the caller unchanged.
func (c *Client) doRequestWithRateLimit(ctx context.Context, hc *http.Client, op, method, path string, query url.Values, body []byte) (*http.Response, error) {
	reqURL := c.baseURL + path
	if len(query) > 0 {
		reqURL += "?" + query.Encode()
	}

	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}

		var reqBody io.Reader = http.NoBody
		if body != nil {
			reqBody = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, reqURL, reqBody)
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}
		req.Header.Set("Accept", "application/json")
		if body != nil {
			req.Header.Set("Content-Type", "application/json")
		}

		started := time.Now()
		resp, err := hc.Do(req)
		if err != nil {
			metrics.RecordProviderRequest(op, 0, time.Since(started))
			return nil, fmt.Errorf("%s request failed: %w", op, err)
		}
		metrics.RecordProviderRequest(op, resp.StatusCode, time.Since(started))

		if resp.StatusCode != http.StatusTooManyRequests {
			return resp, nil
		}

		metrics.ProviderRateLimited.WithLabelValues(op).Inc()
		delay := retryDelay(c.retryBaseDelay, attempt, resp.Header.Get("Retry-After"), c.now())
		_ = resp.Body.Close()

		if attempt == c.maxRetries {
			break
		}

		logging.Ctx(ctx).Warn().Str("operation", op).Int("attempt", attempt+1).Dur("delay", delay).Msg("Provider rate limited, backing off")

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	return nil, &StatusError{
		Operation:  op,
		StatusCode: http.StatusTooManyRequests,
		Body:       fmt.Sprintf("rate limit exceeded after %d retries", c.maxRetries),
	}
}

// retryDelay computes the wait before the next attempt. Retry-After may be
// delay-seconds or an HTTP date and is capped at maxRetryWait.
func retryDelay(base time.Duration, attempt int, retryAfter string, now time.Time) time.Duration {
	delay := base * time.Duration(1<<uint(attempt))

	if retryAfter != "" {
		if seconds, err := strconv.Atoi(strings.TrimSpace(retryAfter)); err == nil && seconds >= 0 {
			delay = time.Duration(seconds) * time.Second
		} else if at, err := http.ParseTime(retryAfter); err == nil {
			delay = at.Sub(now)
			if delay < 0 {
				delay = 0
			}
		}
	}

	if delay > maxRetryWait {
		delay = maxRetryWait
	}
	return delay
}

// statusError builds a StatusError from a non-success response.
func statusError(op string, resp *http.Response) *StatusError {
	return &StatusError{
		Operation:  op,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(readBodyForError(resp.Body))),
	}
}

// readBodyForError reads a response body for error reporting with a size limit.
func readBodyForError(r io.Reader) []byte {
	body, err := io.ReadAll(io.LimitReader(r, maxErrorBodySize))
	if err != nil {
		return []byte("(failed to read response body)")
	}
	if len(body) == maxErrorBodySize {
		return append(body, []byte("\n... (truncated)")...)
	}
	return body
}

// decodeJSONResponse decodes a JSON body keeping numbers as json.Number so
// large integer ids survive unchanged.
func decodeJSONResponse(resp *http.Response, result interface{}) error {
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	return decoder.Decode(result)
}
