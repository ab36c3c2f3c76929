// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package provider

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/oauth2"

	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/config"
	"github.com/tomtom215/stridelog/internal/logging"
)

func testProviderConfig(url string) *config.ProviderConfig {
	return &config.ProviderConfig{
		URL:                 url,
		Timeout:             5 * time.Second,
		MaxRetries:          2,
		RetryBaseDelay:      time.Millisecond,
		Burst:               1,
		BreakerMaxRequests:  1,
		BreakerInterval:     time.Minute,
		BreakerTimeout:      time.Minute,
		BreakerMinRequests:  2,
		BreakerFailureRatio: 0.5,
	}
}

func newTestServer(t *testing.T, routes func(r chi.Router)) *httptest.Server {
	t.Helper()
	r := chi.NewRouter()
	routes(r)
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return srv
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func testHandle(c *Client, token string) *Handle {
	return c.newHandle(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
}

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": exp.Unix(), "sub": "athlete"})
	s, err := tok.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return s
}

func TestLogin_Success(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post(loginPath, func(w http.ResponseWriter, r *http.Request) {
			var req loginRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				http.Error(w, "bad body", http.StatusBadRequest)
				return
			}
			if req.Username != "athlete@example.com" || req.Password != "s3cret" {
				http.Error(w, "bad credentials", http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, map[string]interface{}{
				"access_token": "fresh-token",
				"expires_in":   3600,
			})
		})
	})

	c := NewClient(testProviderConfig(srv.URL))
	h, err := c.Login(context.Background(), "athlete@example.com", "s3cret")
	if err != nil {
		t.Fatalf("Login() error = %v", err)
	}

	tok := h.Token()
	if tok.AccessToken != "fresh-token" {
		t.Errorf("AccessToken = %q, want fresh-token", tok.AccessToken)
	}
	if tok.TokenType != "Bearer" {
		t.Errorf("TokenType = %q, want Bearer", tok.TokenType)
	}
	if tok.Expiry.IsZero() {
		t.Error("Expiry should be derived from expires_in")
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post(loginPath, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "invalid credentials", http.StatusUnauthorized)
		})
	})

	c := NewClient(testProviderConfig(srv.URL))
	_, err := c.Login(context.Background(), "athlete", "wrong")
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("Login() error = %v, want ErrUnauthorized", err)
	}

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %T", err)
	}
	if se.StatusCode != http.StatusUnauthorized || se.Operation != OpLogin {
		t.Errorf("StatusError = %+v", se)
	}
	if !strings.Contains(se.Body, "invalid credentials") {
		t.Errorf("Body = %q, want provider message", se.Body)
	}
}

func TestLogin_EmptyToken(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Post(loginPath, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, map[string]interface{}{"token_type": "Bearer"})
		})
	})

	c := NewClient(testProviderConfig(srv.URL))
	if _, err := c.Login(context.Background(), "a", "b"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("Login() error = %v, want ErrInvalidSession", err)
	}
}

func TestLogin_RateLimitExhausted(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(r chi.Router) {
		r.Post(loginPath, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		})
	})

	cfg := testProviderConfig(srv.URL)
	c := NewClient(cfg)
	_, err := c.Login(context.Background(), "a", "b")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("Login() error = %v, want ErrRateLimited", err)
	}
	if got, want := int(hits.Load()), cfg.MaxRetries+1; got != want {
		t.Errorf("attempts = %d, want %d", got, want)
	}
}

func TestListActivities_RetriesAfter429(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			if hits.Add(1) == 1 {
				w.WriteHeader(http.StatusTooManyRequests)
				return
			}
			writeJSON(w, http.StatusOK, []map[string]interface{}{{"activityId": 1}})
		})
	})

	h := testHandle(NewClient(testProviderConfig(srv.URL)), "tok")
	records, err := h.ListActivities(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(records) != 1 {
		t.Errorf("len(records) = %d, want 1", len(records))
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2", hits.Load())
	}
}

func TestListActivities_RequestShape(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			if got := r.Header.Get("Authorization"); got != "Bearer session-token" {
				http.Error(w, "missing bearer", http.StatusUnauthorized)
				return
			}
			if r.URL.Query().Get("start") != "100" || r.URL.Query().Get("limit") != "50" {
				http.Error(w, "bad paging", http.StatusBadRequest)
				return
			}
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`[{"activityId": 20123456789, "activityType": {"typeKey": "running"}, "distance": 5000.126}]`))
		})
	})

	h := testHandle(NewClient(testProviderConfig(srv.URL)), "session-token")
	records, err := h.ListActivities(context.Background(), 100, 50)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("len(records) = %d, want 1", len(records))
	}

	s, err := activity.Classify(records[0])
	if err != nil {
		t.Fatalf("Classify() error = %v", err)
	}
	if s.ActivityID != 20123456789 {
		t.Errorf("ActivityID = %d, want 20123456789", s.ActivityID)
	}
	if s.Distance == nil || *s.Distance != 5000.13 {
		t.Errorf("Distance = %v, want 5000.13", s.Distance)
	}
}

func TestListActivities_NullBody(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("null"))
		})
	})

	h := testHandle(NewClient(testProviderConfig(srv.URL)), "tok")
	records, err := h.ListActivities(context.Background(), 0, 10)
	if err != nil {
		t.Fatalf("ListActivities() error = %v", err)
	}
	if records == nil || len(records) != 0 {
		t.Errorf("records = %#v, want empty non-nil slice", records)
	}
}

func TestListActivities_ServerError(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})
	})

	h := testHandle(NewClient(testProviderConfig(srv.URL)), "tok")
	_, err := h.ListActivities(context.Background(), 0, 10)

	var se *StatusError
	if !errors.As(err, &se) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if !se.Temporary() {
		t.Error("502 should be temporary")
	}
	if errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrNotFound) {
		t.Error("502 should not map to a sentinel")
	}
}

func TestActivityDetails(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/activity-service/activity/{id}/details", func(w http.ResponseWriter, r *http.Request) {
			switch chi.URLParam(r, "id") {
			case "42":
				_, _ = w.Write([]byte(`{"activityId": 42, "summaryDTO": {"distance": 1234.567}}`))
			case "43":
				_, _ = w.Write([]byte(`["stub"]`))
			default:
				http.NotFound(w, r)
			}
		})
	})

	h := testHandle(NewClient(testProviderConfig(srv.URL)), "tok")
	ctx := context.Background()

	payload, err := h.ActivityDetails(ctx, 42)
	if err != nil {
		t.Fatalf("ActivityDetails(42) error = %v", err)
	}
	obj, ok := payload.(map[string]interface{})
	if !ok {
		t.Fatalf("payload type = %T, want object", payload)
	}
	if _, ok := obj["summaryDTO"].(map[string]interface{}); !ok {
		t.Errorf("summaryDTO type = %T", obj["summaryDTO"])
	}

	payload, err = h.ActivityDetails(ctx, 43)
	if err != nil {
		t.Fatalf("ActivityDetails(43) error = %v", err)
	}
	if _, ok := payload.([]interface{}); !ok {
		t.Errorf("payload type = %T, want array", payload)
	}

	if _, err := h.ActivityDetails(ctx, 44); !errors.Is(err, ErrNotFound) {
		t.Errorf("ActivityDetails(44) error = %v, want ErrNotFound", err)
	}
}

func TestResume(t *testing.T) {
	var checks atomic.Int32
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(profilePath, func(w http.ResponseWriter, r *http.Request) {
			checks.Add(1)
			if r.Header.Get("Authorization") != "Bearer cached-token" {
				http.Error(w, "session expired", http.StatusUnauthorized)
				return
			}
			writeJSON(w, http.StatusOK, map[string]string{"displayName": "athlete"})
		})
	})
	c := NewClient(testProviderConfig(srv.URL))
	ctx := context.Background()

	t.Run("accepted", func(t *testing.T) {
		h, err := c.Resume(ctx, &oauth2.Token{AccessToken: "cached-token"})
		if err != nil {
			t.Fatalf("Resume() error = %v", err)
		}
		if h.Token().AccessToken != "cached-token" {
			t.Errorf("AccessToken = %q", h.Token().AccessToken)
		}
	})

	t.Run("rejected", func(t *testing.T) {
		_, err := c.Resume(ctx, &oauth2.Token{AccessToken: "revoked"})
		if !errors.Is(err, ErrUnauthorized) {
			t.Errorf("Resume() error = %v, want ErrUnauthorized", err)
		}
	})

	t.Run("expired jwt skips the resume check", func(t *testing.T) {
		before := checks.Load()
		tok := &oauth2.Token{AccessToken: signedToken(t, time.Now().Add(-time.Hour))}
		if _, err := c.Resume(ctx, tok); !errors.Is(err, ErrSessionExpired) {
			t.Errorf("Resume() error = %v, want ErrSessionExpired", err)
		}
		if checks.Load() != before {
			t.Error("expired session should not reach the provider")
		}
	})

	t.Run("empty token", func(t *testing.T) {
		if _, err := c.Resume(ctx, &oauth2.Token{}); !errors.Is(err, ErrInvalidSession) {
			t.Errorf("Resume() error = %v, want ErrInvalidSession", err)
		}
	})
}

func TestCircuitBreaker_OpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			hits.Add(1)
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})

	cfg := testProviderConfig(srv.URL)
	cfg.BreakerEnabled = true
	c := NewClient(cfg)
	h := testHandle(c, "tok")
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := h.ListActivities(ctx, 0, 10); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if c.BreakerState() != "open" {
		t.Fatalf("BreakerState() = %q, want open", c.BreakerState())
	}

	_, err := h.ListActivities(ctx, 0, 10)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("error = %v, want ErrOpenState", err)
	}
	if hits.Load() != 2 {
		t.Errorf("hits = %d, want 2 (open breaker must not reach the provider)", hits.Load())
	}
}

func TestCircuitBreaker_LogsUnderProviderComponent(t *testing.T) {
	var buf bytes.Buffer
	logging.Init(logging.Config{Level: "info", Output: &buf})
	t.Cleanup(func() { logging.Init(logging.DefaultConfig()) })

	srv := newTestServer(t, func(r chi.Router) {
		r.Get(activitiesPath, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusInternalServerError)
		})
	})

	cfg := testProviderConfig(srv.URL)
	cfg.BreakerEnabled = true
	h := testHandle(NewClient(cfg), "tok")

	for i := 0; i < 3; i++ {
		_, _ = h.ListActivities(context.Background(), 0, 10)
	}

	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if !strings.Contains(line, "CIRCUIT BREAKER") {
			continue
		}
		if !strings.Contains(line, `"component":"provider"`) {
			t.Errorf("breaker log line without provider component: %s", line)
		}
	}
	for _, want := range []string{"Opening circuit", "State transition", "Request rejected"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected %q in breaker logs, got: %s", want, buf.String())
		}
	}
}

func TestCircuitBreaker_NotFoundDoesNotTrip(t *testing.T) {
	srv := newTestServer(t, func(r chi.Router) {
		r.Get("/activity-service/activity/{id}/details", func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
	})

	cfg := testProviderConfig(srv.URL)
	cfg.BreakerEnabled = true
	c := NewClient(cfg)
	h := testHandle(c, "tok")

	for i := 0; i < 5; i++ {
		if _, err := h.ActivityDetails(context.Background(), int64(i)); !errors.Is(err, ErrNotFound) {
			t.Fatalf("call %d: error = %v, want ErrNotFound", i, err)
		}
	}
	if c.BreakerState() != "closed" {
		t.Errorf("BreakerState() = %q, want closed", c.BreakerState())
	}
}

func TestBreakerState_Disabled(t *testing.T) {
	c := NewClient(testProviderConfig("http://localhost"))
	if c.BreakerState() != "disabled" {
		t.Errorf("BreakerState() = %q, want disabled", c.BreakerState())
	}
}

func TestRetryDelay(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		attempt    int
		retryAfter string
		want       time.Duration
	}{
		{"first attempt", 0, "", time.Second},
		{"third attempt doubles", 2, "", 4 * time.Second},
		{"retry-after seconds", 0, "7", 7 * time.Second},
		{"retry-after http date", 0, now.Add(3 * time.Second).Format(http.TimeFormat), 3 * time.Second},
		{"retry-after in the past", 0, now.Add(-time.Minute).Format(http.TimeFormat), 0},
		{"garbage header falls back", 1, "soon", 2 * time.Second},
		{"capped", 0, "86400", maxRetryWait},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := retryDelay(time.Second, tt.attempt, tt.retryAfter, now); got != tt.want {
				t.Errorf("retryDelay() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestReadBodyForError_Truncates(t *testing.T) {
	body := readBodyForError(strings.NewReader(strings.Repeat("x", maxErrorBodySize+100)))
	if !strings.HasSuffix(string(body), "(truncated)") {
		t.Error("expected truncation marker")
	}
	if len(body) > maxErrorBodySize+32 {
		t.Errorf("len(body) = %d, exceeds cap", len(body))
	}
}

func TestCastResult(t *testing.T) {
	if _, err := castResult[int]("nope", nil); err == nil {
		t.Error("expected type mismatch error")
	}
	v, err := castResult[int](7, nil)
	if err != nil || v != 7 {
		t.Errorf("castResult() = %d, %v", v, err)
	}
}
