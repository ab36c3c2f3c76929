// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"context"
	"errors"
	"fmt"

	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/config"
	"github.com/tomtom215/stridelog/internal/logging"
	"github.com/tomtom215/stridelog/internal/metrics"
)

// Authenticator supplies an authenticated provider handle per operation.
type Authenticator interface {
	Authenticate(ctx context.Context) (Provider, error)
}

// AuthenticatorFunc adapts a function to Authenticator.
type AuthenticatorFunc func(ctx context.Context) (Provider, error)

// Authenticate implements Authenticator.
func (f AuthenticatorFunc) Authenticate(ctx context.Context) (Provider, error) {
	return f(ctx)
}

// Options narrows a range query.
type Options struct {
	// Types restricts results to these sport keys. Nil means no filter;
	// an empty non-nil slice matches nothing.
	Types []string

	// PageSize defaults to the service default when zero.
	PageSize int

	// MaxPages caps the number of pages. Zero uses the service default and
	// NoPageLimit removes the cap.
	MaxPages int
}

// NoPageLimit requests an uncapped fetch even when a default cap is configured.
const NoPageLimit = -1

// Result holds a partially successful range query.
type Result struct {
	Activities   []activity.Summary   `json:"activities"`
	RecordErrors []*RecordError       `json:"-"`
	Warnings     []PartialDataWarning `json:"warnings"`
}

// Service is the caller-facing acquisition API.
type Service struct {
	auth            Authenticator
	defaultPageSize int
	defaultMaxPages int
}

// NewService creates a Service. A nil cfg uses DefaultPageSize and no page cap.
func NewService(auth Authenticator, cfg *config.FetchConfig) *Service {
	s := &Service{auth: auth, defaultPageSize: DefaultPageSize}
	if cfg != nil {
		if cfg.PageSize > 0 {
			s.defaultPageSize = cfg.PageSize
		}
		s.defaultMaxPages = cfg.MaxPages
	}
	return s
}

// GetActivitiesInRange returns typed summaries for activities whose local
// date is within [start, end]. start and end accept anything DateOf does.
//
// Input is validated before authenticating. Records whose activityId cannot
// be coerced are reported in Result.RecordErrors and the rest are returned.
// On any fetch failure, including cancellation, no activities are returned.
func (s *Service) GetActivitiesInRange(ctx context.Context, start, end interface{}, opts Options) (*Result, error) {
	from, to, err := parseRange(start, end)
	if err != nil {
		return nil, err
	}

	pageSize := opts.PageSize
	if pageSize == 0 {
		pageSize = s.defaultPageSize
	}
	if err := ValidatePageSize(pageSize); err != nil {
		return nil, err
	}
	maxPages := opts.MaxPages
	switch {
	case maxPages == 0:
		maxPages = s.defaultMaxPages
	case maxPages == NoPageLimit:
		maxPages = 0
	case maxPages < 0:
		return nil, &ValidationError{Field: "max_pages", Err: fmt.Errorf("must be positive, 0 or %d, got %d", NoPageLimit, maxPages)}
	}

	ctx = logging.EnsureCorrelationID(ctx)
	logger := logging.Ctx(ctx)
	logger.Info().
		Str("start", from.String()).
		Str("end", to.String()).
		Int("page_size", pageSize).
		Int("max_pages", maxPages).
		Strs("types", opts.Types).
		Msg("Fetching activities in range")

	p, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	fetched, err := FetchRange(ctx, p, from, to, pageSize, maxPages)
	if err != nil {
		return nil, err
	}

	records, warnings := fetched.Records, fetched.Warnings
	if opts.Types != nil {
		allowed := activity.NewTypeSet(opts.Types...)
		records = activity.FilterRaw(records, allowed)
		warnings = filterWarnings(warnings, allowed)
	}

	result := &Result{
		Activities: make([]activity.Summary, 0, len(records)),
		Warnings:   warnings,
	}
	for i, raw := range records {
		summary, err := activity.Classify(raw)
		metrics.RecordClassification(string(summary.Variant), err)
		if err != nil {
			rerr := &RecordError{Index: i, ActivityID: activityIDText(raw), Err: err}
			result.RecordErrors = append(result.RecordErrors, rerr)
			logger.Warn().Err(err).Int("index", i).Msg("Skipping unclassifiable record")
			continue
		}
		result.Activities = append(result.Activities, summary)
	}

	logger.Info().
		Int("activities", len(result.Activities)).
		Int("record_errors", len(result.RecordErrors)).
		Int("warnings", len(result.Warnings)).
		Msg("Range query complete")
	return result, nil
}

// GetActivityDetails fetches and normalizes one activity's detail payload.
// Provider and authentication errors are returned, never swallowed.
func (s *Service) GetActivityDetails(ctx context.Context, activityID int64) (activity.Raw, error) {
	if activityID <= 0 {
		return nil, &ValidationError{
			Field: "activity_id",
			Err:   activity.NewValidationError("activityId", activityID, activity.ErrInvalidActivityID),
		}
	}

	ctx = logging.EnsureCorrelationID(ctx)

	p, err := s.authenticate(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := p.ActivityDetails(ctx, activityID)
	if err != nil {
		return nil, fmt.Errorf("activity %d details: %w", activityID, err)
	}

	logging.Ctx(ctx).Debug().Int64("activity_id", activityID).Msg("Fetched activity details")
	return NormalizeDetails(activityID, payload), nil
}

// filterWarnings keeps the warnings whose record survives the type filter.
func filterWarnings(warnings []PartialDataWarning, allowed activity.TypeSet) []PartialDataWarning {
	var out []PartialDataWarning
	for _, w := range warnings {
		if allowed.Contains(w.TypeKey) {
			out = append(out, w)
		}
	}
	return out
}

func (s *Service) authenticate(ctx context.Context) (Provider, error) {
	p, err := s.auth.Authenticate(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, &AuthenticationError{Err: err}
	}
	return p, nil
}
