// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package acquire

import (
	"context"
	"fmt"
	"time"

	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/logging"
	"github.com/tomtom215/stridelog/internal/metrics"
)

// Page size limits.
const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Provider is an authenticated provider handle.
type Provider interface {
	// ListActivities returns up to limit records from offset start,
	// newest first.
	ListActivities(ctx context.Context, start, limit int) ([]activity.Raw, error)

	// ActivityDetails returns the detail payload for one activity.
	ActivityDetails(ctx context.Context, activityID int64) (interface{}, error)
}

// FetchResult is the outcome of a range fetch.
type FetchResult struct {
	// Records in provider order (newest first).
	Records []activity.Raw

	// Warnings lists records kept without a usable date.
	Warnings []PartialDataWarning

	// Pages is the number of pages requested.
	Pages int

	// StopReason is one of the metrics.Stop* labels.
	StopReason string
}

// ValidatePageSize checks that pageSize is in (0, MaxPageSize].
func ValidatePageSize(pageSize int) error {
	if pageSize <= 0 || pageSize > MaxPageSize {
		return &ValidationError{
			Field: "page_size",
			Err:   fmt.Errorf("%w: %d not in (0, %d]", ErrInvalidPageSize, pageSize, MaxPageSize),
		}
	}
	return nil
}

// FetchRange pages through p and returns every record whose local date is
// within [start, end], plus records without a usable date.
//
// Pages are assumed newest first. Records dated after end are skipped. The
// first record dated before start ends the fetch immediately, without
// reading the rest of its page or any further page. Paging also stops on
// an empty page, a short page, or after maxPages pages when maxPages > 0.
//
// On a provider error the records collected so far are returned together
// with a *TransientProviderError. On cancellation they are returned with
// the context error.
func FetchRange(ctx context.Context, p Provider, start, end activity.Date, pageSize, maxPages int) (FetchResult, error) {
	var result FetchResult

	if err := ValidatePageSize(pageSize); err != nil {
		return result, err
	}
	if maxPages < 0 {
		return result, &ValidationError{Field: "max_pages", Err: fmt.Errorf("must not be negative, got %d", maxPages)}
	}
	if err := activity.ValidateRange(start, end); err != nil {
		return result, &ValidationError{Field: "range", Err: err}
	}

	logger := logging.Ctx(ctx)
	started := time.Now()
	defer func() {
		metrics.RecordFetch(time.Since(started), result.StopReason)
	}()

	offset := 0
	for {
		if err := ctx.Err(); err != nil {
			result.StopReason = metrics.StopCancelled
			return result, err
		}

		batch, err := p.ListActivities(ctx, offset, pageSize)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				result.StopReason = metrics.StopCancelled
				return result, ctxErr
			}
			result.StopReason = metrics.StopError
			return result, &TransientProviderError{Offset: offset, PageSize: pageSize, Err: err}
		}
		result.Pages++
		metrics.FetchPages.Inc()

		if len(batch) == 0 {
			result.StopReason = metrics.StopEmptyPage
			break
		}

		kept, skipped := 0, 0
		for _, raw := range batch {
			day, ok := activity.LocalDate(raw)
			if !ok {
				w := PartialDataWarning{
					ActivityID: activityIDText(raw),
					TypeKey:    activity.ResolveTypeKey(raw),
					Reason:     ReasonUndated,
				}
				result.Warnings = append(result.Warnings, w)
				result.Records = append(result.Records, raw)
				metrics.RecordFetchRecord(metrics.OutcomeUndated)
				metrics.RecordPartialData(ReasonUndated)
				logger.Warn().Str("activity_id", w.ActivityID).Msg("Keeping record without a usable date")
				continue
			}

			if day.After(end) {
				skipped++
				metrics.RecordFetchRecord(metrics.OutcomeSkippedFuture)
				continue
			}

			if day.Before(start) {
				metrics.RecordFetchRecord(metrics.OutcomeStopOlder)
				result.StopReason = metrics.StopOlder
				logger.Info().
					Str("date", day.String()).
					Int("offset", offset).
					Int("records", len(result.Records)).
					Msg("Reached records older than range start, stopping")
				return result, nil
			}

			kept++
			result.Records = append(result.Records, raw)
			metrics.RecordFetchRecord(metrics.OutcomeKept)
		}

		logger.Debug().
			Int("offset", offset).
			Int("page_size", pageSize).
			Int("received", len(batch)).
			Int("kept", kept).
			Int("skipped", skipped).
			Msg("Fetched activity page")

		if maxPages > 0 && result.Pages >= maxPages {
			result.StopReason = metrics.StopMaxPages
			break
		}
		if len(batch) < pageSize {
			result.StopReason = metrics.StopShortPage
			break
		}
		offset += len(batch)
	}

	logger.Info().Str("reason", result.StopReason).Int("pages", result.Pages).Int("records", len(result.Records)).Msg("Range fetch complete")
	return result, nil
}

// activityIDText renders a record's id for warnings and errors.
func activityIDText(raw activity.Raw) string {
	v, ok := raw["activityId"]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
