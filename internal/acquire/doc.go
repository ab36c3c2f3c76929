// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

/*
Package acquire fetches activities for a date range and turns them into
typed summaries.

The provider only offers offset/limit paging, newest first, with no total
count or cursor. FetchRange therefore filters by date on the client and
stops as soon as it sees a record older than the range start:

	page 1: 2025-07-02 (skip, after end) 2025-06-30 (keep) 2025-06-15 (keep)
	page 2: 2025-06-03 (keep) 2025-05-31 (older than start: stop)

Records without a usable date are kept and reported as PartialDataWarning
values. They never influence the stop decision.

Service wires authentication, fetching, sport filtering and classification:

	svc := acquire.NewService(auth, &cfg.Fetch)
	res, err := svc.GetActivitiesInRange(ctx, "2025-06-01", "2025-06-30",
	    acquire.Options{Types: []string{"running"}})

Errors:
  - *ValidationError: bad range, page size or page cap, before any request
  - *AuthenticationError: fresh login failed
  - *TransientProviderError: a page request failed, with offset and size
  - *RecordError: one record could not be classified (in Result, not fatal)
*/
package acquire
