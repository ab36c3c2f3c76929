// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

/*
Package provider implements the HTTP client for the wearable activity
provider API.

The provider exposes three operations this module depends on:

  - Login with credentials, returning a bearer session token
  - Offset/limit paged activity listing, newest first
  - Single activity detail lookup by id

A Client is unauthenticated. Client.Login and Client.Resume return a Handle
that attaches the session token to every request through an oauth2
transport:

	client := provider.NewClient(&cfg.Provider)
	handle, err := client.Login(ctx, cfg.Provider.Username, cfg.Provider.Password)
	if err != nil {
	    return err
	}
	page, err := handle.ListActivities(ctx, 0, 50)

# Rate Limiting

Requests are paced client-side with a token bucket (golang.org/x/time/rate).
HTTP 429 responses are retried with exponential backoff, honoring the
Retry-After header. When retries run out the call fails with a StatusError
that unwraps to ErrRateLimited.

# Circuit Breaker

Listing and detail calls run through a gobreaker circuit breaker shared by
all handles of one Client. Login and session resume checks bypass it so a fresh
login can always be attempted. ErrNotFound and caller cancellation do not
count as failures.

# Sessions

Session tokens are oauth2.Token values. EncodeSession and DecodeSession
convert them to and from the JSON cache file. When a token has no explicit
expiry, TokenExpiry reads the exp claim of a JWT access token without
verifying it, which lets Resume skip a doomed round trip.
*/
package provider
