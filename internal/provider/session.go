// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package provider

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"
)

// expiryLeeway treats tokens this close to expiry as already expired.
const expiryLeeway = 30 * time.Second

// EncodeSession serializes a session token for the cache file.
func EncodeSession(tok *oauth2.Token) ([]byte, error) {
	if tok == nil || tok.AccessToken == "" {
		return nil, ErrInvalidSession
	}
	return json.MarshalIndent(tok, "", "  ")
}

// DecodeSession parses a cached session blob.
func DecodeSession(data []byte) (*oauth2.Token, error) {
	var tok oauth2.Token
	if err := json.Unmarshal(data, &tok); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if tok.AccessToken == "" {
		return nil, ErrInvalidSession
	}
	return &tok, nil
}

// TokenExpiry returns when tok expires. The explicit expiry wins; otherwise
// the exp claim of a JWT access token is read without verifying the
// signature, since only the provider can verify it.
func TokenExpiry(tok *oauth2.Token) (time.Time, bool) {
	if tok == nil {
		return time.Time{}, false
	}
	if !tok.Expiry.IsZero() {
		return tok.Expiry, true
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(tok.AccessToken, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// sessionExpired reports whether tok is known to be expired at now.
func sessionExpired(tok *oauth2.Token, now time.Time) bool {
	exp, ok := TokenExpiry(tok)
	if !ok {
		return false
	}
	return !now.Add(expiryLeeway).Before(exp)
}

// normalizeLoginToken fills Expiry from expires_in when the provider only
// sent a relative lifetime.
func normalizeLoginToken(tok *oauth2.Token, now time.Time) {
	if tok.Expiry.IsZero() && tok.ExpiresIn > 0 {
		tok.Expiry = now.Add(time.Duration(tok.ExpiresIn) * time.Second)
	}
	if tok.TokenType == "" {
		tok.TokenType = "Bearer"
	}
}
