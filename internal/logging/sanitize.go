// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package logging

import "strings"

// SanitizeToken masks a token, showing only first and last 4 characters.
// Example: "eyJhbGciOiJSUzI1NiIsInR5cCI6IkpXVCJ9..." -> "eyJh...kpXV"
func SanitizeToken(token string) string {
	if token == "" {
		return ""
	}
	if len(token) <= 12 {
		return "***"
	}
	return token[:4] + "..." + token[len(token)-4:]
}

// SanitizeUsername masks an account name. Email addresses keep their domain.
// Example: "johndoe" -> "jo***", "john.doe@example.com" -> "jo***@example.com"
func SanitizeUsername(username string) string {
	if username == "" {
		return ""
	}

	local, domain := username, ""
	if at := strings.LastIndex(username, "@"); at > 0 {
		local, domain = username[:at], username[at:]
	}

	if len(local) <= 2 {
		return "***" + domain
	}
	return local[:2] + "***" + domain
}

// sensitiveKeys are field names whose values are always masked.
var sensitiveKeys = map[string]bool{
	"access_token":  true,
	"refresh_token": true,
	"id_token":      true,
	"token":         true,
	"password":      true,
	"secret":        true,
	"authorization": true,
	"cookie":        true,
	"session":       true,
}

// SanitizeValue sanitizes a value based on its key name.
func SanitizeValue(key, value string) string {
	lowerKey := strings.ToLower(key)
	switch {
	case sensitiveKeys[lowerKey]:
		return SanitizeToken(value)
	case lowerKey == "username" || lowerKey == "user" || lowerKey == "email":
		return SanitizeUsername(value)
	default:
		return value
	}
}
