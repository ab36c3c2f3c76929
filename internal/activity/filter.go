// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

// TypeSet is a set of normalized sport keys.
type TypeSet map[string]struct{}

// NewTypeSet builds a TypeSet from caller-supplied keys, trimming and
// lower-casing each one. Blank keys are dropped.
func NewTypeSet(keys ...string) TypeSet {
	set := make(TypeSet, len(keys))
	for _, k := range keys {
		if n := normalizeTypeKey(k); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

// Contains reports whether the normalized form of key is in the set.
func (s TypeSet) Contains(key string) bool {
	_, ok := s[normalizeTypeKey(key)]
	return ok
}

// FilterRaw keeps the raw records whose resolved sport key is allowed.
// Order is preserved. An empty set keeps nothing; records without a type
// resolve to "unknown" and are kept only when "unknown" is allowed.
func FilterRaw(records []Raw, allowed TypeSet) []Raw {
	out := make([]Raw, 0, len(records))
	for _, r := range records {
		if allowed.Contains(ResolveTypeKey(r)) {
			out = append(out, r)
		}
	}
	return out
}

// FilterSummaries is FilterRaw for typed records.
func FilterSummaries(records []Summary, allowed TypeSet) []Summary {
	out := make([]Summary, 0, len(records))
	for _, s := range records {
		if allowed.Contains(s.TypeKey) {
			out = append(out, s)
		}
	}
	return out
}
