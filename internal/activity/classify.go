// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package activity

import (
	"fmt"
	"strings"
)

const keyActivityID = "activityId"

// typeContainerKeys are the provider keys that may hold a nested type object.
var typeContainerKeys = []string{"activityType", "activityTypeDTO"}

// typeObjectKeys are read from a nested type object, first non-empty wins.
var typeObjectKeys = []string{"typeKey", "typeName", "typeId"}

// ResolveTypeKey returns the normalized sport key of a record: trimmed,
// lower-cased, and "unknown" when nothing usable is present.
//
// A nested type object is consulted first (typeKey, then typeName, then
// typeId). A flat string under activityType is accepted as well.
func ResolveTypeKey(raw Raw) string {
	for _, container := range typeContainerKeys {
		switch t := raw[container].(type) {
		case map[string]interface{}:
			if key := firstTypeValue(t); key != "" {
				return key
			}
		case Raw:
			if key := firstTypeValue(t); key != "" {
				return key
			}
		case string:
			if key := normalizeTypeKey(t); key != "" {
				return key
			}
		}
	}
	return UnknownTypeKey
}

func firstTypeValue(obj map[string]interface{}) string {
	for _, k := range typeObjectKeys {
		var s string
		switch v := obj[k].(type) {
		case string:
			s = v
		case nil, bool:
			continue
		default:
			if f, ok := numericValue(v); ok && f != 0 {
				s = fmt.Sprint(v)
			}
		}
		if key := normalizeTypeKey(s); key != "" {
			return key
		}
	}
	return ""
}

func normalizeTypeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Classify turns one raw provider summary into a typed Summary.
//
// Numeric allow-listed fields are rounded to two decimals before extraction
// and the rounded payload is kept as Summary.Raw. A record without a usable
// integral activityId yields a *ValidationError wrapping ErrMissingActivityID
// or ErrInvalidActivityID.
func Classify(raw Raw) (Summary, error) {
	typeKey := ResolveTypeKey(raw)
	spec := specFor(VariantOf(typeKey))

	norm := Normalize(raw, spec.roundKeys)

	id, err := parseActivityID(norm[keyActivityID])
	if err != nil {
		return Summary{}, NewValidationError(keyActivityID, norm[keyActivityID], err)
	}

	s := Summary{
		ActivityID:     id,
		TypeKey:        typeKey,
		Variant:        spec.variant,
		ActivityName:   stringField(norm, "activityName"),
		BeginTimestamp: int64Field(norm, keyBeginTimestamp),
		EndTimeGMT:     stringField(norm, "endTimeGMT"),
		Raw:            norm,
	}
	for _, f := range commonNumeric {
		*f.ref(&s) = floatField(norm, f.key)
	}

	if spec.alloc != nil {
		spec.alloc(&s)
	}
	for _, f := range spec.numeric {
		*f.ref(&s) = floatField(norm, f.key)
	}
	for _, f := range spec.flags {
		*f.ref(&s) = boolField(norm, f.key)
	}
	return s, nil
}

// ClassifyAll classifies every record, collecting per-record failures instead
// of aborting. The returned errors are indexed by input position.
func ClassifyAll(raws []Raw) ([]Summary, map[int]error) {
	out := make([]Summary, 0, len(raws))
	var failures map[int]error
	for i, raw := range raws {
		s, err := Classify(raw)
		if err != nil {
			if failures == nil {
				failures = make(map[int]error)
			}
			failures[i] = err
			continue
		}
		out = append(out, s)
	}
	return out, failures
}
