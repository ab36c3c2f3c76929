// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared by the whole process; it caches struct
// metadata, so repeated validation of config and fetch options is cheap.
// Field names in messages follow the koanf or json tag of the field, which
// keeps them aligned with the keys users write in YAML and CLI flags.
//
// Custom tags:
//   - isodate: a YYYY-MM-DD calendar date string
//   - sportkey: a normalized (trimmed, lower-case) sport key
//
// Example:
//
//	type fetchRequest struct {
//	    PageSize int    `json:"page_size" validate:"gt=0,lte=200"`
//	    Start    string `json:"start" validate:"required,isodate"`
//	}
//
//	if err := validation.ValidateStruct(&req); err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
package validation
