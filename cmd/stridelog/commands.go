// Stridelog - Wearable Activity Acquisition and Normalization
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stridelog

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stridelog/internal/acquire"
	"github.com/tomtom215/stridelog/internal/activity"
	"github.com/tomtom215/stridelog/internal/analytics"
	"github.com/tomtom215/stridelog/internal/validation"
)

var errUsage = errors.New("usage error")

const usage = `usage: stridelog <command> [flags]

commands:
  activities  list typed activities in a date range
  details     fetch normalized details for one activity
  by-day      daily totals for a date range
  by-type     per-sport totals for a date range
  quality     data quality report for a date range
`

// activityService is the part of acquire.Service the commands use.
type activityService interface {
	GetActivitiesInRange(ctx context.Context, start, end interface{}, opts acquire.Options) (*acquire.Result, error)
	GetActivityDetails(ctx context.Context, activityID int64) (activity.Raw, error)
}

// rangeFlags are shared by every range-based command.
type rangeFlags struct {
	start    string
	end      string
	types    string
	pageSize int
	maxPages int
}

func (r *rangeFlags) register(fs *flag.FlagSet, withTypes bool) {
	fs.StringVar(&r.start, "start", "", "first day, YYYY-MM-DD (required)")
	fs.StringVar(&r.end, "end", "", "last day, YYYY-MM-DD (required)")
	if withTypes {
		fs.StringVar(&r.types, "types", "", "comma separated sport keys, empty for all")
	}
	fs.IntVar(&r.pageSize, "page-size", 0, "records per page, 1-200 (default from config)")
	fs.IntVar(&r.maxPages, "max-pages", 0, "page cap, 0 for config default, -1 for no cap")
}

// rangeRequest is the validated form of rangeFlags.
type rangeRequest struct {
	Start    string   `json:"start" validate:"required,isodate"`
	End      string   `json:"end" validate:"required,isodate"`
	Types    []string `json:"types" validate:"omitempty,dive,sportkey"`
	PageSize int      `json:"page-size" validate:"gte=0,lte=200"`
	MaxPages int      `json:"max-pages" validate:"gte=-1"`
}

func (r *rangeFlags) request() (rangeRequest, error) {
	req := rangeRequest{
		Start:    strings.TrimSpace(r.start),
		End:      strings.TrimSpace(r.end),
		Types:    parseTypes(r.types),
		PageSize: r.pageSize,
		MaxPages: r.maxPages,
	}
	if verr := validation.ValidateStruct(req); verr != nil {
		return req, fmt.Errorf("%w: %s", errUsage, verr.Error())
	}
	return req, nil
}

func (r *rangeFlags) fetch(ctx context.Context, svc activityService) (*acquire.Result, error) {
	req, err := r.request()
	if err != nil {
		return nil, err
	}
	return svc.GetActivitiesInRange(ctx, req.Start, req.End, acquire.Options{
		Types:    req.Types,
		PageSize: req.PageSize,
		MaxPages: req.MaxPages,
	})
}

// parseTypes splits a comma separated list into normalized sport keys.
// An empty flag means no filter.
func parseTypes(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.ToLower(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// run executes one command and writes its JSON output to stdout.
func run(ctx context.Context, svc activityService, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		_, _ = io.WriteString(stdout, usage)
		return fmt.Errorf("%w: missing command", errUsage)
	}

	cmd, rest := args[0], args[1:]
	fs := flag.NewFlagSet(cmd, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var rf rangeFlags
	var out interface{}

	switch cmd {
	case "activities":
		rf.register(fs, true)
		includeRaw := fs.Bool("include-raw", false, "attach the normalized provider payload")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		res, err := rf.fetch(ctx, svc)
		if err != nil {
			return err
		}
		out = activitiesOutput(res, *includeRaw)

	case "details":
		id := fs.Int64("id", 0, "activity id (required)")
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		if *id <= 0 {
			return fmt.Errorf("%w: -id is required", errUsage)
		}
		details, err := svc.GetActivityDetails(ctx, *id)
		if err != nil {
			return err
		}
		out = map[string]interface{}{"activity_id": *id, "details": details}

	case "by-day":
		rf.register(fs, true)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		res, err := rf.fetch(ctx, svc)
		if err != nil {
			return err
		}
		out = analytics.AggregateByDay(res.Activities)

	case "by-type":
		rf.register(fs, false)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		res, err := rf.fetch(ctx, svc)
		if err != nil {
			return err
		}
		out = analytics.AggregateByType(res.Activities)

	case "quality":
		rf.register(fs, true)
		if err := parseFlags(fs, rest); err != nil {
			return err
		}
		res, err := rf.fetch(ctx, svc)
		if err != nil {
			return err
		}
		out = analytics.QualityReport(res.Activities, res.Warnings)

	case "help", "-h", "--help":
		_, err := io.WriteString(stdout, usage)
		return err

	default:
		_, _ = io.WriteString(stdout, usage)
		return fmt.Errorf("%w: unknown command %q", errUsage, cmd)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %s: %v", errUsage, fs.Name(), err)
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("%w: %s: unexpected argument %q", errUsage, fs.Name(), fs.Arg(0))
	}
	return nil
}

func activitiesOutput(res *acquire.Result, includeRaw bool) map[string]interface{} {
	items := make([]map[string]interface{}, 0, len(res.Activities))
	for i := range res.Activities {
		items = append(items, res.Activities[i].Public(includeRaw))
	}

	recordErrors := make([]string, 0, len(res.RecordErrors))
	for _, e := range res.RecordErrors {
		recordErrors = append(recordErrors, e.Error())
	}

	warnings := res.Warnings
	if warnings == nil {
		warnings = []acquire.PartialDataWarning{}
	}

	return map[string]interface{}{
		"count":         len(items),
		"activities":    items,
		"warnings":      warnings,
		"record_errors": recordErrors,
	}
}
