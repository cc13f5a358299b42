// Heliodeck - NASA Open API Gateway and Mission Dashboard Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/heliodeck

package validation

import (
	"strconv"
	"strings"
	"time"
)

// Bounds applied by the parameter validators. Sol and page ceilings match
// the upstream Mars Rover Photos API limits.
const (
	MaxSol  = 10000
	MaxPage = 1000
)

// ValidDate reports whether s is a real calendar date in strict
// YYYY-MM-DD form. Dates that parse but normalize to a different day
// (e.g. 2023-02-30) are rejected.
func ValidDate(s string) bool {
	if len(s) != 10 {
		return false
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return false
	}
	return t.Format("2006-01-02") == s
}

// ValidCount reports whether s parses to an integer within [min, max].
func ValidCount(s string, min, max int) bool {
	n, err := strconv.Atoi(s)
	if err != nil {
		return false
	}
	return n >= min && n <= max
}

// ValidSol reports whether s is a Martian sol number in [0, MaxSol].
func ValidSol(s string) bool {
	return ValidCount(s, 0, MaxSol)
}

// ValidPage reports whether s is a page number in [1, MaxPage].
func ValidPage(s string) bool {
	return ValidCount(s, 1, MaxPage)
}

// ValidAsteroidID reports whether s is a NeoWs asteroid identifier:
// 1 to 10 digits, nothing else.
func ValidAsteroidID(s string) bool {
	if len(s) < 1 || len(s) > 10 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidCamera reports whether camera is a known instrument for rover,
// both matched case-insensitively against the catalog.
func ValidCamera(camera, rover string, catalog map[string][]string) bool {
	cameras, ok := catalog[strings.ToLower(rover)]
	if !ok {
		return false
	}
	camera = strings.ToUpper(camera)
	for _, c := range cameras {
		if c == camera {
			return true
		}
	}
	return false
}

// DateRangeResult is the outcome of ValidateDateRange. Days is the
// inclusive day count of the window when IsValid is true.
type DateRangeResult struct {
	IsValid bool
	Days    int
	Message string
}

// ValidateDateRange checks that start and end are valid dates, ordered,
// and span at most maxDays inclusive. The day count includes both
// endpoints, so start == end is a 1-day window.
func ValidateDateRange(start, end string, maxDays int) DateRangeResult {
	if !ValidDate(start) {
		return DateRangeResult{Message: "start_date must be a valid date in YYYY-MM-DD format"}
	}
	if !ValidDate(end) {
		return DateRangeResult{Message: "end_date must be a valid date in YYYY-MM-DD format"}
	}

	startT, _ := time.Parse("2006-01-02", start)
	endT, _ := time.Parse("2006-01-02", end)
	if startT.After(endT) {
		return DateRangeResult{Message: "start_date must not be after end_date"}
	}

	days := int(endT.Sub(startT).Hours()/24) + 1
	if days > maxDays {
		return DateRangeResult{
			Message: "date range must not exceed " + strconv.Itoa(maxDays) + " days",
		}
	}

	return DateRangeResult{IsValid: true, Days: days}
}

// SanitizeString trims whitespace, truncates to maxLen, and strips angle
// brackets so values are safe to echo into responses and logs.
func SanitizeString(s string, maxLen int) string {
	s = strings.TrimSpace(s)
	if maxLen > 0 && len(s) > maxLen {
		s = s[:maxLen]
	}
	s = strings.ReplaceAll(s, "<", "")
	s = strings.ReplaceAll(s, ">", "")
	return s
}

// ParamRule describes one query parameter for ValidateQueryParams.
type ParamRule struct {
	Key       string
	Required  bool
	Validator func(string) bool
	Message   string
}

// ParamsResult aggregates the outcome of a batch parameter validation.
type ParamsResult struct {
	IsValid bool
	Errors  []string
}

// ValidateQueryParams applies rules against a raw parameter map. Missing
// required keys and present-but-invalid values both contribute errors;
// absent optional keys are skipped.
func ValidateQueryParams(params map[string]string, rules []ParamRule) ParamsResult {
	var errs []string
	for _, rule := range rules {
		value, present := params[rule.Key]
		if !present || value == "" {
			if rule.Required {
				errs = append(errs, rule.Key+" is required")
			}
			continue
		}
		if rule.Validator != nil && !rule.Validator(value) {
			errs = append(errs, rule.Message)
		}
	}
	return ParamsResult{IsValid: len(errs) == 0, Errors: errs}
}
