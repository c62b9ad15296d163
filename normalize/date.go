package normalize

import (
	"math"
	"regexp"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/araddon/dateparse"
)

const (
	// DefaultTimeZone is the reference zone remote dates are rendered in.
	DefaultTimeZone = "Asia/Tokyo"

	// MissingDate stands in for content without a date so it sorts last.
	MissingDate = "1970-01-01"

	dateLayout = "2006-01-02"
)

var (
	canonicalDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

	// spreadsheet day 0
	serialEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)
)

// LoadZone resolves name, falling back to DefaultTimeZone and then to a fixed +09:00 zone.
func LoadZone(name string) *time.Location {
	if name = strings.TrimSpace(name); name == "" {
		name = DefaultTimeZone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultTimeZone); err == nil {
		return loc
	}
	return time.FixedZone("JST", 9*60*60)
}

// IsCanonicalDate reports whether s is already YYYY-MM-DD.
func IsCanonicalDate(s string) bool {
	return canonicalDate.MatchString(s)
}

// Date renders a remote date value as YYYY-MM-DD in loc. Numbers are spreadsheet
// serial days, canonical strings pass through, other strings are parsed loosely
// and returned trimmed but unchanged when they cannot be parsed. Absent values
// become "".
func Date(v any, loc *time.Location) string {
	if loc == nil {
		loc = LoadZone("")
	}

	switch t := v.(type) {
	case nil:
		return ""
	case time.Time:
		return t.In(loc).Format(dateLayout)
	case string:
		return dateFromString(t, loc)
	case bool:
		return Scalar(t)
	}

	if f := Float(v); f != nil {
		return SerialDate(*f, loc)
	}
	return Scalar(v)
}

// SerialDate converts a spreadsheet day count (days since 1899-12-30 UTC, fraction
// is time of day) to a calendar date in loc.
func SerialDate(days float64, loc *time.Location) string {
	if math.IsNaN(days) || math.IsInf(days, 0) {
		return ""
	}
	whole := math.Floor(days)
	fraction := days - whole
	instant := serialEpoch.AddDate(0, 0, int(whole)).Add(time.Duration(fraction * float64(24*time.Hour)))
	return instant.In(loc).Format(dateLayout)
}

func dateFromString(s string, loc *time.Location) string {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return ""
	}
	if IsCanonicalDate(trimmed) {
		return trimmed
	}

	hyphenated := strings.ReplaceAll(trimmed, "/", "-")
	for _, candidate := range []string{hyphenated, trimmed} {
		if parsed, err := dateparse.ParseIn(candidate, loc); err == nil {
			return parsed.In(loc).Format(dateLayout)
		}
	}
	return trimmed
}

// ContentDate renders a front-matter date. Canonical strings pass through,
// timestamps use their UTC calendar date, other strings are kept trimmed, and a
// missing value becomes MissingDate.
func ContentDate(v any) string {
	switch t := v.(type) {
	case nil:
		return MissingDate
	case time.Time:
		if t.IsZero() {
			return MissingDate
		}
		return t.UTC().Format(dateLayout)
	case string:
		trimmed := strings.TrimSpace(t)
		if trimmed == "" {
			return MissingDate
		}
		if IsCanonicalDate(trimmed) {
			return trimmed
		}
		if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
			return parsed.UTC().Format(dateLayout)
		}
		return trimmed
	}

	if s := Scalar(v); s != "" {
		return s
	}
	return MissingDate
}
