// normalize converts the raw field representations of the episode API
// into typed values: colon-delimited durations, the two publication
// date formats and nullable descriptions.
package normalize

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/sa6mwa/mkfeed/internal/app/model"
)

// MaxDurationSeconds is the longest duration that still fits a
// time.Duration.
const MaxDurationSeconds int64 = math.MaxInt64 / int64(time.Second)

var (
	ErrMalformedDuration error = errors.New("malformed duration")
	ErrUnparseableDate   error = errors.New("unparseable date")
)

// ParseDuration returns the number of whole seconds in s, one to three
// colon-delimited groups with the most significant first ("1:02:03",
// "05:30", "42").
func ParseDuration(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("%w: empty string", ErrMalformedDuration)
	}
	groups := strings.Split(s, ":")
	if len(groups) > 3 {
		return 0, fmt.Errorf("%w: %q has more than three groups", ErrMalformedDuration, s)
	}
	var seconds int64
	for _, g := range groups {
		n, err := strconv.ParseInt(g, 10, 64)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("%w: %q is not a non-negative number in %q", ErrMalformedDuration, g, s)
		}
		if n > MaxDurationSeconds || seconds > (MaxDurationSeconds-n)/60 {
			return 0, fmt.Errorf("%w: %q is out of range", ErrMalformedDuration, s)
		}
		seconds = seconds*60 + n
	}
	return seconds, nil
}

// ParseDate parses the published field of the API. A full date such
// as "15 января 2024" resolves to midnight of that day in the reference
// zone and dateOnly is true. A bare "HH:MM" is today at that time in
// the reference zone, today being taken from now.
//
// Episodes published before today arrive without a time of day, so
// several episodes of one day all collapse to midnight. That is what
// the API delivers and it is kept as is.
func ParseDate(s string, now time.Time) (published time.Time, dateOnly bool, err error) {
	s = strings.TrimSpace(s)
	loc := model.Location()
	if t, ok := parseFullDate(s, loc); ok {
		return t, true, nil
	}
	clock, err := time.Parse("15:04", s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("%w: %q", ErrUnparseableDate, s)
	}
	y, m, d := now.In(loc).Date()
	return time.Date(y, m, d, clock.Hour(), clock.Minute(), 0, 0, loc), false, nil
}

// Description returns the description or an empty string for null.
func Description(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func parseFullDate(s string, loc *time.Location) (time.Time, bool) {
	fields := strings.Fields(s)
	if len(fields) != 3 {
		return time.Time{}, false
	}
	day, err := strconv.Atoi(fields[0])
	if err != nil {
		return time.Time{}, false
	}
	month, ok := monthNames[strings.ToLower(fields[1])]
	if !ok {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(fields[2])
	if err != nil {
		return time.Time{}, false
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, loc)
	// time.Date normalizes 31 февраля into March, reject that.
	if t.Day() != day || t.Month() != month || t.Year() != year {
		return time.Time{}, false
	}
	return t, true
}

var monthNames = map[string]time.Month{}

func init() {
	// genitive first, then nominative
	russian := [][2]string{
		{"января", "январь"},
		{"февраля", "февраль"},
		{"марта", "март"},
		{"апреля", "апрель"},
		{"мая", "май"},
		{"июня", "июнь"},
		{"июля", "июль"},
		{"августа", "август"},
		{"сентября", "сентябрь"},
		{"октября", "октябрь"},
		{"ноября", "ноябрь"},
		{"декабря", "декабрь"},
	}
	for i, names := range russian {
		m := time.Month(i + 1)
		monthNames[names[0]] = m
		monthNames[names[1]] = m
		monthNames[strings.ToLower(m.String())] = m
	}
}
