package model

import (
	"fmt"
	"time"
)

// ItunesTime is rendered in RFC1123Z (Itunes "RFC2822" date format) in
// the reference zone.
type ItunesTime struct {
	time.Time
}

// Override default String() function to output time in RFC1123Z format
// (Itunes "RFC2822" time format).
func (t ItunesTime) String() string {
	return t.In(Location()).Format(time.RFC1123Z)
}

func (t ItunesTime) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// Output true or false for the explicit field.
type ItunesExplicit bool

func (e ItunesExplicit) String() string {
	if e {
		return "true"
	}
	return "false"
}

func (e ItunesExplicit) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// The Apple RSS has a specific duration format.
type ItunesDuration struct {
	time.Duration
}

// DurationFromSeconds returns an ItunesDuration of whole seconds.
func DurationFromSeconds(seconds int64) ItunesDuration {
	return ItunesDuration{time.Duration(seconds) * time.Second}
}

// Return duration as H:MM:SS, or M:SS when under an hour, without a
// leading zero on the leftmost unit.
func (d ItunesDuration) String() string {
	total := int64(d.Duration / time.Second)
	sign := ""
	if total < 0 {
		sign = "-"
		total = -total
	}
	h, m, s := total/3600, (total%3600)/60, total%60
	if h > 0 {
		return fmt.Sprintf("%s%d:%02d:%02d", sign, h, m, s)
	}
	return fmt.Sprintf("%s%d:%02d", sign, m, s)
}

func (d ItunesDuration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}
