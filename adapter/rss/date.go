package rss

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// RFC 822 layouts RSS 2.0 requires, with one- and two-digit days and an
// optional weekday.
var rfc822Layouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"Mon, 2 Jan 2006 15:04:05 MST",
	"2 Jan 2006 15:04:05 -0700",
	"2 Jan 2006 15:04:05 MST",
	time.RFC822Z,
	time.RFC822,
	"Mon, 2 Jan 06 15:04 -0700",
	"Mon, 2 Jan 06 15:04 MST",
}

// rfc822Zones are the zone names RFC 822 defines besides numeric offsets.
var rfc822Zones = map[string]int{
	"UT":  0,
	"GMT": 0,
	"Z":   0,
	"EST": -5 * 3600,
	"EDT": -4 * 3600,
	"CST": -6 * 3600,
	"CDT": -5 * 3600,
	"MST": -7 * 3600,
	"MDT": -6 * 3600,
	"PST": -8 * 3600,
	"PDT": -7 * 3600,
}

var (
	monthName   = regexp.MustCompile(`(?i)\b(jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec)[a-z]*\b`)
	numericDate = regexp.MustCompile(`\d{1,4}[-/.]\d{1,2}[-/.]\d{1,4}`)
)

// parseDate reads an RSS pubDate. Strict RFC 822 forms are tried first;
// anything else goes through dateparse and must carry a day, a month and
// a year.
func parseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	for _, layout := range rfc822Layouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return withRFC822Zone(t), nil
	}

	if !monthName.MatchString(s) && !numericDate.MatchString(s) {
		return time.Time{}, fmt.Errorf("no day and month in %q", s)
	}
	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	if t.Year() == 0 {
		return time.Time{}, fmt.Errorf("no year in %q", s)
	}
	return withRFC822Zone(t), nil
}

// withRFC822Zone replaces the zero offset time.Parse invents for an
// unknown abbreviation with the RFC 822 one.
func withRFC822Zone(t time.Time) time.Time {
	name, _ := t.Zone()
	off, ok := rfc822Zones[strings.ToUpper(name)]
	if !ok {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		time.FixedZone(name, off))
}
