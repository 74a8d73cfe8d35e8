package convert

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"invplanner/internal/model"
)

// SerialEpoch day zero of spreadsheet serial dates
var SerialEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// maxSerial serials at or above this are not treated as dates
const maxSerial = 50000

type datePattern struct {
	re      *regexp.Regexp
	layouts []string
}

// ordered; first pattern whose regexp matches and layout parses wins
var datePatterns = []datePattern{
	{regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}$`), []string{"2006-1-2"}},
	{regexp.MustCompile(`^\d{4}-\d{1,2}-\d{1,2}[ T]\d{1,2}:\d{2}(:\d{2})?$`), []string{
		"2006-1-2 15:04:05", "2006-1-2T15:04:05", "2006-1-2 15:04", "2006-1-2T15:04",
	}},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{4}$`), []string{"1/2/2006"}},
	{regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2}$`), []string{"1/2/06"}},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{4}$`), []string{"1-2-2006"}},
	{regexp.MustCompile(`^\d{1,2}-\d{1,2}-\d{2}$`), []string{"1-2-06"}},
	{regexp.MustCompile(`^\d{4}/\d{1,2}/\d{1,2}$`), []string{"2006/1/2"}},
	{regexp.MustCompile(`^\d{1,2}\s+[A-Za-z]{3,9}\s+\d{4}$`), []string{"2 Jan 2006", "2 January 2006"}},
	{regexp.MustCompile(`^[A-Za-z]{3,9}\s+\d{1,2},?\s+\d{4}$`), []string{
		"Jan 2, 2006", "Jan 2 2006", "January 2, 2006", "January 2 2006",
	}},
	{regexp.MustCompile(`^[A-Za-z]{3,9}\s+\d{4}$`), []string{"Jan 2006", "January 2006"}},
}

var (
	quarterRe  = regexp.MustCompile(`^(?i)q([1-4])\s*(\d{4})$`)
	weekRe     = regexp.MustCompile(`^(?i)(?:week|wk)\s*(\d{1,2})$`)
	dayFirstRe = regexp.MustCompile(`^\d{1,2}/\d{1,2}/\d{2,4}$`)
	spaceRe    = regexp.MustCompile(`\s+`)
)

// DateParser converts heterogeneous cell values into dates
type DateParser struct {
	// Now anchors "Week N" labels to the current year
	Now func() time.Time
}

// NewDateParser creates a DateParser using the wall clock
func NewDateParser() *DateParser {
	return &DateParser{Now: time.Now}
}

// Parse converts a cell into a date; ok is false when no rule applies
func (p *DateParser) Parse(c model.Cell) (time.Time, bool) {
	switch c.Kind {
	case model.CellDate:
		return c.Time, true
	case model.CellNumber:
		if t, ok := FromSerial(c.Number); ok {
			return t, true
		}
		return p.ParseString(c.String())
	case model.CellText:
		return p.ParseString(c.Text)
	}
	return time.Time{}, false
}

// ParseString runs the string cascade: serial, fixed patterns, free-form
func (p *DateParser) ParseString(raw string) (time.Time, bool) {
	s := strings.TrimSpace(spaceRe.ReplaceAllString(raw, " "))
	if s == "" || strings.EqualFold(s, "nan") {
		return time.Time{}, false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		if t, ok := FromSerial(f); ok {
			return t, true
		}
	}
	for _, dp := range datePatterns {
		if !dp.re.MatchString(s) {
			continue
		}
		for _, layout := range dp.layouts {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	if m := quarterRe.FindStringSubmatch(s); m != nil {
		q, _ := strconv.Atoi(m[1])
		year, _ := strconv.Atoi(m[2])
		return time.Date(year, time.Month((q-1)*3+1), 1, 0, 0, 0, 0, time.UTC), true
	}
	if m := weekRe.FindStringSubmatch(s); m != nil {
		week, _ := strconv.Atoi(m[1])
		if week < 1 {
			return time.Time{}, false
		}
		now := time.Now
		if p.Now != nil {
			now = p.Now
		}
		start := time.Date(now().Year(), 1, 1, 0, 0, 0, 0, time.UTC)
		return start.AddDate(0, 0, (week-1)*7), true
	}
	if t, err := dateparse.ParseIn(s, time.UTC); err == nil {
		return t, true
	}
	if dayFirstRe.MatchString(s) {
		for _, layout := range []string{"2/1/2006", "2/1/06"} {
			if t, err := time.Parse(layout, s); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

// FromSerial converts a spreadsheet serial day count in (0, 50000)
func FromSerial(f float64) (time.Time, bool) {
	if math.IsNaN(f) || f <= 0 || f >= maxSerial {
		return time.Time{}, false
	}
	days := math.Floor(f)
	secs := math.Round((f - days) * 86400)
	return SerialEpoch.AddDate(0, 0, int(days)).Add(time.Duration(secs) * time.Second), true
}
