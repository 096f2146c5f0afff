package format

import (
	"fmt"
	"time"

	"golang.org/x/text/language"
)

// clockStyle is how a locale writes a 12-hour short time.
type clockStyle struct {
	am, pm string
}

var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish, // first entry is the fallback
		language.MustParse("en-AU"),
		language.MustParse("en-CA"),
	}
	clockStyles = []clockStyle{
		{am: "AM", pm: "PM"},
		{am: "am", pm: "pm"},
		{am: "a.m.", pm: "p.m."},
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// ClockFormatter renders UNIX timestamps as short 12-hour clock times for a
// fixed locale and time zone.
type ClockFormatter struct {
	tag   language.Tag
	style clockStyle
	loc   *time.Location
}

// NewClockFormatter builds a formatter for locale (a BCP 47 tag such as
// "en-US"). Locales without a known style fall back to en-US. A nil loc
// means time.Local.
func NewClockFormatter(locale string, loc *time.Location) (*ClockFormatter, error) {
	requested, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	_, index, _ := localeMatcher.Match(requested)
	if loc == nil {
		loc = time.Local
	}
	return &ClockFormatter{
		tag:   supportedLocales[index],
		style: clockStyles[index],
		loc:   loc,
	}, nil
}

// Locale is the tag actually used after matching.
func (f *ClockFormatter) Locale() language.Tag {
	return f.tag
}

// Format renders unix seconds as e.g. "10:13 PM".
func (f *ClockFormatter) Format(unix int64) string {
	t := time.Unix(unix, 0).In(f.loc)
	marker := f.style.am
	if t.Hour() >= 12 {
		marker = f.style.pm
	}
	return t.Format("3:04") + " " + marker
}
