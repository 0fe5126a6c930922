// internal/dateparse/dateparse.go
package dateparse

import (
	"errors"
	"strings"
	"time"

	"birthday_bot/internal/domain/birthday"

	"github.com/markusmobius/go-dateparser"
)

// ErrUnrecognizedDate is returned when the input cannot be read as a
// calendar date. Callers are expected to re-prompt, not to abort.
var ErrUnrecognizedDate = errors.New("unrecognized date")

// Numeric forms are resolved before the free-text parser so that ambiguous
// inputs like "03-07-1990" always read day-first, matching how users in the
// supported locales write dates. Year components are discarded either way.
var numericLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	"02.01",
	"02-01-2006",
	"02-01",
	"02/01/2006",
	"02/01",
}

var parserConfig = &dateparser.Configuration{
	Languages: []string{"uk", "ru", "en"},
}

// Normalize parses free-text date input in Ukrainian, Russian or English and
// returns the canonical month-day value. The year, if present, is ignored.
func Normalize(text string) (birthday.MonthDay, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return birthday.MonthDay{}, ErrUnrecognizedDate
	}

	for _, layout := range numericLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return birthday.MonthDayOf(t), nil
		}
	}

	parsed, err := dateparser.Parse(parserConfig, text)
	if err != nil || parsed.Time.IsZero() {
		return birthday.MonthDay{}, ErrUnrecognizedDate
	}
	return birthday.MonthDayOf(parsed.Time), nil
}
