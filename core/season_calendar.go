// core/season_calendar.go
package core

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/signalsfoundry/lodging-simulator/model"
)

// SeasonCalendar resolves a calendar date to a season label from an ordered
// list of recurring windows. Resolution is a plain linear scan: the first
// window whose (month, day) range contains the date wins. That scan order is
// the documented tie-break when the configuration declares overlapping
// windows for different labels, so it must not be reordered or replaced by
// anything that changes which window matches first.
type SeasonCalendar struct {
	windows      []model.SeasonWindow
	defaultLabel model.SeasonLabel
}

// NewSeasonCalendar validates the window list and builds a calendar.
// Malformed month-day strings are configuration errors; overlap between
// labels is deliberately not validated (first match wins at runtime).
func NewSeasonCalendar(windows []model.SeasonWindow, defaultLabel model.SeasonLabel) (*SeasonCalendar, error) {
	if defaultLabel == "" {
		defaultLabel = model.SeasonMedium
	}
	for i, w := range windows {
		if w.Label == "" {
			return nil, fmt.Errorf("season window %d: empty label", i)
		}
		if err := validateMonthDay(w.Start); err != nil {
			return nil, fmt.Errorf("season window %d (%s): start: %w", i, w.Label, err)
		}
		if err := validateMonthDay(w.End); err != nil {
			return nil, fmt.Errorf("season window %d (%s): end: %w", i, w.Label, err)
		}
	}
	sc := &SeasonCalendar{
		windows:      make([]model.SeasonWindow, len(windows)),
		defaultLabel: defaultLabel,
	}
	copy(sc.windows, windows)
	return sc, nil
}

// SeasonFor returns the label of the first window containing the date's
// month and day, or the default label when nothing matches. Pure function
// of the date and the static window list.
func (sc *SeasonCalendar) SeasonFor(date time.Time) model.SeasonLabel {
	key := date.Format("01-02")
	for _, w := range sc.windows {
		if w.Contains(key) {
			return w.Label
		}
	}
	return sc.defaultLabel
}

// DefaultLabel returns the fallback label for dates outside every window.
func (sc *SeasonCalendar) DefaultLabel() model.SeasonLabel { return sc.defaultLabel }

// validateMonthDay checks a zero-padded "MM-DD" string. Lexical window
// comparison only works when both parts are zero-padded, so the format is
// strict.
func validateMonthDay(s string) error {
	parts := strings.Split(s, "-")
	if len(parts) != 2 || len(parts[0]) != 2 || len(parts[1]) != 2 {
		return fmt.Errorf("%q is not a zero-padded MM-DD string", s)
	}
	month, err := strconv.Atoi(parts[0])
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%q has an invalid month", s)
	}
	day, err := strconv.Atoi(parts[1])
	if err != nil || day < 1 || day > 31 {
		return fmt.Errorf("%q has an invalid day", s)
	}
	return nil
}
