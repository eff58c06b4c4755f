package model

// SeasonLabel classifies a calendar date for pricing and demand purposes.
type SeasonLabel string

const (
	SeasonHigh   SeasonLabel = "high"
	SeasonMedium SeasonLabel = "medium"
	SeasonLow    SeasonLabel = "low"
)

// SeasonWindow is a recurring annual date interval, inclusive on both ends,
// expressed as zero-padded "MM-DD" strings so windows compare lexically.
// A window whose Start sorts after its End wraps the year boundary
// (e.g. "12-15".."01-05").
//
// Windows for the same label may be disjoint (summer + winter high season).
// Overlaps across different labels are resolved by declaration order: the
// first matching window in the configured list wins.
type SeasonWindow struct {
	Label SeasonLabel
	Start string // "MM-DD"
	End   string // "MM-DD"
}

// Wraps reports whether the window crosses the year boundary.
func (w SeasonWindow) Wraps() bool { return w.Start > w.End }

// Contains reports whether the "MM-DD" key falls inside the window,
// ignoring year.
func (w SeasonWindow) Contains(monthDay string) bool {
	if w.Wraps() {
		return monthDay >= w.Start || monthDay <= w.End
	}
	return monthDay >= w.Start && monthDay <= w.End
}
