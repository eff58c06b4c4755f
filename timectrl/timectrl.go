package timectrl

import "time"

// SimClock is a read-only view of simulation time. Components that only
// need to know "what day is it" depend on this interface rather than the
// concrete controller, which keeps them trivially testable.
type SimClock interface {
	// Today returns the current simulated date (UTC midnight).
	Today() time.Time
	// DayIndex returns the zero-based offset of Today from the start
	// date.
	DayIndex() int
}

// DayController drives simulation time one whole day at a time. Unlike a
// wall-clock ticker there is no goroutine and no real-time coupling: the
// simulation loop calls Advance explicitly, so a run is a deterministic,
// replayable sequence of dates regardless of how fast the host executes.
type DayController struct {
	startDate time.Time
	today     time.Time
	dayIndex  int

	listeners []func(time.Time)
}

// NewDayController constructs a controller positioned on the start date,
// truncated to a UTC calendar date.
func NewDayController(start time.Time) *DayController {
	start = dateOnly(start)
	return &DayController{
		startDate: start,
		today:     start,
	}
}

// StartDate returns the first simulated date.
func (dc *DayController) StartDate() time.Time { return dc.startDate }

// Today returns the current simulated date. Implements SimClock.
func (dc *DayController) Today() time.Time { return dc.today }

// DayIndex returns the zero-based day offset. Implements SimClock.
func (dc *DayController) DayIndex() int { return dc.dayIndex }

// AddListener registers a callback invoked with the new date on every
// Advance, in registration order.
func (dc *DayController) AddListener(fn func(time.Time)) {
	dc.listeners = append(dc.listeners, fn)
}

// Advance moves to the next day and notifies listeners. It returns the new
// date.
func (dc *DayController) Advance() time.Time {
	dc.dayIndex++
	dc.today = dc.startDate.AddDate(0, 0, dc.dayIndex)
	for _, fn := range dc.listeners {
		fn(dc.today)
	}
	return dc.today
}

// Reset rewinds to the start date without dropping listeners.
func (dc *DayController) Reset() {
	dc.dayIndex = 0
	dc.today = dc.startDate
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
