package scheduling

import (
	"time"

	"github.com/dentalcloud/clinic-scheduler/internal/models"
)

// Window is a concrete open/close pair anchored to a calendar date.
type Window struct {
	Open  time.Time
	Close time.Time
}

// Contains reports whether [start, end] fits fully inside the window.
func (w Window) Contains(start, end time.Time) bool {
	return !start.Before(w.Open) && !end.After(w.Close)
}

// ValidHM reports whether s is a well-formed "HH:MM" clock value, the same
// grammar the window resolution parses.
func ValidHM(s string) bool {
	_, ok := parseHM(s, time.Time{})
	return ok
}

func parseHM(hm string, date time.Time) (time.Time, bool) {
	t, err := time.Parse("15:04", hm)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), true
}

// ResolveBranchHours returns the operating window of a branch on a date.
// Saturday/Sunday overrides win when both fields are set; otherwise the
// general hours apply on attended weekdays and the branch is closed on the
// rest.
func ResolveBranchHours(sched *models.BranchSchedule, date time.Time) (Window, bool) {
	if sched == nil {
		return Window{}, false
	}

	openStr, closeStr := "", ""

	switch date.Weekday() {
	case time.Saturday:
		if sched.SaturdayOpen != "" && sched.SaturdayClose != "" {
			openStr, closeStr = sched.SaturdayOpen, sched.SaturdayClose
		}
	case time.Sunday:
		if sched.SundayOpen != "" && sched.SundayClose != "" {
			openStr, closeStr = sched.SundayOpen, sched.SundayClose
		}
	}

	if openStr == "" {
		if !sched.Attends(date.Weekday()) {
			return Window{}, false
		}
		openStr, closeStr = sched.OpenTime, sched.CloseTime
	}

	open, ok1 := parseHM(openStr, date)
	close, ok2 := parseHM(closeStr, date)
	if !ok1 || !ok2 || !open.Before(close) {
		return Window{}, false
	}
	return Window{Open: open, Close: close}, true
}

// ResolveDentistHours applies the dentist-level resolution chain on top of
// the branch window: exception > personalized availability > branch hours >
// closed. The returned windows are the ranges the dentist actually attends
// on that date; an empty slice means unavailable.
func ResolveDentistHours(
	branch Window,
	branchOpen bool,
	availability []models.DentistAvailability,
	exceptions []models.DentistException,
	date time.Time,
) []Window {

	var windows []Window
	weekday := int(date.Weekday())

	personalized := false
	for _, av := range availability {
		if !av.Active || av.Weekday != weekday {
			continue
		}
		open, ok1 := parseHM(av.StartTime, date)
		close, ok2 := parseHM(av.EndTime, date)
		if !ok1 || !ok2 || !open.Before(close) {
			continue
		}
		personalized = true
		windows = append(windows, Window{Open: open, Close: close})
	}

	if !personalized {
		if !branchOpen {
			return nil
		}
		windows = []Window{branch}
	}

	for _, exc := range exceptions {
		if !exc.Active || !exc.Covers(date) {
			continue
		}
		if exc.AllDay {
			return nil
		}
		blockStart, ok1 := parseHM(exc.StartTime, date)
		blockEnd, ok2 := parseHM(exc.EndTime, date)
		if !ok1 || !ok2 {
			// a windowed exception without a valid window blocks the day
			return nil
		}
		windows = subtractWindow(windows, blockStart, blockEnd)
	}

	return windows
}

// subtractWindow removes [blockStart, blockEnd) from every window, splitting
// windows the block lands inside of.
func subtractWindow(windows []Window, blockStart, blockEnd time.Time) []Window {
	var out []Window
	for _, w := range windows {
		if !blockStart.Before(w.Close) || !blockEnd.After(w.Open) {
			out = append(out, w)
			continue
		}
		if blockStart.After(w.Open) {
			out = append(out, Window{Open: w.Open, Close: blockStart})
		}
		if blockEnd.Before(w.Close) {
			out = append(out, Window{Open: blockEnd, Close: w.Close})
		}
	}
	return out
}

// FitsAny reports whether [start, end] fits fully inside one of the windows.
func FitsAny(windows []Window, start, end time.Time) bool {
	for _, w := range windows {
		if w.Contains(start, end) {
			return true
		}
	}
	return false
}
