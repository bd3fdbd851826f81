package schedule

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Window is a half-open time range [Start, End). Busy intervals from the
// calendar and free windows produced here share the same shape.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Clock is a time of day in the user's local timezone.
type Clock struct {
	Hour   int
	Minute int
}

// DayRange is a daily window like 17:00-22:00, applied per preferred weekday.
type DayRange struct {
	Start Clock
	End   Clock
}

// ParseClock parses "HH:MM".
func ParseClock(s string) (Clock, error) {
	parts := strings.SplitN(strings.TrimSpace(s), ":", 2)
	if len(parts) != 2 {
		return Clock{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return Clock{}, fmt.Errorf("invalid hour in %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return Clock{}, fmt.Errorf("invalid minute in %q", s)
	}
	return Clock{Hour: h, Minute: m}, nil
}

// ParseDayRange parses "HH:MM-HH:MM".
func ParseDayRange(s string) (DayRange, error) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	if len(parts) != 2 {
		return DayRange{}, fmt.Errorf("invalid range %q (want HH:MM-HH:MM)", s)
	}
	start, err := ParseClock(parts[0])
	if err != nil {
		return DayRange{}, err
	}
	end, err := ParseClock(parts[1])
	if err != nil {
		return DayRange{}, err
	}
	if end.Hour < start.Hour || (end.Hour == start.Hour && end.Minute <= start.Minute) {
		return DayRange{}, fmt.Errorf("range %q ends before it starts", s)
	}
	return DayRange{Start: start, End: end}, nil
}

// On materializes the range on a concrete day in loc.
func (r DayRange) On(day time.Time, loc *time.Location) Window {
	y, m, d := day.In(loc).Date()
	return Window{
		Start: time.Date(y, m, d, r.Start.Hour, r.Start.Minute, 0, 0, loc),
		End:   time.Date(y, m, d, r.End.Hour, r.End.Minute, 0, 0, loc),
	}
}

// ParseWeekdays parses comma-separated weekday names ("Friday,Saturday").
func ParseWeekdays(s string) ([]time.Weekday, error) {
	names := map[string]time.Weekday{
		"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
		"wednesday": time.Wednesday, "thursday": time.Thursday,
		"friday": time.Friday, "saturday": time.Saturday,
	}
	var out []time.Weekday
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		d, ok := names[strings.ToLower(p)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", p)
		}
		out = append(out, d)
	}
	return out, nil
}

// MergeBusy sorts and coalesces overlapping or touching intervals. Intervals
// with End <= Start are dropped. Idempotent: merging a merged set is a no-op.
func MergeBusy(busy []Window) []Window {
	var valid []Window
	for _, b := range busy {
		if b.End.After(b.Start) {
			valid = append(valid, b)
		}
	}
	if len(valid) == 0 {
		return nil
	}
	sort.Slice(valid, func(i, j int) bool { return valid[i].Start.Before(valid[j].Start) })

	out := []Window{valid[0]}
	for _, b := range valid[1:] {
		last := &out[len(out)-1]
		if !b.Start.After(last.End) {
			if b.End.After(last.End) {
				last.End = b.End
			}
			continue
		}
		out = append(out, b)
	}
	return out
}

// Subtract removes the given intervals from win, returning the remaining
// free sub-windows in order. Intervals must be merged and sorted.
func Subtract(win Window, busy []Window) []Window {
	var out []Window
	cursor := win.Start
	for _, b := range busy {
		if !b.End.After(cursor) {
			continue
		}
		if !b.Start.Before(win.End) {
			break
		}
		if b.Start.After(cursor) {
			end := b.Start
			if end.After(win.End) {
				end = win.End
			}
			out = append(out, Window{Start: cursor, End: end})
		}
		if b.End.After(cursor) {
			cursor = b.End
		}
	}
	if cursor.Before(win.End) {
		out = append(out, Window{Start: cursor, End: win.End})
	}
	return out
}

// FreeWindowsInput carries the availability calculation parameters.
type FreeWindowsInput struct {
	Now         time.Time
	HorizonDays int
	Weekdays    []time.Weekday
	Daily       DayRange
	Busy        []Window
	Buffer      time.Duration // widens each busy interval on both edges
	MinDuration time.Duration // windows shorter than this are dropped
	Location    *time.Location
}

// FreeWindows derives the free evening windows over the horizon: for each
// preferred weekday, the daily range minus the buffer-widened busy intervals.
// Windows already underway are clipped to start at Now. An empty result is a
// valid outcome, not an error.
func FreeWindows(in FreeWindowsInput) []Window {
	loc := in.Location
	if loc == nil {
		loc = time.Local
	}
	wanted := make(map[time.Weekday]bool, len(in.Weekdays))
	for _, d := range in.Weekdays {
		wanted[d] = true
	}

	widened := make([]Window, 0, len(in.Busy))
	for _, b := range in.Busy {
		widened = append(widened, Window{
			Start: b.Start.Add(-in.Buffer),
			End:   b.End.Add(in.Buffer),
		})
	}
	// Widening can introduce new overlaps, so merge after.
	merged := MergeBusy(widened)

	now := in.Now.In(loc)
	var out []Window
	for offset := 0; offset < in.HorizonDays; offset++ {
		day := now.AddDate(0, 0, offset)
		if !wanted[day.Weekday()] {
			continue
		}
		win := in.Daily.On(day, loc)
		if !win.End.After(now) {
			continue
		}
		if win.Start.Before(now) {
			win.Start = now
		}
		for _, free := range Subtract(win, merged) {
			if free.Duration() >= in.MinDuration {
				out = append(out, free)
			}
		}
	}
	return out
}
