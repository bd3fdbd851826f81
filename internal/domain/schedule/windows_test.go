package schedule

import (
	"testing"
	"time"
)

func mustLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatal(err)
	}
	return loc
}

func at(t *testing.T, loc *time.Location, day string, clock string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", day+" "+clock, loc)
	if err != nil {
		t.Fatal(err)
	}
	return ts
}

func TestMergeBusyCoalesces(t *testing.T) {
	loc := mustLoc(t)
	day := "2024-06-07"
	busy := []Window{
		{at(t, loc, day, "19:00"), at(t, loc, day, "20:00")},
		{at(t, loc, day, "18:00"), at(t, loc, day, "19:30")},
		{at(t, loc, day, "21:00"), at(t, loc, day, "21:30")},
		{at(t, loc, day, "12:00"), at(t, loc, day, "12:00")}, // zero-length, dropped
	}
	got := MergeBusy(busy)
	if len(got) != 2 {
		t.Fatalf("got %d intervals, want 2: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, loc, day, "18:00")) || !got[0].End.Equal(at(t, loc, day, "20:00")) {
		t.Errorf("first merged interval = %v", got[0])
	}
	if !got[1].Start.Equal(at(t, loc, day, "21:00")) {
		t.Errorf("second merged interval = %v", got[1])
	}
}

func TestMergeBusyIdempotent(t *testing.T) {
	loc := mustLoc(t)
	day := "2024-06-07"
	busy := []Window{
		{at(t, loc, day, "17:00"), at(t, loc, day, "18:30")},
		{at(t, loc, day, "18:00"), at(t, loc, day, "19:00")},
		{at(t, loc, day, "20:00"), at(t, loc, day, "21:00")},
	}
	once := MergeBusy(busy)
	twice := MergeBusy(once)
	if len(once) != len(twice) {
		t.Fatalf("merge not idempotent: %d vs %d", len(once), len(twice))
	}
	for i := range once {
		if !once[i].Start.Equal(twice[i].Start) || !once[i].End.Equal(twice[i].End) {
			t.Errorf("interval %d changed on re-merge: %v vs %v", i, once[i], twice[i])
		}
	}
}

func TestSubtractMiddle(t *testing.T) {
	loc := mustLoc(t)
	day := "2024-06-07"
	win := Window{at(t, loc, day, "17:00"), at(t, loc, day, "22:00")}
	busy := []Window{{at(t, loc, day, "18:00"), at(t, loc, day, "19:30")}}
	got := Subtract(win, busy)
	if len(got) != 2 {
		t.Fatalf("got %d windows, want 2: %v", len(got), got)
	}
	if !got[0].End.Equal(at(t, loc, day, "18:00")) {
		t.Errorf("first window ends %v, want 18:00", got[0].End)
	}
	if !got[1].Start.Equal(at(t, loc, day, "19:30")) {
		t.Errorf("second window starts %v, want 19:30", got[1].Start)
	}
}

func TestSubtractFullyCovered(t *testing.T) {
	loc := mustLoc(t)
	day := "2024-06-07"
	win := Window{at(t, loc, day, "17:00"), at(t, loc, day, "22:00")}
	busy := []Window{{at(t, loc, day, "16:00"), at(t, loc, day, "23:00")}}
	if got := Subtract(win, busy); len(got) != 0 {
		t.Fatalf("expected no free windows, got %v", got)
	}
}

// Busy 18:00-19:30 on a preferred Friday, range 17:00-22:00, 30 min buffer:
// the widened interval 17:30-20:00 leaves 17:00-17:30 and 20:00-22:00, and a
// 60 minute minimum drops the first.
func TestFreeWindowsBufferAndMinimum(t *testing.T) {
	loc := mustLoc(t)
	friday := "2024-06-07"
	daily, err := ParseDayRange("17:00-22:00")
	if err != nil {
		t.Fatal(err)
	}

	in := FreeWindowsInput{
		Now:         at(t, loc, "2024-06-03", "09:00"), // Monday before
		HorizonDays: 7,
		Weekdays:    []time.Weekday{time.Friday},
		Daily:       daily,
		Busy:        []Window{{at(t, loc, friday, "18:00"), at(t, loc, friday, "19:30")}},
		Buffer:      30 * time.Minute,
		Location:    loc,
	}

	got := FreeWindows(in)
	if len(got) != 2 {
		t.Fatalf("no minimum: got %d windows, want 2: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, loc, friday, "17:00")) || !got[0].End.Equal(at(t, loc, friday, "17:30")) {
		t.Errorf("first window = %v..%v", got[0].Start, got[0].End)
	}
	if !got[1].Start.Equal(at(t, loc, friday, "20:00")) || !got[1].End.Equal(at(t, loc, friday, "22:00")) {
		t.Errorf("second window = %v..%v", got[1].Start, got[1].End)
	}

	in.MinDuration = time.Hour
	got = FreeWindows(in)
	if len(got) != 1 {
		t.Fatalf("60m minimum: got %d windows, want 1: %v", len(got), got)
	}
	if !got[0].Start.Equal(at(t, loc, friday, "20:00")) {
		t.Errorf("surviving window starts %v, want 20:00", got[0].Start)
	}
}

func TestFreeWindowsDisjointFromBusy(t *testing.T) {
	loc := mustLoc(t)
	daily, _ := ParseDayRange("17:00-22:00")
	busy := []Window{
		{at(t, loc, "2024-06-07", "18:00"), at(t, loc, "2024-06-07", "19:00")},
		{at(t, loc, "2024-06-08", "17:00"), at(t, loc, "2024-06-08", "21:00")},
		{at(t, loc, "2024-06-14", "12:00"), at(t, loc, "2024-06-14", "23:00")},
	}
	buffer := 15 * time.Minute
	in := FreeWindowsInput{
		Now:         at(t, loc, "2024-06-03", "09:00"),
		HorizonDays: 14,
		Weekdays:    []time.Weekday{time.Friday, time.Saturday},
		Daily:       daily,
		Busy:        busy,
		Buffer:      buffer,
		Location:    loc,
	}
	for _, w := range FreeWindows(in) {
		day := w.Start.In(loc).Weekday()
		if day != time.Friday && day != time.Saturday {
			t.Errorf("window %v on non-preferred day %v", w, day)
		}
		for _, b := range busy {
			widened := Window{Start: b.Start.Add(-buffer), End: b.End.Add(buffer)}
			if w.Overlaps(widened) {
				t.Errorf("window %v overlaps widened busy %v", w, widened)
			}
		}
	}
}

func TestFreeWindowsClipsPastStart(t *testing.T) {
	loc := mustLoc(t)
	daily, _ := ParseDayRange("17:00-22:00")
	now := at(t, loc, "2024-06-07", "18:30") // Friday, mid-window
	in := FreeWindowsInput{
		Now:         now,
		HorizonDays: 1,
		Weekdays:    []time.Weekday{time.Friday},
		Daily:       daily,
		Location:    loc,
	}
	got := FreeWindows(in)
	if len(got) != 1 {
		t.Fatalf("got %d windows, want 1: %v", len(got), got)
	}
	if !got[0].Start.Equal(now) {
		t.Errorf("window starts %v, want clipped to %v", got[0].Start, now)
	}
}

func TestParseWeekdays(t *testing.T) {
	got, err := ParseWeekdays("Friday, saturday")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0] != time.Friday || got[1] != time.Saturday {
		t.Fatalf("got %v", got)
	}
	if _, err := ParseWeekdays("Freeday"); err == nil {
		t.Fatal("expected error for unknown weekday")
	}
}

func TestParseDayRange(t *testing.T) {
	if _, err := ParseDayRange("22:00-17:00"); err == nil {
		t.Fatal("expected error for inverted range")
	}
	if _, err := ParseDayRange("17:00"); err == nil {
		t.Fatal("expected error for missing end")
	}
	r, err := ParseDayRange("17:30-21:45")
	if err != nil {
		t.Fatal(err)
	}
	if r.Start.Hour != 17 || r.Start.Minute != 30 || r.End.Hour != 21 || r.End.Minute != 45 {
		t.Fatalf("got %+v", r)
	}
}
