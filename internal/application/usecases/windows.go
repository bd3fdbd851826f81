package usecases

import (
	"context"

	"github.com/example/resy-agent/internal/domain/schedule"
)

// FreeWindows computes the current free evening windows without booking
// anything; backs the windows command and the interactive menu.
func (a *Agent) FreeWindows(ctx context.Context) ([]schedule.Window, error) {
	from := a.now()
	to := from.AddDate(0, 0, a.Config.HorizonDays)
	busy, err := a.Calendar.BusyIntervals(ctx, a.Config.CalendarIDs, from, to)
	if err != nil {
		return nil, err
	}
	return schedule.FreeWindows(schedule.FreeWindowsInput{
		Now:         from,
		HorizonDays: a.Config.HorizonDays,
		Weekdays:    a.Config.PreferredDays,
		Daily:       a.Config.DailyRange,
		Busy:        busy,
		Buffer:      a.Config.Buffer,
		MinDuration: a.Config.MinDuration,
		Location:    a.Config.Location,
	}), nil
}
