package usecases

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/example/resy-agent/internal/domain/reservation"
	"github.com/example/resy-agent/internal/domain/schedule"
	"github.com/example/resy-agent/internal/infrastructure/config"
)

// CalendarService is the slice of the calendar API the agent needs.
type CalendarService interface {
	BusyIntervals(ctx context.Context, calendarIDs []string, from, to time.Time) ([]schedule.Window, error)
	InsertEvent(ctx context.Context, calendarID, summary, location, description string, start, end time.Time) (string, error)
}

// PreferenceStore is the remote ranked restaurant list.
type PreferenceStore interface {
	Preferences(ctx context.Context) ([]reservation.Preference, error)
	SaveVenueID(ctx context.Context, rowIndex int, venueID string, platform reservation.Platform) error
}

// EmailSender delivers a notification to the configured recipient.
type EmailSender interface {
	Send(ctx context.Context, subject, body string) error
}

// runState tracks where a run is in its linear flow; states never repeat.
type runState string

const (
	stateIdle             runState = "idle"
	stateCheckingExisting runState = "checking_existing"
	stateFetchingBusy     runState = "fetching_availability"
	stateFetchingPrefs    runState = "fetching_preferences"
	stateSearching        runState = "searching_slots"
	stateBooking          runState = "booking"
	stateNotifying        runState = "notifying"
	stateDone             runState = "done"
)

// Agent runs the find-and-book workflow once. Each run re-fetches everything
// it needs; nothing is carried between runs.
type Agent struct {
	Config   config.Config
	Provider reservation.BookingProvider
	Calendar CalendarService
	Prefs    PreferenceStore
	Email    EmailSender
	Logger   *slog.Logger

	// Now is the clock; nil means time.Now. Tests pin it.
	Now func() time.Time

	// Pause overrides the jittered delay between venue lookups; nil means
	// the default 1-3s sleep.
	Pause func(ctx context.Context) error
}

func (a *Agent) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// Run executes one pass: existing-reservation check, availability,
// preferences, slot search, booking, notification. The returned outcome is
// always terminal; notification failures never alter it.
func (a *Agent) Run(ctx context.Context) reservation.Outcome {
	logger := a.Logger.With("run_id", uuid.NewString())
	state := stateIdle
	step := func(next runState) {
		logger.Debug("state transition", "from", string(state), "to", string(next))
		state = next
	}

	step(stateCheckingExisting)
	existing, err := a.Provider.Upcoming(ctx)
	if err != nil {
		logger.Error("checking existing reservations failed", "err", err)
		return a.finish(ctx, logger, reservation.Failed(err))
	}
	if len(existing) > 0 {
		logger.Info("existing reservation found, not booking another", "count", len(existing))
		return a.finish(ctx, logger, reservation.AlreadyReserved(len(existing)))
	}

	step(stateFetchingBusy)
	from := a.now()
	to := from.AddDate(0, 0, a.Config.HorizonDays)
	busy, err := a.Calendar.BusyIntervals(ctx, a.Config.CalendarIDs, from, to)
	if err != nil {
		logger.Error("fetching busy intervals failed", "err", err)
		return a.finish(ctx, logger, reservation.Failed(err))
	}
	windows := schedule.FreeWindows(schedule.FreeWindowsInput{
		Now:         from,
		HorizonDays: a.Config.HorizonDays,
		Weekdays:    a.Config.PreferredDays,
		Daily:       a.Config.DailyRange,
		Busy:        busy,
		Buffer:      a.Config.Buffer,
		MinDuration: a.Config.MinDuration,
		Location:    a.Config.Location,
	})
	logger.Info("computed free windows", "count", len(windows))
	if len(windows) == 0 {
		return a.finish(ctx, logger, reservation.NoBookingMade())
	}

	step(stateFetchingPrefs)
	prefs, err := a.Prefs.Preferences(ctx)
	if err != nil {
		logger.Error("fetching preferences failed", "err", err)
		return a.finish(ctx, logger, reservation.Failed(err))
	}
	logger.Info("loaded restaurant preferences", "count", len(prefs))
	if len(prefs) == 0 {
		return a.finish(ctx, logger, reservation.NoBookingMade())
	}

	step(stateSearching)
	candidates := a.search(ctx, logger, prefs, windows)

	step(stateBooking)
	outcome := a.bookBest(ctx, logger, candidates)

	return a.finish(ctx, logger, outcome)
}

// search queries the platform for every restaurant/window pair. Errors for
// one restaurant mean "no slots there" and never abort the run.
func (a *Agent) search(ctx context.Context, logger *slog.Logger, prefs []reservation.Preference, windows []schedule.Window) []reservation.Slot {
	var candidates []reservation.Slot
	for _, pref := range prefs {
		if pref.Platform != reservation.PlatformResy {
			logger.Debug("skipping restaurant on other platform", "restaurant", pref.Name, "platform", string(pref.Platform))
			continue
		}
		if pref.VenueID == "" {
			logger.Warn("restaurant has no venue id, run refresh-venues", "restaurant", pref.Name)
			continue
		}
		for _, win := range a.windowsFor(pref, windows) {
			slots, err := a.Provider.FindSlots(ctx, reservation.SearchRequest{
				VenueID:      pref.VenueID,
				Window:       win,
				PartySize:    a.Config.PartySize,
				SeatingTypes: a.Config.PreferredSeating,
			})
			if err != nil {
				logger.Warn("slot search failed, continuing", "restaurant", pref.Name, "err", err)
				continue
			}
			for _, s := range slots {
				s.Preference = pref
				candidates = append(candidates, s)
			}
		}
	}
	logger.Info("collected candidate slots", "count", len(candidates))
	return candidates
}

// windowsFor narrows the user-level free windows by a restaurant's own
// preferred days and time range, dropping anything that falls below the
// minimum duration after intersection.
func (a *Agent) windowsFor(pref reservation.Preference, windows []schedule.Window) []schedule.Window {
	loc := a.Config.Location
	days := map[time.Weekday]bool{}
	for _, d := range pref.PreferredDays {
		days[d] = true
	}

	var out []schedule.Window
	for _, w := range windows {
		if len(days) > 0 && !days[w.Start.In(loc).Weekday()] {
			continue
		}
		if pref.PreferredRange != nil {
			allowed := pref.PreferredRange.On(w.Start, loc)
			if w.Start.Before(allowed.Start) {
				w.Start = allowed.Start
			}
			if w.End.After(allowed.End) {
				w.End = allowed.End
			}
			if !w.End.After(w.Start) {
				continue
			}
		}
		if w.Duration() < a.Config.MinDuration {
			continue
		}
		out = append(out, w)
	}
	return out
}

func (a *Agent) finish(ctx context.Context, logger *slog.Logger, outcome reservation.Outcome) reservation.Outcome {
	logger.Debug("state transition", "to", string(stateNotifying))
	a.notify(ctx, logger, outcome)
	logger.Debug("state transition", "to", string(stateDone))
	logger.Info("run finished", "outcome", outcome.String())
	return outcome
}
