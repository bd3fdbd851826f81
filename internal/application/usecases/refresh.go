package usecases

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/example/resy-agent/internal/domain/reservation"
)

// RefreshVenues resolves platform venue ids for preference rows missing
// them. Rows that already carry an id or a platform tag are left alone.
// Lookups are spaced by a 1-3s jittered pause to stay polite to the search
// endpoint. A failed lookup marks the row Unknown so later runs skip it.
func (a *Agent) RefreshVenues(ctx context.Context) error {
	prefs, err := a.Prefs.Preferences(ctx)
	if err != nil {
		return err
	}

	first := true
	for _, pref := range prefs {
		if pref.VenueID != "" || pref.Platform != "" {
			continue
		}
		if !first {
			if err := a.pause(ctx); err != nil {
				return err
			}
		}
		first = false

		a.Logger.Info("searching venue id", "restaurant", pref.Name)
		venueID, err := a.Provider.FindVenueID(ctx, pref.Name)
		switch {
		case errors.Is(err, reservation.ErrVenueLookup):
			a.Logger.Warn("no venue found, marking unknown", "restaurant", pref.Name)
			if err := a.Prefs.SaveVenueID(ctx, pref.RowIndex, "", reservation.PlatformUnknown); err != nil {
				a.Logger.Warn("sheet write-back failed", "restaurant", pref.Name, "err", err)
			}
		case err != nil:
			a.Logger.Warn("venue search failed, leaving row untouched", "restaurant", pref.Name, "err", err)
		default:
			a.Logger.Info("venue id found", "restaurant", pref.Name, "venue_id", venueID)
			if err := a.Prefs.SaveVenueID(ctx, pref.RowIndex, venueID, reservation.PlatformResy); err != nil {
				a.Logger.Warn("sheet write-back failed", "restaurant", pref.Name, "err", err)
			}
		}
	}
	return nil
}

func (a *Agent) pause(ctx context.Context) error {
	if a.Pause != nil {
		return a.Pause(ctx)
	}
	d := time.Second + time.Duration(rand.Int63n(int64(2*time.Second)))
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
