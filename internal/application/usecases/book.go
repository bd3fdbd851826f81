package usecases

import (
	"context"
	"log/slog"

	"github.com/example/resy-agent/internal/domain/reservation"
)

// maxBookAttempts bounds booking requests per run; the platform can keep
// rejecting contested slots and we refuse to hammer it.
const maxBookAttempts = 5

// bookBest walks the ranked candidates and issues one booking request at a
// time. The first success wins; a rejected slot is dropped and the next
// candidate tried. Running out of candidates or attempts is a normal
// NoBookingMade outcome, not an error.
func (a *Agent) bookBest(ctx context.Context, logger *slog.Logger, candidates []reservation.Slot) reservation.Outcome {
	ranked := reservation.RankCandidates(candidates)

	attempts := 0
	for _, slot := range ranked {
		if attempts >= maxBookAttempts {
			logger.Warn("booking attempt budget exhausted", "attempts", attempts)
			break
		}
		attempts++
		logger.Info("attempting booking",
			"restaurant", slot.Preference.Name,
			"start", slot.Start,
			"attempt", attempts)
		confirmation, err := a.Provider.Book(ctx, slot)
		if err != nil {
			logger.Warn("booking rejected, trying next candidate",
				"restaurant", slot.Preference.Name, "err", err)
			continue
		}
		logger.Info("booking confirmed",
			"restaurant", slot.Preference.Name,
			"confirmation", confirmation)
		return reservation.Booked(slot, confirmation)
	}
	return reservation.NoBookingMade()
}
