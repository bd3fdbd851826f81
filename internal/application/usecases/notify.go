package usecases

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/example/resy-agent/internal/domain/reservation"
)

// notify records the outcome in the calendar and by email. Both side effects
// are independent and best-effort: a failure is logged and never changes the
// outcome or undoes the booking.
func (a *Agent) notify(ctx context.Context, logger *slog.Logger, o reservation.Outcome) {
	switch o.Kind {
	case reservation.OutcomeBooked:
		a.notifyBooked(ctx, logger, o)
	case reservation.OutcomeNoBookingMade:
		body := "The agent ran, but no reservations could be booked at this time matching your preferences."
		if err := a.Email.Send(ctx, "Reservation Agent: No Reservations Booked", body); err != nil {
			logger.Warn("no-booking email failed", "err", err)
		}
	case reservation.OutcomeAlreadyReserved:
		body := fmt.Sprintf("The agent found %d active reservation(s) and will not book a new one.", o.ExistingCount)
		if err := a.Email.Send(ctx, "Reservation Agent: Found Existing Reservation", body); err != nil {
			logger.Warn("existing-reservation email failed", "err", err)
		}
	}
}

func (a *Agent) notifyBooked(ctx context.Context, logger *slog.Logger, o reservation.Outcome) {
	name := o.Slot.Preference.Name
	when := o.Slot.Start.In(a.Config.Location)

	calendarID := a.Config.EventCalendarID
	if calendarID == "" {
		calendarID = "primary"
	}
	link, err := a.Calendar.InsertEvent(ctx, calendarID,
		fmt.Sprintf("Dinner at %s", name),
		name,
		fmt.Sprintf("Reservation for %d. Confirmation: %s", o.Slot.PartySize, o.ConfirmationID),
		when, when.Add(a.Config.EventDuration))
	if err != nil {
		logger.Warn("calendar event creation failed, booking stands", "err", err)
	}

	subject := fmt.Sprintf("Reservation Confirmed: %s on %s", name, when.Format("Monday, January 2 at 3:04 PM MST"))
	body := fmt.Sprintf("Your reservation for %d at %s on %s has been booked.\n\nConfirmation ID: %s\n",
		o.Slot.PartySize, name, when.Format("Monday, January 2 at 3:04 PM MST"), o.ConfirmationID)
	if link != "" {
		body += fmt.Sprintf("Calendar Event: %s\n", link)
	}
	if err := a.Email.Send(ctx, subject, body); err != nil {
		logger.Warn("confirmation email failed, booking stands", "err", err)
	}
}
