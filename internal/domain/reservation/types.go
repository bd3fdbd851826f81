package reservation

import (
	"time"

	"github.com/example/resy-agent/internal/domain/schedule"
)

type Platform string

const (
	PlatformResy    Platform = "Resy"
	PlatformUnknown Platform = "Unknown"
)

// Preference is one ranked row from the preference sheet. PreferredDays and
// PreferredRange are optional per-restaurant overrides of the user defaults;
// nil means no override.
type Preference struct {
	Name     string
	VenueID  string // platform id; empty until discovered
	Platform Platform
	Rank     int

	PreferredDays  []time.Weekday
	PreferredRange *schedule.DayRange

	// RowIndex is the 1-based sheet row, kept for venue id write-back.
	RowIndex int
}

// Slot is one bookable offer returned by the platform. Token is the
// platform's config token required to book it; discarded at end of run.
type Slot struct {
	Preference  Preference
	Start       time.Time
	PartySize   int
	Token       string
	SeatingType string
}

type OutcomeKind int

const (
	OutcomeBooked OutcomeKind = iota
	OutcomeNoBookingMade
	OutcomeAlreadyReserved
	OutcomeFailed
)

// Outcome is the terminal result of one agent run. Exactly one of Slot/
// ConfirmationID (Booked), ExistingCount (AlreadyReserved) or Err (Failed)
// is meaningful for a given kind.
type Outcome struct {
	Kind           OutcomeKind
	Slot           Slot
	ConfirmationID string
	ExistingCount  int
	Err            error
}

func Booked(slot Slot, confirmation string) Outcome {
	return Outcome{Kind: OutcomeBooked, Slot: slot, ConfirmationID: confirmation}
}

func NoBookingMade() Outcome { return Outcome{Kind: OutcomeNoBookingMade} }

func AlreadyReserved(count int) Outcome {
	return Outcome{Kind: OutcomeAlreadyReserved, ExistingCount: count}
}

func Failed(err error) Outcome { return Outcome{Kind: OutcomeFailed, Err: err} }

func (o Outcome) String() string {
	switch o.Kind {
	case OutcomeBooked:
		return "booked"
	case OutcomeNoBookingMade:
		return "no booking made"
	case OutcomeAlreadyReserved:
		return "existing reservation found"
	case OutcomeFailed:
		return "failed"
	default:
		return "unknown"
	}
}
