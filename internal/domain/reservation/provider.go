package reservation

import (
	"context"
	"time"

	"github.com/example/resy-agent/internal/domain/schedule"
)

// SearchRequest asks the platform for bookable slots at one venue inside a
// free window.
type SearchRequest struct {
	VenueID   string
	Window    schedule.Window
	PartySize int

	// SeatingTypes restricts results to these types when non-empty.
	SeatingTypes []string
}

// Upcoming is an existing reservation already held on the platform.
type Upcoming struct {
	VenueName string
	Day       time.Time
	PartySize int
}

// BookingProvider is the reservation platform. A single timeout-bounded
// attempt per call; no retries inside the provider.
type BookingProvider interface {
	Name() string
	Ping(ctx context.Context) error
	FindVenueID(ctx context.Context, restaurantName string) (string, error)
	FindSlots(ctx context.Context, req SearchRequest) ([]Slot, error)
	Book(ctx context.Context, slot Slot) (confirmation string, err error)
	Upcoming(ctx context.Context) ([]Upcoming, error)
}
