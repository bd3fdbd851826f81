// Package gcal reads busy intervals from and writes events to Google
// Calendar.
package gcal

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/api/calendar/v3"

	"github.com/example/resy-agent/internal/domain/reservation"
	"github.com/example/resy-agent/internal/domain/schedule"
)

type Client struct {
	svc    *calendar.Service
	logger *slog.Logger
}

func New(svc *calendar.Service, logger *slog.Logger) *Client {
	return &Client{svc: svc, logger: logger}
}

// BusyIntervals queries freebusy across the given calendars for [from, to)
// and returns the raw intervals, unmerged.
func (c *Client) BusyIntervals(ctx context.Context, calendarIDs []string, from, to time.Time) ([]schedule.Window, error) {
	items := make([]*calendar.FreeBusyRequestItem, 0, len(calendarIDs))
	for _, id := range calendarIDs {
		items = append(items, &calendar.FreeBusyRequestItem{Id: id})
	}
	res, err := c.svc.Freebusy.Query(&calendar.FreeBusyRequest{
		TimeMin: from.Format(time.RFC3339),
		TimeMax: to.Format(time.RFC3339),
		Items:   items,
	}).Context(ctx).Do()
	if err != nil {
		return nil, reservation.RemoteErr("calendar", err)
	}

	var busy []schedule.Window
	for _, id := range calendarIDs {
		cal, ok := res.Calendars[id]
		if !ok {
			c.logger.Warn("calendar missing from freebusy response", "calendar_id", id)
			continue
		}
		for _, p := range cal.Busy {
			start, err := time.Parse(time.RFC3339, p.Start)
			if err != nil {
				continue
			}
			end, err := time.Parse(time.RFC3339, p.End)
			if err != nil {
				continue
			}
			busy = append(busy, schedule.Window{Start: start, End: end})
		}
	}
	c.logger.Debug("fetched busy intervals", "count", len(busy), "calendars", len(calendarIDs))
	return busy, nil
}

// InsertEvent creates one event and returns its htmlLink.
func (c *Client) InsertEvent(ctx context.Context, calendarID, summary, location, description string, start, end time.Time) (string, error) {
	ev := &calendar.Event{
		Summary:     summary,
		Location:    location,
		Description: description,
		Start:       &calendar.EventDateTime{DateTime: start.Format(time.RFC3339)},
		End:         &calendar.EventDateTime{DateTime: end.Format(time.RFC3339)},
	}
	created, err := c.svc.Events.Insert(calendarID, ev).Context(ctx).Do()
	if err != nil {
		return "", reservation.RemoteErr("calendar", err)
	}
	c.logger.Info("calendar event created", "link", created.HtmlLink)
	return created.HtmlLink, nil
}
