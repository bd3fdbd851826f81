// Package gsheets reads the ranked restaurant list from a Google Sheet and
// writes discovered venue ids back to it.
//
// Sheet layout (row 1 is the header):
//
//	A: restaurant name (required)
//	B: venue id
//	C: platform
//	D: rank (defaults to row order)
//	E: preferred days, comma-separated weekday names
//	F: preferred time range, HH:MM-HH:MM
package gsheets

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"google.golang.org/api/sheets/v4"

	"github.com/example/resy-agent/internal/domain/reservation"
	"github.com/example/resy-agent/internal/domain/schedule"
)

const readRange = "A:F"

type Store struct {
	svc           *sheets.Service
	logger        *slog.Logger
	spreadsheetID string
}

func New(svc *sheets.Service, logger *slog.Logger, spreadsheetID string) *Store {
	return &Store{svc: svc, logger: logger, spreadsheetID: spreadsheetID}
}

// Preferences reads all restaurant rows. Rows with a blank name are skipped;
// malformed optional columns fall back to defaults with a warning rather
// than failing the run.
func (s *Store) Preferences(ctx context.Context) ([]reservation.Preference, error) {
	res, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, reservation.RemoteErr("sheets", err)
	}
	if len(res.Values) < 2 {
		return nil, nil
	}

	var out []reservation.Preference
	for i, row := range res.Values[1:] {
		rowIndex := i + 2 // 1-based, plus header
		name := cell(row, 0)
		if name == "" {
			continue
		}
		p := reservation.Preference{
			Name:     name,
			VenueID:  cell(row, 1),
			Platform: reservation.Platform(cell(row, 2)),
			Rank:     i + 1,
			RowIndex: rowIndex,
		}
		if v := cell(row, 3); v != "" {
			rank, err := strconv.Atoi(v)
			if err != nil || rank < 1 {
				s.logger.Warn("ignoring invalid rank", "row", rowIndex, "value", v)
			} else {
				p.Rank = rank
			}
		}
		if v := cell(row, 4); v != "" {
			days, err := schedule.ParseWeekdays(v)
			if err != nil {
				s.logger.Warn("ignoring invalid preferred days", "row", rowIndex, "value", v, "err", err)
			} else {
				p.PreferredDays = days
			}
		}
		if v := cell(row, 5); v != "" {
			r, err := schedule.ParseDayRange(v)
			if err != nil {
				s.logger.Warn("ignoring invalid time range", "row", rowIndex, "value", v, "err", err)
			} else {
				p.PreferredRange = &r
			}
		}
		out = append(out, p)
	}
	return out, nil
}

// SaveVenueID writes the discovered venue id and platform into columns B:C
// of the row the preference came from.
func (s *Store) SaveVenueID(ctx context.Context, rowIndex int, venueID string, platform reservation.Platform) error {
	vr := &sheets.ValueRange{
		Values: [][]any{{venueID, string(platform)}},
	}
	_, err := s.svc.Spreadsheets.Values.
		Update(s.spreadsheetID, fmt.Sprintf("B%d:C%d", rowIndex, rowIndex), vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).Do()
	if err != nil {
		return reservation.RemoteErr("sheets", err)
	}
	s.logger.Info("sheet row updated", "row", rowIndex, "venue_id", venueID, "platform", platform)
	return nil
}

func cell(row []any, i int) string {
	if i >= len(row) {
		return ""
	}
	s, ok := row[i].(string)
	if !ok {
		return strings.TrimSpace(fmt.Sprint(row[i]))
	}
	return strings.TrimSpace(s)
}
