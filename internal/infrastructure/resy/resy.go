// Package resy is a minimal Resy API client. It requires an API key and auth
// token captured from an authenticated browser session.
package resy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/example/resy-agent/internal/domain/reservation"
)

const defaultBaseURL = "https://api.resy.com"
const defaultUA = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/114.0.0.0 Safari/537.36"

type Config struct {
	APIKey          string
	AuthToken       string
	PaymentMethodID string

	// Venue search bias point.
	Latitude  float64
	Longitude float64

	// BaseURL overrides the API host (tests).
	BaseURL string
	Timeout time.Duration
}

type Client struct {
	hc   *http.Client
	cfg  Config
	base string
}

func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	base := cfg.BaseURL
	if base == "" {
		base = defaultBaseURL
	}
	return &Client{
		hc:   &http.Client{Timeout: timeout},
		cfg:  cfg,
		base: strings.TrimRight(base, "/"),
	}
}

func (c *Client) Name() string { return "resy" }

func (c *Client) Ping(ctx context.Context) error {
	status, body, err := c.do(ctx, http.MethodGet, "/2/user", "", nil, nil)
	if err != nil {
		return reservation.RemoteErr(c.Name(), err)
	}
	if status >= 400 {
		var r struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(body, &r)
		if r.Message != "" {
			return reservation.RemoteErr(c.Name(), fmt.Errorf("ping failed: %s (status=%d)", r.Message, status))
		}
		return reservation.RemoteErr(c.Name(), fmt.Errorf("ping failed (status=%d)", status))
	}
	return nil
}

// FindVenueID searches the platform for a restaurant by name and returns its
// venue id, or ErrVenueLookup when nothing matches.
func (c *Client) FindVenueID(ctx context.Context, restaurantName string) (string, error) {
	payload := map[string]any{
		"query": restaurantName,
		"types": []string{"venue"},
		"geo": map[string]any{
			"latitude":  c.cfg.Latitude,
			"longitude": c.cfg.Longitude,
			"radius":    32200,
		},
	}
	b, _ := json.Marshal(payload)
	status, body, err := c.do(ctx, http.MethodPost, "/3/venuesearch/search", "application/json", nil, b)
	if err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if status >= 400 {
		return "", reservation.RemoteErr(c.Name(), fmt.Errorf("venue search failed (status=%d)", status))
	}
	var res struct {
		Search struct {
			Hits []struct {
				ObjectID string `json:"objectID"`
			} `json:"hits"`
		} `json:"search"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if len(res.Search.Hits) == 0 || res.Search.Hits[0].ObjectID == "" {
		return "", fmt.Errorf("%w: no venue named %q", reservation.ErrVenueLookup, restaurantName)
	}
	return res.Search.Hits[0].ObjectID, nil
}

// Upcoming lists the user's upcoming reservations on the platform.
func (c *Client) Upcoming(ctx context.Context) ([]reservation.Upcoming, error) {
	status, body, err := c.do(ctx, http.MethodGet, "/3/user/reservations", "", map[string]string{"type": "upcoming"}, nil)
	if err != nil {
		return nil, reservation.RemoteErr(c.Name(), err)
	}
	if status >= 400 {
		return nil, reservation.RemoteErr(c.Name(), fmt.Errorf("list reservations failed (status=%d)", status))
	}
	var res struct {
		Reservations []struct {
			Venue struct {
				Name string `json:"name"`
			} `json:"venue"`
			Day      string `json:"day"`
			NumSeats int    `json:"num_seats"`
		} `json:"reservations"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, reservation.RemoteErr(c.Name(), err)
	}
	out := make([]reservation.Upcoming, 0, len(res.Reservations))
	for _, r := range res.Reservations {
		day, err := time.Parse("2006-01-02", r.Day)
		if err != nil {
			continue
		}
		out = append(out, reservation.Upcoming{
			VenueName: r.Venue.Name,
			Day:       day,
			PartySize: r.NumSeats,
		})
	}
	return out, nil
}

type findResponse struct {
	Results struct {
		Venues []struct {
			Slots []struct {
				Date struct {
					Start string `json:"start"`
				} `json:"date"`
				Config struct {
					Type  string `json:"type"`
					Token string `json:"token"`
				} `json:"config"`
			} `json:"slots"`
		} `json:"venues"`
	} `json:"results"`
}

// FindSlots returns the venue's bookable slots that fall inside the request
// window [Start, End), optionally filtered to the given seating types. Slot
// timestamps from the API are venue-local; they are interpreted in the
// window's location.
func (c *Client) FindSlots(ctx context.Context, req reservation.SearchRequest) ([]reservation.Slot, error) {
	if req.VenueID == "" {
		return nil, fmt.Errorf("%w: empty venue id", reservation.ErrVenueLookup)
	}
	if req.PartySize < 1 {
		return nil, fmt.Errorf("party size must be >= 1")
	}

	params := map[string]string{
		"venue_id":   req.VenueID,
		"party_size": strconv.Itoa(req.PartySize),
		"day":        req.Window.Start.Format("2006-01-02"),
		// Deprecated but still required by the endpoint.
		"lat":  "0",
		"long": "0",
	}
	status, body, err := c.do(ctx, http.MethodGet, "/4/find", "", params, nil)
	if err != nil {
		return nil, reservation.RemoteErr(c.Name(), err)
	}
	if status != http.StatusOK {
		return nil, reservation.RemoteErr(c.Name(), fmt.Errorf("find slots failed (status=%d)", status))
	}
	var res findResponse
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, reservation.RemoteErr(c.Name(), err)
	}
	if len(res.Results.Venues) == 0 {
		return nil, nil
	}

	loc := req.Window.Start.Location()
	var out []reservation.Slot
	for _, s := range res.Results.Venues[0].Slots {
		if s.Config.Token == "" {
			continue
		}
		start, err := time.ParseInLocation("2006-01-02 15:04:05", s.Date.Start, loc)
		if err != nil {
			continue
		}
		if start.Before(req.Window.Start) || !start.Before(req.Window.End) {
			continue
		}
		if len(req.SeatingTypes) > 0 && !containsFold(req.SeatingTypes, s.Config.Type) {
			continue
		}
		out = append(out, reservation.Slot{
			Start:       start,
			PartySize:   req.PartySize,
			Token:       s.Config.Token,
			SeatingType: s.Config.Type,
		})
	}
	return out, nil
}

type detailsResponse struct {
	BookToken struct {
		Value string `json:"value"`
	} `json:"book_token"`
	User struct {
		PaymentMethods []struct {
			ID int64 `json:"id"`
		} `json:"payment_methods"`
	} `json:"user"`
}

// Book issues one booking request for the slot: config token -> book token
// -> book. A rejection (slot gone, payment refused) comes back as an error;
// the caller decides whether to move on to another candidate.
func (c *Client) Book(ctx context.Context, slot reservation.Slot) (string, error) {
	if slot.Token == "" {
		return "", fmt.Errorf("slot has no config token")
	}

	details := struct {
		ConfigID  string `json:"config_id"`
		Day       string `json:"day"`
		PartySize int    `json:"party_size"`
	}{
		ConfigID:  slot.Token,
		Day:       slot.Start.Format("2006-01-02"),
		PartySize: slot.PartySize,
	}
	db, _ := json.Marshal(details)
	status, body, err := c.do(ctx, http.MethodPost, "/3/details", "application/json", nil, db)
	if err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if status >= 400 {
		return "", reservation.RemoteErr(c.Name(), fmt.Errorf("booking details failed (status=%d)", status))
	}
	var dr detailsResponse
	if err := json.Unmarshal(body, &dr); err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if dr.BookToken.Value == "" {
		return "", reservation.RemoteErr(c.Name(), fmt.Errorf("no book token in details response"))
	}

	form := url.Values{}
	form.Set("book_token", dr.BookToken.Value)
	paymentID := c.cfg.PaymentMethodID
	if paymentID == "" && len(dr.User.PaymentMethods) > 0 {
		paymentID = strconv.FormatInt(dr.User.PaymentMethods[0].ID, 10)
	}
	if paymentID != "" {
		pb, _ := json.Marshal(struct {
			ID string `json:"id"`
		}{ID: paymentID})
		form.Set("struct_payment_method", string(pb))
	}
	form.Set("venue_marketing_opt_in", "0")

	status, body, err = c.do(ctx, http.MethodPost, "/3/book", "application/x-www-form-urlencoded", nil, []byte(form.Encode()))
	if err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if status >= 400 {
		return "", reservation.RemoteErr(c.Name(), fmt.Errorf("book failed (status=%d): %s", status, string(body)))
	}
	var br struct {
		ResyToken string `json:"resy_token"`
	}
	if err := json.Unmarshal(body, &br); err != nil {
		return "", reservation.RemoteErr(c.Name(), err)
	}
	if br.ResyToken == "" {
		return "", reservation.RemoteErr(c.Name(), fmt.Errorf("booking returned no confirmation token"))
	}
	return br.ResyToken, nil
}

func (c *Client) do(ctx context.Context, method, path, contentType string, query map[string]string, body []byte) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.base+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("user-agent", defaultUA)
	req.Header.Set("origin", "https://resy.com")
	req.Header.Set("referrer", "https://resy.com")
	req.Header.Set("x-origin", "https://resy.com")
	req.Header.Set("cache-control", "no-cache")
	if contentType != "" {
		req.Header.Set("content-type", contentType)
	}
	req.Header.Set("authorization", fmt.Sprintf(`ResyAPI api_key="%s"`, c.cfg.APIKey))
	req.Header.Set("x-resy-auth-token", c.cfg.AuthToken)
	req.Header.Set("x-resy-universal-auth", c.cfg.AuthToken)

	if len(query) > 0 {
		q := req.URL.Query()
		for k, v := range query {
			q.Add(k, v)
		}
		req.URL.RawQuery = q.Encode()
	}

	res, err := c.hc.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer res.Body.Close()
	b, err := io.ReadAll(res.Body)
	if err != nil {
		return res.StatusCode, nil, err
	}
	return res.StatusCode, b, nil
}

func containsFold(haystack []string, needle string) bool {
	for _, h := range haystack {
		if strings.EqualFold(strings.TrimSpace(h), needle) {
			return true
		}
	}
	return false
}
