package geo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"telegram-city-weather/internal/config"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
	"telegram-city-weather/internal/infra/metrics"
)

// Compile-time assurance this client satisfies the port
var _ adapter.CityLookupGateway = (*Client)(nil)

// Client talks to the GeoDB Cities API on RapidAPI. Stateless besides the
// credential headers; safe for concurrent use.
type Client struct {
	apiKey string
	host   string
	base   string
	client *http.Client
}

func NewClient(cfg config.GeoDBConfig) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("geodb api key empty")
	}
	return &Client{
		apiKey: cfg.APIKey,
		host:   cfg.Host,
		base:   cfg.BaseURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

// geoCity mirrors one entry of the provider's data array. Detail responses
// use "name", list responses use "city"; both are accepted.
type geoCity struct {
	ID         json.Number `json:"id"`
	Name       string      `json:"name"`
	City       string      `json:"city"`
	Country    string      `json:"country"`
	Region     string      `json:"region"`
	Population *int64      `json:"population"`
	Latitude   *float64    `json:"latitude"`
	Longitude  *float64    `json:"longitude"`
}

func (g geoCity) toModel() model.CityCandidate {
	name := g.City
	if name == "" {
		name = g.Name
	}
	c := model.CityCandidate{
		ID:         g.ID.String(),
		Name:       name,
		Country:    g.Country,
		Region:     g.Region,
		Population: g.Population,
	}
	// Coordinates only count when the provider reports both.
	if g.Latitude != nil && g.Longitude != nil {
		c.Latitude = g.Latitude
		c.Longitude = g.Longitude
	}
	return c
}

func (c *Client) Search(ctx context.Context, namePrefix string, limit int) ([]model.CityCandidate, error) {
	q := url.Values{}
	q.Set("namePrefix", namePrefix)
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "-population")
	q.Set("types", "CITY")
	return c.list(ctx, "search", "/cities?"+q.Encode())
}

func (c *Client) TopByPopulation(ctx context.Context, limit int) ([]model.CityCandidate, error) {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "-population")
	q.Set("types", "CITY")
	return c.list(ctx, "top", "/cities?"+q.Encode())
}

func (c *Client) Details(ctx context.Context, id string) (_ *model.CityCandidate, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGateway("geodb", "details", err, time.Since(start)) }()

	var payload struct {
		Data geoCity `json:"data"`
	}
	if err = c.get(ctx, "/cities/"+url.PathEscape(id), &payload); err != nil {
		return nil, err
	}
	city := payload.Data.toModel()
	return &city, nil
}

func (c *Client) list(ctx context.Context, op, path string) (out []model.CityCandidate, err error) {
	start := time.Now()
	defer func() { metrics.ObserveGateway("geodb", op, err, time.Since(start)) }()

	var payload struct {
		Data []geoCity `json:"data"`
	}
	if err = c.get(ctx, path, &payload); err != nil {
		return nil, err
	}
	out = make([]model.CityCandidate, 0, len(payload.Data))
	for _, g := range payload.Data {
		out = append(out, g.toModel())
	}
	return out, nil
}

func (c *Client) get(ctx context.Context, path string, v interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("X-RapidAPI-Key", c.apiKey)
	req.Header.Set("X-RapidAPI-Host", c.host)

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("geodb http %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
