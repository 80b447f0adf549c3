package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"telegram-city-weather/internal/config"
	"telegram-city-weather/internal/domain/ports/adapter"
	"telegram-city-weather/internal/infra/metrics"
)

// Compile-time assurance this client satisfies the port
var _ adapter.TemperatureGateway = (*Client)(nil)

// Client talks to the OpenWeather current-weather endpoint. An empty API key
// is a supported configuration: every call then reports "no value" rather
// than an error.
type Client struct {
	apiKey string
	base   string
	client *http.Client
}

func NewClient(cfg config.WeatherConfig) *Client {
	return &Client{
		apiKey: cfg.APIKey,
		base:   cfg.BaseURL,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

func (c *Client) TemperatureCelsius(ctx context.Context, lat, lon float64) (_ *float64, err error) {
	if c.apiKey == "" {
		return nil, nil
	}

	start := time.Now()
	defer func() { metrics.ObserveGateway("openweather", "temperature", err, time.Since(start)) }()

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openweather http %d", resp.StatusCode)
	}

	var payload struct {
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err = json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	return &payload.Main.Temp, nil
}
