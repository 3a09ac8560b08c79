package openweather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	"github.com/yanqian/agri-advisor/internal/domain/weather"
)

const defaultBaseURL = "https://api.openweathermap.org"

// Client talks to the OpenWeatherMap geocoding and forecast APIs.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(apiKey, baseURL string, timeout time.Duration) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("openweather api key cannot be empty")
	}
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// Geocode resolves a "district,state,country" query.
func (c *Client) Geocode(ctx context.Context, query string) ([]agri.Coordinates, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("limit", "1")

	var raw []geoMatch
	if err := c.get(ctx, "/geo/1.0/direct", params, &raw); err != nil {
		return nil, err
	}
	out := make([]agri.Coordinates, 0, len(raw))
	for _, m := range raw {
		out = append(out, agri.Coordinates{Lat: m.Lat, Lon: m.Lon})
	}
	return out, nil
}

// Forecast returns the 5 day, 3 hour forecast for a point.
func (c *Client) Forecast(ctx context.Context, coords agri.Coordinates) ([]weather.Sample, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(coords.Lat, 'f', 4, 64))
	params.Set("lon", strconv.FormatFloat(coords.Lon, 'f', 4, 64))
	params.Set("units", "metric")

	var raw forecastResponse
	if err := c.get(ctx, "/data/2.5/forecast", params, &raw); err != nil {
		return nil, err
	}
	return normalizeForecast(raw), nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("appid", c.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build weather request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("weather request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode weather response: %w", err)
	}
	return nil
}

type geoMatch struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state"`
}

type forecastResponse struct {
	List []forecastEntry `json:"list"`
}

type forecastEntry struct {
	Dt   int64 `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		TempMin  float64 `json:"temp_min"`
		TempMax  float64 `json:"temp_max"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Pop  float64 `json:"pop"`
	Rain struct {
		ThreeHour float64 `json:"3h"`
	} `json:"rain"`
}

func normalizeForecast(raw forecastResponse) []weather.Sample {
	samples := make([]weather.Sample, 0, len(raw.List))
	for _, e := range raw.List {
		if e.Dt == 0 {
			continue
		}
		sample := weather.Sample{
			Time:            time.Unix(e.Dt, 0).UTC(),
			TempC:           e.Main.Temp,
			TempMinC:        e.Main.TempMin,
			TempMaxC:        e.Main.TempMax,
			Humidity:        e.Main.Humidity,
			RainProbability: e.Pop,
			RainMM:          e.Rain.ThreeHour,
			WindSpeedMS:     e.Wind.Speed,
		}
		if len(e.Weather) > 0 {
			sample.Condition = e.Weather[0].Main
		}
		samples = append(samples, sample)
	}
	return samples
}

var _ weather.Forecaster = (*Client)(nil)
