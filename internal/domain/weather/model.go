package weather

import (
	"context"
	"time"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

// Sample is one timestamped forecast point.
type Sample struct {
	Time            time.Time
	TempC           float64
	TempMinC        float64
	TempMaxC        float64
	Humidity        int
	RainProbability float64
	RainMM          float64
	WindSpeedMS     float64
	Condition       string
}

// Forecaster fetches forecast samples for a point.
type Forecaster interface {
	Forecast(ctx context.Context, coords agri.Coordinates) ([]Sample, error)
}

// Locator resolves a district to coordinates.
type Locator interface {
	Resolve(ctx context.Context, district, state string) (agri.Coordinates, error)
}

// Config drives the weather service.
type Config struct {
	// HeavyRainProbability marks days that get a spraying alert.
	HeavyRainProbability float64
	// HeatAlertC marks days that get an irrigation alert.
	HeatAlertC float64
}

// Day summarizes one local calendar day.
type Day struct {
	Date               string  `json:"date"`
	MinTempC           float64 `json:"minTempC"`
	MaxTempC           float64 `json:"maxTempC"`
	AvgHumidity        int     `json:"avgHumidity"`
	MaxRainProbability float64 `json:"maxRainProbability"`
	TotalRainMM        float64 `json:"totalRainMm"`
	Condition          string  `json:"condition"`
}

// Forecast is the response for a district.
type Forecast struct {
	District    string           `json:"district"`
	State       string           `json:"state"`
	Coordinates agri.Coordinates `json:"coordinates"`
	Days        []Day            `json:"days"`
	Alerts      []string         `json:"alerts,omitempty"`
}
