package weather

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"
	"time"

	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

// Service returns daily forecasts for a district.
type Service interface {
	Forecast(ctx context.Context, district, state string) (Forecast, error)
}

type service struct {
	cfg        Config
	locator    Locator
	forecaster Forecaster
	logger     *slog.Logger
	timezone   *time.Location
}

// NewService is a wire provider for the weather domain.
func NewService(cfg Config, locator Locator, forecaster Forecaster, logger *slog.Logger) Service {
	if cfg.HeavyRainProbability <= 0 {
		cfg.HeavyRainProbability = 0.7
	}
	if cfg.HeatAlertC <= 0 {
		cfg.HeatAlertC = 35
	}
	return &service{
		cfg:        cfg,
		locator:    locator,
		forecaster: forecaster,
		logger:     logger.With("component", "weather.service"),
		timezone:   time.FixedZone("Asia/Kolkata", 5*60*60+30*60),
	}
}

func (s *service) Forecast(ctx context.Context, district, state string) (Forecast, error) {
	district = strings.TrimSpace(district)
	state = strings.TrimSpace(state)
	if district == "" || state == "" {
		return Forecast{}, apperrors.Wrap(apperrors.CodeInvalidInput, "district and state are required", nil)
	}
	if s.forecaster == nil {
		return Forecast{}, apperrors.Wrap(apperrors.CodeConfiguration, "weather provider is not configured", nil)
	}

	coords, err := s.locator.Resolve(ctx, district, state)
	if err != nil {
		return Forecast{}, err
	}
	samples, err := s.forecaster.Forecast(ctx, coords)
	if err != nil {
		return Forecast{}, apperrors.Wrap(apperrors.CodeExternalService, "weather forecast request failed", err)
	}
	s.logger.Info("weather forecast fetched", "district", district, "state", state, "samples", len(samples))

	days := groupByDay(samples, s.timezone)
	return Forecast{
		District:    district,
		State:       state,
		Coordinates: coords,
		Days:        days,
		Alerts:      s.alerts(days),
	}, nil
}

func (s *service) alerts(days []Day) []string {
	var alerts []string
	for _, d := range days {
		if d.MaxRainProbability >= s.cfg.HeavyRainProbability {
			alerts = append(alerts, fmt.Sprintf("%s: rain likely (%.0f%%), postpone spraying and fertilizer application", d.Date, d.MaxRainProbability*100))
		}
		if d.MaxTempC >= s.cfg.HeatAlertC {
			alerts = append(alerts, fmt.Sprintf("%s: high temperature %.1f°C, irrigate in the early morning or evening", d.Date, d.MaxTempC))
		}
	}
	return alerts
}

type dayAccumulator struct {
	day         Day
	humiditySum int
	count       int
	conditions  map[string]int
	order       []string
}

func groupByDay(samples []Sample, loc *time.Location) []Day {
	sorted := append([]Sample(nil), samples...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Time.Before(sorted[j].Time)
	})

	var (
		acc   []*dayAccumulator
		byKey = make(map[string]*dayAccumulator)
	)
	for _, sample := range sorted {
		key := sample.Time.In(loc).Format("2006-01-02")
		a, ok := byKey[key]
		if !ok {
			a = &dayAccumulator{
				day:        Day{Date: key, MinTempC: math.Inf(1), MaxTempC: math.Inf(-1)},
				conditions: make(map[string]int),
			}
			byKey[key] = a
			acc = append(acc, a)
		}
		lo, hi := sample.TempMinC, sample.TempMaxC
		if lo == 0 && hi == 0 {
			lo, hi = sample.TempC, sample.TempC
		}
		a.day.MinTempC = math.Min(a.day.MinTempC, lo)
		a.day.MaxTempC = math.Max(a.day.MaxTempC, hi)
		a.day.MaxRainProbability = math.Max(a.day.MaxRainProbability, sample.RainProbability)
		a.day.TotalRainMM += sample.RainMM
		a.humiditySum += sample.Humidity
		a.count++
		if cond := strings.TrimSpace(sample.Condition); cond != "" {
			if a.conditions[cond] == 0 {
				a.order = append(a.order, cond)
			}
			a.conditions[cond]++
		}
	}

	days := make([]Day, 0, len(acc))
	for _, a := range acc {
		a.day.AvgHumidity = a.humiditySum / a.count
		a.day.TotalRainMM = math.Round(a.day.TotalRainMM*10) / 10
		a.day.Condition = dominant(a.conditions, a.order)
		days = append(days, a.day)
	}
	return days
}

// dominant picks the most frequent condition; ties go to the earliest seen.
func dominant(counts map[string]int, order []string) string {
	best, bestCount := "", 0
	for _, cond := range order {
		if counts[cond] > bestCount {
			best, bestCount = cond, counts[cond]
		}
	}
	return best
}
