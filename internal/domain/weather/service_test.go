package weather

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
	apperrors "github.com/yanqian/agri-advisor/pkg/errors"
)

type stubLocator struct {
	coords agri.Coordinates
	err    error
}

func (l stubLocator) Resolve(context.Context, string, string) (agri.Coordinates, error) {
	return l.coords, l.err
}

type stubForecaster struct {
	samples []Sample
	err     error
	got     agri.Coordinates
}

func (f *stubForecaster) Forecast(_ context.Context, coords agri.Coordinates) ([]Sample, error) {
	f.got = coords
	return f.samples, f.err
}

func newServiceUnderTest(locator Locator, forecaster Forecaster) Service {
	return NewService(Config{}, locator, forecaster, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestForecastGroupsByLocalDay(t *testing.T) {
	base := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	forecaster := &stubForecaster{samples: []Sample{
		{Time: base.Add(21 * time.Hour), TempMinC: 24, TempMaxC: 26, Humidity: 90, RainProbability: 0.9, RainMM: 4.2, Condition: "Rain"},
		{Time: base.Add(3 * time.Hour), TempMinC: 27, TempMaxC: 31, Humidity: 70, RainProbability: 0.2, Condition: "Clouds"},
		{Time: base.Add(9 * time.Hour), TempMinC: 29, TempMaxC: 36, Humidity: 60, RainProbability: 0.1, Condition: "Clouds"},
		{Time: base.Add(19 * time.Hour), TempMinC: 25, TempMaxC: 27, Humidity: 80, RainProbability: 0.75, RainMM: 1.1, Condition: "Rain"},
	}}
	coords := agri.Coordinates{Lat: 9.98, Lon: 76.28}
	svc := newServiceUnderTest(stubLocator{coords: coords}, forecaster)

	got, err := svc.Forecast(context.Background(), "Ernakulam", "Kerala")
	require.NoError(t, err)
	require.Equal(t, coords, forecaster.got)

	want := []Day{
		{Date: "2026-06-01", MinTempC: 27, MaxTempC: 36, AvgHumidity: 65, MaxRainProbability: 0.2, Condition: "Clouds"},
		{Date: "2026-06-02", MinTempC: 24, MaxTempC: 27, AvgHumidity: 85, MaxRainProbability: 0.9, TotalRainMM: 5.3, Condition: "Rain"},
	}
	if diff := cmp.Diff(want, got.Days); diff != "" {
		t.Fatalf("days mismatch (-want +got):\n%s", diff)
	}
	require.Len(t, got.Alerts, 2)
	require.Contains(t, got.Alerts[0], "2026-06-01: high temperature")
	require.Contains(t, got.Alerts[1], "2026-06-02: rain likely (90%)")
}

func TestForecastErrors(t *testing.T) {
	_, err := newServiceUnderTest(stubLocator{}, &stubForecaster{}).Forecast(context.Background(), "", "Kerala")
	require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))

	_, err = newServiceUnderTest(stubLocator{}, nil).Forecast(context.Background(), "Ernakulam", "Kerala")
	require.True(t, apperrors.IsCode(err, apperrors.CodeConfiguration))

	notFound := apperrors.Wrap(apperrors.CodeNotFound, "no coordinates", nil)
	_, err = newServiceUnderTest(stubLocator{err: notFound}, &stubForecaster{}).Forecast(context.Background(), "Nowhere", "Kerala")
	require.True(t, apperrors.IsCode(err, apperrors.CodeNotFound))

	_, err = newServiceUnderTest(stubLocator{}, &stubForecaster{err: errors.New("401")}).Forecast(context.Background(), "Ernakulam", "Kerala")
	require.True(t, apperrors.IsCode(err, apperrors.CodeExternalService))
}
