package openweather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/agri-advisor/internal/domain/agri"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/geo/1.0/direct", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Ernakulam,Kerala,IN", r.URL.Query().Get("q"))
		require.Equal(t, "key", r.URL.Query().Get("appid"))
		_, _ = w.Write([]byte(`[{"name":"Ernakulam","lat":9.9816,"lon":76.2999,"country":"IN","state":"Kerala"}]`))
	})
	mux.HandleFunc("/data/2.5/forecast", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "9.9816", r.URL.Query().Get("lat"))
		require.Equal(t, "metric", r.URL.Query().Get("units"))
		_, _ = w.Write([]byte(`{"list":[
			{"dt":1780300800,"main":{"temp":29.1,"temp_min":28.5,"temp_max":29.4,"humidity":78},"weather":[{"main":"Rain","description":"light rain"}],"wind":{"speed":3.2},"pop":0.64,"rain":{"3h":1.5}},
			{"dt":0,"main":{"temp":1}}
		]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestGeocode(t *testing.T) {
	client, err := NewClient("key", newTestServer(t).URL, 0)
	require.NoError(t, err)

	got, err := client.Geocode(context.Background(), "Ernakulam,Kerala,IN")
	require.NoError(t, err)
	require.Equal(t, []agri.Coordinates{{Lat: 9.9816, Lon: 76.2999}}, got)
}

func TestForecast(t *testing.T) {
	client, err := NewClient("key", newTestServer(t).URL, 0)
	require.NoError(t, err)

	got, err := client.Forecast(context.Background(), agri.Coordinates{Lat: 9.9816, Lon: 76.2999})
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, time.Unix(1780300800, 0).UTC(), got[0].Time)
	require.Equal(t, "Rain", got[0].Condition)
	require.Equal(t, 0.64, got[0].RainProbability)
	require.Equal(t, 1.5, got[0].RainMM)
	require.Equal(t, 78, got[0].Humidity)
}

func TestGeocodeNoMatches(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client, err := NewClient("key", srv.URL, 0)
	require.NoError(t, err)
	got, err := client.Geocode(context.Background(), "Atlantis,Kerala,IN")
	require.NoError(t, err)
	require.Empty(t, got)
}
