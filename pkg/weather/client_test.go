package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Toulouse790/myfitherov3-sub000/pkg/cache"
	"github.com/Toulouse790/myfitherov3-sub000/pkg/models"
)

func TestClientCurrent(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":31.5,"relative_humidity_2m":78,"wind_speed_10m":12,"uv_index":7.2,"weather_code":0}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	env, err := client.Current(context.Background(), 43.6, 1.44)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}

	if env.Temperature != 31.5 {
		t.Errorf("Temperature = %v, want 31.5", env.Temperature)
	}
	if env.Humidity != 78 {
		t.Errorf("Humidity = %v, want 78", env.Humidity)
	}
	if env.UVIndex != 7.2 {
		t.Errorf("UVIndex = %v, want 7.2", env.UVIndex)
	}
	if want := HeatIndex(31.5, 78); env.HeatIndex != want {
		t.Errorf("HeatIndex = %v, want %v", env.HeatIndex, want)
	}
}

func TestClientCurrentEstimatesMissingUV(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":24,"relative_humidity_2m":60,"wind_speed_10m":8,"uv_index":0,"weather_code":2}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	client.now = func() time.Time { return time.Date(2026, 7, 14, 13, 0, 0, 0, time.UTC) }

	env, err := client.Current(context.Background(), 48.85, 2.35)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	if want := EstimateUVIndex(SkyClouds, 13); env.UVIndex != want {
		t.Errorf("UVIndex = %v, want estimated %v", env.UVIndex, want)
	}
}

func TestClientCurrentAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(server.URL, "key")
	if _, err := client.Current(context.Background(), 0, 0); err == nil {
		t.Fatal("Current() must fail on API error status")
	}
}

type countingProvider struct {
	calls int
	env   models.EnvironmentalData
	err   error
}

func (p *countingProvider) Current(_ context.Context, _, _ float64) (models.EnvironmentalData, error) {
	p.calls++
	return p.env, p.err
}

func TestCachedProviderServesFromStore(t *testing.T) {
	store := cache.NewObservationStore(t.TempDir(), time.Hour)
	upstream := &countingProvider{env: models.EnvironmentalData{Temperature: 28, Humidity: 65, HeatIndex: 28.7}}
	provider := NewCachedProvider(upstream, store)

	for i := 0; i < 3; i++ {
		env, err := provider.Current(context.Background(), 43.6, 1.44)
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if env.Temperature != 28 {
			t.Errorf("Temperature = %v, want 28", env.Temperature)
		}
	}

	if upstream.calls != 1 {
		t.Errorf("upstream called %d times, want 1", upstream.calls)
	}
}

func TestCachedProviderPropagatesFetchError(t *testing.T) {
	store := cache.NewObservationStore(t.TempDir(), time.Hour)
	upstream := &countingProvider{err: errors.New("network unreachable")}
	provider := NewCachedProvider(upstream, store)

	if _, err := provider.Current(context.Background(), 1, 2); err == nil {
		t.Fatal("Current() must propagate upstream errors")
	}
}

func TestEstimatorDeterministic(t *testing.T) {
	estimator := NewEstimator()
	fixed := time.Date(2026, 8, 1, 15, 0, 0, 0, time.UTC)
	estimator.now = func() time.Time { return fixed }

	a, err := estimator.Current(context.Background(), 43.6, 1.44)
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	b, _ := estimator.Current(context.Background(), 43.6, 1.44)

	if a != b {
		t.Errorf("estimator not deterministic: %+v vs %+v", a, b)
	}
	if a.Temperature < 15 || a.Temperature > 40 {
		t.Errorf("summer afternoon temperature = %v, want plausible range", a.Temperature)
	}
	if a.HeatIndex < a.Temperature {
		t.Errorf("HeatIndex = %v below temperature %v", a.HeatIndex, a.Temperature)
	}
}
