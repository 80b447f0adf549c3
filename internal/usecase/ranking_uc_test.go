//go:build !integration

package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
)

func topPool() []model.CityCandidate {
	return []model.CityCandidate{
		{ID: "1", Name: "Tokyo", Country: "Japan", Population: ptrI(37400068), Latitude: ptrF(35.68), Longitude: ptrF(139.69)},
		{ID: "2", Name: "Delhi", Country: "India", Population: ptrI(28514000), Latitude: ptrF(28.70), Longitude: ptrF(77.10)},
		{ID: "3", Name: "Shanghai", Country: "China", Population: ptrI(25582000)}, // no coordinates
		{ID: "4", Name: "Sao Paulo", Country: "Brazil", Population: ptrI(21650000), Latitude: ptrF(-23.55), Longitude: ptrF(-46.63)},
		{ID: "5", Name: "Mexico City", Country: "Mexico", Population: ptrI(21581000)}, // no coordinates
	}
}

func TestRankingUseCase_Top(t *testing.T) {
	ctx := context.Background()

	t.Run("population mode trusts the provider order and skips weather", func(t *testing.T) {
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			return topPool(), nil
		}}
		weather := &fakeWeather{}
		uc := NewRankingUseCase(lookup, weather, 2, testLogger())

		entries, err := uc.Top(ctx, model.RatingPopulation, 3)
		if err != nil {
			t.Fatalf("Top failed: %v", err)
		}
		if len(entries) != 3 {
			t.Fatalf("expected 3 entries, got %d", len(entries))
		}
		for i, want := range []string{"Tokyo", "Delhi", "Shanghai"} {
			if entries[i].City.Name != want {
				t.Fatalf("entry %d: expected %s, got %s", i, want, entries[i].City.Name)
			}
		}
		if entries[0].Population != 37400068 {
			t.Fatalf("expected population sort key, got %d", entries[0].Population)
		}
		if weather.Calls() != 0 {
			t.Fatalf("population mode must not fetch temperatures, got %d calls", weather.Calls())
		}
	})

	t.Run("temp mode excludes missing coordinates and failed fetches", func(t *testing.T) {
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			return topPool(), nil
		}}
		weather := &fakeWeather{TempFunc: func(ctx context.Context, lat, lon float64) (*float64, error) {
			switch {
			case lat > 30: // Tokyo
				return ptrF(21.5), nil
			case lat > 0: // Delhi fails
				return nil, errors.New("openweather 502")
			default: // Sao Paulo
				return ptrF(27.1), nil
			}
		}}
		uc := NewRankingUseCase(lookup, weather, 2, testLogger())

		entries, err := uc.Top(ctx, model.RatingTemp, 5)
		if err != nil {
			t.Fatalf("Top failed: %v", err)
		}
		if len(entries) != 2 {
			t.Fatalf("expected exactly 2 survivors, got %d", len(entries))
		}
		if entries[0].City.Name != "Sao Paulo" || entries[1].City.Name != "Tokyo" {
			t.Fatalf("expected warmest first, got %s then %s", entries[0].City.Name, entries[1].City.Name)
		}
		if entries[0].TemperatureC != 27.1 {
			t.Fatalf("expected temperature sort key, got %v", entries[0].TemperatureC)
		}
	})

	t.Run("temp mode keeps provider order on equal temperatures", func(t *testing.T) {
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			return []model.CityCandidate{
				{ID: "1", Name: "A", Latitude: ptrF(1), Longitude: ptrF(1)},
				{ID: "2", Name: "B", Latitude: ptrF(2), Longitude: ptrF(2)},
				{ID: "3", Name: "C", Latitude: ptrF(3), Longitude: ptrF(3)},
			}, nil
		}}
		weather := &fakeWeather{TempFunc: func(ctx context.Context, lat, lon float64) (*float64, error) {
			return ptrF(10.0), nil
		}}
		uc := NewRankingUseCase(lookup, weather, 3, testLogger())

		entries, err := uc.Top(ctx, model.RatingTemp, 3)
		if err != nil {
			t.Fatalf("Top failed: %v", err)
		}
		for i, want := range []string{"A", "B", "C"} {
			if entries[i].City.Name != want {
				t.Fatalf("tie order broken at %d: got %s", i, entries[i].City.Name)
			}
		}
	})

	t.Run("temp mode overfetches the pool and truncates the result", func(t *testing.T) {
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			cities := make([]model.CityCandidate, limit)
			for i := range cities {
				cities[i] = model.CityCandidate{
					ID:        fmt.Sprintf("%d", i+1),
					Name:      fmt.Sprintf("City-%d", i+1),
					Latitude:  ptrF(float64(i)),
					Longitude: ptrF(float64(i)),
				}
			}
			return cities, nil
		}}
		weather := &fakeWeather{TempFunc: func(ctx context.Context, lat, lon float64) (*float64, error) {
			return ptrF(lat), nil
		}}
		uc := NewRankingUseCase(lookup, weather, 4, testLogger())

		entries, err := uc.Top(ctx, model.RatingTemp, 5)
		if err != nil {
			t.Fatalf("Top failed: %v", err)
		}
		if lookup.TopLimit() != 10 {
			t.Fatalf("expected pool fetch of 10, got %d", lookup.TopLimit())
		}
		if len(entries) != 5 {
			t.Fatalf("expected truncation to 5, got %d", len(entries))
		}
	})

	t.Run("zero survivors is reported distinctly from no cities", func(t *testing.T) {
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			return []model.CityCandidate{{ID: "1", Name: "Tokyo"}}, nil
		}}
		uc := NewRankingUseCase(lookup, &fakeWeather{}, 2, testLogger())

		_, err := uc.Top(ctx, model.RatingTemp, 5)
		if !errors.Is(err, domain.ErrNoTemperatureData) {
			t.Fatalf("expected ErrNoTemperatureData, got %v", err)
		}
	})

	t.Run("pool fetch failure is fatal to the whole ranking", func(t *testing.T) {
		provErr := errors.New("geodb down")
		lookup := &fakeLookup{TopFunc: func(ctx context.Context, limit int) ([]model.CityCandidate, error) {
			return nil, provErr
		}}
		uc := NewRankingUseCase(lookup, &fakeWeather{}, 2, testLogger())

		_, err := uc.Top(ctx, model.RatingPopulation, 5)
		if !errors.Is(err, provErr) {
			t.Fatalf("expected wrapped pool error, got %v", err)
		}
	})
}
