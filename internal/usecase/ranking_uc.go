package usecase

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
)

// Compile-time check
var _ RankingUseCase = (*rankingUC)(nil)

type RankingUseCase interface {
	// Top produces the top-count cities ordered by the given mode. In
	// population mode the provider's order is trusted as is; in temp mode
	// entries are re-sorted by current temperature, warmest first.
	Top(ctx context.Context, mode model.RatingType, count int) ([]model.RankedEntry, error)
}

type rankingUC struct {
	lookup      adapter.CityLookupGateway
	weather     adapter.TemperatureGateway
	concurrency int
	log         *zerolog.Logger
}

func NewRankingUseCase(lookup adapter.CityLookupGateway, weather adapter.TemperatureGateway, concurrency int, log *zerolog.Logger) *rankingUC {
	if concurrency <= 0 {
		concurrency = 4
	}
	return &rankingUC{lookup: lookup, weather: weather, concurrency: concurrency, log: log}
}

func (u *rankingUC) Top(ctx context.Context, mode model.RatingType, count int) ([]model.RankedEntry, error) {
	if count <= 0 {
		return nil, domain.ErrInvalidArgument
	}

	pool := count
	if mode == model.RatingTemp {
		// Overfetch so entries dropped for missing temperature data can
		// still fill the requested count.
		pool = count * 2
		if pool > model.MaxCityLimit {
			pool = model.MaxCityLimit
		}
		if pool < count {
			pool = count
		}
	}

	cities, err := u.lookup.TopByPopulation(ctx, pool)
	if err != nil {
		// The pool fetch is fatal to the whole ranking: no partial pool.
		return nil, fmt.Errorf("top cities: %w", err)
	}
	if len(cities) == 0 {
		return nil, domain.ErrCityNotFound
	}

	if mode != model.RatingTemp {
		if len(cities) > count {
			cities = cities[:count]
		}
		out := make([]model.RankedEntry, 0, len(cities))
		for _, c := range cities {
			e := model.RankedEntry{City: c}
			if c.Population != nil {
				e.Population = *c.Population
			}
			out = append(out, e)
		}
		return out, nil
	}

	return u.rankByTemperature(ctx, cities, count)
}

func (u *rankingUC) rankByTemperature(ctx context.Context, cities []model.CityCandidate, count int) ([]model.RankedEntry, error) {
	type slot struct {
		temp float64
		ok   bool
	}
	// Index-addressed so the workers never contend on a shared collection.
	slots := make([]slot, len(cities))

	var wg sync.WaitGroup
	sem := make(chan struct{}, u.concurrency)
	for i, c := range cities {
		if !c.HasCoordinates() {
			continue
		}
		wg.Add(1)
		go func(i int, c model.CityCandidate) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			v, err := u.weather.TemperatureCelsius(ctx, *c.Latitude, *c.Longitude)
			if err != nil {
				u.log.Debug().Err(err).Str("city", c.Name).Msg("temperature fetch failed, entry excluded")
				return
			}
			if v == nil {
				return
			}
			slots[i] = slot{temp: *v, ok: true}
		}(i, c)
	}
	wg.Wait()

	out := make([]model.RankedEntry, 0, len(cities))
	for i, c := range cities {
		if !slots[i].ok {
			continue
		}
		out = append(out, model.RankedEntry{City: c, TemperatureC: slots[i].temp})
	}
	if len(out) == 0 {
		return nil, domain.ErrNoTemperatureData
	}

	// Stable: ties keep the provider's original relative order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].TemperatureC > out[j].TemperatureC })
	if len(out) > count {
		out = out[:count]
	}
	return out, nil
}
