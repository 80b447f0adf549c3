package usecase

import (
	"context"

	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
)

// Compile-time check
var _ EnrichUseCase = (*enrichUC)(nil)

// EnrichUseCase augments a resolved city with provider detail and a live
// temperature reading. Enrich never fails outright: both sub-fetches degrade
// gracefully, so a reply can always be composed.
type EnrichUseCase interface {
	Enrich(ctx context.Context, city model.CityCandidate) (model.CityCandidate, model.TemperatureReport)
}

type enrichUC struct {
	lookup  adapter.CityLookupGateway
	weather adapter.TemperatureGateway
	log     *zerolog.Logger
}

func NewEnrichUseCase(lookup adapter.CityLookupGateway, weather adapter.TemperatureGateway, log *zerolog.Logger) *enrichUC {
	return &enrichUC{lookup: lookup, weather: weather, log: log}
}

func (u *enrichUC) Enrich(ctx context.Context, city model.CityCandidate) (model.CityCandidate, model.TemperatureReport) {
	if city.ID != "" {
		detail, err := u.lookup.Details(ctx, city.ID)
		if err != nil {
			// Non-fatal: the less detailed search record is still usable.
			u.log.Debug().Err(err).Str("city_id", city.ID).Msg("detail fetch failed")
		} else if detail != nil {
			city = city.Merge(*detail)
		}
	}

	if !city.HasCoordinates() {
		return city, model.TemperatureNoData()
	}

	v, err := u.weather.TemperatureCelsius(ctx, *city.Latitude, *city.Longitude)
	if err != nil {
		return city, model.TemperatureError(err)
	}
	if v == nil {
		// Provider credential not configured: "no data", not an error.
		return city, model.TemperatureNoData()
	}
	return city, model.TemperatureValue(*v)
}
