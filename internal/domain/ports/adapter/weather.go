package adapter

import "context"

// TemperatureGateway wraps the external temperature-by-coordinate service.
// TemperatureCelsius returns (nil, nil) when no provider credential is
// configured; a non-nil error means the call itself failed.
type TemperatureGateway interface {
	TemperatureCelsius(ctx context.Context, lat, lon float64) (*float64, error)
}
