package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound          = errors.New("entity not found")
	ErrEmptyQuery        = errors.New("empty city query")
	ErrCityNotFound      = errors.New("city not found")
	ErrInvalidSelection  = errors.New("invalid menu selection")
	ErrInvalidArgument   = errors.New("invalid argument")
	ErrNoTemperatureData = errors.New("no temperature data available")
)
