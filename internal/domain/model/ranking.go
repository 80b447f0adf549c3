package model

// RankedEntry pairs a city with the sort key it was ranked by. Transient:
// produced during /top handling and discarded once the reply is composed.
type RankedEntry struct {
	City CityCandidate

	// Population is set in population mode, TemperatureC in temp mode.
	Population   int64
	TemperatureC float64
}
