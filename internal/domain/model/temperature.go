package model

// TemperatureStatus distinguishes the three outcomes of a temperature fetch:
// a value, no value because the provider is not configured, and a failed call.
type TemperatureStatus int

const (
	TemperatureOK TemperatureStatus = iota
	TemperatureUnavailable
	TemperatureErrored
)

// TemperatureReport is the result-or-degraded-value outcome of a temperature
// lookup. ValueC is meaningful only when Status is TemperatureOK; Err only
// when Status is TemperatureErrored.
type TemperatureReport struct {
	Status TemperatureStatus
	ValueC float64
	Err    error
}

func TemperatureValue(v float64) TemperatureReport {
	return TemperatureReport{Status: TemperatureOK, ValueC: v}
}

func TemperatureNoData() TemperatureReport {
	return TemperatureReport{Status: TemperatureUnavailable}
}

func TemperatureError(err error) TemperatureReport {
	return TemperatureReport{Status: TemperatureErrored, Err: err}
}
