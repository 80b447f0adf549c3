package repository

import "telegram-city-weather/internal/domain/model"

// SelectionRepository tracks at most one pending disambiguation list per
// user. Purely in-process: a restart drops all pending selections, which only
// affects an in-flight menu, never committed preferences. Implementations
// must be safe for concurrent update workers.
type SelectionRepository interface {
	Get(tgID int64) ([]model.CityCandidate, bool)
	Set(tgID int64, candidates []model.CityCandidate)
	Clear(tgID int64)
}
