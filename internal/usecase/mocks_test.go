package usecase

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
)

func testLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

func ptrF(v float64) *float64 { return &v }
func ptrI(v int64) *int64     { return &v }

// fakeLookup is a scriptable CityLookupGateway used by unit tests.
type fakeLookup struct {
	mu          sync.Mutex
	searchCalls int
	topLimit    int

	SearchFunc  func(ctx context.Context, namePrefix string, limit int) ([]model.CityCandidate, error)
	DetailsFunc func(ctx context.Context, id string) (*model.CityCandidate, error)
	TopFunc     func(ctx context.Context, limit int) ([]model.CityCandidate, error)
}

func (f *fakeLookup) Search(ctx context.Context, namePrefix string, limit int) ([]model.CityCandidate, error) {
	f.mu.Lock()
	f.searchCalls++
	f.mu.Unlock()
	if f.SearchFunc == nil {
		return nil, nil
	}
	return f.SearchFunc(ctx, namePrefix, limit)
}

func (f *fakeLookup) Details(ctx context.Context, id string) (*model.CityCandidate, error) {
	if f.DetailsFunc == nil {
		return nil, domain.ErrNotFound
	}
	return f.DetailsFunc(ctx, id)
}

func (f *fakeLookup) TopByPopulation(ctx context.Context, limit int) ([]model.CityCandidate, error) {
	f.mu.Lock()
	f.topLimit = limit
	f.mu.Unlock()
	if f.TopFunc == nil {
		return nil, nil
	}
	return f.TopFunc(ctx, limit)
}

func (f *fakeLookup) SearchCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.searchCalls
}

func (f *fakeLookup) TopLimit() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.topLimit
}

// fakeWeather is a scriptable TemperatureGateway.
type fakeWeather struct {
	mu    sync.Mutex
	calls int

	TempFunc func(ctx context.Context, lat, lon float64) (*float64, error)
}

func (f *fakeWeather) TemperatureCelsius(ctx context.Context, lat, lon float64) (*float64, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.TempFunc == nil {
		return nil, nil
	}
	return f.TempFunc(ctx, lat, lon)
}

func (f *fakeWeather) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// memSelections is a small in-memory SelectionRepository.
type memSelections struct {
	mu    sync.Mutex
	store map[int64][]model.CityCandidate
}

func newMemSelections() *memSelections {
	return &memSelections{store: make(map[int64][]model.CityCandidate)}
}

func (m *memSelections) Get(tgID int64) ([]model.CityCandidate, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	list, ok := m.store[tgID]
	return list, ok
}

func (m *memSelections) Set(tgID int64, candidates []model.CityCandidate) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.store[tgID] = candidates
}

func (m *memSelections) Clear(tgID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.store, tgID)
}

// memSettings is a small in-memory SettingsRepository seeded with defaults.
type memSettings struct {
	mu       sync.Mutex
	defaults model.UserSettings
	store    map[int64]*model.UserSettings
	setErr   error
}

func newMemSettings() *memSettings {
	return &memSettings{
		defaults: model.UserSettings{RatingType: model.RatingPopulation, CityLimit: 10, Lang: model.LangRU},
		store:    make(map[int64]*model.UserSettings),
	}
}

func (m *memSettings) GetOrCreate(ctx context.Context, tgID int64) (*model.UserSettings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.store[tgID]; ok {
		cp := *s
		return &cp, nil
	}
	s := m.defaults
	s.TelegramID = tgID
	m.store[tgID] = &s
	cp := s
	return &cp, nil
}

func (m *memSettings) SetLimit(ctx context.Context, tgID int64, limit int) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.getLocked(tgID)
	s.CityLimit = limit
	return nil
}

func (m *memSettings) SetRatingType(ctx context.Context, tgID int64, rating model.RatingType) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.getLocked(tgID)
	s.RatingType = rating
	return nil
}

func (m *memSettings) SetLang(ctx context.Context, tgID int64, lang string) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.getLocked(tgID)
	s.Lang = lang
	return nil
}

func (m *memSettings) getLocked(tgID int64) *model.UserSettings {
	if s, ok := m.store[tgID]; ok {
		return s
	}
	s := m.defaults
	s.TelegramID = tgID
	m.store[tgID] = &s
	return &s
}
