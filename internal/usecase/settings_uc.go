package usecase

import (
	"context"
	"fmt"
	"strings"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/repository"
)

// Compile-time check
var _ SettingsUseCase = (*settingsUC)(nil)

// SettingsUseCase validates and persists per-user preferences. Invalid
// arguments are rejected here and never reach the store, so the stored value
// stays unchanged.
type SettingsUseCase interface {
	Get(ctx context.Context, tgID int64) (*model.UserSettings, error)
	SetLimit(ctx context.Context, tgID int64, limit int) error
	SetRatingType(ctx context.Context, tgID int64, raw string) error
	SetLang(ctx context.Context, tgID int64, raw string) error
}

type settingsUC struct {
	repo repository.SettingsRepository
}

func NewSettingsUseCase(repo repository.SettingsRepository) *settingsUC {
	return &settingsUC{repo: repo}
}

func (u *settingsUC) Get(ctx context.Context, tgID int64) (*model.UserSettings, error) {
	s, err := u.repo.GetOrCreate(ctx, tgID)
	if err != nil {
		return nil, fmt.Errorf("get settings: %w", err)
	}
	return s, nil
}

func (u *settingsUC) SetLimit(ctx context.Context, tgID int64, limit int) error {
	if limit < model.MinCityLimit || limit > model.MaxCityLimit {
		return domain.ErrInvalidArgument
	}
	return u.repo.SetLimit(ctx, tgID, limit)
}

func (u *settingsUC) SetRatingType(ctx context.Context, tgID int64, raw string) error {
	rating := model.RatingType(strings.ToLower(strings.TrimSpace(raw)))
	if !rating.Valid() {
		return domain.ErrInvalidArgument
	}
	return u.repo.SetRatingType(ctx, tgID, rating)
}

func (u *settingsUC) SetLang(ctx context.Context, tgID int64, raw string) error {
	lang := strings.ToLower(strings.TrimSpace(raw))
	if !model.ValidLang(lang) {
		return domain.ErrInvalidArgument
	}
	return u.repo.SetLang(ctx, tgID, lang)
}
