package repository

import (
	"context"

	"telegram-city-weather/internal/domain/model"
)

// SettingsRepository is the durable per-user preference store. GetOrCreate
// inserts the configured defaults on first reference to a user. Setters
// persist already-validated values; argument validation is the usecase's job.
type SettingsRepository interface {
	GetOrCreate(ctx context.Context, tgID int64) (*model.UserSettings, error)
	SetLimit(ctx context.Context, tgID int64, limit int) error
	SetRatingType(ctx context.Context, tgID int64, rating model.RatingType) error
	SetLang(ctx context.Context, tgID int64, lang string) error
}
