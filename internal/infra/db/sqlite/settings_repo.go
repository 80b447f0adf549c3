package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    user_id     INTEGER PRIMARY KEY,
    rating_type TEXT    NOT NULL,
    city_limit  INTEGER NOT NULL,
    lang        TEXT    NOT NULL
);`

// Open connects to the sqlite file and ensures the settings table exists.
func Open(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init sqlite schema: %w", err)
	}
	return db, nil
}

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo stores one settings row per user, keyed by Telegram ID.
type SettingsRepo struct {
	db       *sqlx.DB
	defaults model.UserSettings
}

func NewSettingsRepo(db *sqlx.DB, defaults model.UserSettings) *SettingsRepo {
	return &SettingsRepo{db: db, defaults: defaults}
}

type settingsRow struct {
	UserID     int64  `db:"user_id"`
	RatingType string `db:"rating_type"`
	CityLimit  int    `db:"city_limit"`
	Lang       string `db:"lang"`
}

func (r *SettingsRepo) GetOrCreate(ctx context.Context, tgID int64) (*model.UserSettings, error) {
	var row settingsRow
	err := r.db.GetContext(ctx, &row,
		`SELECT user_id, rating_type, city_limit, lang FROM users WHERE user_id = ?`, tgID)
	if errors.Is(err, sql.ErrNoRows) {
		if err := r.ensure(ctx, tgID); err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		s := r.defaults
		s.TelegramID = tgID
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	return &model.UserSettings{
		TelegramID: row.UserID,
		RatingType: model.RatingType(row.RatingType),
		CityLimit:  row.CityLimit,
		Lang:       row.Lang,
	}, nil
}

func (r *SettingsRepo) SetLimit(ctx context.Context, tgID int64, limit int) error {
	if err := r.ensure(ctx, tgID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE users SET city_limit = ? WHERE user_id = ?`, limit, tgID)
	return err
}

func (r *SettingsRepo) SetRatingType(ctx context.Context, tgID int64, rating model.RatingType) error {
	if err := r.ensure(ctx, tgID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE users SET rating_type = ? WHERE user_id = ?`, string(rating), tgID)
	return err
}

func (r *SettingsRepo) SetLang(ctx context.Context, tgID int64, lang string) error {
	if err := r.ensure(ctx, tgID); err != nil {
		return err
	}
	_, err := r.db.ExecContext(ctx, `UPDATE users SET lang = ? WHERE user_id = ?`, lang, tgID)
	return err
}

// ensure inserts the defaults row for a user not seen before.
func (r *SettingsRepo) ensure(ctx context.Context, tgID int64) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO users (user_id, rating_type, city_limit, lang) VALUES (?, ?, ?, ?)`,
		tgID, string(r.defaults.RatingType), r.defaults.CityLimit, r.defaults.Lang)
	return err
}
