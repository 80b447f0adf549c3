package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/repository"
)

// NewPgxPool returns a live *pgxpool.Pool with a bounded connect timeout.
func NewPgxPool(ctx context.Context, url string, maxConns int32) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	if maxConns > 0 {
		cfg.MaxConns = maxConns
	}
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.ConnectConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return pool, nil
}

var _ repository.SettingsRepository = (*SettingsRepo)(nil)

// SettingsRepo is the Postgres variant of the settings store, for deployments
// that already run a database server instead of a local sqlite file.
type SettingsRepo struct {
	pool     *pgxpool.Pool
	defaults model.UserSettings
}

func NewSettingsRepo(pool *pgxpool.Pool, defaults model.UserSettings) *SettingsRepo {
	return &SettingsRepo{pool: pool, defaults: defaults}
}

// EnsureSchema creates the settings table when absent. No migration
// machinery: the layout is a single table with a primary key.
func (r *SettingsRepo) EnsureSchema(ctx context.Context) error {
	const q = `
CREATE TABLE IF NOT EXISTS users (
    user_id     BIGINT  PRIMARY KEY,
    rating_type TEXT    NOT NULL,
    city_limit  INTEGER NOT NULL,
    lang        TEXT    NOT NULL
);`
	if _, err := r.pool.Exec(ctx, q); err != nil {
		return fmt.Errorf("init postgres schema: %w", err)
	}
	return nil
}

func (r *SettingsRepo) GetOrCreate(ctx context.Context, tgID int64) (*model.UserSettings, error) {
	const q = `SELECT user_id, rating_type, city_limit, lang FROM users WHERE user_id=$1;`
	var (
		s      model.UserSettings
		rating string
	)
	err := r.pool.QueryRow(ctx, q, tgID).Scan(&s.TelegramID, &rating, &s.CityLimit, &s.Lang)
	if errors.Is(err, pgx.ErrNoRows) {
		s = r.defaults
		s.TelegramID = tgID
		const ins = `
INSERT INTO users (user_id, rating_type, city_limit, lang)
VALUES ($1,$2,$3,$4) ON CONFLICT (user_id) DO NOTHING;`
		if _, err := r.pool.Exec(ctx, ins, tgID, string(s.RatingType), s.CityLimit, s.Lang); err != nil {
			return nil, fmt.Errorf("create settings: %w", err)
		}
		return &s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	s.RatingType = model.RatingType(rating)
	return &s, nil
}

func (r *SettingsRepo) SetLimit(ctx context.Context, tgID int64, limit int) error {
	const q = `
INSERT INTO users (user_id, rating_type, city_limit, lang)
VALUES ($1,$2,$3,$4)
ON CONFLICT (user_id) DO UPDATE SET city_limit=EXCLUDED.city_limit;`
	_, err := r.pool.Exec(ctx, q, tgID, string(r.defaults.RatingType), limit, r.defaults.Lang)
	return err
}

func (r *SettingsRepo) SetRatingType(ctx context.Context, tgID int64, rating model.RatingType) error {
	const q = `
INSERT INTO users (user_id, rating_type, city_limit, lang)
VALUES ($1,$2,$3,$4)
ON CONFLICT (user_id) DO UPDATE SET rating_type=EXCLUDED.rating_type;`
	_, err := r.pool.Exec(ctx, q, tgID, string(rating), r.defaults.CityLimit, r.defaults.Lang)
	return err
}

func (r *SettingsRepo) SetLang(ctx context.Context, tgID int64, lang string) error {
	const q = `
INSERT INTO users (user_id, rating_type, city_limit, lang)
VALUES ($1,$2,$3,$4)
ON CONFLICT (user_id) DO UPDATE SET lang=EXCLUDED.lang;`
	_, err := r.pool.Exec(ctx, q, tgID, string(r.defaults.RatingType), r.defaults.CityLimit, lang)
	return err
}
