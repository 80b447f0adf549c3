package application

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/infra/i18n"
	"telegram-city-weather/internal/usecase"
)

// BotFacade composes usecases into high-level bot commands. Every method
// returns a sendable, localized reply; the error return is for logging only
// and never leaves the user without a message.
type BotFacade struct {
	queryUC    usecase.QueryUseCase
	enrichUC   usecase.EnrichUseCase
	rankingUC  usecase.RankingUseCase
	settingsUC usecase.SettingsUseCase

	locales     *i18n.Bundle
	searchLimit int
	log         *zerolog.Logger
}

func NewBotFacade(
	queryUC usecase.QueryUseCase,
	enrichUC usecase.EnrichUseCase,
	rankingUC usecase.RankingUseCase,
	settingsUC usecase.SettingsUseCase,
	locales *i18n.Bundle,
	searchLimit int,
	log *zerolog.Logger,
) *BotFacade {
	if searchLimit <= 0 {
		searchLimit = 5
	}
	return &BotFacade{
		queryUC:     queryUC,
		enrichUC:    enrichUC,
		rankingUC:   rankingUC,
		settingsUC:  settingsUC,
		locales:     locales,
		searchLimit: searchLimit,
		log:         log,
	}
}

// translator loads the user's settings and picks the matching locale. A store
// failure falls back to the default locale so a reply can still be sent.
func (b *BotFacade) translator(ctx context.Context, tgID int64) (*i18n.Translator, *model.UserSettings, error) {
	s, err := b.settingsUC.Get(ctx, tgID)
	if err != nil {
		return b.locales.For(""), nil, err
	}
	return b.locales.For(s.Lang), s, nil
}

// HandleStart greets the user and creates the settings row on first contact.
func (b *BotFacade) HandleStart(ctx context.Context, tgID int64) (string, error) {
	tr, _, err := b.translator(ctx, tgID)
	return tr.T("welcome"), err
}

func (b *BotFacade) HandleHelp(ctx context.Context, tgID int64) (string, error) {
	tr, _, err := b.translator(ctx, tgID)
	return tr.T("help"), err
}

func (b *BotFacade) HandleSettings(ctx context.Context, tgID int64) (string, error) {
	tr, s, err := b.translator(ctx, tgID)
	if err != nil {
		return tr.T("error_settings"), err
	}
	return tr.T("settings_current", string(s.RatingType), s.CityLimit, s.Lang), nil
}

func (b *BotFacade) HandleSetLimit(ctx context.Context, tgID int64, arg string) (string, error) {
	tr, _, _ := b.translator(ctx, tgID)

	n, convErr := strconv.Atoi(strings.TrimSpace(arg))
	if convErr != nil {
		return tr.T("usage_set_limit"), nil
	}
	if err := b.settingsUC.SetLimit(ctx, tgID, n); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return tr.T("usage_set_limit"), nil
		}
		return tr.T("error_settings"), fmt.Errorf("set limit: %w", err)
	}
	return tr.T("limit_saved", n), nil
}

func (b *BotFacade) HandleSetRating(ctx context.Context, tgID int64, arg string) (string, error) {
	tr, _, _ := b.translator(ctx, tgID)

	if err := b.settingsUC.SetRatingType(ctx, tgID, arg); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return tr.T("usage_set_rating"), nil
		}
		return tr.T("error_settings"), fmt.Errorf("set rating: %w", err)
	}
	return tr.T("rating_saved", strings.ToLower(strings.TrimSpace(arg))), nil
}

func (b *BotFacade) HandleSetLang(ctx context.Context, tgID int64, arg string) (string, error) {
	tr, _, _ := b.translator(ctx, tgID)

	lang := strings.ToLower(strings.TrimSpace(arg))
	if err := b.settingsUC.SetLang(ctx, tgID, lang); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return tr.T("usage_set_lang"), nil
		}
		return tr.T("error_settings"), fmt.Errorf("set lang: %w", err)
	}
	// Confirm in the language that was just chosen.
	return b.locales.For(lang).T("lang_saved", lang), nil
}

// HandleWeather resolves a city name given as a command argument.
func (b *BotFacade) HandleWeather(ctx context.Context, tgID int64, name string) (string, error) {
	tr, _, _ := b.translator(ctx, tgID)

	res, err := b.queryUC.Resolve(ctx, tgID, name, b.searchLimit)
	if err != nil {
		return b.queryErrorText(tr, err), queryLogErr(err)
	}
	return b.respond(ctx, tr, res), nil
}

// HandleFreeText implements the dual-mode fallback: a numeric answer to an
// outstanding menu, or a fresh city-name query.
func (b *BotFacade) HandleFreeText(ctx context.Context, tgID int64, text string) (string, error) {
	tr, _, _ := b.translator(ctx, tgID)

	res, err := b.queryUC.ResolveReply(ctx, tgID, text, b.searchLimit)
	if err != nil {
		return b.queryErrorText(tr, err), queryLogErr(err)
	}
	return b.respond(ctx, tr, res), nil
}

// HandleTop renders the city ranking using the user's stored mode and limit.
func (b *BotFacade) HandleTop(ctx context.Context, tgID int64) (string, error) {
	tr, s, err := b.translator(ctx, tgID)
	if err != nil {
		return tr.T("error_settings"), err
	}

	entries, err := b.rankingUC.Top(ctx, s.RatingType, s.CityLimit)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNoTemperatureData):
			return tr.T("no_temperature_data"), nil
		case errors.Is(err, domain.ErrCityNotFound):
			return tr.T("city_not_found"), nil
		default:
			return tr.T("error_lookup"), err
		}
	}

	var sb strings.Builder
	if s.RatingType == model.RatingTemp {
		sb.WriteString(tr.T("top_header_temp"))
		for i, e := range entries {
			sb.WriteString("\n" + tr.T("top_line_temp", i+1, e.City.Name, e.City.Country, e.TemperatureC))
		}
	} else {
		sb.WriteString(tr.T("top_header_population"))
		for i, e := range entries {
			sb.WriteString("\n" + tr.T("top_line_population", i+1, e.City.Name, e.City.Country, e.Population))
		}
	}
	return sb.String(), nil
}

// respond turns a resolution into either an enriched city card or a
// numbered disambiguation menu.
func (b *BotFacade) respond(ctx context.Context, tr *i18n.Translator, res *usecase.Resolution) string {
	if res.City != nil {
		city, report := b.enrichUC.Enrich(ctx, *res.City)
		return composeCityReply(tr, city, report)
	}

	var sb strings.Builder
	sb.WriteString(tr.T("choose_city"))
	for i, c := range res.Choices {
		sb.WriteString("\n" + formatCityLine(i+1, c))
	}
	sb.WriteString("\n" + tr.T("choose_city_hint", len(res.Choices)))
	return sb.String()
}

func (b *BotFacade) queryErrorText(tr *i18n.Translator, err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyQuery):
		return tr.T("need_city_name")
	case errors.Is(err, domain.ErrCityNotFound):
		return tr.T("city_not_found")
	case errors.Is(err, domain.ErrInvalidSelection):
		return tr.T("invalid_selection")
	default:
		return tr.T("error_lookup")
	}
}

// queryLogErr keeps expected user-input outcomes out of the error log.
func queryLogErr(err error) error {
	if errors.Is(err, domain.ErrEmptyQuery) ||
		errors.Is(err, domain.ErrCityNotFound) ||
		errors.Is(err, domain.ErrInvalidSelection) {
		return nil
	}
	return err
}

// formatCityLine renders one menu entry: "2. Berlin (New Hampshire, United
// States), pop=9367". Absent fields are omitted, never rendered empty.
func formatCityLine(n int, c model.CityCandidate) string {
	line := fmt.Sprintf("%d. %s", n, c.Name)
	var extras []string
	if c.Region != "" {
		extras = append(extras, c.Region)
	}
	if c.Country != "" {
		extras = append(extras, c.Country)
	}
	if len(extras) > 0 {
		line += " (" + strings.Join(extras, ", ") + ")"
	}
	if c.Population != nil && *c.Population > 0 {
		line += fmt.Sprintf(", pop=%d", *c.Population)
	}
	return line
}

// composeCityReply renders the city card from present fields only, followed
// by exactly one temperature segment.
func composeCityReply(tr *i18n.Translator, city model.CityCandidate, report model.TemperatureReport) string {
	parts := []string{tr.T("city_name_line", city.Name)}
	if city.Region != "" {
		parts = append(parts, tr.T("city_region_line", city.Region))
	}
	if city.Country != "" {
		parts = append(parts, tr.T("city_country_line", city.Country))
	}
	if city.Population != nil && *city.Population > 0 {
		parts = append(parts, tr.T("city_population_line", *city.Population))
	}
	if city.HasCoordinates() {
		parts = append(parts, tr.T("city_coords_line", *city.Latitude, *city.Longitude))
	}

	switch report.Status {
	case model.TemperatureOK:
		parts = append(parts, tr.T("temp_value", report.ValueC))
	case model.TemperatureErrored:
		parts = append(parts, tr.T("temp_error", report.Err))
	default:
		parts = append(parts, tr.T("temp_no_data"))
	}
	return strings.Join(parts, "\n")
}
