package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"telegram-city-weather/internal/domain"
	"telegram-city-weather/internal/domain/model"
	"telegram-city-weather/internal/domain/ports/adapter"
	"telegram-city-weather/internal/domain/ports/repository"
)

// Compile-time check
var _ QueryUseCase = (*queryUC)(nil)

// Resolution is the outcome of a city query: either a single resolved city
// ready for enrichment, or an ordered candidate list the user must pick from
// (displayed with 1-based numbering).
type Resolution struct {
	City    *model.CityCandidate
	Choices []model.CityCandidate
}

type QueryUseCase interface {
	// Resolve treats text as a fresh city-name query.
	Resolve(ctx context.Context, tgID int64, text string, limit int) (*Resolution, error)
	// ResolveReply handles free text that may be a numeric answer to an
	// outstanding disambiguation menu.
	ResolveReply(ctx context.Context, tgID int64, text string, limit int) (*Resolution, error)
}

type queryUC struct {
	lookup     adapter.CityLookupGateway
	selections repository.SelectionRepository
	log        *zerolog.Logger
}

func NewQueryUseCase(lookup adapter.CityLookupGateway, selections repository.SelectionRepository, log *zerolog.Logger) *queryUC {
	return &queryUC{lookup: lookup, selections: selections, log: log}
}

func (u *queryUC) Resolve(ctx context.Context, tgID int64, text string, limit int) (*Resolution, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, domain.ErrEmptyQuery
	}

	cities, err := u.lookup.Search(ctx, text, limit)
	if err != nil {
		// Session state is left as is: a failed lookup must not cancel an
		// outstanding menu.
		return nil, fmt.Errorf("search %q: %w", text, err)
	}

	switch len(cities) {
	case 0:
		// Only a successful result overwrites a pending menu; zero results
		// leave it intact.
		return nil, domain.ErrCityNotFound
	case 1:
		u.selections.Clear(tgID)
		city := cities[0]
		return &Resolution{City: &city}, nil
	default:
		u.selections.Set(tgID, cities)
		u.log.Debug().Int64("tg_id", tgID).Int("candidates", len(cities)).Msg("pending selection stored")
		return &Resolution{Choices: cities}, nil
	}
}

func (u *queryUC) ResolveReply(ctx context.Context, tgID int64, text string, limit int) (*Resolution, error) {
	pending, ok := u.selections.Get(tgID)
	if !ok {
		// No menu outstanding: even a numeric-looking reply is a fresh query.
		return u.Resolve(ctx, tgID, text, limit)
	}

	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < 1 || n > len(pending) {
		// Pending selection stays intact so the user can retry.
		return nil, domain.ErrInvalidSelection
	}

	u.selections.Clear(tgID)
	city := pending[n-1]
	return &Resolution{City: &city}, nil
}
