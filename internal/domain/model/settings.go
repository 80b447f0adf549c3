package model

// RatingType selects the sort key of the /top command.
type RatingType string

const (
	RatingPopulation RatingType = "population"
	RatingTemp       RatingType = "temp"
)

func (r RatingType) Valid() bool {
	return r == RatingPopulation || r == RatingTemp
}

// Bounds for the per-user result limit. Values outside this range are
// rejected at the usecase boundary and never reach the store.
const (
	MinCityLimit = 5
	MaxCityLimit = 50
)

// Supported reply languages.
const (
	LangRU = "ru"
	LangEN = "en"
)

func ValidLang(lang string) bool {
	return lang == LangRU || lang == LangEN
}

// UserSettings is the durable per-user preference record, keyed by Telegram ID.
type UserSettings struct {
	TelegramID int64
	RatingType RatingType
	CityLimit  int
	Lang       string
}
