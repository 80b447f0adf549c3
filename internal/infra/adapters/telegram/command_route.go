package telegram

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"telegram-city-weather/internal/infra/logging"
	"telegram-city-weather/internal/infra/metrics"
)

type commandHandler func(ctx context.Context, message *tgbotapi.Message)

// commandRoutes defines all available bot commands and their handlers.
func (r *RealTelegramBotAdapter) commandRoutes() map[string]commandHandler {
	return map[string]commandHandler{
		"start":      r.handleStartCommand,
		"help":       r.handleHelpCommand,
		"settings":   r.handleSettingsCommand,
		"set_limit":  r.handleSetLimitCommand,
		"set_rating": r.handleSetRatingCommand,
		"set_lang":   r.handleSetLangCommand,
		"weather":    r.handleWeatherCommand,
		"top":        r.handleTopCommand,
	}
}

// reply runs a facade call, sends whatever text it produced and records the
// command outcome. The facade always returns a sendable text, so the user
// gets a reply even when the error return is set.
func (r *RealTelegramBotAdapter) reply(ctx context.Context, message *tgbotapi.Message, command string, fn func(ctx context.Context) (string, error)) {
	log := logging.With(ctx, r.log)

	text, err := fn(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
		log.Error().Err(err).Str("command", command).Msg("command failed")
	}
	metrics.IncCommand(command, outcome)

	if text == "" {
		return
	}
	if sendErr := r.SendMessage(ctx, message.Chat.ID, text); sendErr != nil {
		log.Error().Err(sendErr).Str("command", command).Msg("send failed")
	}
}

func (r *RealTelegramBotAdapter) handleStartCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "start", func(ctx context.Context) (string, error) {
		return r.facade.HandleStart(ctx, message.From.ID)
	})
}

func (r *RealTelegramBotAdapter) handleHelpCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "help", func(ctx context.Context) (string, error) {
		return r.facade.HandleHelp(ctx, message.From.ID)
	})
}

func (r *RealTelegramBotAdapter) handleSettingsCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "settings", func(ctx context.Context) (string, error) {
		return r.facade.HandleSettings(ctx, message.From.ID)
	})
}

func (r *RealTelegramBotAdapter) handleSetLimitCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "set_limit", func(ctx context.Context) (string, error) {
		return r.facade.HandleSetLimit(ctx, message.From.ID, message.CommandArguments())
	})
}

func (r *RealTelegramBotAdapter) handleSetRatingCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "set_rating", func(ctx context.Context) (string, error) {
		return r.facade.HandleSetRating(ctx, message.From.ID, message.CommandArguments())
	})
}

func (r *RealTelegramBotAdapter) handleSetLangCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "set_lang", func(ctx context.Context) (string, error) {
		return r.facade.HandleSetLang(ctx, message.From.ID, message.CommandArguments())
	})
}

func (r *RealTelegramBotAdapter) handleWeatherCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "weather", func(ctx context.Context) (string, error) {
		return r.facade.HandleWeather(ctx, message.From.ID, message.CommandArguments())
	})
}

func (r *RealTelegramBotAdapter) handleTopCommand(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "top", func(ctx context.Context) (string, error) {
		return r.facade.HandleTop(ctx, message.From.ID)
	})
}

// handleFreeText covers everything that is not a command: either a numeric
// answer to an outstanding disambiguation menu or a fresh city-name query.
func (r *RealTelegramBotAdapter) handleFreeText(ctx context.Context, message *tgbotapi.Message) {
	r.reply(ctx, message, "free_text", func(ctx context.Context) (string, error) {
		return r.facade.HandleFreeText(ctx, message.From.ID, message.Text)
	})
}
