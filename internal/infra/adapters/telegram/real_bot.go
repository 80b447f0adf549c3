package telegram

import (
	"context"
	"errors"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"telegram-city-weather/internal/application"
	"telegram-city-weather/internal/config"
	"telegram-city-weather/internal/infra/logging"
)

// handleTimeout bounds one update end to end, including provider calls.
const handleTimeout = 30 * time.Second

// RealTelegramBotAdapter polls updates with tgbotapi and delegates every
// message to the BotFacade. Replies are plain text; the facade already
// localized them.
type RealTelegramBotAdapter struct {
	bot    *tgbotapi.BotAPI
	cfg    *config.BotConfig
	facade *application.BotFacade
	log    *zerolog.Logger

	updateWorkers int
	cancelPolling context.CancelFunc
}

func NewRealTelegramBotAdapter(cfg *config.BotConfig, facade *application.BotFacade, log *zerolog.Logger) (*RealTelegramBotAdapter, error) {
	if cfg == nil {
		return nil, errors.New("bot config is nil")
	}
	if facade == nil {
		return nil, errors.New("bot facade is nil")
	}
	workers := cfg.Workers
	if workers <= 0 {
		workers = 8
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Token)
	if err != nil {
		return nil, err
	}

	return &RealTelegramBotAdapter{
		bot:           bot,
		cfg:           cfg,
		facade:        facade,
		log:           log,
		updateWorkers: workers,
	}, nil
}

// StartPolling blocks until ctx is cancelled or StopPolling is called.
func (r *RealTelegramBotAdapter) StartPolling(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := r.bot.GetUpdatesChan(u)

	ctx, cancel := context.WithCancel(ctx)
	r.cancelPolling = cancel

	var wg sync.WaitGroup
	updateChan := make(chan tgbotapi.Update, 100)

	for i := 0; i < r.updateWorkers; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case up := <-updateChan:
					r.handleUpdate(ctx, up)
				}
			}
		}(i)
	}

	r.log.Info().Int("workers", r.updateWorkers).Str("bot", r.bot.Self.UserName).Msg("telegram polling started")

	for {
		select {
		case <-ctx.Done():
			r.bot.StopReceivingUpdates()
			close(updateChan)
			wg.Wait()
			return ctx.Err()
		case up := <-updates:
			updateChan <- up
		}
	}
}

func (r *RealTelegramBotAdapter) StopPolling() {
	if r.cancelPolling != nil {
		r.cancelPolling()
	}
}

func (r *RealTelegramBotAdapter) SendMessage(ctx context.Context, chatID int64, text string) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}
	msg := tgbotapi.NewMessage(chatID, text)
	_, err := r.bot.Send(msg)
	return err
}

// handleUpdate routes one update. Each update gets its own deadline and a
// trace id so a slow provider call or a panic log can be tied back to it.
func (r *RealTelegramBotAdapter) handleUpdate(parent context.Context, update tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	ctx, cancel := context.WithTimeout(parent, handleTimeout)
	defer cancel()
	ctx = logging.WithTraceID(ctx, uuid.NewString())
	ctx = logging.WithTgID(ctx, msg.From.ID)
	log := logging.With(ctx, r.log)

	if msg.IsCommand() {
		if handler, ok := r.commandRoutes()[msg.Command()]; ok {
			handler(ctx, msg)
			return
		}
		log.Debug().Str("command", msg.Command()).Msg("unknown command")
		r.reply(ctx, msg, "unknown", func(ctx context.Context) (string, error) {
			return r.facade.HandleHelp(ctx, msg.From.ID)
		})
		return
	}

	if msg.Text != "" {
		r.handleFreeText(ctx, msg)
	}
}
