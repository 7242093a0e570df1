package telegram

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/sandevgo/campinnova/pkg/retry"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

const busyReply = "I’m still thinking about your last message. Give me a moment."

type Bot struct {
	bot      *tele.Bot
	sender   *sender
	sessions *chat.Sessions
	router   core.CmdRouter

	sessionIdle time.Duration
	sweepEvery  time.Duration
	sweepCtx    context.Context
	stopSweep   context.CancelFunc
}

func NewBot(
	ctx context.Context,
	cfg *config.TelegramConfig,
	sessions *chat.Sessions,
	router core.CmdRouter,
) (*Bot, error) {
	logger := log.FromCtx(ctx)

	pref := tele.Settings{
		Token:  cfg.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	retryCfg := retry.NewDefaultConfig()
	retryCfg.OnRetry = func(attempt int, err error, wait time.Duration) {
		logger.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("telegram bot not ready, retrying")
	}

	var b *tele.Bot
	err := retry.NewRetrier(retryCfg).Do(ctx, func() error {
		var err error
		b, err = tele.NewBot(pref)
		if errors.Is(err, tele.ErrUnauthorized) {
			return retry.Permanent(err)
		}
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}

	sweepCtx, stopSweep := context.WithCancel(ctx)
	bot := &Bot{
		bot:      b,
		sender:   newSender(b),
		sessions: sessions,
		router:   router,

		sessionIdle: cfg.SessionIdle,
		sweepEvery:  cfg.SweepEvery,
		sweepCtx:    sweepCtx,
		stopSweep:   stopSweep,
	}

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle("/start", bot.handleStart)
	b.Handle(tele.OnText, bot.handleMessage)

	return bot, nil
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Str("bot", b.bot.Me.Username).Dur("session_idle", b.sessionIdle).Msg("starting telegram bot")
	go b.sessions.Sweep(b.sweepCtx, b.sweepEvery, b.sessionIdle)

	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.stopSweep()
	b.bot.Stop()
	return nil
}

func chatScope(chatID int64) string {
	return fmt.Sprintf("telegram-%d", chatID)
}

func (b *Bot) handleStart(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	s := b.sessions.Reset(ctx, chatScope(c.Chat().ID))
	return b.sender.sendMarkdown(ctx, c.Chat(), s.Messages()[0].Text, false)
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx := c.Get(baseContextKey).(context.Context)
	_ = c.Notify(tele.Typing)

	reply := b.reply(ctx, chatScope(c.Chat().ID), c.Text())
	if reply == "" {
		return nil
	}
	return b.sender.sendMarkdown(ctx, c.Chat(), reply, false)
}

// reply routes one inbound text to a slash command or to the chat session
// and returns the markdown to send back.
func (b *Bot) reply(ctx context.Context, scope, text string) string {
	logger := log.FromCtx(ctx)

	if out, handled := b.router.Execute(ctx, scope, text); handled {
		return out
	}

	turn, err := b.sessions.Get(ctx, scope).SendTurn(ctx, text)
	switch {
	case errors.Is(err, chat.ErrEmptyMessage):
		return ""
	case errors.Is(err, chat.ErrTurnInProgress):
		return busyReply
	case err != nil:
		logger.Error().Err(err).Str("scope", scope).Msg("chat turn failed")
		return fmt.Sprintf("error: %v", err)
	}
	return turn.Bot.Text
}
