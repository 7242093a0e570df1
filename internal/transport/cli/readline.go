package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/internal/service/ui"
	"github.com/sandevgo/campinnova/pkg/conv"
	"github.com/sandevgo/campinnova/pkg/log"
)

const scope = "cli"

type ReadLine struct {
	sessions *chat.Sessions
	router   core.CmdRouter
	rl       *readline.Instance
	out      io.Writer
}

func NewReadLine(cfg *config.AppConfig, sessions *chat.Sessions, router core.CmdRouter) (*ReadLine, error) {
	// Ensure runtime directory exists
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          ui.PromptStyle.Render("you") + " › ",
		HistoryFile:     filepath.Join(cfg.RuntimePath, "input_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		sessions: sessions,
		router:   router,
		rl:       rl,
		out:      rl.Stdout(),
	}, nil
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("chat started. Type 'exit' to quit, /help for commands.")

	s := r.sessions.Reset(ctx, scope)
	r.printBot(s.Messages()[0].Text)

	for {
		// Check context before blocking read
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if errors.Is(err, readline.ErrInterrupt) {
				if len(line) == 0 {
					return nil // Exit on Ctrl+C
				}
				continue
			} else if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		r.handle(ctx, line)
	}
}

func (r *ReadLine) handle(ctx context.Context, line string) {
	if out, handled := r.router.Execute(ctx, scope, line); handled {
		fmt.Fprintln(r.out, ui.SystemStyle.Render(conv.MarkdownToPlain(out)))
		return
	}

	turn, err := r.sessions.Get(ctx, scope).SendTurn(ctx, line)
	if err != nil {
		log.FromCtx(ctx).Error().Err(err).Msg("chat turn failed")
		fmt.Fprintf(r.out, "Error: %v\n", err)
		return
	}

	if turn.Escalation.Triggered {
		fmt.Fprintln(r.out, ui.AlertStyle.Render(turn.Bot.Text))
		return
	}
	r.printBot(turn.Bot.Text)
}

func (r *ReadLine) printBot(text string) {
	fmt.Fprintf(r.out, "%s › %s\n", ui.TitleStyle.Render(core.AppName), conv.MarkdownToPlain(text))
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
