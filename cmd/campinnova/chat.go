package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/sandevgo/campinnova/internal/transport/cli"
	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/sandevgo/campinnova/pkg/srv"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:          "chat",
	Short:        "Chat in the terminal",
	Long:         `Opens a fresh chat session in the terminal. Replies come from the relay (RELAY_MODE=http) or straight from the upstream model (RELAY_MODE=direct).`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		appCfg := loadConfig(ctx)

		stack, err := initChat(ctx, appCfg, nil)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize chat")
		}
		srv.StartServices(ctx, stack.services)
		defer srv.StopServices(context.WithoutCancel(ctx), stack.services)

		rl, err := cli.NewReadLine(appCfg, stack.sessions, stack.router)
		if err != nil {
			return err
		}
		defer rl.Shutdown(ctx)

		return rl.Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
