package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/sandevgo/campinnova/pkg/srv"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the configured services",
	Long:  `Starts the relay server and web chat (ENABLE_SERVER), the Telegram bot (ENABLE_TELEGRAM) and the MQTT crisis notifier (ENABLE_MQTT).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		// logger setup
		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		logger.Info().Msg("starting campinnova")

		appCfg := loadConfig(ctx)
		services := NewServices(ctx, appCfg, transports{
			server:   appCfg.EnableServer,
			telegram: appCfg.IsTelegramSelected(),
		})

		srv.StartServices(ctx, services)

		// Wait for shutdown signal
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("campinnova has been shut down gracefully")

		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run only the relay server and web chat",
	Long:  `Serves POST /api/chat, GET /ws/chat, /healthz and /metrics. Other transports are not started.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		appCfg := loadConfig(ctx)
		services := NewServices(ctx, appCfg, transports{server: true})

		srv.StartServices(ctx, services)
		srv.ShutdownServices(ctx, services)
		logger.Info().Msg("relay server stopped")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(serveCmd)
}
