package main

import (
	"os"
	"os/signal"

	"github.com/sandevgo/campinnova/internal/transport/mcp"
	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/spf13/cobra"
)

var mcpCmd = &cobra.Command{
	Use:          "mcp",
	Short:        "Serve the triage tools over MCP stdio",
	Long:         `Exposes classify_risk and assess_message to MCP clients. Logs go to stderr; stdout carries the protocol.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLoggerTo(ctx, os.Stderr)
		defer flushLog()

		appCfg := loadConfig(ctx)
		rules, err := initRules(appCfg)
		if err != nil {
			log.FromCtx(ctx).Fatal().Err(err).Msg("failed to load triage rules")
		}

		return mcp.NewServer(rules).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}
