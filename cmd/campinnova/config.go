package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/service/ui"
	"github.com/sandevgo/campinnova/pkg/env"
	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/spf13/cobra"
)

var writeEnv bool

var configCmd = &cobra.Command{
	Use:          "config",
	Short:        "Show the effective configuration",
	Long:         `Prints the configuration resolved from the environment and the runtime .env file, with credentials masked. --write saves it to the runtime .env file.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		logger := log.FromCtx(ctx)
		appCfg := loadConfig(ctx)

		sections, err := collectConfig(appCfg)
		if err != nil {
			return err
		}

		marshal := env.MarshalEnvMasked
		if writeEnv {
			marshal = env.MarshalEnv
		}

		var sb strings.Builder
		for _, s := range sections {
			body, err := marshal(s.cfg)
			if err != nil {
				return fmt.Errorf("%s: %w", s.name, err)
			}
			if body == "" {
				continue
			}
			if writeEnv {
				fmt.Fprintf(&sb, "# %s\n%s\n", s.name, body)
			} else {
				fmt.Fprintf(&sb, "%s\n%s\n", ui.TitleStyle.Render(s.name), body)
			}
		}

		if !writeEnv {
			fmt.Fprint(cmd.OutOrStdout(), sb.String())
			return nil
		}

		path := filepath.Join(appCfg.GetRuntimePath(), ".env")
		if err := os.MkdirAll(appCfg.GetRuntimePath(), 0755); err != nil {
			return fmt.Errorf("failed to create runtime directory: %w", err)
		}
		if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		logger.Info().Str("path", path).Msg("configuration saved")
		return nil
	},
}

type configSection struct {
	name string
	cfg  any
}

func collectConfig(appCfg *config.AppConfig) ([]configSection, error) {
	relayCfg, err := config.LoadRelayConfig()
	if err != nil {
		return nil, err
	}
	upstreamCfg, err := config.LoadUpstreamConfig()
	if err != nil {
		return nil, err
	}
	serverCfg, err := config.LoadServerConfig()
	if err != nil {
		return nil, err
	}

	sections := []configSection{
		{name: "App", cfg: appCfg},
		{name: "Relay", cfg: relayCfg},
		{name: "Upstream", cfg: upstreamCfg},
		{name: "Server", cfg: serverCfg},
	}

	if appCfg.IsTelegramSelected() {
		tg, err := config.LoadTelegramConfig()
		if err != nil {
			return nil, err
		}
		sections = append(sections, configSection{name: "Telegram", cfg: tg})
	}
	if appCfg.EnableMQTT {
		mq, err := config.LoadMQTTConfig()
		if err != nil {
			return nil, err
		}
		sections = append(sections, configSection{name: "MQTT", cfg: mq})
	}
	return sections, nil
}

func init() {
	configCmd.Flags().BoolVarP(&writeEnv, "write", "w", false, "write the configuration to the runtime .env file")
	rootCmd.AddCommand(configCmd)
}
