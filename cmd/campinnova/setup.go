package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sandevgo/campinnova/internal/config"
	"github.com/sandevgo/campinnova/internal/core"
	"github.com/sandevgo/campinnova/internal/providers/llm"
	"github.com/sandevgo/campinnova/internal/providers/notify"
	"github.com/sandevgo/campinnova/internal/service/chat"
	"github.com/sandevgo/campinnova/internal/service/command"
	"github.com/sandevgo/campinnova/internal/service/escalation"
	"github.com/sandevgo/campinnova/internal/service/memory"
	"github.com/sandevgo/campinnova/internal/service/persistence"
	"github.com/sandevgo/campinnova/internal/service/relay"
	"github.com/sandevgo/campinnova/internal/service/telemetry"
	"github.com/sandevgo/campinnova/internal/service/triage"
	memstore "github.com/sandevgo/campinnova/internal/storage/memory"
	"github.com/sandevgo/campinnova/internal/storage/sqlite"
	"github.com/sandevgo/campinnova/internal/transport/httpapi"
	"github.com/sandevgo/campinnova/internal/transport/telegram"
	"github.com/sandevgo/campinnova/pkg/log"
	"github.com/sandevgo/campinnova/pkg/srv"
)

// transports selects which chat views a command runs.
type transports struct {
	server   bool
	telegram bool
}

// chatStack is everything a chat view needs. services must be started before
// the views and stopped after them.
type chatStack struct {
	sessions *chat.Sessions
	router   *command.Router
	services []srv.Service
}

func NewServices(ctx context.Context, appCfg *config.AppConfig, sel transports) []srv.Service {
	logger := log.FromCtx(ctx)

	// 1. Upstream, needed by the relay endpoint and by direct mode
	var upstream *relay.Upstream
	if sel.server || appCfg.RelayMode == "direct" {
		var err error
		upstream, err = initUpstream(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize LLM provider")
		}
	}

	// 2. Chat pipeline
	stack, err := initChat(ctx, appCfg, upstream)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialize chat")
	}
	services := stack.services

	// 3. Transports
	if sel.server {
		server := httpapi.NewServer(config.NewServerConfig(ctx), httpapi.Deps{
			Completer: upstream,
			Sessions:  stack.sessions,
			Router:    stack.router,
			Gatherer:  prometheus.DefaultGatherer,
		})
		services = append(services, server)
	}

	if sel.telegram {
		bot, err := telegram.NewBot(ctx, config.NewTelegramConfig(ctx), stack.sessions, stack.router)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to initialize telegram bot")
		}
		services = append(services, bot)
	}

	return services
}

func initChat(ctx context.Context, appCfg *config.AppConfig, upstream *relay.Upstream) (*chatStack, error) {
	stack := &chatStack{}

	store, cleanup, err := initStorage(ctx, appCfg)
	if err != nil {
		return nil, fmt.Errorf("storage: %w", err)
	}
	if cleanup != nil {
		stack.services = append(stack.services, cleanup)
	}

	rules, err := initRules(appCfg)
	if err != nil {
		return nil, fmt.Errorf("triage rules: %w", err)
	}

	notifier, notifierServices := initNotifier(ctx, appCfg)
	stack.services = append(stack.services, notifierServices...)

	relayCfg := config.NewRelayConfig(ctx)
	var completer core.Completer
	if appCfg.RelayMode == "direct" {
		if upstream == nil {
			if upstream, err = initUpstream(ctx); err != nil {
				return nil, fmt.Errorf("upstream: %w", err)
			}
		}
		completer = upstream
	} else {
		completer = relay.NewClient(relayCfg.GetRelayURL())
	}

	manager := chat.NewManager(
		chat.Config{
			WindowSize: appCfg.GetContextWindowSize(),
			Keys: persistence.Keys{
				History:   appCfg.HistoryKey,
				StartedAt: appCfg.StartedAtKey,
			},
		},
		chat.Deps{
			Classifier: rules,
			Escalation: escalation.NewController(rules, notifier),
			Relay:      relay.New(completer, relayCfg.GetRelayTimeout()),
			Store:      store,
			Telemetry: telemetry.Multi{
				telemetry.NewLogEmitter(*log.FromCtx(ctx)),
				telemetry.NewMetrics(prometheus.DefaultRegisterer),
			},
		},
	)

	stack.sessions = chat.NewSessions(manager)
	stack.router = command.NewChatRouter(stack.sessions)
	return stack, nil
}

func initStorage(ctx context.Context, cfg *config.AppConfig) (core.KVStore, srv.Service, error) {
	if cfg.Storage == "memory" {
		return memstore.NewKV(), nil, nil
	}

	db, err := sqlite.NewDB(ctx, cfg.GetDatabasePath())
	if err != nil {
		return nil, nil, err
	}
	return sqlite.NewKVRepo(db), srv.NewCleanup(db.Close), nil
}

func initRules(cfg *config.AppConfig) (*triage.RuleSet, error) {
	if cfg.RulesPath == "" {
		return triage.Default(), nil
	}
	return triage.Load(cfg.RulesPath)
}

func initNotifier(ctx context.Context, cfg *config.AppConfig) (core.Notifier, []srv.Service) {
	logNotifier := notify.NewLogNotifier()
	if !cfg.EnableMQTT {
		return logNotifier, nil
	}

	mqtt := notify.NewMQTTNotifier(config.NewMQTTConfig(ctx))
	return notify.Multi{logNotifier, mqtt}, []srv.Service{mqtt}
}

func initUpstream(ctx context.Context) (*relay.Upstream, error) {
	provider, err := llm.NewProvider(ctx, config.NewUpstreamConfig(ctx))
	if err != nil {
		return nil, err
	}
	return relay.NewUpstream(provider, memory.NewSysPrompt(config.NewServerConfig(ctx))), nil
}

func initEnv(ctx context.Context, runtimePath string) error {
	logger := log.FromCtx(ctx)
	envFile := filepath.Join(runtimePath, ".env")

	if _, err := os.Stat(envFile); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := godotenv.Load(envFile); err != nil {
		logger.Warn().Err(err).Str("path", envFile).Msg("failed to load .env file")
		return err
	}

	logger.Debug().Str("path", envFile).Msg("loaded .env file")
	return nil
}

// loadConfig reads the runtime .env and the application config, fatally on error.
func loadConfig(ctx context.Context) *config.AppConfig {
	if err := initEnv(ctx, config.GetRuntimePath()); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to init env")
	}
	return config.NewAppConfig(ctx)
}
