package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/campuskit/campusweb/internal/devreload"
	"github.com/campuskit/campusweb/internal/identity"
	"github.com/campuskit/campusweb/internal/view"
	"github.com/campuskit/campusweb/internal/web"
	"github.com/campuskit/campusweb/pkg/config"
	"github.com/campuskit/campusweb/pkg/cookie"
	"github.com/campuskit/campusweb/pkg/environment"
	"github.com/campuskit/campusweb/pkg/httpserver"
	"github.com/campuskit/campusweb/pkg/logger"
	"github.com/campuskit/campusweb/pkg/pg"
	"github.com/campuskit/campusweb/pkg/redis"
	"github.com/campuskit/campusweb/pkg/requestid"
	"github.com/campuskit/campusweb/pkg/session"
)

type appConfig struct {
	Env            string   `env:"APP_ENV" envDefault:"development"`
	Port           int      `env:"PORT" envDefault:"3000"`
	SessionSecrets []string `env:"SESSION_SECRETS,required" envSeparator:","`
	SessionStore   string   `env:"SESSION_STORE" envDefault:"memory"`
}

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	var cfg appConfig
	config.MustLoad(&cfg)

	env := environment.Parse(cfg.Env)

	log := logger.New(
		logger.WithEnvironment(env, "campusweb"),
		logger.WithContextExtractors(
			environment.LoggerExtractor(),
			requestid.LoggerExtractor(),
		),
	)
	logger.SetAsDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sessCfg session.Config
	config.MustLoad(&sessCfg)
	if !env.IsDevelopment() {
		sessCfg.SecureCookies = true
	}

	store, verifier, registrar, err := buildBackends(ctx, cfg.SessionStore, log)
	if err != nil {
		return err
	}

	cookies, err := cookie.New(cfg.SessionSecrets)
	if err != nil {
		return fmt.Errorf("cookie manager: %w", err)
	}

	sessions := session.NewManager(
		session.WithStore(store),
		session.WithConfig(sessCfg),
		session.WithLogger(log),
		session.WithCookieManager(cookies),
	)

	cleaner := session.NewCleaner(store, log, sessCfg.OpTimeout)
	cleaner.Start(sessCfg.CleanupInterval)
	defer cleaner.Stop()

	site := web.NewSite(web.Deps{
		Logger:    log,
		Env:       env,
		Views:     view.MustNewEngine(),
		Sessions:  sessions,
		Verifier:  verifier,
		Registrar: registrar,
	})

	if env.IsDevelopment() {
		reload := devreload.New(log)
		go func() {
			if err := reload.Run(ctx, fmt.Sprintf(":%d", cfg.Port+1)); err != nil {
				log.Error("dev reload endpoint failed", slog.Any("error", err))
			}
		}()
	}

	var srvCfg httpserver.Config
	config.MustLoad(&srvCfg)
	srv := httpserver.NewFromConfig(srvCfg,
		httpserver.WithAddr(fmt.Sprintf(":%d", cfg.Port)),
		httpserver.WithLogger(log),
	)

	log.Info("starting campusweb",
		slog.String("env", env.String()),
		slog.Int("port", cfg.Port),
		slog.String("session_store", cfg.SessionStore),
	)

	return srv.Run(ctx, site.Router())
}

// buildBackends selects the session store and credential backend for
// the configured mode. Postgres keeps both sessions and credentials in
// the database; redis and memory pair with the env-seeded account.
func buildBackends(ctx context.Context, mode string, log *slog.Logger) (session.Store, identity.Verifier, identity.Registrar, error) {
	switch mode {
	case "postgres":
		var pgCfg pg.Config
		config.MustLoad(&pgCfg)
		pool, err := pg.Connect(ctx, pgCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("postgres: %w", err)
		}

		store := session.NewPGStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("session schema: %w", err)
		}

		verifier := identity.NewPGVerifier(pool)
		if err := verifier.EnsureSchema(ctx); err != nil {
			return nil, nil, nil, fmt.Errorf("identity schema: %w", err)
		}
		return store, verifier, verifier, nil

	case "redis":
		var redisCfg redis.Config
		config.MustLoad(&redisCfg)
		client, err := redis.Connect(ctx, redisCfg)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("redis: %w", err)
		}

		verifier := staticVerifier()
		return session.NewRedisStore(client), verifier, verifier, nil

	case "memory":
		log.Warn("using in-memory session store, sessions are lost on restart")
		verifier := staticVerifier()
		return session.NewMemoryStore(), verifier, verifier, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown SESSION_STORE %q, want postgres, redis or memory", mode)
	}
}

func staticVerifier() *identity.StaticVerifier {
	var cfg identity.StaticConfig
	config.MustLoad(&cfg)
	return identity.NewStaticVerifier(cfg)
}
