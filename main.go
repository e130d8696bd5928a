package main

import (
	"fmt"
	"os"

	"nacp/pkg/geocode"
	"nacp/pkg/session"
	"nacp/pkg/survey"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var (
	jwtSecret []byte // loaded from env JWT_SECRET (fallback to dev default)
	logger    *zap.Logger
)

func main() {
	cfg := loadConfig()

	var err error
	logger, err = newLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	jwtSecret = []byte(cfg.JWTSecret)

	// Support a lightweight migrate command: `./nacp migrate`
	// It runs AutoMigrate and seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		initDB(cfg)
		logger.Info("migration and seeding completed")
		return
	}

	initDB(cfg)

	sessions, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("session store init failed", zap.Error(err))
	}

	app := newApp(cfg, sessions)

	r := gin.Default()
	setupRoutes(r, app)

	logger.Info("census API listening", zap.String("addr", cfg.Addr))
	if err := r.Run(cfg.Addr); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func newSessionStore(cfg Config) (session.Store, error) {
	if cfg.SessionBackend == "redis" {
		return session.NewRedisStore(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.SessionTTL)
	}
	return session.NewMemoryStore(), nil
}

// app bundles the collaborators the handlers need.
type app struct {
	store     *censusStore
	registry  *survey.Registry
	tracker   *survey.Tracker
	navigator *survey.Navigator
	sessions  session.Store
	geocoder  *geocode.Client
}

func newApp(cfg Config, sessions session.Store) *app {
	store := newCensusStore(db)
	registry := survey.DefaultRegistry()
	return &app{
		store:     store,
		registry:  registry,
		tracker:   survey.NewTracker(store, registry),
		navigator: survey.NewNavigator(registry),
		sessions:  sessions,
		geocoder:  geocode.New(cfg.GeocodeBaseURL, cfg.GeocodeTimeout, logger),
	}
}
