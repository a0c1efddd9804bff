package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Stembetevo/fairplay/internal/config"
	"github.com/Stembetevo/fairplay/internal/domain/match"
	"github.com/Stembetevo/fairplay/internal/domain/membership"
	"github.com/Stembetevo/fairplay/internal/domain/player"
	"github.com/Stembetevo/fairplay/internal/domain/team"
	"github.com/Stembetevo/fairplay/internal/infrastructure/account"
	"github.com/Stembetevo/fairplay/internal/infrastructure/repository/memory"
	"github.com/Stembetevo/fairplay/internal/infrastructure/repository/postgres"
	"github.com/Stembetevo/fairplay/internal/interfaces/httpapi"
	"github.com/Stembetevo/fairplay/internal/platform/cache"
	idgen "github.com/Stembetevo/fairplay/internal/platform/id"
	"github.com/Stembetevo/fairplay/internal/platform/logging"
	"github.com/Stembetevo/fairplay/internal/platform/resilience"
	"github.com/Stembetevo/fairplay/internal/usecase"
)

// App holds the wired HTTP server and the resources it owns.
type App struct {
	Server *http.Server
	DB     *sqlx.DB
	Logger *logging.Logger
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	slogLogger := logger.Slog()

	var (
		playerRepo     player.Repository
		teamRepo       team.Repository
		membershipRepo membership.Repository
		matchRepo      match.Repository
		txManager      usecase.TxManager
		verifier       httpapi.TokenVerifier
		db             *sqlx.DB
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		conn, err := openDB(cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		db = conn

		playerRepo = postgres.NewPlayerRepository(db)
		teamRepo = postgres.NewTeamRepository(db)
		membershipRepo = postgres.NewMembershipRepository(db)
		matchRepo = postgres.NewMatchRepository(db)
		txManager = postgres.NewTxManager(db)

		client, err := account.NewClient(account.ClientConfig{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			Timeout:        cfg.AccountTimeout,
			Logger:         logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMaxReq,
			},
			CacheTTL: cfg.AccountCacheTTL,
		})
		if err != nil {
			closeDB(db, logger)
			return nil, fmt.Errorf("build account client: %w", err)
		}
		verifier = client
	case config.StorageMemory:
		players := memory.SeedPlayers()
		if !cfg.SeedDemoData {
			players = nil
		}
		playerRepo = memory.NewPlayerRepository(players)
		teamRepo = memory.NewTeamRepository(nil)
		membershipRepo = memory.NewMembershipRepository(nil)
		matchRepo = memory.NewMatchRepository(nil)
		txManager = memory.NewTxManager()
		verifier = account.NewStaticVerifier()
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}

	var records *cache.Store
	if cfg.CacheEnabled {
		records = cache.NewStore(cfg.CacheTTL)
	}

	generator := idgen.NewRandomGenerator()

	playerSvc := usecase.NewPlayerService(playerRepo, generator, slogLogger)
	rosterSvc := usecase.NewRosterService(playerRepo, teamRepo, membershipRepo, txManager, generator, slogLogger)
	matchSvc := usecase.NewMatchService(matchRepo, teamRepo, playerRepo, records, generator, slogLogger)
	historySvc := usecase.NewHistoryService(teamRepo, playerRepo, membershipRepo, matchRepo, records, slogLogger)

	handler := httpapi.NewHandler(playerSvc, rosterSvc, matchSvc, historySvc, slogLogger)
	router := httpapi.NewRouter(handler, verifier, slogLogger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		closeDB(db, logger)
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server: server,
		DB:     db,
		Logger: logger,
	}, nil
}

// Close releases resources not owned by the HTTP server.
func (a *App) Close(ctx context.Context) error {
	if a == nil || a.DB == nil {
		return nil
	}
	done := make(chan error, 1)
	go func() { done <- a.DB.Close() }()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Connect("postgres", dbURL,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dbURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)

	return db, nil
}

func closeDB(db *sqlx.DB, logger *logging.Logger) {
	if db == nil {
		return
	}
	if err := db.Close(); err != nil {
		logger.Warn("close database failed", "error", err)
	}
}
