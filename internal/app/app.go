package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/Alejmm/MicroservicioPlayers/external/teams"
	"github.com/Alejmm/MicroservicioPlayers/internal/config"
	"github.com/Alejmm/MicroservicioPlayers/internal/domain/player"
	cacherepo "github.com/Alejmm/MicroservicioPlayers/internal/infrastructure/repository/cache"
	"github.com/Alejmm/MicroservicioPlayers/internal/infrastructure/repository/memory"
	"github.com/Alejmm/MicroservicioPlayers/internal/infrastructure/repository/postgres"
	"github.com/Alejmm/MicroservicioPlayers/internal/interfaces/httpapi"
	basecache "github.com/Alejmm/MicroservicioPlayers/internal/platform/cache"
	idgen "github.com/Alejmm/MicroservicioPlayers/internal/platform/id"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/logging"
	"github.com/Alejmm/MicroservicioPlayers/internal/platform/resilience"
	"github.com/Alejmm/MicroservicioPlayers/internal/usecase"
)

// Services holds the wired player service and the resources it owns.
type Services struct {
	Players *usecase.PlayerService
	db      *sqlx.DB
}

func (s *Services) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// NewServices wires storage, the read cache and the team directory into a PlayerService.
func NewServices(ctx context.Context, cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repo, db, err := newPlayerRepository(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	if cfg.CacheEnabled {
		repo = cacherepo.NewPlayerRepository(repo, basecache.NewStore(cfg.CacheTTL))
	}

	directory, err := newTeamDirectory(cfg, logger)
	if err != nil {
		if db != nil {
			_ = db.Close()
		}
		return nil, err
	}

	return &Services{
		Players: usecase.NewPlayerService(repo, directory, logger.Named("usecase")),
		db:      db,
	}, nil
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil || services.Players == nil {
		return nil, fmt.Errorf("player service is required")
	}
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Players, cfg.ServiceName, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		ServiceName:        cfg.ServiceName,
		RoutePrefix:        cfg.RoutePrefix,
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		InternalToken:      cfg.InternalToken,
		RequestIDs:         idgen.NewRandomGenerator(0),
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

func newPlayerRepository(ctx context.Context, cfg config.Config, logger *logging.Logger) (player.Repository, *sqlx.DB, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Info("using in-memory player storage")
		return memory.NewPlayerRepository(memory.SeedPlayers()), nil, nil
	case config.StorageDriverPostgres, "":
		db, err := OpenDB(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("using postgres player storage", "database", dbNameFromURL(cfg.DBURL))
		return postgres.NewPlayerRepository(db), db, nil
	default:
		return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
}

// OpenDB opens a traced postgres handle and verifies the connection.
func OpenDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := DatabaseURL(cfg)
	dbName := dbNameFromURL(dsn)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.DBMaxOpenConns)
	db.SetMaxIdleConns(cfg.DBMaxIdleConns)
	db.SetConnMaxLifetime(cfg.DBConnMaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		return nil, errors.Join(fmt.Errorf("ping database: %w", err), db.Close())
	}
	otelsql.ReportDBStatsMetrics(db.DB, otelsql.WithDBName(dbName))

	return db, nil
}

func newTeamDirectory(cfg config.Config, logger *logging.Logger) (*teams.Directory, error) {
	policy, err := teams.ParseRefreshPolicy(cfg.TeamsRefreshPolicy, cfg.TeamsRefreshTTL)
	if err != nil {
		return nil, fmt.Errorf("team directory refresh policy: %w", err)
	}

	client := teams.NewClient(teams.ClientConfig{
		BaseURL: cfg.TeamsBaseURL,
		Path:    cfg.TeamsPath,
		Timeout: cfg.TeamsTimeout,
		Logger:  logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.TeamsCircuitEnabled,
			FailureThreshold: cfg.TeamsCircuitFailureCount,
			OpenTimeout:      cfg.TeamsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.TeamsCircuitHalfOpenMaxReq,
		},
	})

	return teams.NewDirectory(client, policy, logger), nil
}
