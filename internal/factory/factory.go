// Package factory wires the configured storage, archive, engines and
// session service together.
package factory

import (
	"errors"
	"fmt"

	"github.com/fadedpez/tong777/internal/config"
	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/pkg/auth"
	"github.com/fadedpez/tong777/pkg/db/migrations"
	"github.com/fadedpez/tong777/pkg/games"
	"github.com/fadedpez/tong777/pkg/repositories/history"
	"github.com/fadedpez/tong777/pkg/repositories/player"
	"github.com/fadedpez/tong777/pkg/rng"
	"github.com/fadedpez/tong777/pkg/services/blackjack"
	"github.com/fadedpez/tong777/pkg/services/session"
	"github.com/fadedpez/tong777/pkg/services/slots"
)

// App contains all wired application components
type App struct {
	Config     *config.Config
	Logger     *logging.Logger
	Repository player.Repository
	// Archiver is nil when ELASTICSEARCH_URL is empty
	Archiver *history.ElasticsearchArchiver
	Engines  *games.Engines
	Service  *session.Service
}

// New builds the application described by cfg
func New(cfg *config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Nop()
	}

	repo, err := NewRepository(cfg, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:     cfg,
		Logger:     logger,
		Repository: repo,
		Engines:    games.NewEngines(GamesConfig(cfg)),
	}

	opts := []session.Option{
		session.WithEngines(app.Engines),
		session.WithLogger(logger.Named("session")),
	}

	if cfg.ArchiveEnabled() {
		archiver, err := history.NewElasticsearchArchiver(history.Config{
			URL:         cfg.ElasticsearchURL,
			Username:    cfg.ElasticsearchUsername,
			Password:    cfg.ElasticsearchPassword,
			IndexPrefix: cfg.ElasticsearchIndexPrefix,
		})
		if err != nil {
			repo.Close()
			return nil, err
		}
		app.Archiver = archiver
		opts = append(opts, session.WithArchiver(archiver))
	}

	if cfg.RNGSeed != 0 {
		logger.Warn("Using fixed RNG seed %d", cfg.RNGSeed)
		opts = append(opts, session.WithRNG(rng.New(cfg.RNGSeed)))
	}

	app.Service = session.NewService(repo, auth.NewBcryptHasher(0), session.Config{
		StartingBalance: cfg.StartingBalanceAmount(),
		HistoryLimit:    cfg.HistoryLimit,
	}, opts...)

	return app, nil
}

// Close releases the storage backend
func (a *App) Close() error {
	return a.Repository.Close()
}

// NewRepository opens the player store selected by STORAGE_TYPE
func NewRepository(cfg *config.Config, logger *logging.Logger) (player.Repository, error) {
	switch cfg.StorageType {
	case config.StorageMemory:
		logger.Warn("Using in-memory player storage (data will be lost on exit)")
		return player.NewMemoryRepository(), nil
	case config.StorageFile:
		logger.Debug("Storing players under %s", cfg.PlayersDir())
		return player.NewFileRepository(cfg.PlayersDir())
	case config.StorageSQLite:
		logger.Debug("Opening SQLite player store at %s", cfg.SQLitePath)
		return player.NewSQLiteRepository(cfg.SQLitePath, migrations.Source(cfg.MigrationsDir), logger.Named("migrations"))
	case config.StorageRedis:
		logger.Debug("Connecting to Redis player store")
		return player.NewRedisRepository(cfg.RedisURL, cfg.RedisPrefix)
	case "":
		return nil, errors.New("storage type is required")
	default:
		return nil, fmt.Errorf("invalid storage type %q", cfg.StorageType)
	}
}

// GamesConfig maps the game settings onto the engines
func GamesConfig(cfg *config.Config) games.Config {
	return games.Config{
		Blackjack: blackjack.Config{
			NaturalPayout:  cfg.NaturalPayout(),
			DealerStandsOn: cfg.BlackjackDealerStandsOn,
		},
		Slots: slots.Config{
			Weighted:          cfg.SlotsWeighted,
			SpecialWeight:     cfg.SlotsSpecialWeight,
			JackpotMultiplier: cfg.SlotsJackpotMultiplier,
			LargeMultiplier:   cfg.SlotsLargeMultiplier,
			SmallMultiplier:   cfg.SlotsSmallMultiplier,
			MatchMultiplier:   cfg.SlotsMatchMultiplier,
		},
	}
}
