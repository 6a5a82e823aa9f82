package factory

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/suite"

	"github.com/fadedpez/tong777/internal/config"
	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/pkg/repositories/player"
)

type FactoryTestSuite struct {
	suite.Suite
	dataDir string
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactoryTestSuite))
}

func (s *FactoryTestSuite) SetupTest() {
	s.dataDir = s.T().TempDir()
	s.T().Setenv("DATA_DIR", s.dataDir)
	s.T().Setenv("ELASTICSEARCH_URL", "")
	s.T().Setenv("RNG_SEED", "0")
}

func (s *FactoryTestSuite) load(storage string) *config.Config {
	s.T().Setenv("STORAGE_TYPE", storage)
	cfg, err := config.Load()
	s.Require().NoError(err)
	return cfg
}

func (s *FactoryTestSuite) TestRepositoryBackends() {
	mini := miniredis.RunT(s.T())
	s.T().Setenv("REDIS_URL", "redis://"+mini.Addr()+"/0")

	tests := []struct {
		storage string
		want    interface{}
	}{
		{storage: config.StorageMemory, want: &player.MemoryRepository{}},
		{storage: config.StorageFile, want: &player.FileRepository{}},
		{storage: config.StorageSQLite, want: &player.SQLiteRepository{}},
		{storage: config.StorageRedis, want: &player.RedisRepository{}},
	}

	for _, tt := range tests {
		s.Run(tt.storage, func() {
			repo, err := NewRepository(s.load(tt.storage), logging.Nop())
			s.Require().NoError(err)
			defer repo.Close()

			s.IsType(tt.want, repo)
		})
	}
}

func (s *FactoryTestSuite) TestSQLitePathDefaultsUnderDataDir() {
	cfg := s.load(config.StorageSQLite)

	s.Equal(filepath.Join(s.dataDir, "tong777.db"), cfg.SQLitePath)
}

func (s *FactoryTestSuite) TestNewWiresService() {
	// Setup
	s.T().Setenv("STARTING_BALANCE", "42.00")
	cfg := s.load(config.StorageMemory)

	// Execute
	app, err := New(cfg, logging.Nop())
	s.Require().NoError(err)
	defer app.Close()

	// Assert
	s.Nil(app.Archiver)
	sess, err := app.Service.Register(context.Background(), "alice", "pw")
	s.Require().NoError(err)
	s.Equal("42.00", sess.Balance().StringFixed(2))
}

func (s *FactoryTestSuite) TestNewWithArchive() {
	s.T().Setenv("ELASTICSEARCH_URL", "http://127.0.0.1:9200")
	s.T().Setenv("ELASTICSEARCH_INDEX_PREFIX", "casino")

	app, err := New(s.load(config.StorageMemory), logging.Nop())
	s.Require().NoError(err)
	defer app.Close()

	s.Require().NotNil(app.Archiver)
	s.Contains(app.Archiver.IndexFor(time.Now()), "casino_rounds_")
}

func (s *FactoryTestSuite) TestGamesConfig() {
	s.T().Setenv("BLACKJACK_NATURAL_PAYOUT", "1.2")
	s.T().Setenv("SLOTS_WEIGHTED", "false")
	cfg := s.load(config.StorageMemory)

	got := GamesConfig(cfg)

	s.Equal("1.2", got.Blackjack.NaturalPayout.String())
	s.Equal(17, got.Blackjack.DealerStandsOn)
	s.False(got.Slots.Weighted)
	s.Equal(int64(100), got.Slots.JackpotMultiplier)
}

func (s *FactoryTestSuite) TestUnknownStorage() {
	cfg := &config.Config{StorageType: "postgres"}

	_, err := NewRepository(cfg, logging.Nop())

	s.ErrorContains(err, "invalid storage type")
}
