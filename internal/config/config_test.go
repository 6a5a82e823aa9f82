package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigTestSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func (s *ConfigTestSuite) TestDefaults() {
	// Setup
	s.T().Setenv("DATA_DIR", "/tmp/tong")

	// Execute
	cfg, err := Load()

	// Assert
	s.Require().NoError(err)
	s.Equal("development", cfg.Environment)
	s.True(cfg.IsDevelopment())
	s.Equal(StorageFile, cfg.StorageType)
	s.Equal(filepath.Join("/tmp/tong", "tong777.db"), cfg.SQLitePath)
	s.Equal(filepath.Join("/tmp/tong", "players"), cfg.PlayersDir())
	s.Equal("100.00", cfg.StartingBalanceAmount().StringFixed(2))
	s.Equal("1.5", cfg.NaturalPayout().String())
	s.Equal(100, cfg.HistoryLimit)
	s.Equal(17, cfg.BlackjackDealerStandsOn)
	s.True(cfg.SlotsWeighted)
	s.Equal(int64(100), cfg.SlotsJackpotMultiplier)
	s.False(cfg.ArchiveEnabled())
}

func (s *ConfigTestSuite) TestOverrides() {
	// Setup
	s.T().Setenv("STORAGE_TYPE", "redis")
	s.T().Setenv("STARTING_BALANCE", "250.5")
	s.T().Setenv("HISTORY_LIMIT", "10")
	s.T().Setenv("SLOTS_WEIGHTED", "false")
	s.T().Setenv("RNG_SEED", "42")
	s.T().Setenv("ELASTICSEARCH_URL", "http://localhost:9200")

	// Execute
	cfg, err := Load()

	// Assert
	s.Require().NoError(err)
	s.Equal(StorageRedis, cfg.StorageType)
	s.Equal("250.50", cfg.StartingBalanceAmount().StringFixed(2))
	s.Equal(10, cfg.HistoryLimit)
	s.False(cfg.SlotsWeighted)
	s.Equal(uint64(42), cfg.RNGSeed)
	s.True(cfg.ArchiveEnabled())
}

func (s *ConfigTestSuite) TestValidation() {
	testCases := []struct {
		name  string
		key   string
		value string
	}{
		{name: "Unknown storage", key: "STORAGE_TYPE", value: "postgres"},
		{name: "Negative balance", key: "STARTING_BALANCE", value: "-1"},
		{name: "Garbage balance", key: "STARTING_BALANCE", value: "lots"},
		{name: "Zero history", key: "HISTORY_LIMIT", value: "0"},
		{name: "Negative multiplier", key: "SLOTS_LARGE_MULTIPLIER", value: "-25"},
		{name: "Natural below even money", key: "BLACKJACK_NATURAL_PAYOUT", value: "0.5"},
		{name: "Dealer threshold out of range", key: "BLACKJACK_DEALER_STANDS_ON", value: "30"},
		{name: "Unparseable int", key: "HISTORY_LIMIT", value: "many"},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.T().Setenv(tc.key, tc.value)

			cfg, err := Load()

			s.Error(err)
			s.Nil(cfg)
		})
	}
}
