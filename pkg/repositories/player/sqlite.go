package player

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"

	"github.com/fadedpez/tong777/internal/logging"
	"github.com/fadedpez/tong777/pkg/db/migrations"
	"github.com/fadedpez/tong777/pkg/entities"
)

const (
	selectPlayerSQL = `SELECT username, password_digest, balance FROM players WHERE username = ?`

	selectRecordsSQL = `
	SELECT id, game, bet, result, outcome, balance_after, timestamp
	FROM game_records WHERE username = ? ORDER BY position`

	upsertPlayerSQL = `
	INSERT INTO players (username, password_digest, balance, updated_at)
	VALUES (?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT(username) DO UPDATE SET
		password_digest = excluded.password_digest,
		balance = excluded.balance,
		updated_at = excluded.updated_at`

	deleteRecordsSQL = `DELETE FROM game_records WHERE username = ?`

	insertRecordSQL = `
	INSERT INTO game_records (id, username, position, game, bet, result, outcome, balance_after, timestamp)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

// SQLiteRepository implements Repository using SQLite
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens the database and applies pending migrations from source
func NewSQLiteRepository(dbPath string, source fs.FS, logger *logging.Logger) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("error creating database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}
	db.SetMaxOpenConns(1)

	migrator := migrations.NewMigrator(db, source)
	if logger != nil {
		migrator = migrator.WithLogger(logger)
	}
	if _, err := migrator.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("error migrating database: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Load implements Repository
func (r *SQLiteRepository) Load(ctx context.Context, username string) (*entities.PlayerRecord, error) {
	var (
		record  entities.PlayerRecord
		balance string
	)
	err := r.db.QueryRowContext(ctx, selectPlayerSQL, username).Scan(&record.Username, &record.PasswordDigest, &balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("error getting player: %w", err)
	}

	if record.Balance, err = decimal.NewFromString(balance); err != nil {
		return nil, fmt.Errorf("error parsing balance %q: %w", balance, err)
	}

	rows, err := r.db.QueryContext(ctx, selectRecordsSQL, username)
	if err != nil {
		return nil, fmt.Errorf("error getting history: %w", err)
	}
	defer rows.Close()

	record.History = []entities.GameRecord{}
	for rows.Next() {
		rec, err := scanGameRecord(rows)
		if err != nil {
			return nil, err
		}
		record.History = append(record.History, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating history: %w", err)
	}

	return &record, nil
}

func scanGameRecord(rows *sql.Rows) (entities.GameRecord, error) {
	var (
		rec                       entities.GameRecord
		game, outcome, ts         string
		bet, result, balanceAfter string
	)
	if err := rows.Scan(&rec.ID, &game, &bet, &result, &outcome, &balanceAfter, &ts); err != nil {
		return rec, fmt.Errorf("error scanning game record: %w", err)
	}

	rec.Game = entities.GameKind(game)
	rec.Outcome = entities.Result(outcome)

	var err error
	if rec.Bet, err = decimal.NewFromString(bet); err != nil {
		return rec, fmt.Errorf("error parsing bet %q: %w", bet, err)
	}
	if rec.Result, err = decimal.NewFromString(result); err != nil {
		return rec, fmt.Errorf("error parsing result %q: %w", result, err)
	}
	if rec.BalanceAfter, err = decimal.NewFromString(balanceAfter); err != nil {
		return rec, fmt.Errorf("error parsing balance %q: %w", balanceAfter, err)
	}
	if rec.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
		return rec, fmt.Errorf("error parsing timestamp %q: %w", ts, err)
	}
	return rec, nil
}

// Save implements Repository. The player row and its history are replaced in one transaction.
func (r *SQLiteRepository) Save(ctx context.Context, record *entities.PlayerRecord) error {
	if err := ValidateUsername(record.Username); err != nil {
		return err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("error beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, upsertPlayerSQL, record.Username, record.PasswordDigest, record.Balance.StringFixed(2)); err != nil {
		return fmt.Errorf("error saving player: %w", err)
	}
	if _, err := tx.ExecContext(ctx, deleteRecordsSQL, record.Username); err != nil {
		return fmt.Errorf("error clearing history: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, insertRecordSQL)
	if err != nil {
		return fmt.Errorf("error preparing history insert: %w", err)
	}
	defer stmt.Close()

	for i, rec := range record.History {
		id := rec.ID
		if id == "" {
			id = uuid.New().String()
		}
		_, err := stmt.ExecContext(ctx,
			id,
			record.Username,
			i,
			string(rec.Game),
			rec.Bet.StringFixed(2),
			rec.Result.StringFixed(2),
			string(rec.Outcome),
			rec.BalanceAfter.StringFixed(2),
			rec.Timestamp.UTC().Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("error saving game record: %w", err)
		}
	}

	return tx.Commit()
}

// Close implements Repository
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}
