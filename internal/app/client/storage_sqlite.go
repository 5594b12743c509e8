package client

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// SQLiteStorage keeps the client State in a local sqlite file.
type SQLiteStorage struct {
	db *sql.DB
}

func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open state database: %w", err)
	}

	storage := &SQLiteStorage{db: db}

	if err := storage.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init state tables: %w", err)
	}

	return storage, nil
}

func (s *SQLiteStorage) initTables() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS account (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			username TEXT NOT NULL,
			token TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS room_tokens (
			room_id TEXT PRIMARY KEY,
			token TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS selection (
			position INTEGER PRIMARY KEY,
			record_id TEXT NOT NULL UNIQUE
		);
	`)
	return err
}

func (s *SQLiteStorage) LoadState(ctx context.Context) (State, error) {
	state := State{RoomTokens: map[uuid.UUID]string{}}

	err := s.db.QueryRowContext(ctx, `SELECT username, token FROM account WHERE id = 1`).
		Scan(&state.Username, &state.Token)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return State{}, fmt.Errorf("load account: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, `SELECT room_id, token FROM room_tokens`)
	if err != nil {
		return State{}, fmt.Errorf("load room tokens: %w", err)
	}
	for rows.Next() {
		var rawID, token string
		if err := rows.Scan(&rawID, &token); err != nil {
			rows.Close()
			return State{}, fmt.Errorf("scan room token: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		state.RoomTokens[id] = token
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("load room tokens: %w", err)
	}

	rows, err = s.db.QueryContext(ctx, `SELECT record_id FROM selection ORDER BY position`)
	if err != nil {
		return State{}, fmt.Errorf("load selection: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rawID string
		if err := rows.Scan(&rawID); err != nil {
			return State{}, fmt.Errorf("scan selection: %w", err)
		}
		id, err := uuid.Parse(rawID)
		if err != nil {
			continue
		}
		state.Selection = append(state.Selection, id)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("load selection: %w", err)
	}

	return state, nil
}

// SaveState replaces the stored state in one transaction.
func (s *SQLiteStorage) SaveState(ctx context.Context, state State) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range []string{
		`DELETE FROM account`,
		`DELETE FROM room_tokens`,
		`DELETE FROM selection`,
	} {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("clear state: %w", err)
		}
	}

	if state.Token != "" {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO account (id, username, token) VALUES (1, ?, ?)`,
			state.Username, state.Token,
		); err != nil {
			return fmt.Errorf("save account: %w", err)
		}
	}

	for id, token := range state.RoomTokens {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO room_tokens (room_id, token) VALUES (?, ?)`,
			id.String(), token,
		); err != nil {
			return fmt.Errorf("save room token: %w", err)
		}
	}

	for i, id := range state.Selection {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO selection (position, record_id) VALUES (?, ?)`,
			i, id.String(),
		); err != nil {
			return fmt.Errorf("save selection: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}
