// Package storage provides SQLite-based persistence for player records.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for player records.
type Store struct {
	db *sql.DB
}

// Outcome is how a game ended.
type Outcome string

const (
	OutcomeWon  Outcome = "won"
	OutcomeLost Outcome = "lost"
	OutcomeQuit Outcome = "quit"
)

// PlayerRecord is the running tally of one player.
type PlayerRecord struct {
	Name        string
	BestRuns    int
	PerfectRuns int
	UpdatedAt   time.Time
}

// GameResult is one finished game.
type GameResult struct {
	ID        int64
	Player    string
	Disks     int
	Moves     int
	Outcome   Outcome
	Best      bool // Won within a few moves of the minimum
	Perfect   bool // Won in exactly the minimum
	Duration  time.Duration
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS meta (
			key TEXT PRIMARY KEY,
			value INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS players (
			name TEXT PRIMARY KEY,
			best_runs INTEGER NOT NULL DEFAULT 0,
			perfect_runs INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			disks INTEGER NOT NULL,
			moves INTEGER NOT NULL,
			outcome TEXT NOT NULL,
			best INTEGER NOT NULL DEFAULT 0,
			perfect INTEGER NOT NULL DEFAULT 0,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_games_player ON games(player);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// NextPlayerName advances the persisted seed counter and returns a fresh
// generated name, player_1 on a new database.
func (s *Store) NextPlayerName() (string, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	var seed int64
	err = tx.QueryRow("SELECT value FROM meta WHERE key = 'player_seed'").Scan(&seed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", fmt.Errorf("storage: cannot read player seed: %w", err)
	}
	seed++

	if _, err := tx.Exec(
		`INSERT INTO meta (key, value) VALUES ('player_seed', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		seed,
	); err != nil {
		return "", fmt.Errorf("storage: cannot update player seed: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit player seed: %w", err)
	}
	return fmt.Sprintf("player_%d", seed), nil
}

// Player returns the record of name. An unknown player has a zero tally.
func (s *Store) Player(name string) (PlayerRecord, error) {
	rec := PlayerRecord{Name: name}
	var updated any
	err := s.db.QueryRow(
		"SELECT best_runs, perfect_runs, updated_at FROM players WHERE name = ?",
		name,
	).Scan(&rec.BestRuns, &rec.PerfectRuns, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return rec, nil
	}
	if err != nil {
		return rec, fmt.Errorf("storage: cannot query player: %w", err)
	}
	rec.UpdatedAt = parseTime(updated)
	return rec, nil
}

// SaveResult records a finished game and, for a win, bumps the player's
// best and perfect run counters. Returns the updated player record.
func (s *Store) SaveResult(r GameResult) (PlayerRecord, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`INSERT INTO games (player, disks, moves, outcome, best, perfect, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Player, r.Disks, r.Moves, string(r.Outcome), boolInt(r.Best), boolInt(r.Perfect), int(r.Duration.Seconds()),
	); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot save game: %w", err)
	}

	if _, err := tx.Exec(
		`INSERT INTO players (name, best_runs, perfect_runs) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET
			best_runs = best_runs + excluded.best_runs,
			perfect_runs = perfect_runs + excluded.perfect_runs,
			updated_at = CURRENT_TIMESTAMP`,
		r.Player, boolInt(r.Best), boolInt(r.Perfect),
	); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot update player: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return PlayerRecord{}, fmt.Errorf("storage: cannot commit game: %w", err)
	}
	return s.Player(r.Player)
}

// Players returns up to limit players, most perfect runs first.
func (s *Store) Players(limit int) ([]PlayerRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT name, best_runs, perfect_runs, updated_at
		 FROM players
		 ORDER BY perfect_runs DESC, best_runs DESC, name ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query players: %w", err)
	}
	defer rows.Close()

	var players []PlayerRecord
	for rows.Next() {
		var p PlayerRecord
		var updated any
		if err := rows.Scan(&p.Name, &p.BestRuns, &p.PerfectRuns, &updated); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTime(updated)
		players = append(players, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return players, nil
}

// RecentGames returns up to limit games of player, newest first. An empty
// player matches everyone.
func (s *Store) RecentGames(player string, limit int) ([]GameResult, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, disks, moves, outcome, best, perfect, duration_secs, created_at
		 FROM games
		 WHERE ? = '' OR player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		player, player, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query games: %w", err)
	}
	defer rows.Close()

	var games []GameResult
	for rows.Next() {
		var g GameResult
		var outcome string
		var best, perfect, secs int
		var created any
		if err := rows.Scan(&g.ID, &g.Player, &g.Disks, &g.Moves, &outcome, &best, &perfect, &secs, &created); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		g.Outcome = Outcome(outcome)
		g.Best = best != 0
		g.Perfect = perfect != 0
		g.Duration = time.Duration(secs) * time.Second
		g.CreatedAt = parseTime(created)
		games = append(games, g)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return games, nil
}

// ClearPlayer deletes a player and their games.
func (s *Store) ClearPlayer(name string) error {
	if _, err := s.db.Exec("DELETE FROM games WHERE player = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear games: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM players WHERE name = ?", name); err != nil {
		return fmt.Errorf("storage: cannot clear player: %w", err)
	}
	return nil
}

// parseTime handles the driver returning either time.Time or a string.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
