// Package storage persists high scores and battle records in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/Ikbal01/tanks-game/internal/multiplayer"
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// ScoreEntry represents a single high score record.
type ScoreEntry struct {
	ID        int64
	GameID    string
	Score     int
	Stage     int
	CreatedAt time.Time
}

// BattleRecord is the outcome of one finished campaign, local or online.
type BattleRecord struct {
	ID             string // uuid; generated on save when empty
	GameID         string
	Mode           string
	HostSession    string // online co-op only
	PartnerSession string
	Score1         int
	Score2         int
	Stage          int
	Won            bool
	EndReason      string
	DurationSecs   int
	CreatedAt      time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
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
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id TEXT NOT NULL,
			score INTEGER NOT NULL,
			stage INTEGER NOT NULL DEFAULT 1,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(game_id, score DESC);

		CREATE TABLE IF NOT EXISTS battles (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			mode TEXT NOT NULL,
			host_session TEXT NOT NULL DEFAULT '',
			partner_session TEXT NOT NULL DEFAULT '',
			score1 INTEGER NOT NULL DEFAULT 0,
			score2 INTEGER NOT NULL DEFAULT 0,
			stage INTEGER NOT NULL DEFAULT 1,
			won INTEGER NOT NULL DEFAULT 0,
			end_reason TEXT NOT NULL,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_battles_created ON battles(created_at DESC);
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

// parseTime reads a DATETIME column, which the driver may hand back as
// either a time.Time or a string.
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

// SaveScore records a new score for the given game.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(gameID string, score, stage int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (game_id, score, stage) VALUES (?, ?, ?)",
		gameID, score, stage,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for the given game.
// Results are ordered by score descending.
func (s *Store) TopScores(gameID string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, score, stage, created_at
		 FROM scores
		 WHERE game_id = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &e.Score, &e.Stage, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for the given game.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ?",
		gameID,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// SaveBattle records a finished campaign and returns its ID.
func (s *Store) SaveBattle(b BattleRecord) (string, error) {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO battles
		 (id, game_id, mode, host_session, partner_session, score1, score2, stage, won, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID,
		b.GameID,
		b.Mode,
		b.HostSession,
		b.PartnerSession,
		b.Score1,
		b.Score2,
		b.Stage,
		b.Won,
		b.EndReason,
		b.DurationSecs,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save battle: %w", err)
	}
	return b.ID, nil
}

const battleColumns = `id, game_id, mode, host_session, partner_session,
		score1, score2, stage, won, end_reason, duration_secs, created_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanBattle(row scanner) (BattleRecord, error) {
	var b BattleRecord
	var createdAt any
	err := row.Scan(
		&b.ID,
		&b.GameID,
		&b.Mode,
		&b.HostSession,
		&b.PartnerSession,
		&b.Score1,
		&b.Score2,
		&b.Stage,
		&b.Won,
		&b.EndReason,
		&b.DurationSecs,
		&createdAt,
	)
	b.CreatedAt = parseTime(createdAt)
	return b, err
}

// BattleByID retrieves a battle by its ID. Returns nil if none exists.
func (s *Store) BattleByID(id string) (*BattleRecord, error) {
	b, err := scanBattle(s.db.QueryRow(
		`SELECT `+battleColumns+` FROM battles WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battle: %w", err)
	}
	return &b, nil
}

// RecentBattles retrieves the most recent battles, newest first.
func (s *Store) RecentBattles(limit int) ([]BattleRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+battleColumns+`
		 FROM battles
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query battles: %w", err)
	}
	defer rows.Close()

	var results []BattleRecord
	for rows.Next() {
		b, err := scanBattle(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveBattle(BattleRecord{
		ID:             data.MatchID,
		GameID:         data.GameID,
		Mode:           multiplayer.MatchModeOnlineCoop.String(),
		HostSession:    data.HostSession,
		PartnerSession: data.PartnerSession,
		Score1:         data.Score1,
		Score2:         data.Score2,
		Stage:          data.Stage,
		Won:            data.Won,
		EndReason:      data.EndReason,
		DurationSecs:   data.DurationSecs,
	})
	if err != nil {
		return err
	}
	if total := data.Score1 + data.Score2; total > 0 {
		_, err = s.SaveScore(data.GameID, total, data.Stage)
	}
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	BestStage  int
	LastPlayed time.Time
}

// GetAllGamesStats retrieves statistics for every game with a saved score.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), MAX(stage), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore, &gs.BestStage, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
