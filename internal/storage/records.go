package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Completion is one cleared level.
type Completion struct {
	ID        int64
	Pack      string
	Level     int // 1-indexed
	Title     string
	Moves     int
	Pushes    int
	Player    string // SSH user, empty for local play
	CreatedAt time.Time
}

// PackStats contains aggregated statistics for a level pack.
type PackStats struct {
	Pack          string
	Completions   int
	LevelsCleared int
	TotalMoves    int64
	LastPlayed    time.Time
}

const completionColumns = `id, pack, level, title, moves, pushes, player, created_at`

// SaveCompletion records a cleared level.
// Returns the ID of the inserted record.
func (s *Store) SaveCompletion(c Completion) (int64, error) {
	const insert = `INSERT INTO completions (pack, level, title, moves, pushes, player)
		 VALUES (?, ?, ?, ?, ?, ?)`
	args := []any{c.Pack, c.Level, c.Title, c.Moves, c.Pushes, c.Player}

	if s.dialect.returning {
		var id int64
		if err := s.db.QueryRow(s.q(insert+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("storage: cannot save completion: %w", err)
		}
		return id, nil
	}

	result, err := s.db.Exec(s.q(insert), args...)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save completion: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// Best returns the best completion of a level: fewest moves, then fewest
// pushes, then earliest. Returns nil if the level was never cleared.
func (s *Store) Best(pack string, level int) (*Completion, error) {
	row := s.db.QueryRow(s.q(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE pack = ? AND level = ?
		 ORDER BY moves, pushes, id
		 LIMIT 1`),
		pack, level,
	)

	c, err := scanCompletion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query best completion: %w", err)
	}
	return &c, nil
}

// BestPerLevel returns the best completion of every cleared level of a pack,
// ordered by level.
func (s *Store) BestPerLevel(pack string) ([]Completion, error) {
	return s.query(
		`SELECT `+completionColumns+`
		 FROM completions c
		 WHERE pack = ? AND id = (
			SELECT c2.id FROM completions c2
			WHERE c2.pack = c.pack AND c2.level = c.level
			ORDER BY c2.moves, c2.pushes, c2.id
			LIMIT 1
		 )
		 ORDER BY level`,
		pack,
	)
}

// Recent returns the latest completions of a pack, newest first.
func (s *Store) Recent(pack string, limit int) ([]Completion, error) {
	if limit <= 0 {
		limit = 10
	}

	return s.query(
		`SELECT `+completionColumns+`
		 FROM completions
		 WHERE pack = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		pack, limit,
	)
}

// Packs returns the names of all packs with at least one completion.
func (s *Store) Packs() ([]string, error) {
	rows, err := s.db.Query(`SELECT DISTINCT pack FROM completions ORDER BY pack`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query packs: %w", err)
	}
	defer rows.Close()

	var packs []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		packs = append(packs, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return packs, nil
}

// Stats retrieves aggregated statistics for a pack.
func (s *Store) Stats(pack string) (*PackStats, error) {
	stats := &PackStats{Pack: pack}

	var lastPlayed any
	err := s.db.QueryRow(s.q(
		`SELECT COUNT(*), COUNT(DISTINCT level), COALESCE(SUM(moves), 0), MAX(created_at)
		 FROM completions WHERE pack = ?`),
		pack,
	).Scan(&stats.Completions, &stats.LevelsCleared, &stats.TotalMoves, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get pack stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// Clear deletes all completions of a pack.
func (s *Store) Clear(pack string) error {
	_, err := s.db.Exec(s.q("DELETE FROM completions WHERE pack = ?"), pack)
	if err != nil {
		return fmt.Errorf("storage: cannot clear records: %w", err)
	}
	return nil
}

func (s *Store) query(query string, args ...any) ([]Completion, error) {
	rows, err := s.db.Query(s.q(query), args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query completions: %w", err)
	}
	defer rows.Close()

	var entries []Completion
	for rows.Next() {
		c, err := scanCompletion(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		entries = append(entries, c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanCompletion(sc scanner) (Completion, error) {
	var c Completion
	var createdAt any
	err := sc.Scan(&c.ID, &c.Pack, &c.Level, &c.Title, &c.Moves, &c.Pushes, &c.Player, &createdAt)
	if err != nil {
		return Completion{}, err
	}
	c.CreatedAt = parseTime(createdAt)
	return c, nil
}
