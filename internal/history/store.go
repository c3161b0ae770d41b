package history

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Modes recorded with each run.
const (
	ModeAssist   = "assist"
	ModeSimulate = "simulate"
	ModeGame     = "game"
)

// timeLayout sorts lexically in time order.
const timeLayout = "2006-01-02T15:04:05.000000Z"

// Record is one finished solve.
type Record struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Mode      string    `json:"mode"`
	Answer    string    `json:"answer,omitempty"`
	Guesses   int       `json:"guesses"`
	Solved    bool      `json:"solved"`
	ElapsedMs int       `json:"elapsedMs"`
	CreatedAt time.Time `json:"createdAt"`
}

// Summary aggregates all recorded runs.
type Summary struct {
	Runs       int     `json:"runs"`
	Solved     int     `json:"solved"`
	AvgGuesses float64 `json:"avgGuesses"` // over solved runs only
}

type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

// Insert stores r. An empty ID is replaced with a new UUID.
func (s *Store) Insert(ctx context.Context, r Record) (Record, error) {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO solve_runs(id, session_id, mode, answer, guesses, solved, elapsed_ms, created_at)
		 VALUES(?,?,?,?,?,?,?,?)`,
		r.ID, r.SessionID, r.Mode, r.Answer, r.Guesses, boolToInt(r.Solved), r.ElapsedMs,
		r.CreatedAt.UTC().Format(timeLayout),
	)
	return r, err
}

// Recent returns up to limit runs, newest first. limit <= 0 means 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, session_id, mode, answer, guesses, solved, elapsed_ms, created_at
		 FROM solve_runs
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Record, 0, limit)
	for rows.Next() {
		var r Record
		var solved int
		var created string
		if err := rows.Scan(&r.ID, &r.SessionID, &r.Mode, &r.Answer, &r.Guesses, &solved, &r.ElapsedMs, &created); err != nil {
			return nil, err
		}
		r.Solved = solved != 0
		r.CreatedAt, _ = time.Parse(timeLayout, created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// Summary returns totals over every stored run.
func (s *Store) Summary(ctx context.Context) (Summary, error) {
	var sum Summary
	var avg sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(1),
		        COALESCE(SUM(solved), 0),
		        AVG(CASE WHEN solved = 1 THEN guesses END)
		 FROM solve_runs`,
	).Scan(&sum.Runs, &sum.Solved, &avg)
	if err != nil {
		return Summary{}, err
	}
	if avg.Valid {
		sum.AvgGuesses = avg.Float64
	}
	return sum, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
