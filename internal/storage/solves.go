package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Solve is one recorded solved-cube event.
type Solve struct {
	SolveID       string
	SolvedAt      time.Time
	MoveCount     int
	DeviceAddress string
}

// SolveRepository provides access to recorded solves.
type SolveRepository struct {
	db *DB
}

// NewSolveRepository creates a repository over the given database.
func NewSolveRepository(db *DB) *SolveRepository {
	return &SolveRepository{db: db}
}

// Record inserts a solved event and returns its ID. moveCount is the number
// of moves observed since the previous solve.
func (r *SolveRepository) Record(deviceAddress string, moveCount int) (string, error) {
	id := uuid.New().String()
	solvedAt := time.Now().UTC()

	_, err := r.db.Exec(`
		INSERT INTO solves (solve_id, solved_at, move_count, device_address)
		VALUES (?, ?, ?, ?)
	`, id, solvedAt.Format(time.RFC3339), moveCount, deviceAddress)
	if err != nil {
		return "", fmt.Errorf("failed to record solve: %w", err)
	}

	return id, nil
}

// List returns the most recent solves, newest first.
func (r *SolveRepository) List(limit int) ([]Solve, error) {
	rows, err := r.db.Query(`
		SELECT solve_id, solved_at, move_count, COALESCE(device_address, '')
		FROM solves
		ORDER BY solved_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list solves: %w", err)
	}
	defer rows.Close()

	var solves []Solve
	for rows.Next() {
		var s Solve
		var solvedAt string
		if err := rows.Scan(&s.SolveID, &solvedAt, &s.MoveCount, &s.DeviceAddress); err != nil {
			return nil, fmt.Errorf("failed to scan solve: %w", err)
		}
		s.SolvedAt, err = time.Parse(time.RFC3339, solvedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse solve time: %w", err)
		}
		solves = append(solves, s)
	}

	return solves, rows.Err()
}

// Count returns the total number of recorded solves.
func (r *SolveRepository) Count() (int, error) {
	var n int
	err := r.db.QueryRow("SELECT COUNT(*) FROM solves").Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count solves: %w", err)
	}
	return n, nil
}
