// apps/go-server/internal/store/store.go
//
// Persistence for finished-game results. Game state itself never reaches the
// store: it lives in the client's cookie. Only the outcome of a completed
// game is recorded, for the aggregate stats endpoint.

package store

import (
	"context"
	"time"

	"github.com/robalobadob/sverdle/apps/go-server/internal/game"
)

// Mode names the board a game was played on.
type Mode string

const (
	ModeFree  Mode = "free"  // random answer per game
	ModeDaily Mode = "daily" // shared answer of the day
)

// Valid reports whether m is a known board.
func (m Mode) Valid() bool { return m == ModeFree || m == ModeDaily }

// Result is one finished game.
type Result struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	Date        string    `json:"date"` // YYYY-MM-DD, UTC
	AnswerIndex int       `json:"answerIndex"`
	Attempts    int       `json:"attempts"`
	Won         bool      `json:"won"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Summary aggregates results. Distribution[i] counts wins in i+1 attempts.
type Summary struct {
	Played       int                   `json:"played"`
	Wins         int                   `json:"wins"`
	Distribution [game.MaxAttempts]int `json:"distribution"`
}

// Store defines the persistence interface for results.
// Implementations may be backed by memory or SQLite (this package).
type Store interface {
	// Record persists a finished game.
	Record(ctx context.Context, r Result) error

	// Summary aggregates results for a mode; an empty mode covers all boards.
	Summary(ctx context.Context, mode Mode) (Summary, error)
}

// add folds one result into the summary.
func (s *Summary) add(r Result) {
	s.Played++
	if r.Won {
		s.Wins++
		if r.Attempts >= 1 && r.Attempts <= game.MaxAttempts {
			s.Distribution[r.Attempts-1]++
		}
	}
}
