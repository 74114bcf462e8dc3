// apps/go-server/internal/game/types.go
//
// Core type definitions for the sverdle engine.
// Defines:
//   - Mark: per-letter result of a guess (correct/present/absent).
//   - Phase/State: explicit turn state machine tag.
//   - Game: full state of one game, all of which round-trips through a token.

package game

// Mark represents the evaluation result for a single letter in a guess.
type Mark string

const (
	MarkCorrect Mark = "correct" // right letter, right position
	MarkPresent Mark = "present" // letter elsewhere in the answer
	MarkAbsent  Mark = "absent"  // letter not in the answer (after duplicates are used up)
)

// Row is the evaluated result of one submitted guess.
type Row []Mark

// Phase is the coarse state of a game.
type Phase int

const (
	InProgress Phase = iota
	Won
	Lost
)

func (p Phase) String() string {
	switch p {
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "playing"
	}
}

// State tags the game. Index is the attempt being edited and is only meaningful while InProgress.
type State struct {
	Phase Phase
	Index int
}

// Over reports whether the state is terminal.
func (s State) Over() bool { return s.Phase != InProgress }

const (
	// MaxAttempts is the number of rows on the board.
	MaxAttempts = 6

	// KeyBackspace removes the last letter of the current guess.
	KeyBackspace = "backspace"
)

// Game holds the state of a single game. It carries no identity of its own:
// everything needed to resume it is in the token produced by Encode.
type Game struct {
	answerIndex int      // position of answer in the answers list
	answer      string   // the solution word (lowercase)
	guesses     []string // always MaxAttempts slots; "" for untouched rows
	rows        []Row    // evaluated guesses, len 0..MaxAttempts
	state       State
}

// View is the read-only projection handed to renderers.
// Answer stays nil until the game is over.
type View struct {
	Guesses []string `json:"guesses"`
	Answers []Row    `json:"answers"`
	Answer  *string  `json:"answer"`
	State   string   `json:"state"`
	Index   int      `json:"index"`
}
