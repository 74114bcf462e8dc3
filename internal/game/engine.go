// apps/go-server/internal/game/engine.go
//
// Core game engine for a single sverdle board.
// Responsibilities:
//   - Create new games with a randomly selected (or fixed) answer.
//   - Apply per-keystroke edits to the guess being typed.
//   - Validate and score submitted guesses using the two-pass Wordle algorithm.
//   - Track state transitions: playing → won/lost.
//
// User mistakes (bad keys, unknown words, input after the game ended) are never errors:
// edits are ignored and SubmitGuess reports false.
package game

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/robalobadob/sverdle/apps/go-server/internal/words"
)

// New constructs a game with a random answer.
func New() *Game {
	g, err := NewAtIndex(words.RandomIndex())
	if err != nil {
		// RandomIndex always lands inside the list it was drawn from.
		panic(err)
	}
	return g
}

// NewAtIndex constructs a game whose answer is the i-th answer word.
func NewAtIndex(i int) (*Game, error) {
	ans, ok := words.AnswerAt(i)
	if !ok {
		return nil, fmt.Errorf("game: answer index %d out of range", i)
	}
	return newGame(i, ans), nil
}

// NewWithAnswer constructs a game for a fixed answer word.
func NewWithAnswer(answer string) (*Game, error) {
	i, ok := words.IndexOf(answer)
	if !ok {
		return nil, fmt.Errorf("game: %q is not an answer word", answer)
	}
	return newGame(i, strings.ToLower(answer)), nil
}

func newGame(index int, answer string) *Game {
	return &Game{
		answerIndex: index,
		answer:      answer,
		guesses:     make([]string, MaxAttempts),
		rows:        []Row{},
		state:       State{Phase: InProgress},
	}
}

// ApplyKey edits the guess currently being typed.
// A single letter is appended while the guess is shorter than a full word,
// KeyBackspace drops the last letter. Everything else is ignored, as is any
// key once the game is over.
func (g *Game) ApplyKey(key string) {
	if g.state.Over() {
		return
	}
	i := g.state.Index
	cur := g.guesses[i]

	if key == KeyBackspace {
		if cur != "" {
			g.guesses[i] = cur[:len(cur)-1]
		}
		return
	}
	if len(key) != 1 || len(cur) >= words.Length {
		return
	}
	c := strings.ToLower(key)[0]
	if c < 'a' || c > 'z' {
		return
	}
	g.guesses[i] = cur + string(c)
}

// SubmitGuess validates and scores a guess, advancing the state machine.
// It returns false, leaving the game untouched, when the game is over, the
// letters do not form a five letter word, or the word is not in the dictionary.
func (g *Game) SubmitGuess(letters []string) bool {
	if g.state.Over() {
		return false
	}
	word := strings.ToLower(strings.Join(letters, ""))
	if !words.Valid(word) || !words.IsAllowed(word) {
		return false
	}

	row := Evaluate(word, g.answer)
	g.guesses[g.state.Index] = word
	g.rows = append(g.rows, row)
	g.state = stateAfter(g.rows)
	return true
}

// stateAfter derives the state tag from the evaluated rows.
func stateAfter(rows []Row) State {
	n := len(rows)
	switch {
	case n > 0 && allCorrect(rows[n-1]):
		return State{Phase: Won, Index: n}
	case n >= MaxAttempts:
		return State{Phase: Lost, Index: n}
	default:
		return State{Phase: InProgress, Index: n}
	}
}

// Evaluate scores guess against answer with the standard two-pass algorithm.
//
// Pass 1 marks exact matches as correct and counts the unmatched answer letters.
// Pass 2 walks the remaining guess letters left to right: a letter with an unused
// count is present (and consumes it), otherwise absent.
//
// A letter repeated more often in the guess than in the answer is therefore only
// marked for as many occurrences as the answer can pay for.
func Evaluate(guess, answer string) Row {
	n := len(answer)
	res := make(Row, n)
	var counts [256]int

	for i := 0; i < n; i++ {
		if i < len(guess) && guess[i] == answer[i] {
			res[i] = MarkCorrect
		} else {
			counts[answer[i]]++
		}
	}

	for i := 0; i < n; i++ {
		if res[i] == MarkCorrect {
			continue
		}
		if i < len(guess) && counts[guess[i]] > 0 {
			res[i] = MarkPresent
			counts[guess[i]]--
		} else {
			res[i] = MarkAbsent
		}
	}
	return res
}

// allCorrect returns true if every mark is MarkCorrect.
func allCorrect(r Row) bool {
	return len(r) > 0 && lo.EveryBy(r, func(m Mark) bool { return m == MarkCorrect })
}

// State returns the current state tag.
func (g *Game) State() State { return g.state }

// Over reports whether the game has been won or lost.
func (g *Game) Over() bool { return g.state.Over() }

// Answer returns the solution, but only once the game is over.
func (g *Game) Answer() (string, bool) {
	if !g.state.Over() {
		return "", false
	}
	return g.answer, true
}

// AnswerIndex returns the position of the answer in the answers list.
// It identifies the puzzle without spelling out the word.
func (g *Game) AnswerIndex() int { return g.answerIndex }

// Guesses returns a copy of all guess slots.
func (g *Game) Guesses() []string { return append([]string(nil), g.guesses...) }

// Current returns the guess being typed, or "" when the game is over.
func (g *Game) Current() string {
	if g.state.Over() {
		return ""
	}
	return g.guesses[g.state.Index]
}

// Rows returns a copy of the evaluated rows.
func (g *Game) Rows() []Row {
	return lo.Map(g.rows, func(r Row, _ int) Row { return append(Row(nil), r...) })
}

// View builds the projection handed to renderers.
func (g *Game) View() View {
	v := View{
		Guesses: g.Guesses(),
		Answers: g.Rows(),
		State:   g.state.Phase.String(),
		Index:   g.state.Index,
	}
	if ans, ok := g.Answer(); ok {
		v.Answer = &ans
	}
	return v
}
