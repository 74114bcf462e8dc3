package game

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func letters(w string) []string { return strings.Split(w, "") }

func newAlloy(t *testing.T) *Game {
	t.Helper()
	g, err := NewWithAnswer("alloy")
	require.NoError(t, err)
	return g
}

func row(marks ...Mark) Row { return Row(marks) }

const (
	c = MarkCorrect
	p = MarkPresent
	a = MarkAbsent
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name   string
		guess  string
		answer string
		want   Row
	}{
		{"exact match", "alloy", "alloy", row(c, c, c, c, c)},
		{"no shared letters", "XXXXX", "ALLOY", row(a, a, a, a, a)},
		{"anagram with repeated letter", "loyal", "alloy", row(p, p, p, p, p)},
		{"extra copies beyond answer count", "llama", "alloy", row(p, c, p, a, a)},
		{"exact match consumes before present", "lolly", "alloy", row(p, p, c, a, c)},
		{"duplicate in answer only", "babes", "abbey", row(p, p, c, c, a)},
		{"uppercase alloy", "ALLOY", "ALLOY", row(c, c, c, c, c)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.guess, tt.answer))
		})
	}
}

func TestNewGame(t *testing.T) {
	g := New()
	assert.Equal(t, State{Phase: InProgress, Index: 0}, g.State())
	assert.Len(t, g.Guesses(), MaxAttempts)
	assert.Empty(t, g.Rows())
	_, revealed := g.Answer()
	assert.False(t, revealed)
}

func TestNewWithAnswerRejectsUnknownWord(t *testing.T) {
	_, err := NewWithAnswer("qzxvj")
	assert.Error(t, err)
	_, err = NewAtIndex(-1)
	assert.Error(t, err)
}

func TestApplyKey(t *testing.T) {
	g := newAlloy(t)

	for _, k := range []string{"c", "R", "a", "n", "e", "s"} {
		g.ApplyKey(k)
	}
	assert.Equal(t, "crane", g.Current(), "sixth letter is dropped")

	g.ApplyKey(KeyBackspace)
	assert.Equal(t, "cran", g.Current())

	for _, k := range []string{"1", "", "ab", "enter", "é"} {
		g.ApplyKey(k)
	}
	assert.Equal(t, "cran", g.Current(), "non-letters are ignored")
}

func TestBackspaceOnEmptyIsNoop(t *testing.T) {
	g := newAlloy(t)
	require.True(t, g.SubmitGuess(letters("crane")))
	before := g.Encode()

	g.ApplyKey(KeyBackspace)
	assert.Equal(t, before, g.Encode())
}

func TestSubmitGuessWins(t *testing.T) {
	g := newAlloy(t)

	require.True(t, g.SubmitGuess(letters("crane")))
	assert.Equal(t, State{Phase: InProgress, Index: 1}, g.State())

	require.True(t, g.SubmitGuess(letters("ALLOY")))
	assert.Equal(t, Won, g.State().Phase)
	assert.True(t, g.Over())

	ans, ok := g.Answer()
	assert.True(t, ok)
	assert.Equal(t, "alloy", ans)

	before := g.Encode()
	g.ApplyKey("a")
	assert.False(t, g.SubmitGuess(letters("slate")))
	assert.Equal(t, before, g.Encode(), "finished games ignore input")
}

func TestSixMissesLose(t *testing.T) {
	g := newAlloy(t)
	misses := []string{"crane", "slate", "pious", "dumpy", "beach", "chair"}

	for i, w := range misses {
		_, revealed := g.Answer()
		assert.False(t, revealed, "answer hidden before attempt %d", i)
		require.True(t, g.SubmitGuess(letters(w)), w)
	}
	assert.Equal(t, Lost, g.State().Phase)
	assert.Len(t, g.Rows(), MaxAttempts)

	ans, ok := g.Answer()
	assert.True(t, ok)
	assert.Equal(t, "alloy", ans)

	before := g.Encode()
	assert.False(t, g.SubmitGuess(letters("alloy")), "seventh submission is rejected")
	assert.Equal(t, before, g.Encode())
}

func TestSubmitGuessRejections(t *testing.T) {
	g := newAlloy(t)
	g.ApplyKey("q")
	before := g.Encode()

	assert.False(t, g.SubmitGuess(letters("qzxvj")), "not in dictionary")
	assert.False(t, g.SubmitGuess(letters("cran")), "too short")
	assert.False(t, g.SubmitGuess(letters("cranes")), "too long")
	assert.False(t, g.SubmitGuess([]string{"c", "r", "4", "n", "e"}), "non-letter")
	assert.False(t, g.SubmitGuess(nil))

	assert.Equal(t, before, g.Encode())
	assert.Equal(t, 0, g.State().Index)
}

func TestAllowedNonAnswerIsAccepted(t *testing.T) {
	g := newAlloy(t)
	assert.True(t, g.SubmitGuess(letters("fuzzy")))
	assert.Equal(t, "fuzzy", g.Guesses()[0])
}

func TestViewHidesAnswerUntilOver(t *testing.T) {
	g := newAlloy(t)
	g.ApplyKey("c")

	v := g.View()
	assert.Nil(t, v.Answer)
	assert.Equal(t, "playing", v.State)
	assert.Equal(t, "c", v.Guesses[0])
	assert.Empty(t, v.Answers)

	require.True(t, g.SubmitGuess(letters("alloy")))
	v = g.View()
	require.NotNil(t, v.Answer)
	assert.Equal(t, "alloy", *v.Answer)
	assert.Equal(t, "won", v.State)
	assert.Equal(t, []Row{row(c, c, c, c, c)}, v.Answers)
}

func TestProjectionsAreCopies(t *testing.T) {
	g := newAlloy(t)
	require.True(t, g.SubmitGuess(letters("crane")))

	gs := g.Guesses()
	gs[0] = "zzzzz"
	rs := g.Rows()
	rs[0][0] = MarkCorrect

	assert.Equal(t, "crane", g.Guesses()[0])
	assert.Equal(t, MarkAbsent, g.Rows()[0][0])
}
