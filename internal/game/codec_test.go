package game

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeFreshGame(t *testing.T) {
	g := newAlloy(t)
	assert.Equal(t, strconv.Itoa(g.AnswerIndex())+"-.....-", g.Encode())
	assert.Equal(t, g.Encode(), g.String())
}

func TestRoundTripReachableStates(t *testing.T) {
	g := newAlloy(t)
	steps := []func(){
		func() { g.ApplyKey("c") },
		func() { g.ApplyKey("r") },
		func() { g.ApplyKey(KeyBackspace) },
		func() { g.SubmitGuess(letters("crane")) },
		func() { g.ApplyKey("l") },
		func() { g.SubmitGuess(letters("slate")) },
		func() { g.SubmitGuess(letters("loyal")) },
		func() { g.SubmitGuess(letters("alloy")) },
	}

	check := func() {
		tok := g.Encode()
		assert.LessOrEqual(t, len(tok), MaxTokenLen)

		back, err := DecodeStrict(tok)
		require.NoError(t, err, tok)
		assert.Equal(t, tok, back.Encode())
		assert.Equal(t, g.Guesses(), back.Guesses())
		assert.Equal(t, g.Rows(), back.Rows())
		assert.Equal(t, g.State(), back.State())
		assert.Equal(t, g.AnswerIndex(), back.AnswerIndex())
	}

	check()
	for _, step := range steps {
		step()
		check()
	}
	assert.Equal(t, Won, g.State().Phase)
}

func TestRoundTripLostGame(t *testing.T) {
	g := newAlloy(t)
	for _, w := range []string{"crane", "slate", "pious", "dumpy", "beach", "chair"} {
		require.True(t, g.SubmitGuess(letters(w)))
	}
	back := Decode(g.Encode())
	assert.Equal(t, Lost, back.State().Phase)
	ans, ok := back.Answer()
	assert.True(t, ok)
	assert.Equal(t, "alloy", ans)
}

func TestDecodePadsShortGuessList(t *testing.T) {
	g := newAlloy(t)
	prefix := strconv.Itoa(g.AnswerIndex())

	back, err := DecodeStrict(prefix + "-cr-")
	require.NoError(t, err)
	assert.Equal(t, "cr", back.Current())
	assert.Len(t, back.Guesses(), MaxAttempts)
	assert.Equal(t, prefix+"-cr.....-", back.Encode())

	_, err = DecodeStrict(prefix + "-crane.sl-_____")
	require.Error(t, err, "row must match its guess")

	back, err = DecodeStrict(prefix + "-crane.sl-" + encodeRow(Evaluate("crane", "alloy")))
	require.NoError(t, err)
	assert.Equal(t, 1, back.State().Index)
	assert.Equal(t, "sl", back.Current())
}

func TestDecodeRejectsMalformed(t *testing.T) {
	g := newAlloy(t)
	pre := strconv.Itoa(g.AnswerIndex())
	crane := encodeRow(Evaluate("crane", "alloy"))
	win := "xxxxx"

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "hello"},
		{"too many segments", pre + "-----"},
		{"non numeric index", "x-.....-"},
		{"padded index", "0" + pre + "-.....-"},
		{"negative index", "-1-.....-"},
		{"index out of range", "999999-.....-"},
		{"uppercase guess", pre + "-CRANE.....-"},
		{"digits in guess", pre + "-cr4ne.....-"},
		{"guess too long", pre + "-cranes.....-"},
		{"too many slots", pre + "-......-"},
		{"bad mark", pre + "-crane.....-xxxzx"},
		{"short row", pre + "-crane.....-xx"},
		{"row without guess", pre + "-.....-" + crane},
		{"row with partial guess", pre + "-cra.....-" + crane},
		{"tampered row", pre + "-crane.....-" + win},
		{"row after win", pre + "-alloy.crane....-" + win + "." + crane},
		{"stray letters ahead", pre + "-..crane...-"},
		{"letters after win", pre + "-alloy.c....-" + win},
		{"oversized", pre + "-" + strings.Repeat("a", MaxTokenLen) + "-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeStrict(tt.token)
			assert.ErrorIs(t, err, ErrMalformedToken)

			fresh := Decode(tt.token)
			assert.Equal(t, State{Phase: InProgress}, fresh.State())
			assert.Empty(t, fresh.Rows())
		})
	}
}

func TestDecodeEmptyStartsFreshGame(t *testing.T) {
	g := Decode("")
	assert.Equal(t, State{Phase: InProgress}, g.State())
	assert.Equal(t, strconv.Itoa(g.AnswerIndex())+"-.....-", g.Encode())
}

func TestDecodeKeepsAnswer(t *testing.T) {
	g := New()
	back := Decode(g.Encode())
	assert.Equal(t, g.AnswerIndex(), back.AnswerIndex())
	assert.Equal(t, g.answer, back.answer)
}
