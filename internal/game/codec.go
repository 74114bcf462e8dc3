// apps/go-server/internal/game/codec.go
//
// Token codec. A game is stored client-side as
//
//	<answer index>-<guess 0>.<guess 1>.….<guess 5>-<row 0>.<row 1>.…
//
// where each row spells its marks as x (correct), c (present) or _ (absent),
// e.g. "42-crane.slate.....-_cx__.xxxxx". All six guess slots are always
// written, so Encode(Decode(t)) == t for every token Encode produced.
// Shorter guess lists are accepted and padded with empty slots.
//
// Anything that does not describe a reachable game is rejected; Decode then
// hands back a fresh game instead of surfacing an error.
package game

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/robalobadob/sverdle/apps/go-server/internal/words"
)

// MaxTokenLen bounds the size of an encoded game. The longest reachable token
// is well under this: index digits + 6*5 letters + 6*5 marks + separators.
const MaxTokenLen = 256

const (
	segmentSep = "-"
	wordSep    = "."
)

// ErrMalformedToken is wrapped by every DecodeStrict failure.
var ErrMalformedToken = errors.New("malformed game token")

var markCodes = map[Mark]byte{
	MarkCorrect: 'x',
	MarkPresent: 'c',
	MarkAbsent:  '_',
}

// Encode serializes the game into a cookie-safe token.
func (g *Game) Encode() string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(g.answerIndex))
	b.WriteString(segmentSep)
	b.WriteString(strings.Join(g.guesses, wordSep))
	b.WriteString(segmentSep)
	b.WriteString(strings.Join(lo.Map(g.rows, func(r Row, _ int) string { return encodeRow(r) }), wordSep))
	return b.String()
}

// String implements fmt.Stringer with the token form.
func (g *Game) String() string { return g.Encode() }

func encodeRow(r Row) string {
	out := make([]byte, len(r))
	for i, m := range r {
		out[i] = markCodes[m]
	}
	return string(out)
}

func decodeRow(s string) (Row, error) {
	if len(s) != words.Length {
		return nil, fmt.Errorf("%w: row %q has wrong length", ErrMalformedToken, s)
	}
	r := make(Row, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'x':
			r[i] = MarkCorrect
		case 'c':
			r[i] = MarkPresent
		case '_':
			r[i] = MarkAbsent
		default:
			return nil, fmt.Errorf("%w: row %q has bad mark %q", ErrMalformedToken, s, s[i])
		}
	}
	return r, nil
}

// Decode restores a game from a token. An empty or unusable token yields a
// brand-new game; it never fails.
func Decode(token string) *Game {
	if token == "" {
		return New()
	}
	g, err := DecodeStrict(token)
	if err != nil {
		log.Debug().Err(err).Msg("discarding stored game")
		return New()
	}
	return g
}

// DecodeStrict is Decode without the fallback: it reports why a token was rejected.
func DecodeStrict(token string) (*Game, error) {
	if len(token) > MaxTokenLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrMalformedToken, len(token))
	}
	parts := strings.Split(token, segmentSep)
	if len(parts) != 3 {
		return nil, fmt.Errorf("%w: %d segments", ErrMalformedToken, len(parts))
	}

	idx, err := strconv.Atoi(parts[0])
	if err != nil || parts[0] != strconv.Itoa(idx) {
		return nil, fmt.Errorf("%w: bad answer index %q", ErrMalformedToken, parts[0])
	}
	g, err := NewAtIndex(idx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	guesses := strings.Split(parts[1], wordSep)
	if len(guesses) > MaxAttempts {
		return nil, fmt.Errorf("%w: %d guess slots", ErrMalformedToken, len(guesses))
	}
	for _, w := range guesses {
		if len(w) > words.Length || strings.Trim(w, "abcdefghijklmnopqrstuvwxyz") != "" {
			return nil, fmt.Errorf("%w: bad guess %q", ErrMalformedToken, w)
		}
	}
	copy(g.guesses, guesses)

	if parts[2] != "" {
		for _, s := range strings.Split(parts[2], wordSep) {
			r, err := decodeRow(s)
			if err != nil {
				return nil, err
			}
			g.rows = append(g.rows, r)
		}
	}
	if len(g.rows) > MaxAttempts {
		return nil, fmt.Errorf("%w: %d rows", ErrMalformedToken, len(g.rows))
	}

	for i, r := range g.rows {
		if i > 0 && allCorrect(g.rows[i-1]) {
			return nil, fmt.Errorf("%w: row %d follows a win", ErrMalformedToken, i)
		}
		if !words.Valid(g.guesses[i]) {
			return nil, fmt.Errorf("%w: row %d has no full guess", ErrMalformedToken, i)
		}
		if encodeRow(Evaluate(g.guesses[i], g.answer)) != encodeRow(r) {
			return nil, fmt.Errorf("%w: row %d does not match its guess", ErrMalformedToken, i)
		}
	}

	g.state = stateAfter(g.rows)

	// Only the attempt being typed may hold letters past the evaluated rows.
	firstUnused := len(g.rows)
	if !g.state.Over() {
		firstUnused++
	}
	for i := firstUnused; i < MaxAttempts; i++ {
		if g.guesses[i] != "" {
			return nil, fmt.Errorf("%w: stray letters in slot %d", ErrMalformedToken, i)
		}
	}
	return g, nil
}
