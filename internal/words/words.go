// apps/go-server/internal/words/words.go
//
// Word list management for the game engine.
//
// Responsibilities:
//   - Load answer and allowed guess lists from environment-provided files or fall back to the
//     lists embedded in the assets package.
//   - Maintain sets for quick lookups (answers only, answers∪guesses).
//   - Supply the answer selector (RandomIndex) and index lookups used by the token codec.
//
// Initialization behavior (Init):
//   1. If WORDS_ANSWERS_FILE and WORDS_ALLOWED_FILE are both set,
//      load answers from the first and allowed guesses from the second.
//   2. If only WORDS_ALLOWED_FILE is set,
//      load that file and use it for both answers and allowed guesses.
//   3. If neither is set, use the embedded assets.
//
// Answer order matters: tokens store an index into the answers list, so reordering the list
// invalidates games in flight (they fall back to a fresh game on decode).

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/robalobadob/sverdle/apps/go-server/assets"
)

// Length is the number of letters in every word.
const Length = 5

// ErrEmptyAnswers is returned by Init when no usable answer word was loaded.
var ErrEmptyAnswers = errors.New("words: answers list is empty")

// lists is one loaded snapshot of the dictionaries.
type lists struct {
	answers    []string            // canonical answers, in file order
	answersIdx map[string]int      // answer -> index into answers
	allowedSet map[string]struct{} // answers ∪ guesses
}

var (
	initOnce   sync.Once
	current    *lists
	initialErr error
)

// Init loads word lists exactly once.
// Returns an error if the answers list ends up empty.
func Init() error {
	initOnce.Do(func() {
		current, initialErr = load(os.Getenv("WORDS_ANSWERS_FILE"), os.Getenv("WORDS_ALLOWED_FILE"))
	})
	return initialErr
}

// load reads the lists following the three-case rule documented above.
func load(answersPath, allowedPath string) (*lists, error) {
	var ansList, allowList []string
	var err error

	switch {
	// Case 1: both lists provided
	case answersPath != "" && allowedPath != "":
		if ansList, err = readWordFile(answersPath); err != nil {
			return nil, fmt.Errorf("read answers: %w", err)
		}
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}

	// Case 2: only allowed file provided → use for both
	case allowedPath != "":
		if allowList, err = readWordFile(allowedPath); err != nil {
			return nil, fmt.Errorf("read allowed: %w", err)
		}
		ansList = allowList

	// Case 3: embedded defaults
	default:
		raw, err := assets.AnswersList()
		if err != nil {
			return nil, fmt.Errorf("embedded answers: %w", err)
		}
		ansList = normalize(raw)
		raw, err = assets.AllowedList()
		if err != nil {
			return nil, fmt.Errorf("embedded allowed: %w", err)
		}
		allowList = normalize(raw)
	}

	return build(ansList, allowList)
}

// build dedupes answers (first occurrence wins) and folds them into the allowed set.
func build(ansList, allowList []string) (*lists, error) {
	l := &lists{
		answersIdx: make(map[string]int, len(ansList)),
		allowedSet: make(map[string]struct{}, len(ansList)+len(allowList)),
	}
	for _, w := range ansList {
		if _, dup := l.answersIdx[w]; dup {
			continue
		}
		l.answersIdx[w] = len(l.answers)
		l.answers = append(l.answers, w)
		l.allowedSet[w] = struct{}{}
	}
	for _, w := range allowList {
		l.allowedSet[w] = struct{}{}
	}
	if len(l.answers) == 0 {
		return nil, ErrEmptyAnswers
	}
	return l, nil
}

// readWordFile loads one word per line from a file,
// lowercases, trims, and keeps only valid 5-letter alphabetic words.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return normalize(lines), nil
}

// normalize keeps only valid lowercase 5-letter words.
func normalize(in []string) []string {
	out := make([]string, 0, len(in))
	for _, line := range in {
		w := strings.TrimSpace(strings.ToLower(line))
		if Valid(w) {
			out = append(out, w)
		}
	}
	return out
}

// Valid reports whether w is exactly Length lowercase ASCII letters.
func Valid(w string) bool {
	if len(w) != Length {
		return false
	}
	for i := 0; i < len(w); i++ {
		if w[i] < 'a' || w[i] > 'z' {
			return false
		}
	}
	return true
}

// mustLists returns the loaded lists, initializing from the environment on first use.
// A missing dictionary is unrecoverable for the engine.
func mustLists() *lists {
	if err := Init(); err != nil {
		panic(err)
	}
	return current
}

// RandomIndex returns a cryptographically random index into the answers list.
func RandomIndex() int {
	l := mustLists()
	n, err := rand.Int(rand.Reader, big.NewInt(int64(len(l.answers))))
	if err != nil {
		return 0
	}
	return int(n.Int64())
}

// AnswerAt returns the answer stored at index i.
func AnswerAt(i int) (string, bool) {
	l := mustLists()
	if i < 0 || i >= len(l.answers) {
		return "", false
	}
	return l.answers[i], true
}

// IndexOf returns the position of w in the answers list.
func IndexOf(w string) (int, bool) {
	i, ok := mustLists().answersIdx[strings.ToLower(w)]
	return i, ok
}

// Count returns the number of answer words.
func Count() int { return len(mustLists().answers) }

// IsAllowed reports whether w is a valid guess (answers ∪ guesses).
func IsAllowed(w string) bool {
	_, ok := mustLists().allowedSet[strings.ToLower(w)]
	return ok
}

// IsAnswer reports whether w is an answer word.
func IsAnswer(w string) bool {
	_, ok := IndexOf(w)
	return ok
}

// Stats returns counts of loaded words: (answers, allowed).
func Stats() (answersCount int, allowedCount int) {
	l := mustLists()
	return len(l.answers), len(l.allowedSet)
}
