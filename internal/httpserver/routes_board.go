// apps/go-server/internal/httpserver/routes_board.go
//
// HTTP routes for a game board. Each board is mounted under its own prefix
// and keeps its game in its own cookie:
//   - GET  /{board}          → current view (answer only once the game is over)
//   - POST /{board}/update   → form field "key": a letter or "backspace"
//   - POST /{board}/enter    → repeated form field "guess": the letters of the guess
//   - POST /{board}/restart  → drop the cookie; the next request starts a new game
//
// Two boards exist: /sverdle with a random answer per game and /daily whose
// answer is derived from the date. A daily cookie from a previous day is stale
// and silently replaced by today's puzzle.

package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/robalobadob/sverdle/apps/go-server/internal/daily"
	"github.com/robalobadob/sverdle/apps/go-server/internal/game"
	"github.com/robalobadob/sverdle/apps/go-server/internal/store"
	"github.com/robalobadob/sverdle/apps/go-server/internal/words"
)

// board describes one mounted game.
type board struct {
	path   string
	cookie string
	mode   store.Mode
	load   func(token string) *game.Game // token → game, never nil
}

// freeBoard is the classic board: a random answer per game.
func (s *Server) freeBoard() board {
	return board{
		path:   "/sverdle",
		cookie: "sverdle",
		mode:   store.ModeFree,
		load:   game.Decode,
	}
}

// dailyBoard shares one answer per UTC day between all players.
func (s *Server) dailyBoard() board {
	return board{
		path:   "/daily",
		cookie: "sverdle_daily",
		mode:   store.ModeDaily,
		load: func(token string) *game.Game {
			today := s.dailyIndex()
			if token != "" {
				g, err := game.DecodeStrict(token)
				if err == nil && g.AnswerIndex() == today {
					return g
				}
			}
			g, err := game.NewAtIndex(today)
			if err != nil {
				// dailyIndex is always reduced modulo the list length.
				panic(err)
			}
			return g
		},
	}
}

// dailyIndex returns today's answer index.
func (s *Server) dailyIndex() int {
	return daily.WordIndex(s.cfg.Now(), s.cfg.DailySalt, words.Count())
}

// mountBoard registers the routes of b.
func (s *Server) mountBoard(r chi.Router, b board) {
	r.Route(b.path, func(r chi.Router) {
		r.Get("/", s.handleView(b))
		r.Post("/update", s.handleUpdate(b))
		r.Post("/enter", s.handleEnter(b))
		r.Post("/restart", s.handleRestart(b))
	})
}

// loadGame decodes the board cookie. Unreadable cookies start a new game.
func (s *Server) loadGame(r *http.Request, b board) *game.Game {
	tok, err := s.jar.Load(r, b.cookie)
	if err != nil {
		hlog.FromRequest(r).Debug().Err(err).Str("cookie", b.cookie).Msg("unreadable game cookie")
		tok = ""
	}
	return b.load(tok)
}

// saveGame writes g back to the board cookie.
func (s *Server) saveGame(w http.ResponseWriter, r *http.Request, b board, g *game.Game) bool {
	if err := s.jar.Save(w, b.cookie, g.Encode()); err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("seal game cookie")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "save_failed"})
		return false
	}
	return true
}

// handleView returns the current board without changing it.
func (s *Server) handleView(b board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.loadGame(r, b).View())
	}
}

// handleUpdate applies one key to the guess being typed.
func (s *Server) handleUpdate(b board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_form"})
			return
		}
		g := s.loadGame(r, b)
		g.ApplyKey(r.PostForm.Get("key"))
		if !s.saveGame(w, r, b, g) {
			return
		}
		writeJSON(w, http.StatusOK, g.View())
	}
}

// handleEnter submits a full guess. Rejected guesses answer 400 with
// {"badGuess":true} and leave the cookie alone.
func (s *Server) handleEnter(b board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_form"})
			return
		}
		g := s.loadGame(r, b)
		if !g.SubmitGuess(r.PostForm["guess"]) {
			writeJSON(w, http.StatusBadRequest, map[string]bool{"badGuess": true})
			return
		}
		if !s.saveGame(w, r, b, g) {
			return
		}
		if g.Over() {
			s.recordResult(r, b, g)
		}
		writeJSON(w, http.StatusOK, g.View())
	}
}

// handleRestart drops the board cookie.
func (s *Server) handleRestart(b board) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.jar.Clear(w, b.cookie)
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	}
}

// recordResult persists the outcome of a game that just ended (best effort).
func (s *Server) recordResult(r *http.Request, b board, g *game.Game) {
	now := s.cfg.Now().UTC()
	res := store.Result{
		Mode:        b.mode,
		Date:        daily.DateKey(now),
		AnswerIndex: g.AnswerIndex(),
		Attempts:    len(g.Rows()),
		Won:         g.State().Phase == game.Won,
		FinishedAt:  now,
	}
	if err := s.store.Record(r.Context(), res); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Str("mode", string(b.mode)).Msg("record result")
	}
}
