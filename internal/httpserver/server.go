// apps/go-server/internal/httpserver/server.go
//
// HTTP server wiring for the sverdle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs, access log).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Boards: /sverdle (random answer) and /daily (answer of the day), see routes_board.go.
//   - Aggregate results: GET /stats.
//
// Game state is never held here between requests: every handler decodes the
// board from its cookie, applies one operation and writes the cookie back.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/sverdle/apps/go-server/internal/cookie"
	"github.com/robalobadob/sverdle/apps/go-server/internal/store"
	"github.com/robalobadob/sverdle/apps/go-server/internal/words"
)

// Config carries the environment-derived settings of the server.
type Config struct {
	ClientOrigin string           // CORS origin allowed to send credentials
	DailySalt    string           // HMAC salt for the answer of the day
	Now          func() time.Time // clock; defaults to time.Now
}

// Server bundles router, results store and cookie jar.
type Server struct {
	r     *chi.Mux
	cfg   Config
	store store.Store
	jar   *cookie.Jar
}

// New constructs a Server, installs middleware, and registers routes.
func New(cfg Config, st store.Store, jar *cookie.Jar) *Server {
	if cfg.ClientOrigin == "" {
		cfg.ClientOrigin = "http://localhost:5173"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), cfg: cfg, store: st, jar: jar}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                 // add X-Request-ID
	s.r.Use(chimw.RealIP)                    // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(hlog.NewHandler(log.Logger))     // request-scoped logger
	s.r.Use(accessLog)                       // one line per request
	s.r.Use(chimw.Recoverer)                 // recover from panics
	s.r.Use(chimw.Timeout(10 * time.Second)) // bound handler time
	s.r.Use(jsonContentType)                 // default JSON responses
	s.r.Use(s.cors)                          // credentials-friendly CORS

	// --- diagnostics ---
	s.r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"service":"sverdle-go","endpoints":["/health","/sverdle","/daily","/stats"]}`))
	})
	s.r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"ok":true}`))
	})
	s.r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
		a, g := words.Stats()
		_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
	})

	// --- boards ---
	s.mountBoard(s.r, s.freeBoard())
	s.mountBoard(s.r, s.dailyBoard())

	s.r.Get("/stats", s.handleStats)

	// JSON 404 for easier debugging
	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Start begins serving HTTP on addr.
func (s *Server) Start(addr string) error { return http.ListenAndServe(addr, s.r) }

// Router exposes the internal router (useful for tests).
func (s *Server) Router() chi.Router { return s.r }

// ----------------------------- middleware ----------------------------------

// jsonContentType sets a default JSON Content-Type header on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		next.ServeHTTP(w, r)
	})
}

// cors enables credentialed CORS for the configured client origin.
func (s *Server) cors(next http.Handler) http.Handler {
	origin := s.cfg.ClientOrigin
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Origin")
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Credentials", "true")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// accessLog writes one structured line per request through the request logger.
var accessLog = hlog.AccessHandler(func(r *http.Request, status, size int, d time.Duration) {
	lvl := zerolog.InfoLevel
	if status >= http.StatusInternalServerError {
		lvl = zerolog.ErrorLevel
	}
	hlog.FromRequest(r).WithLevel(lvl).
		Str("method", r.Method).
		Str("path", r.URL.Path).
		Str("requestId", chimw.GetReqID(r.Context())).
		Int("status", status).
		Int("size", size).
		Dur("duration", d).
		Msg("request")
})

// ------------------------------ STATS --------------------------------------

// handleStats returns the aggregate results for ?mode=free|daily (all when omitted).
func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	mode := store.Mode(r.URL.Query().Get("mode"))
	if mode != "" && !mode.Valid() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_mode"})
		return
	}
	sum, err := s.store.Summary(r.Context(), mode)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("stats summary")
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "server_error"})
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

// ------------------------------- small util --------------------------------

// writeJSON encodes v with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
