// internal/httpserver/server.go
//
// HTTP server wiring for the Wordle backend.
// Responsibilities:
//   - Router + middleware (JSON, CORS, timeouts, panic recovery, request IDs).
//   - Public endpoints: "/", "/health", "/debug/words".
//   - Player identity: anonymous player id in a signed token (cookie or bearer).
//   - Session endpoints: one live game per player, driven key by key.
//   - Stats endpoints: per-player counters, history, leaderboard, rank.
//   - WebSocket endpoint for live play (ws.go).
//
// Notes:
//   - CORS is origin‑aware and credentials‑enabled (so cookies work).
//   - The WebSocket route is mounted outside the timeout group; a socket
//     lives far longer than one request.

package httpserver

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/config"
	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
	"github.com/JonJui02/wordle-automated-deployment/internal/store"
	"github.com/JonJui02/wordle-automated-deployment/internal/words"
)

// Options are the server's collaborators.
type Options struct {
	Config   config.Config
	Words    *words.Lists
	Oracle   game.Oracle
	Stats    stats.Store
	Sessions store.Store     // defaults to an in-memory store
	Pacer    game.Pacer      // optional reveal pacing for Enter
	Now      func() time.Time // defaults to time.Now
}

// Server bundles router and dependencies.
type Server struct {
	r      *chi.Mux
	opts   Options
	secret []byte
}

// New constructs a Server, installs middleware, and registers routes.
func New(opts Options) *Server {
	if opts.Sessions == nil {
		opts.Sessions = store.NewMemoryStore()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	s := &Server{r: chi.NewRouter(), opts: opts, secret: []byte(opts.Config.Server.JWTSecret)}
	if len(s.secret) == 0 {
		var b [32]byte
		_, _ = rand.Read(b[:])
		s.secret = []byte(hex.EncodeToString(b[:]))
		log.Warn().Msg("JWT_SECRET not set; player tokens will not survive a restart")
	}

	// --- middleware ---
	s.r.Use(chimw.RequestID)                      // add X-Request-ID
	s.r.Use(chimw.RealIP)                         // set RemoteAddr from X-Forwarded-For etc.
	s.r.Use(chimw.Recoverer)                      // recover from panics
	s.r.Use(cors(opts.Config.Server.ClientOrigin)) // credentials-friendly CORS

	s.r.Group(func(r chi.Router) {
		r.Use(chimw.Timeout(15 * time.Second)) // bound handler time
		r.Use(jsonContentType)                 // default JSON responses

		// --- diagnostics ---
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"service":"wordle-go","endpoints":["/health","POST /session","POST /session/key","GET /session/ws","/stats/*","/leaderboard"]}`))
		})
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"ok":true}`))
		})
		r.Get("/debug/words", func(w http.ResponseWriter, r *http.Request) {
			a, g := 0, 0
			if opts.Words != nil {
				a, g = opts.Words.Stats()
			}
			_ = json.NewEncoder(w).Encode(map[string]int{"answers": a, "allowed": g})
		})

		// Everything below belongs to a player (anonymous id created on demand).
		r.Group(func(r chi.Router) {
			r.Use(s.withPlayer)
			r.Post("/player", s.handlePlayer)
			s.mountSession(r)
			s.mountStats(r)
		})

		// JSON 404 for easier debugging
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"not_found","path":"`+r.URL.Path+`"}`, http.StatusNotFound)
		})
	})

	s.r.With(s.withPlayer).Get("/session/ws", s.handleWS)

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

// cors enables credentialed CORS for a single origin.
func cors(origin string) func(http.Handler) http.Handler {
	if origin == "" {
		origin = "http://localhost:5173"
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Vary", "Origin")
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", tokenHeader)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// writeJSON encodes v as the response body.
func writeJSON(w http.ResponseWriter, v any) {
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}
