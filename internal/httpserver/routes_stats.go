// internal/httpserver/routes_stats.go
//
// Stats routes, all scoped to the calling player except the leaderboard.
//   - GET  /stats/me          → counters, win rate and rank
//   - GET  /stats/history     → recent games (?limit=N, max 100)
//   - POST /stats/outcome     → record a game played elsewhere (remote ledger)
//   - GET  /leaderboard       → ?sort=streak|winrate&limit=N (max 100)
//   - GET  /leaderboard/rank  → {"rank": N}

package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
)

const maxListLimit = 100

func (s *Server) mountStats(r chi.Router) {
	r.Get("/stats/me", s.handleMyStats)
	r.Get("/stats/history", s.handleHistory)
	r.Post("/stats/outcome", s.handleOutcome)
	r.Get("/leaderboard", s.handleLeaderboard)
	r.Get("/leaderboard/rank", s.handleRank)
}

// myStatsRes is the body of GET /stats/me.
type myStatsRes struct {
	Player string `json:"player"`
	stats.Stats
	WinRate float64 `json:"winRate"`
	Rank    int     `json:"rank"`
}

func (s *Server) statsStore(w http.ResponseWriter) stats.Store {
	if s.opts.Stats == nil {
		http.Error(w, `{"error":"stats_disabled"}`, http.StatusServiceUnavailable)
	}
	return s.opts.Stats
}

func (s *Server) handleMyStats(w http.ResponseWriter, r *http.Request) {
	st := s.statsStore(w)
	if st == nil {
		return
	}
	player := PlayerFrom(r.Context())
	mine, err := st.Stats(r.Context(), player)
	if err != nil {
		log.Error().Err(err).Str("player", player).Msg("load stats")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	rank, err := st.Rank(r.Context(), player)
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, myStatsRes{Player: player, Stats: mine, WinRate: mine.WinRate(), Rank: rank})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	st := s.statsStore(w)
	if st == nil {
		return
	}
	h, err := st.History(r.Context(), PlayerFrom(r.Context()), limitParam(r, 20))
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, h)
}

func (s *Server) handleOutcome(w http.ResponseWriter, r *http.Request) {
	st := s.statsStore(w)
	if st == nil {
		return
	}
	var req stats.OutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	// Only games played on this server's answer list count.
	if !s.opts.Words.IsAnswer(req.Target) || req.Attempts < 1 || req.Attempts > maxListLimit {
		http.Error(w, `{"error":"bad_outcome"}`, http.StatusBadRequest)
		return
	}
	updated, err := st.Record(r.Context(), stats.Outcome{
		Player:   PlayerFrom(r.Context()),
		Won:      req.Won,
		Target:   req.Target,
		Attempts: req.Attempts,
		At:       s.opts.Now(),
	})
	if err != nil {
		log.Error().Err(err).Msg("record outcome")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, updated)
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	st := s.statsStore(w)
	if st == nil {
		return
	}
	rows, err := st.Leaderboard(r.Context(), r.URL.Query().Get("sort"), limitParam(r, stats.DefaultLeaderboardLimit))
	if errors.Is(err, stats.ErrUnknownSort) {
		http.Error(w, `{"error":"bad_sort"}`, http.StatusBadRequest)
		return
	}
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, rows)
}

func (s *Server) handleRank(w http.ResponseWriter, r *http.Request) {
	st := s.statsStore(w)
	if st == nil {
		return
	}
	rank, err := st.Rank(r.Context(), PlayerFrom(r.Context()))
	if err != nil {
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]int{"rank": rank})
}

// limitParam parses ?limit, clamped to [1, maxListLimit].
func limitParam(r *http.Request, def int) int {
	n, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || n < 1 {
		return def
	}
	return min(n, maxListLimit)
}
