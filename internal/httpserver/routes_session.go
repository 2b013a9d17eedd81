// internal/httpserver/routes_session.go
//
// Session routes. Each player has at most one live game.
//   - POST /session        {mode: "random"|"daily"} → start (restarts any live game)
//   - GET  /session        → current snapshot
//   - POST /session/key    {key} → one key press through the input gate
//   - POST /session/reset  → new game in the same mode
//
// Daily sessions pick today's answer on every reset, so every player shares
// the same word for a UTC date.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JonJui02/wordle-automated-deployment/internal/daily"
	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/input"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
	"github.com/JonJui02/wordle-automated-deployment/internal/store"
)

// Session modes accepted by POST /session.
const (
	ModeRandom = "random"
	ModeDaily  = "daily"
)

func (s *Server) mountSession(r chi.Router) {
	r.Route("/session", func(r chi.Router) {
		r.Post("/", s.handleNewSession)
		r.Get("/", s.handleGetSession)
		r.Post("/key", s.handleKey)
		r.Post("/reset", s.handleReset)
	})
}

type newSessionReq struct {
	Mode string `json:"mode"`
}

type keyReq struct {
	Key string `json:"key"`
}

// keyRes reports whether the key was accepted and the resulting state.
// Error carries the player-facing message of a rejected guess.
type keyRes struct {
	Accepted bool          `json:"accepted"`
	Error    string        `json:"error,omitempty"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// picker returns the target picker for mode.
func (s *Server) picker(mode string) (func() string, error) {
	switch mode {
	case "", ModeRandom:
		return s.opts.Words.RandomAnswer, nil
	case ModeDaily:
		return daily.Picker{
			Answers: s.opts.Words.Answers(),
			Salt:    s.opts.Config.Daily.Salt,
			Now:     s.opts.Now,
		}.Word, nil
	}
	return nil, errBadMode
}

// newSession builds a session for player that draws targets from pick.
func (s *Server) newSession(player string, pick func() string) (*game.Session, error) {
	opts := game.Options{
		Config: s.opts.Config.Game,
		Oracle: s.opts.Oracle,
		Pacer:  s.opts.Pacer,
		Pick:   pick,
	}
	if s.opts.Stats != nil {
		opts.Ledger = stats.PlayerLedger{Store: s.opts.Stats, Player: player, Now: s.opts.Now}
	}
	return game.NewSession("", opts)
}

var errBadMode = errors.New("unknown mode")

func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	var req newSessionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	pick, err := s.picker(req.Mode)
	if err != nil {
		http.Error(w, `{"error":"bad_mode"}`, http.StatusBadRequest)
		return
	}

	// The live game is restarted in place so open sockets keep following it.
	player := PlayerFrom(r.Context())
	if sess, err := s.opts.Sessions.Get(r.Context(), player); err == nil {
		if err := sess.ResetWith(pick); err != nil {
			http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
			return
		}
		writeJSON(w, sess.Snapshot())
		return
	}

	sess, err := s.newSession(player, pick)
	if err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	if err := s.opts.Sessions.Save(r.Context(), player, sess); err != nil {
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, sess.Snapshot())
}

// current loads the player's live session or writes a 404.
func (s *Server) current(w http.ResponseWriter, r *http.Request) *game.Session {
	sess, err := s.opts.Sessions.Get(r.Context(), PlayerFrom(r.Context()))
	if errors.Is(err, store.ErrNotFound) {
		http.Error(w, `{"error":"no_session"}`, http.StatusNotFound)
		return nil
	}
	if err != nil {
		http.Error(w, `{"error":"load_failed"}`, http.StatusInternalServerError)
		return nil
	}
	return sess
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	if sess := s.current(w, r); sess != nil {
		writeJSON(w, sess.Snapshot())
	}
}

func (s *Server) handleKey(w http.ResponseWriter, r *http.Request) {
	var req keyReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	a := input.Parse(req.Key)
	if a.Kind == input.KindNone {
		http.Error(w, `{"error":"bad_key"}`, http.StatusBadRequest)
		return
	}
	sess := s.current(w, r)
	if sess == nil {
		return
	}

	res, ok := input.NewGate(sess).Accept(r.Context(), a)
	writeJSON(w, keyRes{Accepted: ok, Error: game.Message(res.Err), Snapshot: sess.Snapshot()})
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sess := s.current(w, r)
	if sess == nil {
		return
	}
	if err := sess.Reset(""); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusInternalServerError)
		return
	}
	writeJSON(w, sess.Snapshot())
}
