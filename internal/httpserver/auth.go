// internal/httpserver/auth.go
//
// Anonymous player identity.
//
// Every client gets a stable player id on first contact. The id travels in an
// HS256 JWT ("sub" claim), set as an HttpOnly cookie and echoed in the
// X-Player-Token response header so non-browser clients can send it back as
// "Authorization: Bearer <token>".

package httpserver

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

const (
	cookieName  = "wordle_token"
	tokenHeader = "X-Player-Token"
	tokenTTL    = 180 * 24 * time.Hour
)

// ctxPlayerKey is the context key type for the player id.
type ctxPlayerKey struct{}

// PlayerFrom returns the player id placed in ctx by withPlayer.
func PlayerFrom(ctx context.Context) string {
	id, _ := ctx.Value(ctxPlayerKey{}).(string)
	return id
}

// withPlayer resolves the player from a valid token, or mints a new id and
// token when none is present. It never rejects a request.
func (s *Server) withPlayer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := s.parseToken(bearerOrCookie(r))
		if id == "" {
			id = genID()
			tok, exp, err := s.signToken(id)
			if err != nil {
				log.Error().Err(err).Msg("sign player token")
				http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
				return
			}
			setTokenCookie(w, tok, exp)
			w.Header().Set(tokenHeader, tok)
		}
		ctx := context.WithValue(r.Context(), ctxPlayerKey{}, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// handlePlayer returns the caller's id and a fresh token for it.
func (s *Server) handlePlayer(w http.ResponseWriter, r *http.Request) {
	id := PlayerFrom(r.Context())
	tok, exp, err := s.signToken(id)
	if err != nil {
		http.Error(w, `{"error":"sign_failed"}`, http.StatusInternalServerError)
		return
	}
	setTokenCookie(w, tok, exp)
	writeJSON(w, map[string]string{"player": id, "token": tok})
}

// signToken creates an HS256 JWT whose subject is the player id.
func (s *Server) signToken(id string) (string, time.Time, error) {
	now := s.opts.Now()
	exp := now.Add(tokenTTL)
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   id,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	ss, err := t.SignedString(s.secret)
	return ss, exp, err
}

// parseToken returns the player id of a valid token, or "".
func (s *Server) parseToken(tok string) string {
	if tok == "" {
		return ""
	}
	var claims jwt.RegisteredClaims
	t, err := jwt.ParseWithClaims(tok, &claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !t.Valid {
		return ""
	}
	return claims.Subject
}

// setTokenCookie writes the player token cookie.
func setTokenCookie(w http.ResponseWriter, token string, exp time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     cookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  exp,
	})
}

// bearerOrCookie extracts a bearer token from Authorization header or the cookie.
func bearerOrCookie(r *http.Request) string {
	// Authorization: Bearer <token>
	if a := r.Header.Get("Authorization"); strings.HasPrefix(strings.ToLower(a), "bearer ") {
		return strings.TrimSpace(a[7:])
	}
	if c, err := r.Cookie(cookieName); err == nil {
		return c.Value
	}
	return ""
}

// genID creates a 22‑char URL‑safe, crypto‑random identifier (no padding).
func genID() string {
	var b [16]byte
	_, _ = rand.Read(b[:])
	return base64.RawURLEncoding.EncodeToString(b[:])
}
