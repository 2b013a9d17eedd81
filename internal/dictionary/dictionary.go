// internal/dictionary/dictionary.go
//
// Dictionary oracles: answer "is this a real word?" for a guess.
//
// Variants:
//   - Local:  in-process word list lookup; never fails.
//   - Remote: HTTP lookup, GET {base}/{word}; 200 → valid, 404 → invalid.
//   - Cached: Remote behind an LRU cache, falling back to Local when the
//             remote service errors.
//
// All variants satisfy game.Oracle.

package dictionary

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog/log"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
)

// Modes accepted by New.
const (
	ModeLocal  = "local"
	ModeRemote = "remote"
	ModeCached = "cached"
)

// DefaultCacheSize is the number of remote verdicts Cached keeps.
const DefaultCacheSize = 4096

// ErrUnexpectedStatus is returned by Remote for any status other than 200/404.
var ErrUnexpectedStatus = errors.New("dictionary: unexpected status")

// Wordlist is the lookup Local needs. *words.Lists satisfies it.
type Wordlist interface {
	IsAllowed(w string) bool
}

// Local answers from an in-memory word list.
type Local struct {
	Words Wordlist
}

// IsValidWord implements game.Oracle.
func (l Local) IsValidWord(_ context.Context, word string) (bool, error) {
	return l.Words.IsAllowed(word), nil
}

// Remote asks an HTTP dictionary service.
type Remote struct {
	base   string
	client *http.Client
}

// NewRemote builds a Remote for base (e.g. https://api.dictionaryapi.dev/api/v2/entries/en).
// A nil client gets a 5s timeout.
func NewRemote(base string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 5 * time.Second}
	}
	return &Remote{base: strings.TrimRight(base, "/"), client: client}
}

// IsValidWord implements game.Oracle.
func (r *Remote) IsValidWord(ctx context.Context, word string) (bool, error) {
	u := r.base + "/" + url.PathEscape(strings.ToLower(word))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return false, err
	}
	resp, err := r.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}
}

// Cached memoizes a remote oracle and falls back to a local one on error.
type Cached struct {
	remote   game.Oracle
	fallback game.Oracle
	cache    *lru.Cache[string, bool]
}

// NewCached wraps remote. fallback may be nil, in which case remote errors
// are returned to the caller.
func NewCached(remote, fallback game.Oracle, size int) (*Cached, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[string, bool](size)
	if err != nil {
		return nil, err
	}
	return &Cached{remote: remote, fallback: fallback, cache: c}, nil
}

// IsValidWord implements game.Oracle. Only remote verdicts are cached.
func (c *Cached) IsValidWord(ctx context.Context, word string) (bool, error) {
	word = strings.ToLower(word)
	if ok, hit := c.cache.Get(word); hit {
		return ok, nil
	}

	ok, err := c.remote.IsValidWord(ctx, word)
	if err == nil {
		c.cache.Add(word, ok)
		return ok, nil
	}
	if c.fallback == nil || ctx.Err() != nil {
		return false, err
	}
	log.Warn().Err(err).Str("word", word).Msg("dictionary: remote lookup failed, using local list")
	return c.fallback.IsValidWord(ctx, word)
}

// Len returns the number of cached verdicts.
func (c *Cached) Len() int { return c.cache.Len() }

// New builds an oracle for mode. remoteURL is required for remote and cached.
func New(mode, remoteURL string, list Wordlist) (game.Oracle, error) {
	local := Local{Words: list}
	switch strings.ToLower(mode) {
	case "", ModeLocal:
		return local, nil
	case ModeRemote:
		if remoteURL == "" {
			return nil, errors.New("dictionary: remote mode needs a URL")
		}
		return NewRemote(remoteURL, nil), nil
	case ModeCached:
		if remoteURL == "" {
			return nil, errors.New("dictionary: cached mode needs a URL")
		}
		return NewCached(NewRemote(remoteURL, nil), local, DefaultCacheSize)
	default:
		return nil, fmt.Errorf("dictionary: unknown mode %q", mode)
	}
}
