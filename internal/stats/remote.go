package stats

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// OutcomeRequest is the JSON body of POST /stats/outcome.
type OutcomeRequest struct {
	Won      bool   `json:"won"`
	Target   string `json:"target"`
	Attempts int    `json:"attempts"`
}

// Remote posts finished games to a wordle server's /stats/outcome endpoint.
// The server derives the player from Token. It satisfies game.Ledger.
type Remote struct {
	base   string
	token  string
	client *http.Client
}

// NewRemote builds a Remote ledger. A nil client gets a 10s timeout.
func NewRemote(base, token string, client *http.Client) *Remote {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &Remote{base: strings.TrimRight(base, "/"), token: token, client: client}
}

// RecordOutcome implements game.Ledger.
func (r *Remote) RecordOutcome(ctx context.Context, won bool, target string, attempts int) error {
	body, err := json.Marshal(OutcomeRequest{Won: won, Target: target, Attempts: attempts})
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.base+"/stats/outcome", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return fmt.Errorf("stats: remote: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("stats: remote status %d", resp.StatusCode)
	}
	return nil
}

// FetchToken asks a wordle server for a player token (POST {base}/player).
// Passing a previous token keeps the same player id.
func FetchToken(ctx context.Context, base, previous string, client *http.Client) (string, error) {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, strings.TrimRight(base, "/")+"/player", nil)
	if err != nil {
		return "", err
	}
	if previous != "" {
		req.Header.Set("Authorization", "Bearer "+previous)
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("stats: fetch token: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("stats: fetch token: status %d", resp.StatusCode)
	}
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("stats: fetch token: %w", err)
	}
	if body.Token == "" {
		return "", errors.New("stats: fetch token: empty token")
	}
	return body.Token, nil
}
