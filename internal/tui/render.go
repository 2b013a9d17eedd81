package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JonJui02/wordle-automated-deployment/internal/game"
	"github.com/JonJui02/wordle-automated-deployment/internal/stats"
)

var keyboardRows = []string{"qwertyuiop", "asdfghjkl", "zxcvbnm"}

// styles are bound to one renderer so SSH sessions get their own color profile.
type styles struct {
	tile    map[game.Status]lipgloss.Style
	key     map[game.Status]lipgloss.Style
	title   lipgloss.Style
	message lipgloss.Style
	banner  lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) styles {
	tile := r.NewStyle().Width(3).Align(lipgloss.Center).Bold(true).Foreground(lipgloss.Color("15"))
	keyBase := r.NewStyle().Padding(0, 1).Foreground(lipgloss.Color("15"))

	return styles{
		tile: map[game.Status]lipgloss.Style{
			game.StatusEmpty:   tile.Background(lipgloss.Color("236")),
			game.StatusFilled:  tile.Background(lipgloss.Color("240")),
			game.StatusCorrect: tile.Background(lipgloss.Color("28")),
			game.StatusPresent: tile.Background(lipgloss.Color("136")),
			game.StatusAbsent:  tile.Background(lipgloss.Color("238")).Foreground(lipgloss.Color("250")),
		},
		key: map[game.Status]lipgloss.Style{
			game.StatusEmpty:   keyBase.Background(lipgloss.Color("244")),
			game.StatusCorrect: keyBase.Background(lipgloss.Color("28")),
			game.StatusPresent: keyBase.Background(lipgloss.Color("136")),
			game.StatusAbsent:  keyBase.Background(lipgloss.Color("236")).Foreground(lipgloss.Color("242")),
		},
		title:   r.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).MarginBottom(1),
		message: r.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")).MarginTop(1),
		dim:     r.NewStyle().Foreground(lipgloss.Color("245")),
	}
}

// renderBoard draws the tile grid, one line per attempt.
func (st styles) renderBoard(snap game.Snapshot) string {
	lines := make([]string, len(snap.Board))
	for i, row := range snap.Board {
		tiles := make([]string, len(row))
		for j, c := range row {
			letter := strings.ToUpper(c.Letter)
			if letter == "" {
				letter = " "
			}
			tiles[j] = st.tile[c.Status].Render(letter)
		}
		lines[i] = strings.Join(tiles, " ")
	}
	return strings.Join(lines, "\n\n")
}

// renderKeyboard draws the on-screen keyboard colored by best-known status.
func (st styles) renderKeyboard(keys map[string]game.Status) string {
	lines := make([]string, len(keyboardRows))
	for i, row := range keyboardRows {
		cells := make([]string, len(row))
		for j, r := range row {
			s := keys[string(r)]
			if s == game.StatusFilled {
				s = game.StatusEmpty
			}
			cells[j] = st.key[s].Render(strings.ToUpper(string(r)))
		}
		lines[i] = strings.Join(cells, " ")
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}

// renderStats draws the end-of-game counters.
func (st styles) renderStats(s stats.Stats) string {
	return st.dim.Render(fmt.Sprintf(
		"Played %d   Win %% %.0f   Streak %d   Best %d",
		s.GamesPlayed, s.WinRate(), s.CurrentStreak, s.MaxStreak,
	))
}

// bannerText is the end-of-game headline.
func bannerText(snap game.Snapshot) string {
	if !snap.Over {
		return ""
	}
	if snap.Won {
		praise := []string{"Genius", "Magnificent", "Impressive", "Splendid", "Great", "Phew"}
		idx := snap.Row
		if idx >= len(praise) {
			idx = len(praise) - 1
		}
		return praise[idx] + "!"
	}
	return "The word was " + strings.ToUpper(snap.Answer)
}
