// Package standings turns a set of decided matches into ranked per-player
// statistics. It is pure: no storage access, no failure modes for well-formed
// input.
package standings

import (
	"sort"

	"github.com/Dosada05/league-system/models"
)

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

type Entry struct {
	PlayerID    int    `json:"id"`
	Name        string `json:"name"`
	GamesPlayed int    `json:"games_played"`
	Wins        int    `json:"wins"`
	Draws       int    `json:"draws"`
	Losses      int    `json:"losses"`
	Points      int    `json:"points"`
}

// Calculate aggregates every decided match into one entry per participating
// player, sorted by points descending. Players with no decided matches do not
// appear. Ties on points keep first-encounter order; no further ranking rule
// is defined for them.
func Calculate(matches []*models.Match) []Entry {
	byPlayer := make(map[int]*Entry)
	order := make([]int, 0)

	entryFor := func(id int, name string) *Entry {
		entry, ok := byPlayer[id]
		if !ok {
			entry = &Entry{PlayerID: id, Name: name}
			byPlayer[id] = entry
			order = append(order, id)
		}
		return entry
	}

	for _, match := range matches {
		if !match.IsDecided() {
			continue
		}

		p1 := entryFor(match.Player1ID, playerName(match.Player1))
		p2 := entryFor(match.Player2ID, playerName(match.Player2))
		p1.GamesPlayed++
		p2.GamesPlayed++

		switch match.Result.Outcome {
		case models.OutcomePlayer1Wins:
			p1.Wins++
			p1.Points += pointsPerWin
			p2.Losses++
		case models.OutcomePlayer2Wins:
			p2.Wins++
			p2.Points += pointsPerWin
			p1.Losses++
		case models.OutcomeDraw:
			p1.Draws++
			p1.Points += pointsPerDraw
			p2.Draws++
			p2.Points += pointsPerDraw
		}
	}

	entries := make([]Entry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *byPlayer[id])
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Points > entries[j].Points
	})
	return entries
}

func playerName(player *models.User) string {
	if player == nil {
		return ""
	}
	return player.Name
}
