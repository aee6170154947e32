// Package standings derives the league table from full match history.
package standings

import (
	"sort"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

// FormWindow caps the length of a player's recent-form sequence.
const FormWindow = 5

const (
	pointsPerWin  = 3
	pointsPerDraw = 1
)

type FormResult string

const (
	FormWin  FormResult = "W"
	FormDraw FormResult = "D"
	FormLoss FormResult = "L"
)

type Row struct {
	Player   domain.Player
	Played   int
	Wins     int
	Draws    int
	Losses   int
	GoalDiff int
	Points   int
	WinRate  float64
	Form     []FormResult
}

// Calculate produces one row per roster player, in roster order. Players
// with no recorded participations get an all-zero row. Participations
// pointing at unknown matches are skipped, as are matches whose recorded
// winning side has nobody on it.
func Calculate(players []domain.Player, matches []domain.Match, participations []domain.Participation) []Row {
	matchByID := make(map[uuid.UUID]domain.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}
	playable := playableMatches(matches, participations)

	type appearance struct {
		match domain.Match
		side  domain.Side
	}
	byPlayer := make(map[uuid.UUID][]appearance)
	for _, part := range participations {
		m, ok := matchByID[part.MatchID]
		if !ok || !playable[part.MatchID] {
			continue
		}
		byPlayer[part.PlayerID] = append(byPlayer[part.PlayerID], appearance{match: m, side: part.Side})
	}

	rows := make([]Row, 0, len(players))
	for _, player := range players {
		games := byPlayer[player.ID]
		sort.SliceStable(games, func(i, j int) bool {
			return games[i].match.Date.Before(games[j].match.Date)
		})

		row := Row{Player: player}
		form := make([]FormResult, 0, len(games))
		for _, g := range games {
			switch {
			case g.match.Winner.WonBy(g.side):
				row.Wins++
				row.GoalDiff += g.match.Margin()
				form = append(form, FormWin)
			case g.match.Winner == domain.OutcomeDraw:
				row.Draws++
				form = append(form, FormDraw)
			default:
				row.Losses++
				row.GoalDiff -= g.match.Margin()
				form = append(form, FormLoss)
			}
		}
		row.Played = len(games)
		row.Points = row.Wins*pointsPerWin + row.Draws*pointsPerDraw
		if row.Played > 0 {
			row.WinRate = float64(row.Wins) / float64(row.Played) * 100
		}
		if len(form) > FormWindow {
			form = form[len(form)-FormWindow:]
		}
		reverse(form)
		row.Form = form
		rows = append(rows, row)
	}
	return rows
}

// Sort orders rows by points, then goal difference, then wins, all
// descending. The sort is stable so residual ties keep input order.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDiff != rows[j].GoalDiff {
			return rows[i].GoalDiff > rows[j].GoalDiff
		}
		return rows[i].Wins > rows[j].Wins
	})
}

// playableMatches filters out malformed history: a non-draw match whose
// winning side has no participants contributes to nobody's stats.
func playableMatches(matches []domain.Match, participations []domain.Participation) map[uuid.UUID]bool {
	onSide := make(map[uuid.UUID][2]int, len(matches))
	for _, part := range participations {
		counts := onSide[part.MatchID]
		counts[part.Side]++
		onSide[part.MatchID] = counts
	}
	playable := make(map[uuid.UUID]bool, len(matches))
	for _, m := range matches {
		counts := onSide[m.ID]
		switch m.Winner {
		case domain.OutcomeA:
			playable[m.ID] = counts[domain.SideA] > 0
		case domain.OutcomeB:
			playable[m.ID] = counts[domain.SideB] > 0
		default:
			playable[m.ID] = true
		}
	}
	return playable
}

func reverse(form []FormResult) {
	for i, j := 0, len(form)-1; i < j; i, j = i+1, j-1 {
		form[i], form[j] = form[j], form[i]
	}
}
