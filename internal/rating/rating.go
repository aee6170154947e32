// Package rating computes a Glicko-2 power rating over the match
// history. Team matches have no direct head-to-head, so every cross-side
// player pair of a match is fed to the rating period as one win, loss or
// draw result.
package rating

import (
	"bytes"
	"sort"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
	glicko "github.com/zelenin/go-glicko2"
)

type Entry struct {
	Player    domain.Player
	Rating    float64
	Deviation float64
}

// Leaderboard rates every roster player over one rating period covering
// the full history and returns them best first. Players with no matches
// keep the base rating (their deviation decays instead).
func Leaderboard(players []domain.Player, matches []domain.Match, participations []domain.Participation) []Entry {
	glickoPlayers := make(map[uuid.UUID]*glicko.Player, len(players))
	period := glicko.NewRatingPeriod()
	for _, p := range players {
		gp := glicko.NewPlayer(glicko.NewRating(
			glicko.RATING_BASE_R,
			glicko.RATING_BASE_RD,
			glicko.RATING_BASE_SIGMA,
		))
		glickoPlayers[p.ID] = gp
		// Registering idle players lets their deviation decay.
		period.AddPlayer(gp)
	}

	bySide := make(map[uuid.UUID]map[domain.Side][]uuid.UUID, len(matches))
	for _, part := range participations {
		if _, known := glickoPlayers[part.PlayerID]; !known {
			continue
		}
		sides := bySide[part.MatchID]
		if sides == nil {
			sides = make(map[domain.Side][]uuid.UUID, 2)
			bySide[part.MatchID] = sides
		}
		sides[part.Side] = append(sides[part.Side], part.PlayerID)
	}

	ordered := make([]domain.Match, len(matches))
	copy(ordered, matches)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	for _, m := range ordered {
		sides := bySide[m.ID]
		for _, a := range sides[domain.SideA] {
			for _, b := range sides[domain.SideB] {
				pa := glickoPlayers[a]
				pb := glickoPlayers[b]
				switch m.Winner {
				case domain.OutcomeA:
					period.AddMatch(pa, pb, glicko.MATCH_RESULT_WIN)
				case domain.OutcomeB:
					period.AddMatch(pa, pb, glicko.MATCH_RESULT_LOSS)
				default:
					period.AddMatch(pa, pb, glicko.MATCH_RESULT_DRAW)
				}
			}
		}
	}

	period.Calculate()

	entries := make([]Entry, 0, len(players))
	for _, p := range players {
		r := glickoPlayers[p.ID].Rating()
		entries = append(entries, Entry{
			Player:    p,
			Rating:    r.R(),
			Deviation: r.Rd(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Rating != entries[j].Rating {
			return entries[i].Rating > entries[j].Rating
		}
		if entries[i].Deviation != entries[j].Deviation {
			return entries[i].Deviation < entries[j].Deviation
		}
		return bytes.Compare(entries[i].Player.ID[:], entries[j].Player.ID[:]) < 0
	})
	return entries
}
