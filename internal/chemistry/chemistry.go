// Package chemistry answers "who do I play best with" and "who beats me
// the most" for a single player.
package chemistry

import (
	"bytes"
	"sort"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

type Partner struct {
	Player          domain.Player
	MatchesTogether int
	WinsTogether    int
	WinRate         float64
}

type Rival struct {
	Player         domain.Player
	MatchesAgainst int
	LossesAgainst  int
	LossRate       float64
}

type tally struct {
	hits  int
	total int
}

// IdealPartner returns the teammate with the best same-side win rate
// over at least one shared match. Ties prefer the larger sample, then
// the smallest candidate id. The second return is false when no
// teammate qualifies.
func IdealPartner(playerID uuid.UUID, players []domain.Player, matches []domain.Match, participations []domain.Participation) (Partner, bool) {
	roster := indexPlayers(players)
	counters := tallyCandidates(playerID, roster, matches, participations, func(own domain.Participation, other domain.Participation, m domain.Match) (bool, bool) {
		if other.Side != own.Side {
			return false, false
		}
		return true, m.Winner.WonBy(own.Side)
	})

	id, t, ok := pickBest(counters)
	if !ok {
		return Partner{}, false
	}
	return Partner{
		Player:          roster[id],
		MatchesTogether: t.total,
		WinsTogether:    t.hits,
		WinRate:         float64(t.hits) / float64(t.total) * 100,
	}, true
}

// Nemesis returns the opponent with the highest loss rate against the
// player, over at least one faced match. Tie-break as for IdealPartner.
func Nemesis(playerID uuid.UUID, players []domain.Player, matches []domain.Match, participations []domain.Participation) (Rival, bool) {
	roster := indexPlayers(players)
	counters := tallyCandidates(playerID, roster, matches, participations, func(own domain.Participation, other domain.Participation, m domain.Match) (bool, bool) {
		if other.Side == own.Side {
			return false, false
		}
		return true, m.Winner.LostBy(own.Side)
	})

	id, t, ok := pickBest(counters)
	if !ok {
		return Rival{}, false
	}
	return Rival{
		Player:         roster[id],
		MatchesAgainst: t.total,
		LossesAgainst:  t.hits,
		LossRate:       float64(t.hits) / float64(t.total) * 100,
	}, true
}

// tallyCandidates walks every match the target played and feeds each
// co-participant through classify, which reports whether the candidate
// counts at all and whether this match scores a hit for them.
// Candidates outside the roster snapshot are dangling references and
// are excluded.
func tallyCandidates(
	playerID uuid.UUID,
	roster map[uuid.UUID]domain.Player,
	matches []domain.Match,
	participations []domain.Participation,
	classify func(own, other domain.Participation, m domain.Match) (counts bool, hit bool),
) map[uuid.UUID]tally {
	matchByID := make(map[uuid.UUID]domain.Match, len(matches))
	for _, m := range matches {
		matchByID[m.ID] = m
	}
	partsByMatch := make(map[uuid.UUID][]domain.Participation)
	var own []domain.Participation
	for _, part := range participations {
		partsByMatch[part.MatchID] = append(partsByMatch[part.MatchID], part)
		if part.PlayerID == playerID {
			own = append(own, part)
		}
	}

	counters := make(map[uuid.UUID]tally)
	for _, op := range own {
		m, ok := matchByID[op.MatchID]
		if !ok {
			continue
		}
		for _, other := range partsByMatch[op.MatchID] {
			if other.PlayerID == playerID {
				continue
			}
			if _, onRoster := roster[other.PlayerID]; !onRoster {
				continue
			}
			counts, hit := classify(op, other, m)
			if !counts {
				continue
			}
			t := counters[other.PlayerID]
			t.total++
			if hit {
				t.hits++
			}
			counters[other.PlayerID] = t
		}
	}
	return counters
}

// pickBest selects the candidate with the highest hit rate; equal rates
// prefer the larger sample, and the smallest id settles what is left.
func pickBest(counters map[uuid.UUID]tally) (uuid.UUID, tally, bool) {
	ids := make([]uuid.UUID, 0, len(counters))
	for id := range counters {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return bytes.Compare(ids[i][:], ids[j][:]) < 0
	})

	var (
		bestID   uuid.UUID
		best     tally
		bestRate float64
		found    bool
	)
	for _, id := range ids {
		t := counters[id]
		if t.total < 1 {
			continue
		}
		rate := float64(t.hits) / float64(t.total)
		if !found || rate > bestRate || (rate == bestRate && t.total > best.total) {
			bestID, best, bestRate, found = id, t, rate, true
		}
	}
	return bestID, best, found
}

func indexPlayers(players []domain.Player) map[uuid.UUID]domain.Player {
	byID := make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID
}
