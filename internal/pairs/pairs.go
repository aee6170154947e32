// Package pairs ranks teammate duos by joint win rate and rival duos by
// how one-sided their head-to-head record is, over the whole history.
package pairs

import (
	"bytes"
	"sort"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

const (
	// DefaultTopN limits the ranked lists when the caller passes no limit.
	DefaultTopN = 5
	// DefaultMinSample is the minimum shared or faced matches a pair
	// needs before it is ranked at all.
	DefaultMinSample = 2
)

type PairStat struct {
	Player1         domain.Player
	Player2         domain.Player
	MatchesTogether int
	WinsTogether    int
	WinRate         float64
}

type RivalStat struct {
	// Dominant is the player who wins the head-to-head more often;
	// Underdog is the other one, whatever order the ids sort in.
	Dominant       domain.Player
	Underdog       domain.Player
	MatchesAgainst int
	DominantWins   int
	DominanceRate  float64
}

// pairKey keeps (X,Y) and (Y,X) in one bucket: First is always the
// smaller id.
type pairKey struct {
	First  uuid.UUID
	Second uuid.UUID
}

func makeKey(a, b uuid.UUID) pairKey {
	if bytes.Compare(a[:], b[:]) <= 0 {
		return pairKey{First: a, Second: b}
	}
	return pairKey{First: b, Second: a}
}

func (k pairKey) less(o pairKey) bool {
	if c := bytes.Compare(k.First[:], o.First[:]); c != 0 {
		return c < 0
	}
	return bytes.Compare(k.Second[:], o.Second[:]) < 0
}

type pairTally struct {
	key       pairKey
	firstWins int
	total     int
}

// TopTeammates ranks same-side pairs by joint win rate. topN and
// minSample fall back to the package defaults when non-positive.
func TopTeammates(players []domain.Player, matches []domain.Match, participations []domain.Participation, topN, minSample int) []PairStat {
	topN, minSample = applyDefaults(topN, minSample)
	playerByID := indexPlayers(players)

	buckets := make(map[pairKey]*pairTally)
	forEachMatch(matches, participations, func(m domain.Match, sideA, sideB []uuid.UUID) {
		countSamePairs(buckets, sideA, m.Winner == domain.OutcomeA)
		countSamePairs(buckets, sideB, m.Winner == domain.OutcomeB)
	})

	stats := make([]PairStat, 0, len(buckets))
	for _, t := range buckets {
		if t.total < minSample {
			continue
		}
		p1, ok1 := playerByID[t.key.First]
		p2, ok2 := playerByID[t.key.Second]
		if !ok1 || !ok2 {
			continue
		}
		stats = append(stats, PairStat{
			Player1:         p1,
			Player2:         p2,
			MatchesTogether: t.total,
			WinsTogether:    t.firstWins,
			WinRate:         float64(t.firstWins) / float64(t.total) * 100,
		})
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].WinRate != stats[j].WinRate {
			return stats[i].WinRate > stats[j].WinRate
		}
		if stats[i].MatchesTogether != stats[j].MatchesTogether {
			return stats[i].MatchesTogether > stats[j].MatchesTogether
		}
		return makeKey(stats[i].Player1.ID, stats[i].Player2.ID).less(makeKey(stats[j].Player1.ID, stats[j].Player2.ID))
	})
	return truncatePairs(stats, topN)
}

// TopRivals ranks cross-side pairs by dominance: the better half of the
// head-to-head record, reported from the dominant player's side.
func TopRivals(players []domain.Player, matches []domain.Match, participations []domain.Participation, topN, minSample int) []RivalStat {
	topN, minSample = applyDefaults(topN, minSample)
	playerByID := indexPlayers(players)

	buckets := make(map[pairKey]*pairTally)
	forEachMatch(matches, participations, func(m domain.Match, sideA, sideB []uuid.UUID) {
		for _, a := range sideA {
			for _, b := range sideB {
				key := makeKey(a, b)
				t := buckets[key]
				if t == nil {
					t = &pairTally{key: key}
					buckets[key] = t
				}
				t.total++
				// firstWins is from the perspective of the canonically
				// first id, wherever it actually played.
				firstOnA := key.First == a
				if (m.Winner == domain.OutcomeA && firstOnA) || (m.Winner == domain.OutcomeB && !firstOnA) {
					t.firstWins++
				}
			}
		}
	})

	stats := make([]RivalStat, 0, len(buckets))
	for _, t := range buckets {
		if t.total < minSample {
			continue
		}
		p1, ok1 := playerByID[t.key.First]
		p2, ok2 := playerByID[t.key.Second]
		if !ok1 || !ok2 {
			continue
		}
		secondWins := t.total - t.firstWins
		s := RivalStat{
			Dominant:       p1,
			Underdog:       p2,
			MatchesAgainst: t.total,
			DominantWins:   t.firstWins,
		}
		if secondWins > t.firstWins {
			s.Dominant, s.Underdog = p2, p1
			s.DominantWins = secondWins
		}
		s.DominanceRate = float64(s.DominantWins) / float64(t.total) * 100
		stats = append(stats, s)
	}
	sort.SliceStable(stats, func(i, j int) bool {
		if stats[i].DominanceRate != stats[j].DominanceRate {
			return stats[i].DominanceRate > stats[j].DominanceRate
		}
		if stats[i].MatchesAgainst != stats[j].MatchesAgainst {
			return stats[i].MatchesAgainst > stats[j].MatchesAgainst
		}
		return makeKey(stats[i].Dominant.ID, stats[i].Underdog.ID).less(makeKey(stats[j].Dominant.ID, stats[j].Underdog.ID))
	})
	return truncateRivals(stats, topN)
}

func countSamePairs(buckets map[pairKey]*pairTally, side []uuid.UUID, won bool) {
	for i := 0; i < len(side); i++ {
		for j := i + 1; j < len(side); j++ {
			key := makeKey(side[i], side[j])
			t := buckets[key]
			if t == nil {
				t = &pairTally{key: key}
				buckets[key] = t
			}
			t.total++
			if won {
				t.firstWins++
			}
		}
	}
}

func forEachMatch(matches []domain.Match, participations []domain.Participation, fn func(m domain.Match, sideA, sideB []uuid.UUID)) {
	bySide := make(map[uuid.UUID]map[domain.Side][]uuid.UUID, len(matches))
	for _, part := range participations {
		sides := bySide[part.MatchID]
		if sides == nil {
			sides = make(map[domain.Side][]uuid.UUID, 2)
			bySide[part.MatchID] = sides
		}
		sides[part.Side] = append(sides[part.Side], part.PlayerID)
	}
	for _, m := range matches {
		sides := bySide[m.ID]
		fn(m, sides[domain.SideA], sides[domain.SideB])
	}
}

func indexPlayers(players []domain.Player) map[uuid.UUID]domain.Player {
	byID := make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	return byID
}

func applyDefaults(topN, minSample int) (int, int) {
	if topN <= 0 {
		topN = DefaultTopN
	}
	if minSample <= 0 {
		minSample = DefaultMinSample
	}
	return topN, minSample
}

func truncatePairs(stats []PairStat, topN int) []PairStat {
	if len(stats) > topN {
		return stats[:topN]
	}
	return stats
}

func truncateRivals(stats []RivalStat, topN int) []RivalStat {
	if len(stats) > topN {
		return stats[:topN]
	}
	return stats
}
