// Package balance splits a pool of selected players into two even teams.
// It never fails: structurally odd inputs come back as warnings on the
// result, and the caller decides whether to accept or re-roll.
package balance

import (
	"fmt"
	"sort"
	"strings"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

// SideSplit groups one role slot's members per side.
type SideSplit struct {
	A []domain.Player
	B []domain.Player
}

// Breakdown shows which slot of the algorithm each player was assigned
// in. Goalkeepers demoted to the outfield pool show up under Outfield,
// not Goalkeepers.
type Breakdown struct {
	Goalkeepers SideSplit
	Defenders   SideSplit
	Outfield    SideSplit
}

type Result struct {
	TeamA     []domain.Player
	TeamB     []domain.Player
	AvgA      float64
	AvgB      float64
	Diff      float64
	Warnings  []string
	Breakdown Breakdown
}

// Split partitions the selected players into two teams in three phases:
// goalkeepers in input order, defenders by snake draft on their defense
// stat, and everyone else greedily onto the side with the lower running
// average.
func Split(selected []domain.Player) Result {
	var warnings []string

	var goalkeepers, defenders, outfield []domain.Player
	for _, p := range selected {
		switch p.Role {
		case domain.RoleGoalkeeper:
			goalkeepers = append(goalkeepers, p)
		case domain.RoleDefender:
			defenders = append(defenders, p)
		default:
			outfield = append(outfield, p)
		}
	}

	var bd Breakdown

	// Goalkeepers are treated as roughly interchangeable: input order,
	// first to A, second to B. Extra keepers play outfield.
	switch {
	case len(goalkeepers) == 0:
		warnings = append(warnings, "no goalkeepers selected")
	case len(goalkeepers) == 1:
		bd.Goalkeepers.A = append(bd.Goalkeepers.A, goalkeepers[0])
		warnings = append(warnings, "only one goalkeeper selected, one side will play without a goalkeeper")
	default:
		bd.Goalkeepers.A = append(bd.Goalkeepers.A, goalkeepers[0])
		bd.Goalkeepers.B = append(bd.Goalkeepers.B, goalkeepers[1])
		if extra := goalkeepers[2:]; len(extra) > 0 {
			nicknames := make([]string, 0, len(extra))
			for _, p := range extra {
				nicknames = append(nicknames, p.Nickname)
			}
			outfield = append(outfield, extra...)
			warnings = append(warnings, fmt.Sprintf(
				"%d extra goalkeeper(s) will play outfield: %s",
				len(extra), strings.Join(nicknames, ", ")))
		}
	}

	// Snake draft over defenders sorted by defense stat: B,A then A,B
	// then B,A again, so reading down the sorted list never hands both
	// best-of-round picks to the same side.
	sortedDefenders := make([]domain.Player, len(defenders))
	copy(sortedDefenders, defenders)
	sort.SliceStable(sortedDefenders, func(i, j int) bool {
		return sortedDefenders[i].DefenseStat() > sortedDefenders[j].DefenseStat()
	})
	for i, p := range sortedDefenders {
		round := i / 2
		firstPick := i%2 == 0
		toA := (round%2 == 1) == firstPick
		if toA {
			bd.Defenders.A = append(bd.Defenders.A, p)
		} else {
			bd.Defenders.B = append(bd.Defenders.B, p)
		}
	}

	teamA := concat(bd.Goalkeepers.A, bd.Defenders.A)
	teamB := concat(bd.Goalkeepers.B, bd.Defenders.B)

	// Remaining players go to the side with the lower running average,
	// best first. Ties go to the smaller side, then to A.
	sortedOutfield := make([]domain.Player, len(outfield))
	copy(sortedOutfield, outfield)
	sort.SliceStable(sortedOutfield, func(i, j int) bool {
		return sortedOutfield[i].Overall() > sortedOutfield[j].Overall()
	})
	for _, p := range sortedOutfield {
		avgA := average(teamA)
		avgB := average(teamB)
		toA := avgA < avgB
		if avgA == avgB {
			toA = len(teamA) <= len(teamB)
		}
		if toA {
			teamA = append(teamA, p)
			bd.Outfield.A = append(bd.Outfield.A, p)
		} else {
			teamB = append(teamB, p)
			bd.Outfield.B = append(bd.Outfield.B, p)
		}
	}

	if diff := len(teamA) - len(teamB); diff > 1 || diff < -1 {
		warnings = append(warnings, fmt.Sprintf(
			"uneven team sizes: side A has %d, side B has %d", len(teamA), len(teamB)))
	}

	avgA := average(teamA)
	avgB := average(teamB)
	return Result{
		TeamA:     teamA,
		TeamB:     teamB,
		AvgA:      avgA,
		AvgB:      avgB,
		Diff:      abs(avgA - avgB),
		Warnings:  warnings,
		Breakdown: bd,
	}
}

// Move transfers a player to the given side and recomputes both averages
// and the imbalance. Moving an unknown player, or one already on the
// target side, returns the result unchanged.
func (r Result) Move(playerID uuid.UUID, to domain.Side) Result {
	from := r.TeamA
	dest := r.TeamB
	if to == domain.SideA {
		from = r.TeamB
		dest = r.TeamA
	}
	i := indexOf(from, playerID)
	if i < 0 {
		return r
	}

	moved := from[i]
	newFrom := make([]domain.Player, 0, len(from)-1)
	newFrom = append(newFrom, from[:i]...)
	newFrom = append(newFrom, from[i+1:]...)
	newDest := make([]domain.Player, 0, len(dest)+1)
	newDest = append(newDest, dest...)
	newDest = append(newDest, moved)

	if to == domain.SideA {
		r.TeamA = newDest
		r.TeamB = newFrom
	} else {
		r.TeamA = newFrom
		r.TeamB = newDest
	}
	r.Breakdown = r.Breakdown.move(playerID, to)
	r.AvgA = average(r.TeamA)
	r.AvgB = average(r.TeamB)
	r.Diff = abs(r.AvgA - r.AvgB)
	return r
}

func (b Breakdown) move(playerID uuid.UUID, to domain.Side) Breakdown {
	b.Goalkeepers = b.Goalkeepers.move(playerID, to)
	b.Defenders = b.Defenders.move(playerID, to)
	b.Outfield = b.Outfield.move(playerID, to)
	return b
}

func (s SideSplit) move(playerID uuid.UUID, to domain.Side) SideSplit {
	from := s.A
	dest := s.B
	if to == domain.SideA {
		from = s.B
		dest = s.A
	}
	i := indexOf(from, playerID)
	if i < 0 {
		return s
	}
	moved := from[i]
	newFrom := make([]domain.Player, 0, len(from)-1)
	newFrom = append(newFrom, from[:i]...)
	newFrom = append(newFrom, from[i+1:]...)
	newDest := make([]domain.Player, 0, len(dest)+1)
	newDest = append(newDest, dest...)
	newDest = append(newDest, moved)
	if to == domain.SideA {
		return SideSplit{A: newDest, B: newFrom}
	}
	return SideSplit{A: newFrom, B: newDest}
}

func indexOf(team []domain.Player, id uuid.UUID) int {
	for i := range team {
		if team[i].ID == id {
			return i
		}
	}
	return -1
}

func average(team []domain.Player) float64 {
	if len(team) == 0 {
		return 0
	}
	var sum float64
	for _, p := range team {
		sum += p.Overall()
	}
	return sum / float64(len(team))
}

func concat(a, b []domain.Player) []domain.Player {
	out := make([]domain.Player, 0, len(a)+len(b))
	out = append(out, a...)
	out = append(out, b...)
	return out
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
