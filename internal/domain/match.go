package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Side int

const (
	SideA Side = iota
	SideB
)

func (s Side) String() string {
	if s == SideA {
		return "A"
	}
	return "B"
}

func (s Side) Other() Side {
	if s == SideA {
		return SideB
	}
	return SideA
}

func ParseSide(s string) (Side, error) {
	switch s {
	case "A":
		return SideA, nil
	case "B":
		return SideB, nil
	}
	return 0, fmt.Errorf("unknown side %q", s)
}

// Outcome is the recorded result of a match: a win for one side or a draw.
type Outcome int

const (
	OutcomeA Outcome = iota
	OutcomeB
	OutcomeDraw
)

func (o Outcome) String() string {
	switch o {
	case OutcomeA:
		return "A"
	case OutcomeB:
		return "B"
	}
	return "draw"
}

func ParseOutcome(s string) (Outcome, error) {
	switch s {
	case "A":
		return OutcomeA, nil
	case "B":
		return OutcomeB, nil
	case "draw":
		return OutcomeDraw, nil
	}
	return 0, fmt.Errorf("unknown outcome %q", s)
}

func (o Outcome) WonBy(s Side) bool {
	return (o == OutcomeA && s == SideA) || (o == OutcomeB && s == SideB)
}

func (o Outcome) LostBy(s Side) bool {
	return (o == OutcomeA && s == SideB) || (o == OutcomeB && s == SideA)
}

type Match struct {
	ID       uuid.UUID
	Date     time.Time
	Winner   Outcome
	GoalDiff int
}

// Margin is the winning margin of the match. Draws always count as zero,
// whatever was recorded.
func (m Match) Margin() int {
	if m.Winner == OutcomeDraw {
		return 0
	}
	return m.GoalDiff
}

// Participation records that a player was on one side of one match.
type Participation struct {
	MatchID  uuid.UUID
	PlayerID uuid.UUID
	Side     Side
}
