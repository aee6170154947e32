package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
)

type Role int

const (
	RoleGoalkeeper Role = iota
	RoleDefender
	RoleMidfielder
	RoleForward
)

func (r Role) String() string {
	switch r {
	case RoleGoalkeeper:
		return "goalkeeper"
	case RoleDefender:
		return "defender"
	case RoleMidfielder:
		return "midfielder"
	case RoleForward:
		return "forward"
	}
	return "unknown"
}

// Label is the short form used in listings.
func (r Role) Label() string {
	switch r {
	case RoleGoalkeeper:
		return "GK"
	case RoleDefender:
		return "DEF"
	case RoleMidfielder:
		return "MID"
	case RoleForward:
		return "FWD"
	}
	return "?"
}

func ParseRole(s string) (Role, error) {
	switch s {
	case "goalkeeper":
		return RoleGoalkeeper, nil
	case "defender":
		return RoleDefender, nil
	case "midfielder":
		return RoleMidfielder, nil
	case "forward":
		return RoleForward, nil
	}
	return 0, fmt.Errorf("unknown role %q", s)
}

type Player struct {
	ID           uuid.UUID
	Name         string
	Nickname     string
	Age          int
	Role         Role
	Technique    float64
	Physical     float64
	Tactics      float64
	Mental       float64
	Strength     string
	Weakness     string
	RegisteredAt time.Time
}

// Overall is the mean of the four ability ratings, rounded to one decimal.
func (p Player) Overall() float64 {
	return math.Round((p.Technique+p.Physical+p.Tactics+p.Mental)/4*10) / 10
}

// DefenseStat is the rating the balancer ranks defenders by.
func (p Player) DefenseStat() float64 {
	return p.Tactics
}
