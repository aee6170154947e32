package sqlite

import (
	"time"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

type scanner interface {
	Scan(dest ...any) error
}

func scanPlayer(row scanner) (domain.Player, error) {
	var (
		idStr   string
		roleStr string
		p       domain.Player
	)
	err := row.Scan(&idStr, &p.Name, &p.Nickname, &p.Age, &roleStr,
		&p.Technique, &p.Physical, &p.Tactics, &p.Mental,
		&p.Strength, &p.Weakness, &p.RegisteredAt)
	if err != nil {
		return domain.Player{}, err
	}
	p.ID, err = uuid.Parse(idStr)
	if err != nil {
		return domain.Player{}, err
	}
	p.Role, err = domain.ParseRole(roleStr)
	if err != nil {
		return domain.Player{}, err
	}
	return p, nil
}

func scanMatch(row scanner) (domain.Match, error) {
	var (
		idStr     string
		winnerStr string
		date      time.Time
		m         domain.Match
	)
	err := row.Scan(&idStr, &date, &winnerStr, &m.GoalDiff)
	if err != nil {
		return domain.Match{}, err
	}
	m.Date = date
	m.ID, err = uuid.Parse(idStr)
	if err != nil {
		return domain.Match{}, err
	}
	m.Winner, err = domain.ParseOutcome(winnerStr)
	if err != nil {
		return domain.Match{}, err
	}
	return m, nil
}

func scanParticipation(row scanner) (domain.Participation, error) {
	var (
		matchStr  string
		playerStr string
		sideStr   string
		p         domain.Participation
	)
	err := row.Scan(&matchStr, &playerStr, &sideStr)
	if err != nil {
		return domain.Participation{}, err
	}
	p.MatchID, err = uuid.Parse(matchStr)
	if err != nil {
		return domain.Participation{}, err
	}
	p.PlayerID, err = uuid.Parse(playerStr)
	if err != nil {
		return domain.Participation{}, err
	}
	p.Side, err = domain.ParseSide(sideStr)
	if err != nil {
		return domain.Participation{}, err
	}
	return p, nil
}
