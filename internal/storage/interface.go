package storage

import (
	"errors"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrAlreadyExists        = errors.New("already exists")
	ErrPlayerOnBothSides    = errors.New("player listed on both sides of a match")
	ErrParticipationMissing = errors.New("match recorded without participations")
)

type PlayerStorage interface {
	ListPlayers() ([]domain.Player, error)
	Get(uuid.UUID) (domain.Player, error)
	Add(domain.Player) (domain.Player, error)
	Update(domain.Player) error
	Delete(uuid.UUID) error

	ImportPlayers([]domain.Player) error
}

// MatchStorage is append-only: recorded matches are never edited or
// removed, Import excepted.
type MatchStorage interface {
	ListMatches() ([]domain.Match, error)
	ListParticipations() ([]domain.Participation, error)
	Create(domain.Match, []domain.Participation) (domain.Match, error)

	ImportMatches([]domain.Match, []domain.Participation) error
}
