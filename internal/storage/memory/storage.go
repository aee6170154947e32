// Package memory is the in-process repository used by tests and by
// callers that load a snapshot from elsewhere. Listing order is
// deterministic: players by registration time, matches by date.
package memory

import (
	"bytes"
	"fmt"
	"sort"
	"sync"

	"canchaserver/internal/domain"
	"canchaserver/internal/storage"

	"github.com/google/uuid"
)

type Storage struct {
	mu             sync.RWMutex
	players        map[uuid.UUID]domain.Player
	matches        []domain.Match
	participations []domain.Participation
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)

func New() *Storage {
	return &Storage{
		players: make(map[uuid.UUID]domain.Player),
	}
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	players := make([]domain.Player, 0, len(s.players))
	for _, p := range s.players {
		players = append(players, p)
	}
	sort.SliceStable(players, func(i, j int) bool {
		if !players[i].RegisteredAt.Equal(players[j].RegisteredAt) {
			return players[i].RegisteredAt.Before(players[j].RegisteredAt)
		}
		return bytes.Compare(players[i].ID[:], players[j].ID[:]) < 0
	})
	return players, nil
}

func (s *Storage) Get(id uuid.UUID) (domain.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.players[id]
	if !ok {
		return domain.Player{}, fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	return p, nil
}

func (s *Storage) Add(player domain.Player) (domain.Player, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; ok {
		return domain.Player{}, fmt.Errorf("player %s: %w", player.ID, storage.ErrAlreadyExists)
	}
	s.players[player.ID] = player
	return player, nil
}

func (s *Storage) Update(player domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[player.ID]; !ok {
		return fmt.Errorf("player %s: %w", player.ID, storage.ErrNotFound)
	}
	s.players[player.ID] = player
	return nil
}

// Delete removes the player record only. Their participations stay in
// the history and are excluded from computations as dangling references.
func (s *Storage) Delete(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.players[id]; !ok {
		return fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	delete(s.players, id)
	return nil
}

func (s *Storage) ImportPlayers(players []domain.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.players = make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		s.players[p.ID] = p
	}
	return nil
}

func (s *Storage) ListMatches() ([]domain.Match, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := make([]domain.Match, len(s.matches))
	copy(matches, s.matches)
	sort.SliceStable(matches, func(i, j int) bool {
		if !matches[i].Date.Equal(matches[j].Date) {
			return matches[i].Date.Before(matches[j].Date)
		}
		return bytes.Compare(matches[i].ID[:], matches[j].ID[:]) < 0
	})
	return matches, nil
}

func (s *Storage) ListParticipations() ([]domain.Participation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	participations := make([]domain.Participation, len(s.participations))
	copy(participations, s.participations)
	return participations, nil
}

func (s *Storage) Create(match domain.Match, participations []domain.Participation) (domain.Match, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.matches {
		if s.matches[i].ID == match.ID {
			return domain.Match{}, fmt.Errorf("match %s: %w", match.ID, storage.ErrAlreadyExists)
		}
	}
	if err := validateParticipations(match, participations); err != nil {
		return domain.Match{}, err
	}

	s.matches = append(s.matches, match)
	s.participations = append(s.participations, participations...)
	return match, nil
}

func (s *Storage) ImportMatches(matches []domain.Match, participations []domain.Participation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.matches = make([]domain.Match, len(matches))
	copy(s.matches, matches)
	s.participations = make([]domain.Participation, len(participations))
	copy(s.participations, participations)
	return nil
}

func validateParticipations(match domain.Match, participations []domain.Participation) error {
	if len(participations) == 0 {
		return fmt.Errorf("match %s: %w", match.ID, storage.ErrParticipationMissing)
	}
	seen := make(map[uuid.UUID]struct{}, len(participations))
	for _, part := range participations {
		if part.MatchID != match.ID {
			return fmt.Errorf("participation for match %s recorded under match %s", part.MatchID, match.ID)
		}
		if _, ok := seen[part.PlayerID]; ok {
			return fmt.Errorf("player %s: %w", part.PlayerID, storage.ErrPlayerOnBothSides)
		}
		seen[part.PlayerID] = struct{}{}
	}
	return nil
}
