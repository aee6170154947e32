// Package service wires the repositories to the computation engines.
// The engines are pure functions over snapshots; the service owns
// snapshot consistency (dangling references, malformed matches) and
// record creation.
package service

import (
	"errors"
	"fmt"
	"time"

	"canchaserver/internal/balance"
	"canchaserver/internal/chemistry"
	"canchaserver/internal/config"
	"canchaserver/internal/domain"
	"canchaserver/internal/normalize"
	"canchaserver/internal/pairs"
	"canchaserver/internal/rating"
	"canchaserver/internal/standings"
	"canchaserver/internal/storage"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrPlayerNotFound = errors.New("player not found")

type PlayerService struct {
	playerStorage storage.PlayerStorage
	matchStorage  storage.MatchStorage
	cfg           config.Engine
	log           *logrus.Logger
}

func New(playerStorage storage.PlayerStorage, matchStorage storage.MatchStorage, cfg config.Engine, log *logrus.Logger) *PlayerService {
	return &PlayerService{
		playerStorage: playerStorage,
		matchStorage:  matchStorage,
		cfg:           cfg,
		log:           log,
	}
}

func (s *PlayerService) ListPlayers() ([]domain.Player, error) {
	return s.playerStorage.ListPlayers()
}

func (s *PlayerService) Get(id uuid.UUID) (domain.Player, error) {
	return s.playerStorage.Get(id)
}

func (s *PlayerService) GetByName(name string) (domain.Player, error) {
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return domain.Player{}, err
	}
	want := normalize.Name(name)
	for _, p := range players {
		if normalize.Name(p.Name) == want || normalize.Name(p.Nickname) == want {
			return p, nil
		}
	}
	return domain.Player{}, fmt.Errorf("%q: %w", name, ErrPlayerNotFound)
}

func (s *PlayerService) CreatePlayer(player domain.Player) (domain.Player, error) {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	if player.RegisteredAt.IsZero() {
		player.RegisteredAt = time.Now()
	}
	created, err := s.playerStorage.Add(player)
	if err != nil {
		return domain.Player{}, err
	}
	s.log.WithField("player", created.Name).Info("player created")
	return created, nil
}

func (s *PlayerService) UpdatePlayer(player domain.Player) error {
	return s.playerStorage.Update(player)
}

func (s *PlayerService) DeletePlayer(id uuid.UUID) error {
	return s.playerStorage.Delete(id)
}

func (s *PlayerService) CreateMatch(match domain.Match, participations []domain.Participation) (domain.Match, error) {
	if match.ID == uuid.Nil {
		match.ID = uuid.New()
		for i := range participations {
			participations[i].MatchID = match.ID
		}
	}
	if match.Date.IsZero() {
		match.Date = time.Now()
	}
	created, err := s.matchStorage.Create(match, participations)
	if err != nil {
		return domain.Match{}, err
	}
	s.log.WithFields(logrus.Fields{
		"match":  created.ID,
		"winner": created.Winner.String(),
	}).Info("match recorded")
	return created, nil
}

// BalanceTeams splits the given players into two teams. Ids that are
// not on the roster are skipped; the selection keeps the caller's
// order, which matters for goalkeeper assignment.
func (s *PlayerService) BalanceTeams(selectedIDs []uuid.UUID) (balance.Result, error) {
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return balance.Result{}, err
	}
	byID := make(map[uuid.UUID]domain.Player, len(players))
	for _, p := range players {
		byID[p.ID] = p
	}
	selected := make([]domain.Player, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		p, ok := byID[id]
		if !ok {
			s.log.WithField("player", id).Debug("selected id not on roster, skipping")
			continue
		}
		selected = append(selected, p)
	}
	return balance.Split(selected), nil
}

// MovePlayer applies a manual override to a balancing result.
func (s *PlayerService) MovePlayer(result balance.Result, playerID uuid.UUID, to domain.Side) balance.Result {
	return result.Move(playerID, to)
}

func (s *PlayerService) Standings() ([]standings.Row, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	rows := standings.Calculate(snap.players, snap.matches, snap.participations)
	standings.Sort(rows)
	return rows, nil
}

func (s *PlayerService) IdealPartner(playerID uuid.UUID) (chemistry.Partner, bool, error) {
	snap, err := s.snapshot()
	if err != nil {
		return chemistry.Partner{}, false, err
	}
	partner, ok := chemistry.IdealPartner(playerID, snap.players, snap.matches, snap.participations)
	return partner, ok, nil
}

func (s *PlayerService) Nemesis(playerID uuid.UUID) (chemistry.Rival, bool, error) {
	snap, err := s.snapshot()
	if err != nil {
		return chemistry.Rival{}, false, err
	}
	rival, ok := chemistry.Nemesis(playerID, snap.players, snap.matches, snap.participations)
	return rival, ok, nil
}

func (s *PlayerService) TopTeammatePairs() ([]pairs.PairStat, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return pairs.TopTeammates(snap.players, snap.matches, snap.participations, s.cfg.TopPairs, s.cfg.MinPairSample), nil
}

func (s *PlayerService) TopRivalPairs() ([]pairs.RivalStat, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return pairs.TopRivals(snap.players, snap.matches, snap.participations, s.cfg.TopPairs, s.cfg.MinPairSample), nil
}

func (s *PlayerService) PowerRating() ([]rating.Entry, error) {
	snap, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return rating.Leaderboard(snap.players, snap.matches, snap.participations), nil
}

type snapshot struct {
	players        []domain.Player
	matches        []domain.Match
	participations []domain.Participation
}

// snapshot loads a consistent view of the data: participations whose
// player is no longer on the roster, or whose match was never recorded,
// are dropped before the engines see them.
func (s *PlayerService) snapshot() (snapshot, error) {
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return snapshot{}, err
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return snapshot{}, err
	}
	participations, err := s.matchStorage.ListParticipations()
	if err != nil {
		return snapshot{}, err
	}

	roster := mapset.NewSet[uuid.UUID]()
	for _, p := range players {
		roster.Add(p.ID)
	}
	known := mapset.NewSet[uuid.UUID]()
	for _, m := range matches {
		known.Add(m.ID)
	}

	cleaned := make([]domain.Participation, 0, len(participations))
	dropped := 0
	for _, part := range participations {
		if !roster.Contains(part.PlayerID) || !known.Contains(part.MatchID) {
			dropped++
			continue
		}
		cleaned = append(cleaned, part)
	}
	if dropped > 0 {
		s.log.WithField("count", dropped).Debug("dropped dangling participations")
	}

	return snapshot{
		players:        players,
		matches:        matches,
		participations: cleaned,
	}, nil
}
