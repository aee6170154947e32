package service

import (
	"encoding/json"
	"errors"

	"canchaserver/internal/domain"
)

const exportVersion = 1

type export struct {
	Version        int
	Players        []domain.Player
	Matches        []domain.Match
	Participations []domain.Participation
}

func (s *PlayerService) Export() ([]byte, error) {
	players, err := s.playerStorage.ListPlayers()
	if err != nil {
		return nil, err
	}
	matches, err := s.matchStorage.ListMatches()
	if err != nil {
		return nil, err
	}
	participations, err := s.matchStorage.ListParticipations()
	if err != nil {
		return nil, err
	}
	return json.Marshal(export{
		Version:        exportVersion,
		Players:        players,
		Matches:        matches,
		Participations: participations,
	})
}

func (s *PlayerService) Import(data []byte) error {
	var importData export
	err := json.Unmarshal(data, &importData)
	if err != nil {
		return err
	}
	if importData.Version != exportVersion {
		return errors.New("invalid export file version")
	}
	err = s.playerStorage.ImportPlayers(importData.Players)
	if err != nil {
		return err
	}
	err = s.matchStorage.ImportMatches(importData.Matches, importData.Participations)
	if err != nil {
		return err
	}
	s.log.WithFields(map[string]interface{}{
		"players": len(importData.Players),
		"matches": len(importData.Matches),
	}).Info("snapshot imported")
	return nil
}
