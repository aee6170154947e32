package service

import (
	"io"
	"testing"
	"time"

	"canchaserver/internal/config"
	"canchaserver/internal/domain"
	"canchaserver/internal/storage/memory"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*PlayerService, *memory.Storage) {
	t.Helper()
	db := memory.New()
	log := logrus.New()
	log.SetOutput(io.Discard)
	return New(db, db, config.Engine{TopPairs: 5, MinPairSample: 2}, log), db
}

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func addPlayer(t *testing.T, s *PlayerService, name string) domain.Player {
	t.Helper()
	p, err := s.CreatePlayer(domain.Player{
		Name:      name,
		Nickname:  name,
		Role:      domain.RoleMidfielder,
		Technique: 5, Physical: 5, Tactics: 5, Mental: 5,
		RegisteredAt: day(1),
	})
	require.NoError(t, err)
	return p
}

func addMatch(t *testing.T, s *PlayerService, date time.Time, winner domain.Outcome, goalDiff int, sideA, sideB []domain.Player) domain.Match {
	t.Helper()
	var parts []domain.Participation
	for _, p := range sideA {
		parts = append(parts, domain.Participation{PlayerID: p.ID, Side: domain.SideA})
	}
	for _, p := range sideB {
		parts = append(parts, domain.Participation{PlayerID: p.ID, Side: domain.SideB})
	}
	m, err := s.CreateMatch(domain.Match{Date: date, Winner: winner, GoalDiff: goalDiff}, parts)
	require.NoError(t, err)
	return m
}

func TestCreatePlayer_FillsIDAndRegistration(t *testing.T) {
	s, _ := newTestService(t)

	p, err := s.CreatePlayer(domain.Player{Name: "leo"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.RegisteredAt.IsZero())

	got, err := s.Get(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "leo", got.Name)
}

func TestGetByName_NormalizesInput(t *testing.T) {
	s, _ := newTestService(t)
	p, err := s.CreatePlayer(domain.Player{Name: "José Núñez", Nickname: "El Tanque"})
	require.NoError(t, err)

	got, err := s.GetByName("  josé   núñez ")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	got, err = s.GetByName("el tanque")
	require.NoError(t, err)
	assert.Equal(t, p.ID, got.ID)

	_, err = s.GetByName("nobody")
	assert.ErrorIs(t, err, ErrPlayerNotFound)
}

func TestCreateMatch_AssignsMatchIDToParticipations(t *testing.T) {
	s, db := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")

	m := addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a}, []domain.Player{b})
	assert.NotEqual(t, uuid.Nil, m.ID)

	parts, err := db.ListParticipations()
	require.NoError(t, err)
	require.Len(t, parts, 2)
	for _, part := range parts {
		assert.Equal(t, m.ID, part.MatchID)
	}
}

func TestBalanceTeams_KeepsSelectionOrderAndSkipsUnknown(t *testing.T) {
	s, _ := newTestService(t)
	g1, err := s.CreatePlayer(domain.Player{Name: "g1", Role: domain.RoleGoalkeeper, Technique: 5, Physical: 5, Tactics: 5, Mental: 5})
	require.NoError(t, err)
	g2, err := s.CreatePlayer(domain.Player{Name: "g2", Role: domain.RoleGoalkeeper, Technique: 5, Physical: 5, Tactics: 5, Mental: 5})
	require.NoError(t, err)
	f := addPlayer(t, s, "f")

	result, err := s.BalanceTeams([]uuid.UUID{g2.ID, uuid.New(), g1.ID, f.ID})
	require.NoError(t, err)

	// g2 was selected first, so it keeps side A
	require.NotEmpty(t, result.TeamA)
	require.NotEmpty(t, result.TeamB)
	assert.Equal(t, g2.ID, result.TeamA[0].ID)
	assert.Equal(t, g1.ID, result.TeamB[0].ID)
	assert.Len(t, result.TeamA, 2)
}

func TestMovePlayer_OverridesResult(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")

	result, err := s.BalanceTeams([]uuid.UUID{a.ID, b.ID})
	require.NoError(t, err)
	require.Len(t, result.TeamA, 1)

	moved := s.MovePlayer(result, result.TeamA[0].ID, domain.SideB)
	assert.Empty(t, moved.TeamA)
	assert.Len(t, moved.TeamB, 2)
}

func TestStandings_SortedAndComplete(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")
	c := addPlayer(t, s, "c")

	addMatch(t, s, day(2), domain.OutcomeA, 2, []domain.Player{a}, []domain.Player{b})
	addMatch(t, s, day(3), domain.OutcomeA, 1, []domain.Player{a}, []domain.Player{b})

	rows, err := s.Standings()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, a.ID, rows[0].Player.ID)
	assert.Equal(t, 6, rows[0].Points)
	// c never played, but b's negative goal difference ranks below zero
	assert.Equal(t, c.ID, rows[1].Player.ID)
	assert.Equal(t, 0, rows[1].Played)
	assert.Equal(t, b.ID, rows[2].Player.ID)
}

func TestSnapshot_DropsDanglingParticipations(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")
	ghost := addPlayer(t, s, "ghost")

	addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a, ghost}, []domain.Player{b})
	require.NoError(t, s.DeletePlayer(ghost.ID))

	rows, err := s.Standings()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, row := range rows {
		assert.Equal(t, 1, row.Played, "remaining players keep their history")
	}

	_, _, err = s.IdealPartner(a.ID)
	require.NoError(t, err)
}

func TestChemistry_ThroughService(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	mate := addPlayer(t, s, "mate")
	foe := addPlayer(t, s, "foe")

	addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a, mate}, []domain.Player{foe})
	addMatch(t, s, day(3), domain.OutcomeB, 1, []domain.Player{a, mate}, []domain.Player{foe})

	partner, ok, err := s.IdealPartner(a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, mate.ID, partner.Player.ID)
	assert.Equal(t, 2, partner.MatchesTogether)

	rival, ok, err := s.Nemesis(a.ID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, foe.ID, rival.Player.ID)
	assert.Equal(t, 1, rival.LossesAgainst)
}

func TestTopPairs_ThroughService(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")
	c := addPlayer(t, s, "c")
	d := addPlayer(t, s, "d")

	addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a, b}, []domain.Player{c, d})
	addMatch(t, s, day(3), domain.OutcomeA, 2, []domain.Player{a, b}, []domain.Player{c, d})

	teammates, err := s.TopTeammatePairs()
	require.NoError(t, err)
	require.NotEmpty(t, teammates)
	assert.Equal(t, float64(100), teammates[0].WinRate)

	rivals, err := s.TopRivalPairs()
	require.NoError(t, err)
	assert.NotEmpty(t, rivals)
}

func TestPowerRating_ThroughService(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")

	addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a}, []domain.Player{b})

	entries, err := s.PowerRating()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, a.ID, entries[0].Player.ID)
	assert.Greater(t, entries[0].Rating, entries[1].Rating)
}

func TestExportImport_Roundtrip(t *testing.T) {
	s, _ := newTestService(t)
	a := addPlayer(t, s, "a")
	b := addPlayer(t, s, "b")
	addMatch(t, s, day(2), domain.OutcomeA, 1, []domain.Player{a}, []domain.Player{b})

	data, err := s.Export()
	require.NoError(t, err)

	restored, _ := newTestService(t)
	require.NoError(t, restored.Import(data))

	players, err := restored.ListPlayers()
	require.NoError(t, err)
	assert.Len(t, players, 2)

	rows, err := restored.Standings()
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, 3, rows[0].Points)
}

func TestImport_RejectsWrongVersion(t *testing.T) {
	s, _ := newTestService(t)
	err := s.Import([]byte(`{"Version": 99}`))
	assert.Error(t, err)

	err = s.Import([]byte(`not json`))
	assert.Error(t, err)
}
