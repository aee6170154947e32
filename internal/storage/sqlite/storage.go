package sqlite

import (
	"database/sql"
	"fmt"

	"canchaserver/internal/domain"
	"canchaserver/internal/migrate"
	"canchaserver/internal/storage"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

type Storage struct {
	db *sql.DB
}

var _ storage.PlayerStorage = (*Storage)(nil)
var _ storage.MatchStorage = (*Storage)(nil)

func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		return nil, err
	}
	if err := migrate.Up(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	return s.db.Close()
}

func (s *Storage) ListPlayers() ([]domain.Player, error) {
	rows, err := s.db.Query(`
		SELECT id, name, nickname, age, role,
		       technique, physical, tactics, mental,
		       strength, weakness, created_at
		FROM players
		ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var players []domain.Player
	for rows.Next() {
		p, err := scanPlayer(rows)
		if err != nil {
			return nil, err
		}
		players = append(players, p)
	}
	return players, rows.Err()
}

func (s *Storage) Get(id uuid.UUID) (domain.Player, error) {
	row := s.db.QueryRow(`
		SELECT id, name, nickname, age, role,
		       technique, physical, tactics, mental,
		       strength, weakness, created_at
		FROM players
		WHERE id = ?`, id.String())
	p, err := scanPlayer(row)
	if err == sql.ErrNoRows {
		return domain.Player{}, fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return domain.Player{}, err
	}
	return p, nil
}

func (s *Storage) Add(player domain.Player) (domain.Player, error) {
	_, err := s.db.Exec(`
		INSERT INTO players (id, name, nickname, age, role,
		                     technique, physical, tactics, mental,
		                     strength, weakness, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		player.ID.String(), player.Name, player.Nickname, player.Age, player.Role.String(),
		player.Technique, player.Physical, player.Tactics, player.Mental,
		player.Strength, player.Weakness, player.RegisteredAt)
	if err != nil {
		return domain.Player{}, err
	}
	return player, nil
}

func (s *Storage) Update(player domain.Player) error {
	res, err := s.db.Exec(`
		UPDATE players
		SET name = ?, nickname = ?, age = ?, role = ?,
		    technique = ?, physical = ?, tactics = ?, mental = ?,
		    strength = ?, weakness = ?
		WHERE id = ?`,
		player.Name, player.Nickname, player.Age, player.Role.String(),
		player.Technique, player.Physical, player.Tactics, player.Mental,
		player.Strength, player.Weakness, player.ID.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", player.ID, storage.ErrNotFound)
	}
	return nil
}

func (s *Storage) Delete(id uuid.UUID) error {
	res, err := s.db.Exec(`DELETE FROM players WHERE id = ?`, id.String())
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("player %s: %w", id, storage.ErrNotFound)
	}
	return nil
}

func (s *Storage) ImportPlayers(players []domain.Player) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM players`); err != nil {
		return err
	}
	for _, player := range players {
		_, err := tx.Exec(`
			INSERT INTO players (id, name, nickname, age, role,
			                     technique, physical, tactics, mental,
			                     strength, weakness, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			player.ID.String(), player.Name, player.Nickname, player.Age, player.Role.String(),
			player.Technique, player.Physical, player.Tactics, player.Mental,
			player.Strength, player.Weakness, player.RegisteredAt)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *Storage) ListMatches() ([]domain.Match, error) {
	rows, err := s.db.Query(`
		SELECT id, date, winner, goal_diff
		FROM matches
		ORDER BY date, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []domain.Match
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

func (s *Storage) ListParticipations() ([]domain.Participation, error) {
	rows, err := s.db.Query(`
		SELECT match_id, player_id, side
		FROM participations
		ORDER BY match_id, player_id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participations []domain.Participation
	for rows.Next() {
		p, err := scanParticipation(rows)
		if err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	return participations, rows.Err()
}

func (s *Storage) Create(match domain.Match, participations []domain.Participation) (domain.Match, error) {
	if len(participations) == 0 {
		return domain.Match{}, fmt.Errorf("match %s: %w", match.ID, storage.ErrParticipationMissing)
	}
	tx, err := s.db.Begin()
	if err != nil {
		return domain.Match{}, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO matches (id, date, winner, goal_diff)
		VALUES (?, ?, ?, ?)`,
		match.ID.String(), match.Date, match.Winner.String(), match.GoalDiff)
	if err != nil {
		return domain.Match{}, err
	}
	for _, part := range participations {
		if part.MatchID != match.ID {
			return domain.Match{}, fmt.Errorf("participation for match %s recorded under match %s", part.MatchID, match.ID)
		}
		_, err := tx.Exec(`
			INSERT INTO participations (match_id, player_id, side)
			VALUES (?, ?, ?)`,
			part.MatchID.String(), part.PlayerID.String(), part.Side.String())
		if err != nil {
			return domain.Match{}, err
		}
	}
	if err := tx.Commit(); err != nil {
		return domain.Match{}, err
	}
	return match, nil
}

func (s *Storage) ImportMatches(matches []domain.Match, participations []domain.Participation) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM participations`); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM matches`); err != nil {
		return err
	}
	for _, match := range matches {
		_, err := tx.Exec(`
			INSERT INTO matches (id, date, winner, goal_diff)
			VALUES (?, ?, ?, ?)`,
			match.ID.String(), match.Date, match.Winner.String(), match.GoalDiff)
		if err != nil {
			return err
		}
	}
	for _, part := range participations {
		_, err := tx.Exec(`
			INSERT INTO participations (match_id, player_id, side)
			VALUES (?, ?, ?)`,
			part.MatchID.String(), part.PlayerID.String(), part.Side.String())
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
