package standings

import (
	"reflect"
	"testing"
	"time"

	"canchaserver/internal/domain"

	"github.com/google/uuid"
)

func day(n int) time.Time {
	return time.Date(2024, time.March, n, 0, 0, 0, 0, time.UTC)
}

func player(name string) domain.Player {
	return domain.Player{ID: uuid.New(), Name: name, Nickname: name, Role: domain.RoleMidfielder}
}

type fixture struct {
	matches        []domain.Match
	participations []domain.Participation
}

// addMatch records a match with the given rosters per side.
func (f *fixture) addMatch(date time.Time, winner domain.Outcome, goalDiff int, sideA, sideB []domain.Player) domain.Match {
	m := domain.Match{ID: uuid.New(), Date: date, Winner: winner, GoalDiff: goalDiff}
	f.matches = append(f.matches, m)
	for _, p := range sideA {
		f.participations = append(f.participations, domain.Participation{MatchID: m.ID, PlayerID: p.ID, Side: domain.SideA})
	}
	for _, p := range sideB {
		f.participations = append(f.participations, domain.Participation{MatchID: m.ID, PlayerID: p.ID, Side: domain.SideB})
	}
	return m
}

func rowFor(t *testing.T, rows []Row, id uuid.UUID) Row {
	t.Helper()
	for _, r := range rows {
		if r.Player.ID == id {
			return r
		}
	}
	t.Fatalf("no row for player %s", id)
	return Row{}
}

func TestCalculate_Scenario(t *testing.T) {
	p1 := player("p1")
	mate := player("mate")
	g1 := player("g1")
	g2 := player("g2")
	players := []domain.Player{p1, mate, g1, g2}

	var f fixture
	f.addMatch(day(1), domain.OutcomeA, 2, []domain.Player{p1, mate, g1}, []domain.Player{g2})
	f.addMatch(day(2), domain.OutcomeA, 2, []domain.Player{p1, mate, g1}, []domain.Player{g2})
	f.addMatch(day(3), domain.OutcomeB, 1, []domain.Player{p1, mate}, []domain.Player{g1, g2})

	rows := Calculate(players, f.matches, f.participations)
	row := rowFor(t, rows, p1.ID)

	if row.Played != 3 || row.Wins != 2 || row.Draws != 0 || row.Losses != 1 {
		t.Errorf("record = %d played, %d-%d-%d", row.Played, row.Wins, row.Draws, row.Losses)
	}
	if row.GoalDiff != 3 {
		t.Errorf("goal diff = %+d, want +3", row.GoalDiff)
	}
	if row.Points != 6 {
		t.Errorf("points = %d, want 6", row.Points)
	}
	if want := []FormResult{FormLoss, FormWin, FormWin}; !reflect.DeepEqual(row.Form, want) {
		t.Errorf("form = %v, want %v (newest first)", row.Form, want)
	}
}

func TestCalculate_PointsLaw(t *testing.T) {
	p1 := player("p1")
	p2 := player("p2")
	players := []domain.Player{p1, p2}

	var f fixture
	f.addMatch(day(1), domain.OutcomeA, 1, []domain.Player{p1}, []domain.Player{p2})
	f.addMatch(day(2), domain.OutcomeDraw, 0, []domain.Player{p1}, []domain.Player{p2})
	f.addMatch(day(3), domain.OutcomeB, 2, []domain.Player{p1}, []domain.Player{p2})
	f.addMatch(day(4), domain.OutcomeDraw, 0, []domain.Player{p1}, []domain.Player{p2})

	for _, row := range Calculate(players, f.matches, f.participations) {
		if row.Points != 3*row.Wins+row.Draws {
			t.Errorf("%s: points = %d, want %d", row.Player.Name, row.Points, 3*row.Wins+row.Draws)
		}
	}
}

func TestCalculate_FormCap(t *testing.T) {
	p1 := player("p1")
	p2 := player("p2")

	var f fixture
	for i := 1; i <= 7; i++ {
		winner := domain.OutcomeA
		if i == 7 {
			winner = domain.OutcomeB
		}
		f.addMatch(day(i), winner, 1, []domain.Player{p1}, []domain.Player{p2})
	}

	rows := Calculate([]domain.Player{p1}, f.matches, f.participations)
	form := rows[0].Form
	if len(form) != FormWindow {
		t.Fatalf("form length = %d, want %d", len(form), FormWindow)
	}
	if form[0] != FormLoss {
		t.Errorf("newest result should come first, got %v", form)
	}
	for _, r := range form[1:] {
		if r != FormWin {
			t.Errorf("unexpected form entry %v in %v", r, form)
		}
	}
}

func TestCalculate_NoParticipations(t *testing.T) {
	bench := player("bench")
	rows := Calculate([]domain.Player{bench}, nil, nil)
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	row := rows[0]
	if row.Played != 0 || row.Points != 0 || row.GoalDiff != 0 || row.WinRate != 0 {
		t.Errorf("bench player should have an all-zero row, got %+v", row)
	}
	if len(row.Form) != 0 {
		t.Errorf("bench player should have empty form, got %v", row.Form)
	}
}

func TestCalculate_DrawMarginIgnored(t *testing.T) {
	p1 := player("p1")
	p2 := player("p2")

	var f fixture
	// a recorded margin on a draw is garbage and must not leak
	f.addMatch(day(1), domain.OutcomeDraw, 3, []domain.Player{p1}, []domain.Player{p2})

	for _, row := range Calculate([]domain.Player{p1, p2}, f.matches, f.participations) {
		if row.GoalDiff != 0 {
			t.Errorf("%s: goal diff = %d on a draw, want 0", row.Player.Name, row.GoalDiff)
		}
		if row.Draws != 1 {
			t.Errorf("%s: draws = %d, want 1", row.Player.Name, row.Draws)
		}
	}
}

func TestCalculate_SkipsMalformedMatches(t *testing.T) {
	p1 := player("p1")
	p2 := player("p2")

	var f fixture
	// winner is side A but nobody is recorded on side A
	f.addMatch(day(1), domain.OutcomeA, 2, nil, []domain.Player{p1, p2})
	f.addMatch(day(2), domain.OutcomeB, 1, []domain.Player{p1}, []domain.Player{p2})

	rows := Calculate([]domain.Player{p1, p2}, f.matches, f.participations)
	row := rowFor(t, rows, p1.ID)
	if row.Played != 1 || row.Losses != 1 {
		t.Errorf("malformed match should not count, got %+v", row)
	}
}

func TestCalculate_SkipsDanglingMatchReference(t *testing.T) {
	p1 := player("p1")
	parts := []domain.Participation{{MatchID: uuid.New(), PlayerID: p1.ID, Side: domain.SideA}}

	rows := Calculate([]domain.Player{p1}, nil, parts)
	if rows[0].Played != 0 {
		t.Errorf("participation without a match should be ignored, got %+v", rows[0])
	}
}

func TestSort(t *testing.T) {
	mk := func(name string, points, goalDiff, wins int) Row {
		return Row{Player: domain.Player{Name: name}, Points: points, GoalDiff: goalDiff, Wins: wins}
	}
	rows := []Row{
		mk("d", 6, 1, 2),
		mk("a", 9, -2, 3),
		mk("c", 6, 3, 1),
		mk("b", 6, 3, 2),
		mk("e", 6, 1, 2), // full tie with d, must stay behind it
	}
	Sort(rows)

	var names []string
	for _, r := range rows {
		names = append(names, r.Player.Name)
	}
	want := []string{"a", "b", "c", "d", "e"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("order = %v, want %v", names, want)
	}
}
