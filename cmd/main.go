package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"canchaserver/internal/config"
	"canchaserver/internal/logger"
	"canchaserver/internal/service"
	"canchaserver/internal/storage/sqlite"

	"github.com/google/uuid"
)

func main() {
	if err := run(); err != nil {
		fmt.Println(err.Error())
		os.Exit(1)
	}
}

func run() error {
	importPath := flag.String("import", "", "import a JSON snapshot before reporting")
	flag.Parse()

	cfg, err := config.New()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Server.Debug)

	db, err := sqlite.New(cfg.Server.SQLitePath)
	if err != nil {
		return err
	}
	defer db.Close()

	playerService := service.New(db, db, cfg.Engine, log)

	if *importPath != "" {
		data, err := os.ReadFile(*importPath)
		if err != nil {
			return err
		}
		if err := playerService.Import(data); err != nil {
			return err
		}
	}

	rows, err := playerService.Standings()
	if err != nil {
		return err
	}
	fmt.Println("standings:")
	for i, row := range rows {
		form := make([]string, 0, len(row.Form))
		for _, f := range row.Form {
			form = append(form, string(f))
		}
		fmt.Printf("%2d. %-20s %2dpts  %2dW %2dD %2dL  gd%+d  [%s]\n",
			i+1, row.Player.Name, row.Points, row.Wins, row.Draws, row.Losses,
			row.GoalDiff, strings.Join(form, " "))
	}

	teammates, err := playerService.TopTeammatePairs()
	if err != nil {
		return err
	}
	fmt.Println("\nbest pairs:")
	for _, p := range teammates {
		fmt.Printf("  %s + %s: %.1f%% over %d matches\n",
			p.Player1.Nickname, p.Player2.Nickname, p.WinRate, p.MatchesTogether)
	}

	rivals, err := playerService.TopRivalPairs()
	if err != nil {
		return err
	}
	fmt.Println("\ntop rivalries:")
	for _, r := range rivals {
		fmt.Printf("  %s beats %s %.1f%% of the time (%d matches)\n",
			r.Dominant.Nickname, r.Underdog.Nickname, r.DominanceRate, r.MatchesAgainst)
	}

	players, err := playerService.ListPlayers()
	if err != nil {
		return err
	}
	ids := make([]uuid.UUID, 0, len(players))
	for _, p := range players {
		ids = append(ids, p.ID)
	}
	result, err := playerService.BalanceTeams(ids)
	if err != nil {
		return err
	}
	fmt.Printf("\nsuggested teams (avg %.1f vs %.1f, diff %.2f):\n", result.AvgA, result.AvgB, result.Diff)
	fmt.Println("  side A:")
	for _, p := range result.TeamA {
		fmt.Printf("    %-4s %s (%.1f)\n", p.Role.Label(), p.Nickname, p.Overall())
	}
	fmt.Println("  side B:")
	for _, p := range result.TeamB {
		fmt.Printf("    %-4s %s (%.1f)\n", p.Role.Label(), p.Nickname, p.Overall())
	}
	for _, w := range result.Warnings {
		log.Warn(w)
	}
	return nil
}
