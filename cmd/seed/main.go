package main

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"

	_ "modernc.org/sqlite"
)

// Seeds demo league databases so the agent has something to query out of the
// box. Each league gets its own SQLite file under STATS_DB_DIR.

type seedPlayer struct {
	Id       string
	Name     string
	Position string
	Height   string
	Age      int
	Team     string
}

type seedStat struct {
	PlayerId    string
	Season      string
	Team        string
	GamesPlayed int
	Ppg         float64
	Rpg         float64
	Apg         float64
}

var datasets = map[string]struct {
	players []seedPlayer
	stats   []seedStat
}{
	"cebl": {
		players: []seedPlayer{
			{"cebl-001", "Jalen Harris", "G", "6'5\"", 26, "Scarborough Shooting Stars"},
			{"cebl-002", "Jordan Smith", "F", "6'8\"", 24, "Vancouver Bandits"},
			{"cebl-003", "Jordan Smithson", "G", "6'2\"", 27, "Edmonton Stingers"},
			{"cebl-004", "Khalil Ahmad", "G", "6'4\"", 28, "Niagara River Lions"},
		},
		stats: []seedStat{
			{"cebl-001", "2025", "Scarborough Shooting Stars", 20, 21.4, 4.1, 3.8},
			{"cebl-001", "2024", "Scarborough Shooting Stars", 18, 19.2, 3.9, 3.5},
			{"cebl-002", "2025", "Vancouver Bandits", 22, 14.7, 8.3, 2.1},
			{"cebl-003", "2025", "Edmonton Stingers", 19, 11.2, 2.8, 5.6},
			{"cebl-004", "2025", "Niagara River Lions", 21, 23.1, 4.5, 4.2},
		},
	},
	"usports": {
		players: []seedPlayer{
			{"usp-001", "Aaliyah Edwards", "F", "6'3\"", 22, "Carleton Ravens"},
			{"usp-002", "Marcus Carr", "G", "6'2\"", 23, "Toronto Varsity Blues"},
		},
		stats: []seedStat{
			{"usp-001", "2025", "Carleton Ravens", 24, 18.9, 9.4, 1.7},
			{"usp-002", "2025", "Toronto Varsity Blues", 22, 16.3, 3.1, 6.2},
		},
	},
	"ccaa": {
		players: []seedPlayer{
			{"ccaa-001", "Tyrell Jackson", "G", "6'1\"", 21, "Humber Hawks"},
			{"ccaa-002", "Nolan Tremblay", "C", "6'10\"", 22, "Sheridan Bruins"},
		},
		stats: []seedStat{
			{"ccaa-001", "2025", "Humber Hawks", 18, 17.5, 3.6, 4.9},
			{"ccaa-002", "2025", "Sheridan Bruins", 17, 12.8, 10.2, 1.1},
		},
	},
	"hoopqueens": {
		players: []seedPlayer{
			{"hq-001", "Shay Colley", "G", "5'9\"", 27, "Toronto"},
			{"hq-002", "Laeticia Amihere", "F", "6'4\"", 23, "Montreal"},
		},
		stats: []seedStat{
			{"hq-001", "2025", "Toronto", 12, 19.8, 4.4, 5.1},
			{"hq-002", "2025", "Montreal", 12, 15.6, 7.9, 2.3},
		},
	},
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	player_id    TEXT PRIMARY KEY,
	full_name    TEXT NOT NULL,
	position     TEXT,
	height       TEXT,
	age          INTEGER,
	current_team TEXT,
	photo_url    TEXT
);
CREATE TABLE IF NOT EXISTS player_season_stats (
	player_id    TEXT NOT NULL REFERENCES players(player_id),
	season       TEXT NOT NULL,
	team         TEXT,
	games_played INTEGER,
	ppg          REAL,
	rpg          REAL,
	apg          REAL,
	PRIMARY KEY (player_id, season)
);
`

func main() {
	_ = godotenv.Load()

	dir := os.Getenv("STATS_DB_DIR")
	if dir == "" {
		dir = "./data"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.Fatalf("create data dir: %v", err)
	}

	color.Cyan("Seeding league databases into %s", dir)

	for name, data := range datasets {
		path := filepath.Join(dir, name+".db")
		if err := seedDataset(path, data.players, data.stats); err != nil {
			color.Red("  ✗ %s: %v", name, err)
			os.Exit(1)
		}
		color.Green("  ✓ %s (%d players, %d stat lines)", name, len(data.players), len(data.stats))
	}

	color.Cyan("Done.")
}

func seedDataset(path string, players []seedPlayer, stats []seedStat) error {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}

	for _, p := range players {
		_, err := db.Exec(
			`INSERT OR REPLACE INTO players (player_id, full_name, position, height, age, current_team, photo_url)
			 VALUES (?, ?, ?, ?, ?, ?, '')`,
			p.Id, p.Name, p.Position, p.Height, p.Age, p.Team,
		)
		if err != nil {
			return fmt.Errorf("insert player %s: %w", p.Id, err)
		}
	}

	for _, st := range stats {
		_, err := db.Exec(
			`INSERT OR REPLACE INTO player_season_stats (player_id, season, team, games_played, ppg, rpg, apg)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			st.PlayerId, st.Season, st.Team, st.GamesPlayed, st.Ppg, st.Rpg, st.Apg,
		)
		if err != nil {
			return fmt.Errorf("insert stat line %s/%s: %w", st.PlayerId, st.Season, err)
		}
	}

	return nil
}
