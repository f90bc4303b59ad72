// Command gridimport loads a grid spreadsheet export (CSV or TSV).
//
// With -roster it parses the file against a YAML list of objective names and
// prints what would be imported, without touching the database:
//
//	gridimport -file grid.csv -roster roster.yaml
//
// With -list and -user it imports the file for that user through the same
// service the HTTP API uses (-config selects the app config file):
//
//	gridimport -file grid.csv -list <list-uuid> -user <user-uuid>
//
// Roster IDs match the ones cmd/seeder assigns, so a dry run report lines up
// with the seeded catalog.
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres/ascent"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/summitlist-backend/internal/app"
	"github.com/heartmarshall/summitlist-backend/internal/app/seeder"
	"github.com/heartmarshall/summitlist-backend/internal/config"
	"github.com/heartmarshall/summitlist-backend/internal/domain"
	"github.com/heartmarshall/summitlist-backend/internal/importer/gridimport"
	"github.com/heartmarshall/summitlist-backend/internal/service/tracker"
	"github.com/heartmarshall/summitlist-backend/pkg/ctxutil"
)

// rosterFile is the YAML shape accepted by -roster.
type rosterFile struct {
	Objectives []string `yaml:"objectives"`
}

// dryRunReport is printed in -roster mode.
type dryRunReport struct {
	Records     []domain.CompletionRecord `json:"records"`
	SkippedRows []string                  `json:"skippedRows"`
	Dropped     []gridimport.CellError    `json:"dropped"`
	Stats       gridimport.Stats          `json:"stats"`
}

func main() {
	var (
		file    = flag.String("file", "", "CSV or TSV grid export")
		roster  = flag.String("roster", "", "YAML roster for a dry run")
		listID  = flag.String("list", "", "list to import into")
		userID  = flag.String("user", "", "user the ascents belong to")
		cfgFile = flag.String("config", "", "app config file (default: $CONFIG_PATH or ./config.yaml)")
	)
	flag.Parse()

	if *file == "" || (*roster == "" && (*listID == "" || *userID == "")) {
		flag.Usage()
		os.Exit(2)
	}

	table, err := readTableFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	if *roster != "" {
		if err := dryRun(os.Stdout, table, *roster); err != nil {
			log.Fatalf("dry run: %v", err)
		}
		return
	}

	if err := importForUser(table, *listID, *userID, *cfgFile); err != nil {
		log.Fatalf("import: %v", err)
	}
}

func readTableFile(path string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return gridimport.ReadTable(f)
}

// loadRoster maps each name to the ID the seeder gives that objective.
func loadRoster(r io.Reader) (map[string]uuid.UUID, error) {
	var rf rosterFile
	if err := yaml.NewDecoder(r).Decode(&rf); err != nil {
		return nil, fmt.Errorf("decode roster: %w", err)
	}
	if len(rf.Objectives) == 0 {
		return nil, fmt.Errorf("roster has no objectives")
	}
	roster := make(map[string]uuid.UUID, len(rf.Objectives))
	for _, name := range rf.Objectives {
		roster[name] = seeder.ObjectiveID(name)
	}
	return roster, nil
}

func dryRun(w io.Writer, table [][]string, rosterPath string) error {
	f, err := os.Open(rosterPath)
	if err != nil {
		return err
	}
	defer f.Close()

	roster, err := loadRoster(f)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	res, err := gridimport.NewParser(logger, gridimport.DefaultOptions(time.Now())).Parse(table, roster)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(dryRunReport{
		Records:     res.Records(),
		SkippedRows: res.SkippedRows,
		Dropped:     res.Dropped,
		Stats:       res.Stats,
	})
}

func importForUser(table [][]string, rawList, rawUser, configPath string) error {
	listID, err := uuid.Parse(rawList)
	if err != nil {
		return fmt.Errorf("parse -list: %w", err)
	}
	userID, err := uuid.Parse(rawUser)
	if err != nil {
		return fmt.Errorf("parse -user: %w", err)
	}

	if configPath == "" {
		configPath = os.Getenv(config.PathEnv)
	}
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	svc := tracker.NewService(logger, ascent.New(pool), catalog.New(pool), nil, postgres.NewTxManager(pool),
		tracker.Settings{
			Rules:  cfg.Dates.Rules,
			Import: func(now time.Time) gridimport.Options { return cfg.Import.Options(cfg.Dates, now) },
		})

	res, err := svc.ImportGrid(ctxutil.WithUserID(ctx, userID), tracker.ImportGridInput{ListID: listID, Table: table})
	if err != nil {
		return err
	}

	logger.Info("grid import completed",
		slog.String("list_id", listID.String()),
		slog.String("user_id", userID.String()),
		slog.Int("imported", res.Imported),
		slog.Int("duplicates", res.Duplicates),
		slog.Int("skipped_rows", len(res.SkippedRows)),
		slog.Int("dropped_cells", len(res.DroppedCells)),
	)
	return nil
}
