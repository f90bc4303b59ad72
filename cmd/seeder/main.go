// Command seeder loads the curated list catalog (objectives and the lists
// that group them) from a YAML file into the database. Reruns update rows in
// place: IDs are derived from names.
//
// Flags:
//
//	--phase          comma-separated list of phases to run (default: all)
//	--dry-run        parse the catalog without writing to DB
//	--seeder-config  path to seeder YAML config file
//	--catalog        catalog YAML file (overrides seeder config)
//	--config         app config file (default: $CONFIG_PATH, then ./config.yaml)
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres"
	"github.com/heartmarshall/summitlist-backend/internal/adapter/postgres/catalog"
	"github.com/heartmarshall/summitlist-backend/internal/app"
	"github.com/heartmarshall/summitlist-backend/internal/app/seeder"
	"github.com/heartmarshall/summitlist-backend/internal/config"
)

// Compile-time interface assertion.
var _ seeder.CatalogWriter = (*catalog.Repo)(nil)

func main() {
	phaseFlag := flag.String("phase", "", "comma-separated phases to run (default: all)")
	dryRunFlag := flag.Bool("dry-run", false, "parse the catalog without writing to DB")
	seederConfigFlag := flag.String("seeder-config", "", "path to seeder YAML config file")
	catalogFlag := flag.String("catalog", "", "catalog YAML file")
	configFlag := flag.String("config", os.Getenv(config.PathEnv), "app config file")
	flag.Parse()

	appCfg, err := config.LoadFrom(*configFlag)
	if err != nil {
		log.Fatalf("load app config: %v", err)
	}

	logger := app.NewLogger(appCfg.Log)

	seederCfg, err := seeder.LoadConfig(*seederConfigFlag)
	if err != nil {
		logger.Error("load seeder config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// CLI flags override config.
	if *dryRunFlag {
		seederCfg.DryRun = true
	}
	if *catalogFlag != "" {
		seederCfg.CatalogPath = *catalogFlag
	}

	var phases []string
	if *phaseFlag != "" {
		phases = strings.Split(*phaseFlag, ",")
		for i := range phases {
			phases[i] = strings.TrimSpace(phases[i])
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, appCfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	if appCfg.Database.AutoMigrate {
		if _, err := postgres.Migrate(ctx, pool); err != nil {
			logger.Error("migrate", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	pipeline := seeder.NewPipeline(logger, catalog.New(pool), postgres.NewTxManager(pool), *seederCfg)
	if err := pipeline.Run(ctx, phases); err != nil {
		logger.Error("pipeline failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if pipeline.HasErrors() {
		logger.Warn("pipeline completed with errors")
		os.Exit(1)
	}

	logger.Info("pipeline completed successfully")
}
