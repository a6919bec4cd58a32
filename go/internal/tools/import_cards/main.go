// Command import_cards loads a Scryfall bulk-data dump into the card catalog.
//
//	go run ./go/internal/tools/import_cards -config import.yaml [dump.json]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/cubedraft/go/internal/dbconfig"
	"github.com/mcdev12/cubedraft/go/internal/logging"
	"github.com/mcdev12/cubedraft/go/internal/models"
)

// importConfig is the import.yaml file.
type importConfig struct {
	Source         string   `yaml:"source"`
	BatchSize      int      `yaml:"batch_size"`
	BoosterOnly    bool     `yaml:"booster_only"`
	AllowedLayouts []string `yaml:"allowed_layouts"`
}

func defaultImportConfig() importConfig {
	layouts := make([]string, 0, len(allLayouts))
	for _, l := range allLayouts {
		layouts = append(layouts, string(l))
	}
	return importConfig{
		Source:         "default-cards.json",
		BatchSize:      100,
		BoosterOnly:    true,
		AllowedLayouts: layouts,
	}
}

var allLayouts = []models.CardLayout{
	models.CardLayoutNormal,
	models.CardLayoutSplit,
	models.CardLayoutFlip,
	models.CardLayoutTransform,
	models.CardLayoutModalDFC,
	models.CardLayoutMeld,
	models.CardLayoutLeveler,
	models.CardLayoutClass,
	models.CardLayoutCase,
	models.CardLayoutSaga,
	models.CardLayoutAdventure,
	models.CardLayoutMutate,
	models.CardLayoutPrototype,
}

// loadImportConfig overlays path on the defaults. A missing file keeps them.
func loadImportConfig(path string) (importConfig, error) {
	cfg := defaultImportConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func main() {
	configPath := flag.String("config", "import.yaml", "import settings")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Warn().Err(err).Msg("could not load .env file")
	}
	logging.Setup(os.Getenv("LOG_LEVEL"))

	cfg, err := loadImportConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("load import config")
	}
	if flag.NArg() > 0 {
		cfg.Source = flag.Arg(0)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg, err := dbconfig.NewConfigFromEnv()
	if err != nil {
		log.Fatal().Err(err).Msg("parse db env")
	}
	pool, err := pgxpool.New(ctx, dbCfg.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("connect to database")
	}
	defer pool.Close()

	parsed, loaded, err := run(ctx, pool, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("import failed")
	}
	log.Info().
		Int("seen", parsed.Seen).
		Int("filtered", parsed.Filtered).
		Int("invalid", parsed.Invalid).
		Int("inserted", loaded.Inserted).
		Int("skipped", loaded.Skipped).
		Int("batches", loaded.Batches).
		Msg("card import complete")
}

func run(ctx context.Context, pool *pgxpool.Pool, cfg importConfig) (parseStats, loadStats, error) {
	f, err := os.Open(cfg.Source)
	if err != nil {
		return parseStats{}, loadStats{}, fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	l := newLoader(pool, cfg.BatchSize)
	parsed, err := parseCards(f, newFilter(cfg.AllowedLayouts, cfg.BoosterOnly), func(c models.Card) error {
		return l.Add(ctx, c)
	})
	if err != nil {
		return parsed, l.stats, err
	}
	if err := l.Flush(ctx); err != nil {
		return parsed, l.stats, err
	}
	return parsed, l.stats, nil
}
