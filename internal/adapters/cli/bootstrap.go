package cli

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/andrescamacho/gunsmith-go/internal/adapters/catalogapi"
	"github.com/andrescamacho/gunsmith-go/internal/adapters/persistence"
	"github.com/andrescamacho/gunsmith-go/internal/application/catalogsvc"
	"github.com/andrescamacho/gunsmith-go/internal/application/mediator"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/commands"
	"github.com/andrescamacho/gunsmith-go/internal/application/optimizer/queries"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/config"
	"github.com/andrescamacho/gunsmith-go/internal/infrastructure/database"
)

// app bundles the wiring every subcommand needs: configuration, a database
// connection, and a mediator with every handler registered.
type app struct {
	cfg *config.Config
	db  *gorm.DB
	med mediator.Mediator
}

// newApp loads configuration, connects and migrates the database, and
// wires the same mediator pipeline the HTTP server uses.
func newApp() (*app, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	db, err := database.NewConnection(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	catalogClient := catalogapi.NewClient(catalogapi.Config{
		BaseURL:         cfg.Catalog.BaseURL,
		Timeout:         cfg.Catalog.Timeout,
		RateRequests:    cfg.Catalog.RateLimit.Requests,
		RateBurst:       cfg.Catalog.RateLimit.Burst,
		MaxRetries:      cfg.Catalog.Retry.MaxAttempts,
		BackoffBase:     cfg.Catalog.Retry.BackoffBase,
		CacheDir:        cfg.Catalog.CacheDir,
		CacheTTLSeconds: int64(cfg.Catalog.CacheTTL.Seconds()),
		CacheVersion:    cfg.Catalog.CacheVersion,
	}, nil)

	catalogRepo := persistence.NewGormCatalogRepository(db)
	catalogService := catalogsvc.NewService(catalogClient, catalogRepo, cfg.Catalog.CacheVersion)

	med := mediator.New()
	if err := mediator.RegisterHandler[*commands.OptimizeWeaponCommand](med, commands.NewOptimizeWeaponHandler(catalogService)); err != nil {
		return nil, err
	}
	if err := mediator.RegisterHandler[*commands.ExploreParetoCommand](med, commands.NewExploreParetoHandler(catalogService)); err != nil {
		return nil, err
	}
	if err := mediator.RegisterHandler[*queries.ListWeaponsQuery](med, queries.NewListWeaponsHandler(catalogService)); err != nil {
		return nil, err
	}
	if err := mediator.RegisterHandler[*queries.ListModsQuery](med, queries.NewListModsHandler(catalogService)); err != nil {
		return nil, err
	}

	return &app{cfg: cfg, db: db, med: med}, nil
}

func (a *app) Close() error {
	return database.Close(a.db)
}
