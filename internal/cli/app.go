package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/weijenchou/dogdietlinebot/internal/adapters/breeds/catalog"
	"github.com/weijenchou/dogdietlinebot/internal/adapters/places/googleplaces"
	mem "github.com/weijenchou/dogdietlinebot/internal/adapters/storage/memory"
	pg "github.com/weijenchou/dogdietlinebot/internal/adapters/storage/postgres"
	"github.com/weijenchou/dogdietlinebot/internal/adapters/storage/sqlite"
	"github.com/weijenchou/dogdietlinebot/internal/adapters/vision/rekognition"
	"github.com/weijenchou/dogdietlinebot/internal/config"
	"github.com/weijenchou/dogdietlinebot/internal/domain/conversation"
	"github.com/weijenchou/dogdietlinebot/internal/domain/pets"
	"github.com/weijenchou/dogdietlinebot/internal/platform/logger"
	"github.com/weijenchou/dogdietlinebot/internal/platform/ownerlock"
)

const placesTimeout = 10 * time.Second

// app agrupa las dependencias compartidas por todos los comandos.
type app struct {
	cfg config.Config
	log logger.Logger

	pets     *pets.Service
	machine  *conversation.Machine
	sessions *conversation.MemoryStore
	locks    *ownerlock.Locker
	breeds   *catalog.Catalog

	closers []func() error
}

// loadApp lee la config y arma el app. Los logs van a logOut.
func loadApp(ctx context.Context, logOut io.Writer) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
		Output: logOut,
	})
	return wireApp(ctx, cfg, log)
}

func wireApp(ctx context.Context, cfg config.Config, log logger.Logger) (*app, error) {
	a := &app{cfg: cfg, log: log, locks: ownerlock.New()}

	repo, err := a.openRepo(ctx)
	if err != nil {
		return nil, err
	}

	cat, err := loadCatalog(cfg.BreedCatalogPath)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.breeds = cat
	a.pets = pets.NewService(repo, cat)
	a.sessions = conversation.NewMemoryStore(cfg.SessionIdleTimeout)

	deps := conversation.Deps{
		Profiles:           a.pets,
		Sessions:           a.sessions,
		Locks:              a.locks,
		Breeds:             cat,
		Log:                log,
		PackageWeightGrams: cfg.PackageWeightGrams,
	}

	if cfg.GoogleMapAPIKey != "" {
		gp, err := googleplaces.NewClient(googleplaces.Config{
			BaseURL: cfg.PlacesBaseURL,
			APIKey:  cfg.GoogleMapAPIKey,
			Timeout: placesTimeout,
			Retries: 1,
		})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("google places: %w", err)
		}
		deps.Places = gp
	} else {
		log.Warn("places lookup disabled", map[string]any{"reason": "GOOGLE_MAP_API_KEY not set"})
	}

	if cfg.AWSRegion != "" {
		rk, err := rekognition.New(ctx, rekognition.Config{Region: cfg.AWSRegion})
		if err != nil {
			_ = a.Close()
			return nil, fmt.Errorf("rekognition: %w", err)
		}
		deps.Labels = rk
		deps.Foods = rk
	} else {
		log.Warn("image recognition disabled", map[string]any{"reason": "AWS_REGION not set"})
	}

	m, err := conversation.NewMachine(deps)
	if err != nil {
		_ = a.Close()
		return nil, err
	}
	a.machine = m
	return a, nil
}

// openRepo: DB_DSN (Postgres) gana sobre SQLITE_PATH; sin ninguno, memoria.
func (a *app) openRepo(ctx context.Context) (pets.Repository, error) {
	switch {
	case a.cfg.DBDSN != "":
		db, err := pg.Open(a.cfg.DBDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := pg.Migrate(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		a.log.Info("storage ready", map[string]any{"driver": "postgres"})
		return pg.NewPetsRepo(db), nil

	case a.cfg.SQLitePath != "":
		st, err := sqlite.Open(ctx, a.cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		a.closers = append(a.closers, st.Close)
		a.log.Info("storage ready", map[string]any{"driver": "sqlite", "path": a.cfg.SQLitePath})
		return st.Pets(), nil

	default:
		a.log.Info("storage ready", map[string]any{"driver": "memory"})
		return mem.NewPetRepo(), nil
	}
}

func loadCatalog(path string) (*catalog.Catalog, error) {
	if path == "" {
		return catalog.LoadDefault()
	}
	cat, err := catalog.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("breed catalog %s: %w", path, err)
	}
	return cat, nil
}

// Close libera la storage en orden inverso de apertura.
func (a *app) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
