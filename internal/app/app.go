package app

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/jmoiron/sqlx"
	"github.com/mumvest/mumvest"
	"github.com/mumvest/mumvest/internal/config"
	"github.com/mumvest/mumvest/internal/content"
	"github.com/mumvest/mumvest/internal/db"
	"github.com/mumvest/mumvest/internal/kv"
	"github.com/mumvest/mumvest/internal/model"
	"github.com/mumvest/mumvest/internal/repository"
	"github.com/mumvest/mumvest/internal/service"
	"github.com/mumvest/mumvest/internal/storage"
	"github.com/redis/go-redis/v9"
)

type App struct {
	Cfg                    *config.Config
	DB                     *sqlx.DB
	Store                  kv.Store
	Catalog                *content.Catalog
	SubscriptionService    *service.SubscriptionService
	GoalService            *service.GoalService
	GamificationService    *service.GamificationService
	PersonalizationService *service.PersonalizationService
	ContentService         *service.ContentService
	LessonService          *service.LessonService
	ProgressService        *service.ProgressService
	UserService            *service.UserService
	InsightsService        *service.InsightsService
	ExportService          *service.ExportService

	redis *redis.Client
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	a := &App{Cfg: cfg, DB: database}

	// Scalar store
	switch cfg.KVDriver {
	case "redis":
		a.redis, err = kv.NewRedisClient(ctx, cfg.RedisAddr)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.Store = kv.NewRedisStore(a.redis, cfg.RedisPrefix)
	case "memory":
		a.Store = kv.NewMemoryStore()
	default:
		a.Store = kv.NewSQLStore(database)
	}
	slog.Info("scalar store ready", "driver", cfg.KVDriver)

	// Content catalog
	a.Catalog, err = loadCatalog(cfg.ContentPath)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load content: %w", err)
	}

	// Backup storage is optional
	var backups storage.Storage
	if cfg.BackupsEnabled() {
		backups, err = storage.New(ctx, cfg)
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	// Repositories
	goalRepository := repository.NewGoalRepository(database)
	savingsEntryRepository := repository.NewSavingsEntryRepository(database)
	profileRepository := repository.NewProfileRepository(database)
	lessonRepository := repository.NewLessonProgressRepository(database)
	challengeRepository := repository.NewChallengeRepository(database)

	// Services
	clock := service.NewClock(cfg.Location())

	a.SubscriptionService = service.NewSubscriptionService(a.Store, cfg.FreeGoalLimit, clock)
	a.GoalService = service.NewGoalService(goalRepository, savingsEntryRepository, a.SubscriptionService, clock)
	a.GamificationService = service.NewGamificationService(a.Store, repository.NewBadgeRepository(database), clock)
	a.PersonalizationService = service.NewPersonalizationService(a.Store)
	a.ContentService = service.NewContentService(
		a.Catalog,
		a.Store,
		repository.NewMomentStateRepository(database),
		repository.NewSwapStateRepository(database),
		challengeRepository,
		a.SubscriptionService,
		a.PersonalizationService,
		clock,
	)
	a.LessonService = service.NewLessonService(a.Catalog, lessonRepository, a.SubscriptionService, clock)
	a.ProgressService = service.NewProgressService(a.GoalService, a.LessonService, a.ContentService, a.GamificationService, a.Store)
	a.UserService = service.NewUserService(profileRepository, a.Store, a.GamificationService, clock)
	a.InsightsService = service.NewInsightsService(a.GoalService, a.ContentService, a.SubscriptionService, clock)
	a.ExportService = service.NewExportService(
		a.GoalService,
		profileRepository,
		lessonRepository,
		challengeRepository,
		repository.NewMaintenanceRepository(database),
		a.Store,
		a.GamificationService,
		a.SubscriptionService,
		backups,
		clock,
	)

	// Edited or deleted entries change totals the score reads
	a.GoalService.SetEntryChangeHook(func(ctx context.Context, goal *model.Goal, progress model.GoalProgress) {
		_, err := a.ProgressService.RecalculateScore(ctx)
		if err != nil {
			slog.Warn("failed to recalculate score after entry change", "goal_id", goal.ID, "error", err)
		}
	})

	err = a.GamificationService.Load(ctx)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("failed to load gamification state: %w", err)
	}

	return a, nil
}

// loadCatalog reads the embedded catalog unless path points at a directory.
func loadCatalog(path string) (*content.Catalog, error) {
	if path != "" {
		slog.Info("loading content from disk", "path", path)
		return content.Load(os.DirFS(path))
	}

	sub, err := fs.Sub(mumvest.ContentFS, "content")
	if err != nil {
		return nil, err
	}
	return content.Load(sub)
}

func (a *App) Close() error {
	if a.redis != nil {
		err := a.redis.Close()
		if err != nil {
			slog.Error("failed to close redis", "error", err)
		}
	}
	if a.DB != nil {
		return a.DB.Close()
	}
	return nil
}
