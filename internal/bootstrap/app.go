package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"jobtracker-backend/internal/analytics"
	"jobtracker-backend/internal/applications"
	"jobtracker-backend/internal/jobs"
	"jobtracker-backend/internal/resumes"
	"jobtracker-backend/internal/services/health"
	"jobtracker-backend/internal/shared/config"
	"jobtracker-backend/internal/shared/server"
	"jobtracker-backend/internal/shared/storage/db"
	"jobtracker-backend/internal/shared/storage/object"
	localstore "jobtracker-backend/internal/shared/storage/object/local"
	s3store "jobtracker-backend/internal/shared/storage/object/s3"
	"jobtracker-backend/internal/users"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.Store

	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo
	ResumesRepo      resumes.Repo
	UsersRepo        users.Repo

	JobsService         *jobs.Service
	ApplicationsService *applications.Service
	AnalyticsService    *analytics.Service
	ResumesService      *resumes.Service
	UsersService        *users.Service
	HealthService       *health.Service
}

// Build prepares dependencies and wires routes.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:           cfg,
		Health:           app.HealthService,
		JobHandler:       jobs.NewHandler(app.JobsService),
		TrackerHandler:   applications.NewHandler(app.ApplicationsService),
		AnalyticsHandler: analytics.NewHandler(app.AnalyticsService),
		ResumeHandler:    resumes.NewHandler(app.ResumesService),
		UserHandler:      users.NewHandler(app.UsersService),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	profile := db.RuntimeProfile()
	opts := db.OptionsFromEnv(db.DefaultOptions(profile))
	var (
		sqlDB *sql.DB
		err   error
	)
	if profile == db.ProfileLambda {
		sqlDB, err = db.Shared(ctx, cfg.DatabaseURL, opts)
	} else {
		sqlDB, err = db.Connect(ctx, cfg.DatabaseURL, opts)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := db.RunMigrations(ctx, sqlDB); err != nil {
			return nil, fmt.Errorf("run migrations: %w", err)
		}
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local", "test":
		return true
	default:
		return false
	}
}

// Job records resolve tracker joins directly from the jobs store.
var _ applications.JobLookup = (jobs.Repo)(nil)

func buildServices(app *App) {
	if app.DB != nil {
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
	} else {
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
	}

	app.JobsService = jobs.NewService(app.JobsRepo)
	app.ApplicationsService = applications.NewService(app.ApplicationsRepo, app.JobsRepo)
	app.AnalyticsService = analytics.NewService(app.ApplicationsService)
	app.ResumesService = resumes.NewService(app.Store, app.ResumesRepo)
	app.UsersService = users.NewService(app.UsersRepo)
	app.HealthService = health.NewService(app.DB)
}
