package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"easyapply-backend/internal/coverletters"
	"easyapply-backend/internal/generate"
	"easyapply-backend/internal/generate/openrouter"
	"easyapply-backend/internal/jobs"
	"easyapply-backend/internal/queue"
	"easyapply-backend/internal/resumes"
	"easyapply-backend/internal/shared/config"
	"easyapply-backend/internal/shared/server"
	"easyapply-backend/internal/shared/storage/db"
	"easyapply-backend/internal/shared/storage/object"
	localstore "easyapply-backend/internal/shared/storage/object/local"
	s3store "easyapply-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies for the API and the worker.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Queue  queue.Client

	JobsRepo         jobs.JobsRepo
	ResumesRepo      resumes.ResumesRepo
	CoverLettersRepo coverletters.CoverLettersRepo

	JobsService         *jobs.Service
	ResumesService      *resumes.Service
	GenerateService     *generate.Service
	CoverLettersService *coverletters.Service

	// CoverLetterProcessor allows tests to override queue message processing.
	CoverLetterProcessor CoverLetterProcessor

	JobsHandler         *jobs.Handler
	ResumesHandler      *resumes.Handler
	CoverLettersHandler *coverletters.Handler
}

// CoverLetterProcessor runs generation for a queued cover letter.
type CoverLetterProcessor interface {
	Process(ctx context.Context, coverLetterID string) error
}

// Build prepares shared dependencies and the HTTP router.
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

	queueClient, err := buildQueue(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
		Queue:  queueClient,
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		JobsHandler:         app.JobsHandler,
		ResumesHandler:      app.ResumesHandler,
		CoverLettersHandler: app.CoverLettersHandler,
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

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildQueue(ctx context.Context, cfg config.Config) (queue.Client, error) {
	if strings.TrimSpace(cfg.SQSQueueURL) == "" {
		return nil, nil
	}
	return queue.NewSQSClient(ctx)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) {
	var (
		jobsRepo    jobs.JobsRepo
		resumesRepo resumes.ResumesRepo
		lettersRepo coverletters.CoverLettersRepo
	)
	if app.DB != nil {
		jobsRepo = &jobs.PGRepo{DB: app.DB}
		resumesRepo = &resumes.PGRepo{DB: app.DB}
		lettersRepo = &coverletters.PGRepo{DB: app.DB}
	} else {
		jobsRepo = jobs.NewMemoryRepo()
		resumesRepo = resumes.NewMemoryRepo()
		lettersRepo = coverletters.NewMemoryRepo()
	}

	jobsSvc := &jobs.Service{Repo: jobsRepo}
	resumesSvc := &resumes.Service{Repo: resumesRepo, Store: app.Store}
	generateSvc := generate.NewService(buildProviders(app.Config))
	lettersSvc := &coverletters.Service{
		Repo:      lettersRepo,
		Jobs:      jobsRepo,
		Resumes:   resumesRepo,
		Generator: generateSvc,
		Queue:     app.Queue,
	}

	app.JobsRepo = jobsRepo
	app.ResumesRepo = resumesRepo
	app.CoverLettersRepo = lettersRepo
	app.JobsService = jobsSvc
	app.ResumesService = resumesSvc
	app.GenerateService = generateSvc
	app.CoverLettersService = lettersSvc
	app.CoverLetterProcessor = lettersSvc
	app.JobsHandler = jobs.NewHandler(jobsSvc)
	app.ResumesHandler = resumes.NewHandler(resumesSvc)
	app.CoverLettersHandler = coverletters.NewHandler(lettersSvc)
}

func buildProviders(cfg config.Config) []generate.Provider {
	out := make([]generate.Provider, 0, len(cfg.Providers))
	for _, cred := range cfg.Providers {
		if strings.TrimSpace(cred.Model) == "" {
			continue
		}
		if strings.TrimSpace(cred.APIKey) == "" {
			log.Printf("bootstrap: provider %s has no API key; it will fail over when tried", cred.Model)
		}
		out = append(out, openrouter.New(cred.Model, cred.APIKey))
	}
	return out
}
