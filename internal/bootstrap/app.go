package bootstrap

import (
	"context"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-critic/internal/analyses"
	"resume-critic/internal/analyses/rules"
	"resume-critic/internal/llm"
	openai "resume-critic/internal/llm/openai"
	"resume-critic/internal/services/health"
	"resume-critic/internal/shared/config"
	"resume-critic/internal/shared/server"
	"resume-critic/internal/shared/server/middleware"
	"resume-critic/internal/shared/storage/object"
	localstore "resume-critic/internal/shared/storage/object/local"
	s3store "resume-critic/internal/shared/storage/object/s3"
	"resume-critic/internal/shared/telemetry"
	"resume-critic/internal/uploads"
	"resume-critic/internal/web"
)

// App holds shared dependencies and the wired router.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	Rules           *rules.Table
	Source          object.Store
	Commentary      llm.Client
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	WebHandler      *web.Handler
	UploadsHandler  *uploads.Handler
	Health          *health.Service
}

// Build prepares dependencies and the router. Any error here is a startup failure.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	table, err := rules.Load(cfg.RulesFile)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	source, err := buildSource(ctx, cfg)
	if err != nil {
		return nil, err
	}

	commentary, err := buildCommentary(cfg)
	if err != nil {
		return nil, err
	}

	uploadsHandler, err := buildUploads(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &analyses.Service{
		Rules:             table,
		Source:            source,
		Commentary:        commentary,
		CommentaryTimeout: cfg.LLMTimeout,
		MaxBytes:          cfg.MaxUploadBytes,
	}

	app := &App{
		Config:          cfg,
		Rules:           table,
		Source:          source,
		Commentary:      commentary,
		AnalysesService: svc,
		AnalysisHandler: analyses.NewHandler(svc, cfg.MaxUploadBytes),
		WebHandler:      web.NewHandler(svc, table, cfg.MaxUploadBytes),
		UploadsHandler:  uploadsHandler,
		Health:          health.NewService(table.Version),
	}
	app.Router = server.NewRouter(server.RouterDeps{
		Config:          cfg,
		AnalysisHandler: app.AnalysisHandler,
		WebHandler:      app.WebHandler,
		UploadsHandler:  app.UploadsHandler,
		Health:          app.Health,
		RateLimiter:     middleware.NewRateLimiter(nil),
	})

	telemetry.Info("bootstrap.ready", map[string]any{
		"env":           cfg.Env,
		"rules_version": table.Version,
		"industries":    len(table.Industries),
		"source_store":  cfg.SourceStoreType,
		"llm_provider":  cfg.LLMProvider,
		"presign":       uploadsHandler != nil,
	})
	return app, nil
}

func buildSource(ctx context.Context, cfg config.Config) (object.Store, error) {
	switch cfg.SourceStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("SOURCE_STORE=s3 requires S3_BUCKET")
		}
		store, err := s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("build s3 source: %w", err)
		}
		return store, nil
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildCommentary(cfg config.Config) (llm.Client, error) {
	if cfg.LLMProvider != "openai" {
		return llm.PlaceholderClient{}, nil
	}
	client, err := openai.NewClient(cfg.LLMAPIKey, cfg.LLMModel, cfg.LLMBaseURL)
	if err != nil {
		return nil, fmt.Errorf("build openai client: %w", err)
	}
	return client, nil
}

func buildUploads(ctx context.Context, cfg config.Config) (*uploads.Handler, error) {
	if strings.TrimSpace(cfg.UploadsBucket) == "" {
		return nil, nil
	}
	h, err := uploads.NewFromConfig(ctx, cfg.AWSRegion, cfg.UploadsBucket, cfg.UploadsPrefix, cfg.MaxUploadBytes)
	if err != nil {
		return nil, fmt.Errorf("build uploads presigner: %w", err)
	}
	return h, nil
}
