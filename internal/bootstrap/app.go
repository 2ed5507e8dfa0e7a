// Package bootstrap wires configuration, storage and the pipeline
// components into a runnable application.
package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"docvoice-backend/internal/dialog"
	"docvoice-backend/internal/files"
	"docvoice-backend/internal/llm"
	openai "docvoice-backend/internal/llm/openai"
	"docvoice-backend/internal/ocr"
	"docvoice-backend/internal/raster"
	"docvoice-backend/internal/recognize"
	"docvoice-backend/internal/shared/config"
	"docvoice-backend/internal/shared/server"
	"docvoice-backend/internal/shared/storage/db"
	"docvoice-backend/internal/speech"
	"docvoice-backend/internal/speech/gtts"
	"docvoice-backend/internal/uploads"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB

	FilesRepo    files.Repo
	FilesService *files.Service
	Extractor    *recognize.Extractor
	LLMRouter    *llm.Router
	Synth        speech.Synthesizer
	Dialog       *dialog.Controller

	DialogHandler  *dialog.Handler
	UploadsHandler *uploads.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(cfg.FilesDir, 0o755); err != nil {
		return nil, fmt.Errorf("create files dir: %w", err)
	}

	var repo files.Repo
	if sqlDB != nil {
		repo = &files.PGRepo{DB: sqlDB}
	} else {
		repo = files.NewMemoryRepo()
	}
	filesSvc := &files.Service{Repo: repo}

	extractor := &recognize.Extractor{
		OCR:    ocr.NewTesseract(),
		Raster: raster.NewFitz(),
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if strings.TrimSpace(cfg.OpenAIAPIKey) != "" {
		client, err := openai.NewClient(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.LLMModel, cfg.LLMTimeout)
		if err != nil {
			return nil, err
		}
		llmClient = client
	} else {
		log.Printf("bootstrap: OPENAI_API_KEY empty; llm transforms disabled")
	}
	router := &llm.Router{Client: llmClient}

	synth := gtts.NewClient(cfg.TTSBaseURL, cfg.TTSTimeout)

	ctrl := dialog.NewController(filesSvc, extractor, router, synth, dialog.Timeouts{
		OCR: cfg.OCRTimeout,
		LLM: cfg.LLMTimeout,
		TTS: cfg.TTSTimeout,
	})

	app := &App{
		Config:         cfg,
		DB:             sqlDB,
		FilesRepo:      repo,
		FilesService:   filesSvc,
		Extractor:      extractor,
		LLMRouter:      router,
		Synth:          synth,
		Dialog:         ctrl,
		DialogHandler:  dialog.NewHandler(ctrl, cfg.FilesDir),
		UploadsHandler: uploads.NewHandler(filesSvc, ctrl, cfg.FilesDir),
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:         cfg,
		DialogHandler:  app.DialogHandler,
		UploadsHandler: app.UploadsHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repository")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err == nil {
		err = db.RunMigrations(ctx, sqlDB)
	}
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database unavailable; using in-memory repository: %v", err)
			return nil, nil
		}
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
