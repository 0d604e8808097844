package bootstrap

import (
	"context"
	"fmt"

	"github.com/greenloop/ecoai-commerce/internal/config"
	"github.com/greenloop/ecoai-commerce/internal/core/ports"
	"github.com/greenloop/ecoai-commerce/internal/core/usecase"
	"github.com/greenloop/ecoai-commerce/internal/infrastructure/llm/groq"
	"github.com/greenloop/ecoai-commerce/internal/infrastructure/repository/postgres"
	"github.com/greenloop/ecoai-commerce/internal/infrastructure/resilience"
	"github.com/greenloop/ecoai-commerce/internal/observability/metrics"
)

type App struct {
	Config config.Config

	Store      ports.RecordStore
	Metrics    *metrics.ServerMetrics
	CategoryUC ports.AutoCategoryGenerator
	ProposalUC ports.B2BProposalGenerator

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	store := postgres.NewRecordStore(db)
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	breakerCfg := resilience.DefaultConfig()
	breakerCfg.Enabled = cfg.BreakerEnabled
	guard := resilience.NewGuard(breakerCfg)

	completer := groq.New(groq.Config{
		BaseURL:     cfg.GroqBaseURL,
		APIKey:      cfg.GroqAPIKey,
		Model:       cfg.GroqModel,
		Temperature: cfg.GroqTemperature,
		MaxTokens:   cfg.GroqMaxTokens,
	}, guard)

	return &App{
		Config: cfg,

		Store:      store,
		Metrics:    metrics.NewServerMetrics(cfg.AppName),
		CategoryUC: usecase.NewAutoCategoryUseCase(completer, store),
		ProposalUC: usecase.NewB2BProposalUseCase(completer, store),

		closeFn: func() {
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
