package cli

import (
	"context"
	"log/slog"
	"os"

	"github.com/example/resy-agent/internal/application/usecases"
	"github.com/example/resy-agent/internal/infrastructure/config"
	"github.com/example/resy-agent/internal/infrastructure/gcal"
	"github.com/example/resy-agent/internal/infrastructure/gmail"
	"github.com/example/resy-agent/internal/infrastructure/googleauth"
	"github.com/example/resy-agent/internal/infrastructure/gsheets"
	"github.com/example/resy-agent/internal/infrastructure/resy"
)

// app wires configuration and the remote service clients into a ready Agent.
type app struct {
	cfg      config.Config
	logger   *slog.Logger
	agent    *usecases.Agent
	provider *resy.Client
}

func newApp(ctx context.Context, configPath string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	logger := newLogger(cfg)

	services, err := googleauth.New(ctx, cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.TokenFile)
	if err != nil {
		return nil, err
	}

	provider := resy.New(resy.Config{
		APIKey:          cfg.ResyAPIKey,
		AuthToken:       cfg.ResyAuthToken,
		PaymentMethodID: cfg.ResyPaymentMethodID,
		Latitude:        cfg.Latitude,
		Longitude:       cfg.Longitude,
	})

	agent := &usecases.Agent{
		Config:   cfg,
		Provider: provider,
		Calendar: gcal.New(services.Calendar, logger),
		Prefs:    gsheets.New(services.Sheets, logger, cfg.SpreadsheetID),
		Email:    gmail.New(services.Gmail, logger, cfg.EmailRecipient),
		Logger:   logger,
	}

	return &app{cfg: cfg, logger: logger, agent: agent, provider: provider}, nil
}

func newLogger(cfg config.Config) *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
}
