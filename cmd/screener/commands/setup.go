package commands

import (
	"fmt"

	"github.com/wonny/stockscreen/internal/pipeline"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/config"
	"github.com/wonny/stockscreen/pkg/logger"
)

// environment bundles what every command needs
type environment struct {
	cfg       *config.Config
	screenCfg *screenconfig.Config
	log       *logger.Logger
	runner    *pipeline.Runner
}

// setup loads configuration and wires the runner.
// Any failure here happens before the first network call.
func setup() (*environment, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)

	screenCfg, err := pipeline.LoadScreenConfig(cfg, log)
	if err != nil {
		log.WithError(err).Error("Screener config rejected")
		return nil, err
	}

	return &environment{
		cfg:       cfg,
		screenCfg: screenCfg,
		log:       log,
		runner:    pipeline.New(cfg, screenCfg, log),
	}, nil
}
