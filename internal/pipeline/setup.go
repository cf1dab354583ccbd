package pipeline

import (
	"fmt"

	"github.com/wonny/stockscreen/internal/external/twelvedata"
	"github.com/wonny/stockscreen/internal/marketcache"
	"github.com/wonny/stockscreen/internal/screenconfig"
	"github.com/wonny/stockscreen/pkg/config"
	"github.com/wonny/stockscreen/pkg/logger"
)

// LoadScreenConfig reads the YAML screener config and applies environment
// overrides (API key, base URL). Warnings are logged, not returned.
func LoadScreenConfig(cfg *config.Config, log *logger.Logger) (*screenconfig.Config, error) {
	screenCfg, err := screenconfig.Load(cfg.ScreenerConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load screener config %s: %w", cfg.ScreenerConfigPath, err)
	}

	if cfg.TwelveData.APIKey != "" {
		screenCfg.TwelveData.APIKey = cfg.TwelveData.APIKey
	}
	if cfg.TwelveData.BaseURL != "" {
		screenCfg.TwelveData.BaseURL = cfg.TwelveData.BaseURL
		if err := screenconfig.Validate(screenCfg); err != nil {
			return nil, err
		}
	}

	hash, err := screenconfig.Hash(screenCfg)
	if err != nil {
		return nil, fmt.Errorf("hash screener config: %w", err)
	}

	log.WithFields(map[string]interface{}{
		"path": cfg.ScreenerConfigPath,
		"hash": hash[:12],
	}).Info("Screener config loaded")

	for _, w := range screenconfig.Warn(screenCfg) {
		log.WithField("code", w.Code).Warn(w.Message)
	}

	return screenCfg, nil
}

// New wires the Twelve Data client behind the quote cache and returns a ready runner
func New(cfg *config.Config, screenCfg *screenconfig.Config, log *logger.Logger) *Runner {
	client := twelvedata.NewClient(cfg, twelvedata.OptionsFromConfig(screenCfg), log)
	source := marketcache.New(client, cfg.CacheTTL, log.WithField("component", "marketcache"))
	return NewRunner(cfg, screenCfg, source, log)
}
