package deps

import (
	"github.com/and161185/autotrade/internal/auth"
	"github.com/and161185/autotrade/internal/config"
	"go.uber.org/zap"
)

type Deps struct {
	Logger       *zap.SugaredLogger
	TokenManager *auth.TokenManager
}

func NewDependencies(cfg *config.Config) (*Deps, error) {
	logCfg := zap.NewProductionConfig()
	logCfg.OutputPaths = []string{"stdout"}
	if cfg.LogFile != "" {
		logCfg.OutputPaths = append(logCfg.OutputPaths, cfg.LogFile)
	}

	logger, err := logCfg.Build()
	if err != nil {
		return nil, err
	}

	deps := Deps{Logger: logger.Sugar(), TokenManager: auth.NewTokenManager(cfg.SecretKey)}

	return &deps, nil
}
