// internal/app/bootstrap/shutdown.go
package bootstrap

import (
	"context"
	"errors"

	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Shutdown cleanly tears down DB connections and other resources.
func Shutdown(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	return CloseBackends(ctx, deps, logger)
}

// CloseBackends closes the local fallback and disconnects MongoDB.
func CloseBackends(ctx context.Context, deps DBDeps, logger *zap.Logger) error {
	var errs []error
	if deps.LocalKV != nil {
		if err := deps.LocalKV.Close(); err != nil {
			logger.Error("local fallback close failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	if deps.MongoClient != nil {
		logger.Info("disconnecting MongoDB client")
		if err := deps.MongoClient.Disconnect(ctx); err != nil {
			logger.Error("MongoDB disconnect failed", zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
