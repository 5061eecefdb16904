// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"

	"github.com/dalemusser/scivishub/internal/app/system/timeouts"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time initialization after backends are open and before
// the handler is built.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if n := timeouts.ConfigureFromEnv(); n > 0 {
		cur := timeouts.Current()
		logger.Info("timeouts configured from environment",
			zap.Int("overrides", n),
			zap.Duration("ping", cur.Ping),
			zap.Duration("read", cur.Read),
			zap.Duration("upload", cur.Upload),
			zap.Duration("write", cur.Write))
	}

	if deps.Backend.Ok() {
		logger.Info("submissions use the durable backend")
	} else {
		logger.Warn("submissions use the local fallback", zap.Error(deps.Backend.Err))
	}
	return nil
}
