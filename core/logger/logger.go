package logger

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds the zap logger described by cfg. Debug level switches to the
// development config so timestamps stay human-readable during local runs.
func New(cfg *Config) (*zap.Logger, error) {
	base := zap.NewProductionConfig()
	if cfg.Level == "debug" {
		base = zap.NewDevelopmentConfig()
	}
	if lvl, err := zapcore.ParseLevel(cfg.Level); err == nil {
		base.Level = zap.NewAtomicLevelAt(lvl)
	}

	if cfg.Format == "console" {
		base.Encoding = "console"
		base.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		base.DisableStacktrace = true
	} else {
		base.Encoding = "json"
	}

	// Shared key names across both encodings, so log shippers need one
	// mapping only.
	base.EncoderConfig.LevelKey = "level"
	base.EncoderConfig.TimeKey = "time"
	base.EncoderConfig.MessageKey = "message"

	return base.Build()
}

// WithRayID attaches the ray_id field from the Fiber context, so every log
// line of one request correlates.
func WithRayID(l *zap.Logger, c *fiber.Ctx) *zap.Logger {
	if rid, ok := c.Locals("ray_id").(string); ok && rid != "" {
		return l.With(zap.String("ray_id", rid))
	}
	return l
}
