package logger

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New создает zap logger в зависимости от окружения.
// "local" - человекочитаемый вывод для разработки, иначе production JSON.
func New(env string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	switch env {
	case "local", "dev":
		cfg := zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		logger, err = cfg.Build()
	default:
		logger, err = zap.NewProduction()
	}

	if err != nil {
		log.Fatalf("cannot initialize zap logger: %v", err)
	}

	return logger
}
