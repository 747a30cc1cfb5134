package logger

import (
	"log"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// LevelEnvVar overrides the default debug level, e.g. PEOPLE_LOG_LEVEL=warn
const LevelEnvVar = "PEOPLE_LOG_LEVEL"

func NewLogger() *zap.SugaredLogger {
	config := zap.NewDevelopmentConfig()
	config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder

	if lvl := os.Getenv(LevelEnvVar); lvl != "" {
		level, err := zapcore.ParseLevel(lvl)
		if err != nil {
			log.Printf("invalid %s %q, using debug: %v", LevelEnvVar, lvl, err)
		} else {
			config.Level = zap.NewAtomicLevelAt(level)
		}
	}

	logger, err := config.Build()
	if err != nil {
		log.Panic(err)
	}

	// flushes buffer, if any
	defer logger.Sync()

	return logger.Sugar()
}
