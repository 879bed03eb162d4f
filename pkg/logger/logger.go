package logger

import (
	"os"

	"go.uber.org/zap"
)

// New, ortam değişkenine göre production veya development logger döndürür.
func New() *zap.Logger {
	var logger *zap.Logger
	var err error

	if os.Getenv("APP_ENV") == "development" {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}

	return logger
}
