package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kanishkarathore/mosspay-project/internal/app"
)

func main() {
	envErr := godotenv.Load()

	a := app.New()
	logger := a.Logger()
	if envErr != nil {
		logger.Debug("no .env file loaded", zap.Error(envErr))
	}

	if err := a.Run(); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
