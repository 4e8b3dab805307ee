package main

import (
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/itayalasas/hcm-pro-sub001/internal/app"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/apperror"
)

func main() {
	_ = godotenv.Load()
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunConsumer(); err != nil {
		logger.Fatal("run consumer failed", zap.Error(err))
	}
}
