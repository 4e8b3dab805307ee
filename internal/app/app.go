package app

import (
	"os"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/assignment"
	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
	"github.com/itayalasas/hcm-pro-sub001/internal/middleware"
	"github.com/itayalasas/hcm-pro-sub001/internal/period"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/connection"
)

// BuildApp wires infrastructure and registers every module's routes on the
// given engine.
func BuildApp(router *gin.Engine) error {
	logger := zap.L().Named("app")

	gormDB, err := connection.ConnectGORMWithRetry(
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
		os.Getenv("DB_SSLMODE"),
		5,
	)
	if err != nil {
		return err
	}
	logger.Info("database connection established")

	if os.Getenv("DB_AUTOMIGRATE") == "true" {
		if err := autoMigrate(gormDB); err != nil {
			return err
		}
		logger.Info("schema migration applied")
	}

	redisClient, err := connection.ConnectRedisWithRetry(os.Getenv("REDIS_ADDR"), 5)
	if err != nil {
		return err
	}
	logger.Info("redis connection established")

	router.Use(middleware.RequestID())
	router.Use(middleware.RateLimitByIP(rate.Limit(20), 40))

	return registerModules(router, gormDB, redisClient)
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&employee.Employee{},
		&formula.Formula{},
		&concept.Concept{},
		&assignment.Assignment{},
		&period.Period{},
		&period.PeriodEmployee{},
		&period.PeriodDetail{},
		&period.ConceptDetail{},
	)
}
