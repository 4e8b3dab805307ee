package app

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/itayalasas/hcm-pro-sub001/internal/assignment"
	"github.com/itayalasas/hcm-pro-sub001/internal/concept"
	"github.com/itayalasas/hcm-pro-sub001/internal/employee"
	"github.com/itayalasas/hcm-pro-sub001/internal/formula"
	"github.com/itayalasas/hcm-pro-sub001/internal/messaging/kafka"
	"github.com/itayalasas/hcm-pro-sub001/internal/period"
	"github.com/itayalasas/hcm-pro-sub001/internal/rbac"
	"github.com/itayalasas/hcm-pro-sub001/internal/rbac/infra"
	"github.com/itayalasas/hcm-pro-sub001/internal/shared/counter"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	formulaRepo := formula.NewRepository(gormDB)
	conceptRepo := concept.NewRepository(gormDB)
	assignmentRepo := assignment.NewRepository(gormDB)
	periodRepo := period.NewRepository(gormDB)
	counterRepo := counter.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	employeeService := employee.NewService(db, employeeRepo)
	formulaService := formula.NewService(db, formulaRepo)
	conceptService := concept.NewService(db, conceptRepo, rdb)
	assignmentService := assignment.NewService(db, assignmentRepo)
	periodService := period.NewService(
		db, periodRepo, employeeRepo, assignmentRepo,
		counterRepo, outboxRepo, computeWorkers(),
	)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	formulaHandler := formula.NewHandler(formulaService)
	conceptHandler := concept.NewHandler(conceptService)
	assignmentHandler := assignment.NewHandler(assignmentService)
	periodHandler := period.NewHandler(periodService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService)
		formula.RegisterRoutes(api, formulaHandler, rbacService)
		concept.RegisterRoutes(api, conceptHandler, rbacService)
		assignment.RegisterRoutes(api, assignmentHandler, rbacService)
		period.RegisterRoutes(api, periodHandler, rbacService, rdb)
	}

	return nil
}

func computeWorkers() int {
	if v := os.Getenv("PAYROLL_COMPUTE_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return 4
}
