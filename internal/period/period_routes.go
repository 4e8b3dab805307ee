package period

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/itayalasas/hcm-pro-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	rdb *redis.Client,
) {
	periods := r.Group("/periods")
	periods.Use(middleware.AuthMiddleware())
	{
		periods.GET("", middleware.RBACAuthorize(rbacService, "period", "read"), handler.GetAll)
		periods.GET("/:id", middleware.RBACAuthorize(rbacService, "period", "read"), handler.GetByID)
		periods.GET("/:id/details", middleware.RBACAuthorize(rbacService, "period", "read"), handler.GetBreakdown)
		periods.GET("/:id/payslips/:employeeId", middleware.RBACAuthorize(rbacService, "period", "read"), handler.Payslip)
		periods.POST("", middleware.RBACAuthorize(rbacService, "period", "create"), handler.Create)
		periods.POST("/:id/compute",
			middleware.RBACAuthorize(rbacService, "period", "compute"),
			middleware.Idempotency(rdb),
			handler.Compute)
		periods.POST("/:id/transition", middleware.RBACAuthorize(rbacService, "period", "approve"), handler.Transition)
		periods.DELETE("/:id", middleware.RBACAuthorize(rbacService, "period", "delete"), handler.Delete)
	}
}
