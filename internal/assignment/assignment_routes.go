package assignment

import (
	"github.com/gin-gonic/gin"

	"github.com/itayalasas/hcm-pro-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	assignments := r.Group("/assignments")
	assignments.Use(middleware.AuthMiddleware())
	{
		assignments.GET("/employee/:employee_id", middleware.RBACAuthorize(rbacService, "assignment", "read"), handler.GetByEmployee)
		assignments.POST("", middleware.RBACAuthorize(rbacService, "assignment", "create"), handler.Assign)
		assignments.DELETE("/:id", middleware.RBACAuthorize(rbacService, "assignment", "delete"), handler.Unassign)
	}
}
