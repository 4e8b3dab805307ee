package formula

import (
	"github.com/gin-gonic/gin"

	"github.com/itayalasas/hcm-pro-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	formulas := r.Group("/formulas")
	formulas.Use(middleware.AuthMiddleware())
	{
		formulas.GET("", middleware.RBACAuthorize(rbacService, "formula", "read"), handler.GetAll)
		formulas.GET("/:id", middleware.RBACAuthorize(rbacService, "formula", "read"), handler.GetByID)
		formulas.POST("", middleware.RBACAuthorize(rbacService, "formula", "create"), handler.Create)
		formulas.PUT("/:id", middleware.RBACAuthorize(rbacService, "formula", "update"), handler.Update)
		formulas.DELETE("/:id", middleware.RBACAuthorize(rbacService, "formula", "delete"), handler.Delete)
	}
}
