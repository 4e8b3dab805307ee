package concept

import (
	"github.com/gin-gonic/gin"

	"github.com/itayalasas/hcm-pro-sub001/internal/middleware"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
) {
	concepts := r.Group("/concepts")
	concepts.Use(middleware.AuthMiddleware())
	{
		concepts.GET("", middleware.RBACAuthorize(rbacService, "concept", "read"), handler.GetAll)
		concepts.GET("/options", middleware.RBACAuthorize(rbacService, "concept", "read"), handler.GetOptions)
		concepts.GET("/:id", middleware.RBACAuthorize(rbacService, "concept", "read"), handler.GetByID)
		concepts.POST("", middleware.RBACAuthorize(rbacService, "concept", "create"), handler.Create)
		concepts.PUT("/:id", middleware.RBACAuthorize(rbacService, "concept", "update"), handler.Update)
		concepts.DELETE("/:id", middleware.RBACAuthorize(rbacService, "concept", "delete"), handler.Delete)
	}
}
