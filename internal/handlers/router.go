package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DormLink-2025/repair-service/internal/auth"
	"github.com/DormLink-2025/repair-service/internal/models"
	"github.com/DormLink-2025/repair-service/internal/repositories"
	"github.com/DormLink-2025/repair-service/internal/services"
	"github.com/DormLink-2025/repair-service/internal/utils"
)

// HandlerManager holds all handlers and wires the route tree.
type HandlerManager struct {
	authHandler         *AuthHandler
	repairHandler       *RepairHandler
	commentHandler      *CommentHandler
	userHandler         *UserHandler
	announcementHandler *AnnouncementHandler
	categoryHandler     *CategoryHandler

	authMiddleware *JWTAuthMiddleware
	serviceManager services.ServiceManager
}

func NewHandlerManager(sm services.ServiceManager, tokens *auth.TokenManager, users repositories.UserRepository, logger utils.Logger) *HandlerManager {
	return &HandlerManager{
		authHandler:         NewAuthHandler(sm.Auth(), logger),
		repairHandler:       NewRepairHandler(sm.Repair(), sm.Export(), logger),
		commentHandler:      NewCommentHandler(sm.Comment(), logger),
		userHandler:         NewUserHandler(sm.User(), logger),
		announcementHandler: NewAnnouncementHandler(sm.Announcement(), logger),
		categoryHandler:     NewCategoryHandler(sm.Category(), logger),

		authMiddleware: NewJWTAuthMiddleware(tokens, users, logger),
		serviceManager: sm,
	}
}

// SetupRoutes registers the full HTTP surface. Everything under /api
// except login requires a bearer token; role gates mirror the
// authorization policy.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")

	// Auth gate entry point; the only unauthenticated endpoint.
	api.POST("/auth/login", hm.authHandler.Login)

	authed := api.Group("")
	authed.Use(hm.authMiddleware.Authenticate())
	{
		authed.GET("/auth/me", hm.authHandler.Me)
		authed.POST("/auth/change-password", hm.authHandler.ChangePassword)
		authed.PUT("/profile", hm.authHandler.UpdateProfile)

		repairs := authed.Group("/repairs")
		{
			repairs.POST("", RequireRole(models.RoleStudent), hm.repairHandler.Create)
			repairs.GET("", hm.repairHandler.List)
			repairs.GET("/pending", RequireRole(models.RoleAdmin, models.RoleRepairman), hm.repairHandler.ListPending)
			repairs.GET("/export", RequireRole(models.RoleAdmin), hm.repairHandler.Export)
			repairs.GET("/:id", hm.repairHandler.Get)
			repairs.PUT("/:id/approve", RequireRole(models.RoleAdmin), hm.repairHandler.Approve)
			repairs.PUT("/:id/reject", RequireRole(models.RoleAdmin), hm.repairHandler.Reject)
			repairs.PUT("/:id/accept", RequireRole(models.RoleRepairman), hm.repairHandler.Accept)
			repairs.PUT("/:id/complete", RequireRole(models.RoleRepairman), hm.repairHandler.Complete)
		}

		comments := authed.Group("/comments")
		{
			comments.POST("", RequireRole(models.RoleStudent), hm.commentHandler.Create)
			comments.GET("/:repair_order_id", hm.commentHandler.GetByOrder)
		}

		authed.GET("/categories", hm.categoryHandler.List)

		announcements := authed.Group("/announcements")
		{
			announcements.GET("", hm.announcementHandler.List)
			announcements.POST("", RequireRole(models.RoleAdmin), hm.announcementHandler.Create)
			announcements.PUT("/:id", RequireRole(models.RoleAdmin), hm.announcementHandler.Update)
			announcements.DELETE("/:id", RequireRole(models.RoleAdmin), hm.announcementHandler.Delete)
		}

		users := authed.Group("/users")
		users.Use(RequireRole(models.RoleAdmin))
		{
			users.GET("", hm.userHandler.List)
			users.POST("", hm.userHandler.Create)
			users.PUT("/:id", hm.userHandler.Update)
			users.DELETE("/:id", hm.userHandler.Delete)
		}
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, Response{
			Code: http.StatusServiceUnavailable,
			Msg:  "unhealthy",
		})
		return
	}
	c.JSON(http.StatusOK, Response{Code: http.StatusOK, Msg: "healthy"})
}
