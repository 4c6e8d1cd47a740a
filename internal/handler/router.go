package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kashafah/scouthub/internal/middleware"
	"github.com/kashafah/scouthub/internal/model"
	"github.com/kashafah/scouthub/internal/repo"
)

type RouterDeps struct {
	Auth         *AuthHandler
	Users        *UserHandler
	Reports      *ReportHandler
	Participants *ParticipantHandler
	Activities   *ActivityHandler
	Activation   *ActivationHandler
	Comments     *CommentHandler
	Shares       *ShareHandler
	Files        *FileHandler
	UserRepo     *repo.UserRepo
	JWTSecret    []byte
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)

	// public share access; no bearer identity required
	api.GET("/shared/:token", deps.Shares.PublicGet)
	api.POST("/shared/:token", deps.Shares.PublicPost)
	api.GET("/files/:key", deps.Files.Get)

	auth := middleware.JWTAuth(deps.JWTSecret)
	member := middleware.RequireRole(deps.UserRepo, model.RoleMember)
	leader := middleware.RequireRole(deps.UserRepo, model.RoleLeader)
	admin := middleware.RequireRole(deps.UserRepo, model.RoleAdmin)

	memberGroup := api.Group("", auth, member)
	memberGroup.GET("/auth/profile", deps.Auth.Profile)
	memberGroup.PUT("/auth/profile", deps.Auth.UpdateProfile)
	memberGroup.POST("/auth/change-password", deps.Auth.ChangePassword)
	memberGroup.POST("/activation/activate", deps.Auth.Activate)

	memberGroup.GET("/reports", deps.Reports.List)
	memberGroup.GET("/reports/:id", deps.Reports.Get)
	memberGroup.PUT("/reports/:id", deps.Reports.Update)
	memberGroup.DELETE("/reports/:id", deps.Reports.Delete)

	memberGroup.POST("/reports/:id/comments", deps.Comments.Create)
	memberGroup.GET("/reports/:id/comments", deps.Comments.ListByReport)
	memberGroup.DELETE("/comments/:id", deps.Comments.Delete)
	memberGroup.POST("/comments/:id/like", deps.Comments.Like)
	memberGroup.GET("/notifications", deps.Comments.ListNotifications)
	memberGroup.PUT("/notifications/:id/read", deps.Comments.MarkNotificationRead)

	memberGroup.GET("/participants", deps.Participants.List)
	memberGroup.GET("/participants/:id", deps.Participants.Get)
	memberGroup.GET("/activities", deps.Activities.List)
	memberGroup.GET("/activities/:id", deps.Activities.Get)
	memberGroup.GET("/activities/:id/attendance", deps.Activities.ListAttendance)

	leaderGroup := api.Group("", auth, leader)
	leaderGroup.POST("/reports", deps.Reports.Create)
	leaderGroup.POST("/reports/export", deps.Reports.Export)
	leaderGroup.GET("/reports/:id/print", deps.Reports.Print)
	leaderGroup.POST("/reports/:id/email", middleware.RateLimit(10*time.Second), deps.Reports.Email)
	leaderGroup.POST("/reports/:id/share", deps.Shares.Create)
	leaderGroup.GET("/share-links", deps.Shares.List)
	leaderGroup.DELETE("/share-links/:token", deps.Shares.Delete)
	leaderGroup.POST("/participants", deps.Participants.Create)
	leaderGroup.PUT("/participants/:id", deps.Participants.Update)
	leaderGroup.PUT("/participants/:id/status", deps.Participants.SetStatus)
	leaderGroup.POST("/participants/export", deps.Participants.Export)
	leaderGroup.POST("/activities", deps.Activities.Create)
	leaderGroup.PUT("/activities/:id", deps.Activities.Update)
	leaderGroup.POST("/activities/:id/attendance", deps.Activities.RecordAttendance)

	adminGroup := api.Group("", auth, admin)
	adminGroup.GET("/users", deps.Users.List)
	adminGroup.GET("/users/:id", deps.Users.Get)
	adminGroup.PUT("/users/:id/role", deps.Users.SetRole)
	adminGroup.PUT("/users/:id/active", deps.Users.SetActive)
	adminGroup.DELETE("/users/:id", deps.Users.Delete)
	adminGroup.POST("/activation", deps.Activation.Create)
	adminGroup.GET("/activation", deps.Activation.List)
	adminGroup.DELETE("/activation/:id", deps.Activation.Deactivate)
	adminGroup.GET("/activation/:id/activations", deps.Activation.ListActivations)
	adminGroup.POST("/files/upload", deps.Files.Upload)
}
