package api

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"resumeBuilder/internal/api/middleware"
	"resumeBuilder/internal/auth"
	"resumeBuilder/internal/config"
)

type exportStorage interface {
	exportCleaner
	linkSigner
}

// Dependencies 汇总路由所需的外部组件，由 cmd/api 负责装配。
type Dependencies struct {
	Config         *config.Config
	DB             *gorm.DB
	Auth           *auth.AuthService
	Redis          authKV
	Notifications  notificationSource
	Resumes        resumeStore
	Customizations customizationStore
	Queue          taskEnqueuer
	Storage        exportStorage
	Suggestions    suggester
	Logger         *slog.Logger
}

// RegisterRoutes 注册 /v1 下的全部业务路由。
func RegisterRoutes(router *gin.Engine, deps Dependencies) {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	authHandler := NewAuthHandler(deps.DB, deps.Auth, deps.Redis, logger, cfg.Auth, cfg.API.CookieDomain)
	resumeHandler := NewResumeHandler(deps.Resumes, deps.Storage, logger)
	exportHandler := NewExportHandler(deps.Resumes, deps.Customizations, deps.Queue, deps.Storage, cfg.Worker.MaxRetry, cfg.MinIO.PresignTTL, logger)
	customizationHandler := NewCustomizationHandler(deps.Customizations, logger)
	templateHandler := NewTemplateHandler()
	analysisHandler := NewAnalysisHandler(deps.Suggestions, deps.Resumes, cfg.API.MaxUploadBytes, logger)
	wsHandler := NewWsHandler(deps.Notifications, deps.Auth, logger, cfg.API.AllowedOrigins)

	authMiddleware := middleware.AuthMiddleware(deps.Auth)
	passwordGate := middleware.RequirePasswordChangeCompletedMiddleware()

	v1 := router.Group("/v1")
	{
		v1.GET("/ws", wsHandler.HandleConnection)

		authGroup := v1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/refresh", authHandler.Refresh)
			authGroup.POST("/logout", authHandler.Logout)
			authGroup.GET("/me", authMiddleware, authHandler.Me)
			authGroup.POST("/change-password", authMiddleware, authHandler.ChangePassword)
		}

		templateGroup := v1.Group("/templates")
		{
			templateGroup.GET("", templateHandler.ListTemplates)
			templateGroup.GET("/:id", templateHandler.GetTemplate)
		}

		protected := v1.Group("")
		protected.Use(authMiddleware, passwordGate)

		resumeGroup := protected.Group("/resumes")
		{
			resumeGroup.GET("", resumeHandler.ListResumes)
			resumeGroup.POST("", resumeHandler.CreateResume)
			resumeGroup.GET("/:id", resumeHandler.GetResume)
			resumeGroup.PUT("/:id", resumeHandler.UpdateResume)
			resumeGroup.DELETE("/:id", resumeHandler.DeleteResume)
			resumeGroup.POST("/:id/duplicate", resumeHandler.DuplicateResume)

			resumeGroup.GET("/:id/export/html", exportHandler.ExportHTML)
			resumeGroup.GET("/:id/export/text", exportHandler.ExportText)
			resumeGroup.POST("/:id/export/pdf", exportHandler.RequestPDF)
			resumeGroup.GET("/:id/export/pdf", exportHandler.GetPDFLink)

			resumeGroup.GET("/:id/ats-score", analysisHandler.ResumeATSScore)
			resumeGroup.POST("/:id/suggestions", analysisHandler.ResumeSuggestions)
		}

		customizationGroup := protected.Group("/customization")
		{
			customizationGroup.GET("", customizationHandler.GetCustomization)
			customizationGroup.PUT("", customizationHandler.PutCustomization)
			customizationGroup.PATCH("", customizationHandler.PatchCustomization)
		}

		analysisGroup := protected.Group("/analysis")
		{
			analysisGroup.POST("/ats-score", analysisHandler.ATSScore)
			analysisGroup.POST("/suggestions", analysisHandler.Suggestions)
			analysisGroup.POST("/ats-score/file", analysisHandler.ATSScoreFile)
		}
	}
}
