package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/notemind/notemind-backend/internal/handlers"
	"github.com/notemind/notemind-backend/internal/middleware"
)

type RouterConfig struct {
	AllowedOrigins []string

	AuthMiddleware *middleware.AuthMiddleware

	HealthcheckHandler *handlers.HealthcheckHandler
	AuthHandler        *handlers.AuthHandler
	UserHandler        *handlers.UserHandler
	SubjectHandler     *handlers.SubjectHandler
	NoteHandler        *handlers.NoteHandler
	AIHandler          *handlers.AIHandler
	ContentHandler     *handlers.ContentHandler
	UploadHandler      *handlers.UploadHandler
	DashboardHandler   *handlers.DashboardHandler
	QuizAttemptHandler *handlers.QuizAttemptHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", cfg.HealthcheckHandler.Healthcheck)

	api := router.Group("/api/v1")
	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
		auth.POST("/forgot-password", cfg.AuthHandler.ForgotPassword)
		auth.POST("/reset-password/:token", cfg.AuthHandler.ResetPassword)
	}

	// ===============
	// || Protected ||
	// ===============
	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/auth/logout", cfg.AuthHandler.Logout)
	protected.GET("/auth/me", cfg.AuthHandler.Me)

	// User
	protected.GET("/user/profile", cfg.UserHandler.GetProfile)
	protected.PUT("/user/profile", cfg.UserHandler.UpdateProfile)

	// Subjects
	protected.POST("/subject/create", cfg.SubjectHandler.Create)
	protected.GET("/subject/all", cfg.SubjectHandler.List)
	protected.GET("/subject/:id", cfg.SubjectHandler.Get)
	protected.PUT("/subject/update/:id", cfg.SubjectHandler.Update)
	protected.DELETE("/subject/delete/:id", cfg.SubjectHandler.Delete)

	// Notes
	protected.POST("/note/create", cfg.NoteHandler.Create)
	protected.GET("/note/all", cfg.NoteHandler.List)
	protected.GET("/note/trash", cfg.NoteHandler.ListTrashed)
	protected.GET("/note/search", cfg.NoteHandler.Search)
	protected.GET("/note/subject/:id", cfg.NoteHandler.BySubject)
	protected.GET("/note/:id", cfg.NoteHandler.Get)
	protected.PUT("/note/update/:id", cfg.NoteHandler.Update)
	protected.DELETE("/note/delete/:id", cfg.NoteHandler.Trash)
	protected.POST("/note/restore/:id", cfg.NoteHandler.Restore)
	protected.DELETE("/note/purge/:id", cfg.NoteHandler.Purge)
	protected.GET("/note/pdf/:id", cfg.NoteHandler.GeneratePDF)

	// Uploads
	protected.POST("/upload/image", cfg.UploadHandler.UploadImage)
	protected.POST("/upload/pdf", cfg.UploadHandler.UploadPDF)
	protected.POST("/upload/profile", cfg.UploadHandler.UploadProfileImage)

	// AI pipeline
	protected.GET("/ai/summary/:id", cfg.AIHandler.Summarize)
	protected.GET("/ai/explanation/:id", cfg.AIHandler.Explain)
	protected.GET("/ai/quiz/:id", cfg.AIHandler.GenerateQuiz)
	protected.GET("/ai/flashcards/:id", cfg.AIHandler.GenerateFlashcards)
	protected.POST("/ai/auto-note", cfg.AIHandler.AutoGenerateNote)

	// Generated content
	protected.GET("/content/:noteId", cfg.ContentHandler.GetBundle)

	// Quiz attempts
	protected.POST("/quiz/attempt/:quizId", cfg.QuizAttemptHandler.Submit)
	protected.GET("/quiz/attempts/:quizId", cfg.QuizAttemptHandler.List)

	// Dashboard
	protected.GET("/dashboard/overview", cfg.DashboardHandler.Overview)

	return router
}
