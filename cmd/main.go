package main

import (
	"context"
	"fmt"
	"os"

	"github.com/notemind/notemind-backend/internal/config"
	"github.com/notemind/notemind-backend/internal/db"
	"github.com/notemind/notemind-backend/internal/handlers"
	"github.com/notemind/notemind-backend/internal/logger"
	"github.com/notemind/notemind-backend/internal/middleware"
	"github.com/notemind/notemind-backend/internal/repos"
	"github.com/notemind/notemind-backend/internal/server"
	"github.com/notemind/notemind-backend/internal/services"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Config
	log.Info("Loading configuration from main...")
	cfg := config.Load(log)

	// Postgres
	postgresService, err := db.NewPostgresService(cfg.Postgres, log)
	if err != nil {
		log.Error("Postgres init failed", "error", err)
		os.Exit(1)
	}
	if err = postgresService.AutoMigrateAll(); err != nil {
		log.Error("Postgres auto migration failed", "error", err)
		os.Exit(1)
	}
	thePG := postgresService.DB()

	// Repos
	log.Info("Setting up Repos from main...")
	userRepo := repos.NewUserRepo(thePG, log)
	userTokenRepo := repos.NewUserTokenRepo(thePG, log)
	subjectRepo := repos.NewSubjectRepo(thePG, log)
	noteRepo := repos.NewNoteRepo(thePG, log)
	summaryRepo := repos.NewSummaryRepo(thePG, log)
	explanationRepo := repos.NewExplanationRepo(thePG, log)
	quizRepo := repos.NewQuizRepo(thePG, log)
	flashcardRepo := repos.NewFlashcardRepo(thePG, log)
	quizAttemptRepo := repos.NewQuizAttemptRepo(thePG, log)

	// Services
	log.Info("Setting up Services from main...")
	bucketService, err := services.NewBucketService(context.Background(), cfg.Bucket, log)
	if err != nil {
		log.Error("Could not init BucketService", "error", err)
		os.Exit(1)
	}
	defer bucketService.Close()
	groqClient, err := services.NewGroqClient(cfg.Groq, log)
	if err != nil {
		log.Error("Could not init GroqClient", "error", err)
		os.Exit(1)
	}
	mailService, err := services.NewMailService(cfg.Mail, log)
	if err != nil {
		log.Error("Could not init MailService", "error", err)
		os.Exit(1)
	}
	authService := services.NewAuthService(thePG, log, userRepo, userTokenRepo, mailService, cfg.Auth, cfg.FrontendURL)
	userService := services.NewUserService(thePG, log, userRepo)
	subjectService := services.NewSubjectService(thePG, log, subjectRepo, noteRepo)
	noteService := services.NewNoteService(thePG, log, noteRepo, subjectRepo)
	aiService := services.NewAIService(thePG, log, groqClient, noteRepo, subjectRepo, summaryRepo, explanationRepo, quizRepo, flashcardRepo)
	contentService := services.NewContentService(thePG, log, noteRepo, summaryRepo, explanationRepo, quizRepo, flashcardRepo)
	pdfService := services.NewPDFService(cfg.PDF, log, noteRepo, bucketService)
	dashboardService := services.NewDashboardService(thePG, log, noteRepo, subjectRepo, summaryRepo, quizRepo, flashcardRepo)
	quizAttemptService := services.NewQuizAttemptService(thePG, log, quizRepo, quizAttemptRepo)

	// Handlers
	log.Info("Setting up Handlers from main...")
	healthcheckHandler := handlers.NewHealthcheckHandler()
	authHandler := handlers.NewAuthHandler(log, authService, userService)
	userHandler := handlers.NewUserHandler(log, userService)
	subjectHandler := handlers.NewSubjectHandler(log, subjectService)
	noteHandler := handlers.NewNoteHandler(log, noteService, pdfService)
	aiHandler := handlers.NewAIHandler(log, aiService)
	contentHandler := handlers.NewContentHandler(log, contentService)
	uploadHandler := handlers.NewUploadHandler(log, bucketService, userService)
	dashboardHandler := handlers.NewDashboardHandler(log, dashboardService)
	quizAttemptHandler := handlers.NewQuizAttemptHandler(log, quizAttemptService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	router := server.NewRouter(server.RouterConfig{
		AllowedOrigins:     cfg.AllowedOrigins,
		AuthMiddleware:     authMiddleware,
		HealthcheckHandler: healthcheckHandler,
		AuthHandler:        authHandler,
		UserHandler:        userHandler,
		SubjectHandler:     subjectHandler,
		NoteHandler:        noteHandler,
		AIHandler:          aiHandler,
		ContentHandler:     contentHandler,
		UploadHandler:      uploadHandler,
		DashboardHandler:   dashboardHandler,
		QuizAttemptHandler: quizAttemptHandler,
	})

	log.Info("Starting server...", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Server exited", "error", err)
	}
}
