package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/Quolls/config"
	"github.com/lshigami/Quolls/database"
	adminctrl "github.com/lshigami/Quolls/internal/controller/admin"
	userctrl "github.com/lshigami/Quolls/internal/controller/user"
	"github.com/lshigami/Quolls/internal/logger"
	"github.com/lshigami/Quolls/internal/model"
	"github.com/lshigami/Quolls/internal/repository"
	"github.com/lshigami/Quolls/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Assessment Session Engine API
// @version 1.0
// @description API for running assessment sessions: attempts, answers, pausing, timing, scoring and certificates.
// @termsOfService http://swagger.io/terms/
// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
func main() {
	logger.Init()

	app := fx.New(
		// Core Application Components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories Layer
		fx.Provide(
			repository.NewAssessmentRepository,
			repository.NewSessionRepository,
			repository.NewCertificateRepository,
		),

		// Services Layer
		fx.Provide(
			service.NewAnswerEvaluator,
			service.NewTimeTracker,
			service.NewScoreAggregator,
			service.NewAttemptGate,
			service.NewEligibilityGate,
			service.NewAssessmentService,
			service.NewCertificateService,
			// SessionService depends on the issuing half of CertificateService only.
			func(cs service.CertificateService) service.CertificateIssuer {
				return cs
			},
			service.NewSessionService,
			service.NewGeneratorService,
		),

		// API Controllers Layer
		fx.Provide(
			adminctrl.NewAdminAssessmentController,
			userctrl.NewAssessmentController,
			userctrl.NewSessionController,
			userctrl.NewCertificateController,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.DebugMode)

	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"}, // Be more specific in production
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI: http://localhost:PORT/swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	adminAssessmentCtrl *adminctrl.AdminAssessmentController,
	assessmentCtrl *userctrl.AssessmentController,
	sessionCtrl *userctrl.SessionController,
	certificateCtrl *userctrl.CertificateController,
) {
	// Admin Routes (prefixed with /api/v1/admin)
	adminAPIGroup := router.Group("/api/v1/admin")
	{
		assessmentsAdminGroup := adminAPIGroup.Group("/assessments")
		assessmentsAdminGroup.POST("", adminAssessmentCtrl.CreateAssessment)
		assessmentsAdminGroup.POST("/generate", adminAssessmentCtrl.GenerateAssessment)
	}

	// User Routes (prefixed with /api/v1)
	userAPIGroup := router.Group("/api/v1")
	{
		// Assessment catalog
		userAPIGroup.GET("/assessments", assessmentCtrl.GetAllAssessments)
		userAPIGroup.GET("/assessments/:assessment_id", assessmentCtrl.GetAssessmentDetails)

		// Session lifecycle
		userAPIGroup.POST("/assessments/:assessment_id/sessions", sessionCtrl.StartSession)
		userAPIGroup.GET("/assessments/:assessment_id/my-sessions", sessionCtrl.GetUserSessions)
		userAPIGroup.GET("/sessions/:session_id", sessionCtrl.GetSessionStatus)
		userAPIGroup.POST("/sessions/:session_id/answers", sessionCtrl.SubmitAnswer)
		userAPIGroup.POST("/sessions/:session_id/pause", sessionCtrl.PauseSession)
		userAPIGroup.POST("/sessions/:session_id/resume", sessionCtrl.ResumeSession)
		userAPIGroup.POST("/sessions/:session_id/complete", sessionCtrl.CompleteSession)
		userAPIGroup.POST("/sessions/:session_id/abandon", sessionCtrl.AbandonSession)

		// Certificates
		userAPIGroup.GET("/my-certificates", certificateCtrl.GetMyCertificates)
	}

	// HTTP Server Setup and Lifecycle
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Assessment engine server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.Assessment{},
		&model.Question{},
		&model.AssessmentSession{},
		&model.SessionAnswer{},
		&model.SessionResult{},
		&model.Certificate{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
