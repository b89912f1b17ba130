package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"learnhub/internal/api/v1/handler"
	"learnhub/internal/cache"
	"learnhub/internal/config"
	"learnhub/internal/mailer"
	"learnhub/internal/middleware"
	"learnhub/internal/pubsub"
	"learnhub/internal/repository"
	"learnhub/internal/service"
	"learnhub/internal/storage"

	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New builds every dependency and returns the HTTP handler together with a
// cleanup func that releases connections.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Msg("Router initializing")

	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (http.Handler, func(), error) {
		cleanup()
		return nil, func() {}, err
	}

	// 1. Database
	db, sqlDB, err := repository.Open(cfg, logger)
	if err != nil {
		return fail(fmt.Errorf("open database: %w", err))
	}
	closers = append(closers, func() { _ = sqlDB.Close() })
	if err := repository.Migrate(db); err != nil {
		return fail(fmt.Errorf("migrate database: %w", err))
	}
	logger.Info().Msg("Database connection successful")

	// 2. Blob storage
	blobs, err := storage.New(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("init blob storage: %w", err))
	}

	// 3. Pub/Sub publisher, optional
	var publisher pubsub.Publisher
	if cfg.GCPProjectID != "" && cfg.NotificationTopic != "" {
		p, err := pubsub.NewPublisher(ctx, cfg.GCPProjectID)
		if err != nil {
			return fail(fmt.Errorf("create pubsub publisher: %w", err))
		}
		closers = append(closers, func() { _ = p.Close() })
		publisher = p
	} else {
		logger.Info().Msg("Notification publishing disabled")
	}

	// 4. Redis stats cache, optional
	var statsCache service.StatsCache
	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return fail(fmt.Errorf("connect redis: %w", err))
	}
	if redisClient != nil {
		closers = append(closers, func() { _ = redisClient.Close() })
		statsCache = cache.NewJSONCache(redisClient, "learnhub:stats:", cfg.StatsCacheTTL)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	mail := mailer.New(cfg, logger)

	// 5. Repositories, services and handlers
	tx := repository.NewTransactor(db)
	userRepo := repository.NewUserRepo(db)
	courseRepo := repository.NewCourseRepo(db)
	lessonRepo := repository.NewLessonRepo(db)
	quizRepo := repository.NewQuizRepo(db)
	enrollmentRepo := repository.NewEnrollmentRepo(db)
	progressRepo := repository.NewProgressRepo(db)
	assignmentRepo := repository.NewAssignmentRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)

	authSvc := service.NewAuthService(userRepo, mail, service.AuthOptions{
		JWTSecret:        cfg.JWTSecret,
		TokenTTL:         cfg.JWTTTL,
		AllowAdminSignup: cfg.AllowAdminSignup,
	}, logger)
	notificationSvc := service.NewNotificationService(notificationRepo, publisher, cfg.NotificationTopic, logger)
	courseSvc := service.NewCourseService(service.CourseDeps{
		Tx:          tx,
		Courses:     courseRepo,
		Lessons:     lessonRepo,
		Quizzes:     quizRepo,
		Enrollments: enrollmentRepo,
		Progress:    progressRepo,
		Assignments: assignmentRepo,
	}, blobs, cfg.MaxUploadBytes, logger)
	lessonSvc := service.NewLessonService(tx, courseRepo, lessonRepo, quizRepo, progressRepo, blobs, cfg.MaxUploadBytes, logger)
	progressSvc := service.NewProgressService(tx, lessonRepo, enrollmentRepo, progressRepo, logger)
	quizSvc := service.NewQuizService(courseRepo, lessonRepo, quizRepo, enrollmentRepo, progressSvc, logger)
	enrollmentSvc := service.NewEnrollmentService(courseRepo, lessonRepo, enrollmentRepo, progressRepo, logger)
	assignmentSvc := service.NewAssignmentService(lessonRepo, enrollmentRepo, assignmentRepo, blobs, notificationSvc, cfg.MaxUploadBytes, logger)
	adminSvc := service.NewAdminService(courseSvc, courseRepo, userRepo, enrollmentRepo, progressRepo, notificationSvc, statsCache, logger)

	authHandler := handler.NewAuthHandler(authSvc, validate, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, cfg.MaxUploadBytes, logger)
	lessonHandler := handler.NewLessonHandler(lessonSvc, courseSvc, progressSvc, validate, cfg.MaxUploadBytes, logger)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc, progressSvc, validate, logger)
	quizHandler := handler.NewQuizHandler(quizSvc, validate, logger)
	assignmentHandler := handler.NewAssignmentHandler(assignmentSvc, validate, cfg.MaxUploadBytes, logger)
	notificationHandler := handler.NewNotificationHandler(notificationSvc, logger)
	adminHandler := handler.NewAdminHandler(adminSvc, logger)

	// 6. Middleware
	authMiddleware := middleware.AuthMiddleware(cfg.JWTSecret, userRepo, logger)

	// 7. Routes, mounted under /v1
	apiV1Mux := http.NewServeMux()
	authHandler.RegisterRoutes(apiV1Mux)
	courseHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	lessonHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	enrollmentHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	quizHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	assignmentHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	notificationHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	adminHandler.RegisterRoutes(apiV1Mux, authMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Redirect /api/* to /v1/* for older clients
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusPermanentRedirect)
	})

	// 8. Apply CORS middleware
	c := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: !allowsAnyOrigin(cfg.CORSAllowedOrigins),
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), cleanup, nil
}

func allowsAnyOrigin(origins []string) bool {
	for _, o := range origins {
		if o == "*" {
			return true
		}
	}
	return false
}
