package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/learnhub/learnhub-api/internal/api"
	"github.com/learnhub/learnhub-api/internal/core/ports"
	"github.com/learnhub/learnhub-api/internal/core/service"
	localdb "github.com/learnhub/learnhub-api/internal/infrastructure/db/local"
	mongodb "github.com/learnhub/learnhub-api/internal/infrastructure/db/mongo"
	redisdb "github.com/learnhub/learnhub-api/internal/infrastructure/db/redis"
	"github.com/learnhub/learnhub-api/internal/infrastructure/queue"
	"github.com/learnhub/learnhub-api/internal/pkg/config"
	"github.com/learnhub/learnhub-api/pkg/logger"
)

type repositories struct {
	users       ports.UserRepository
	profiles    ports.ProfileRepository
	courses     ports.CourseRepository
	lessons     ports.LessonRepository
	enrollments ports.EnrollmentRepository
	activity    ports.ActivityRepository
}

func main() {
	cfg := config.Load()
	log := logger.Init(cfg.LogLevel, cfg.Env == "development")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Storage driver ---
	var (
		repos   repositories
		mongoDB *mongo.Database
	)
	switch cfg.StorageDriver {
	case "local":
		store, err := localdb.Open(cfg.LocalDataFile, log)
		if err != nil {
			log.Fatal().Err(err).Msg("open local store")
		}
		repos = repositories{
			users:       store.Users(),
			profiles:    store.Profiles(),
			courses:     store.Courses(),
			lessons:     store.Lessons(),
			enrollments: store.Enrollments(),
			activity:    store.Activity(),
		}
		log.Info().Str("path", cfg.LocalDataFile).Msg("using local storage driver")
	case "mongo":
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to mongodb")
		}
		defer func() {
			if err := client.Disconnect(context.Background()); err != nil {
				log.Error().Err(err).Msg("disconnect mongodb")
			}
		}()
		mongoDB = db

		users := mongodb.NewUserRepository(db)
		courses := mongodb.NewCourseRepository(db)
		lessons := mongodb.NewLessonRepository(db)
		enrollments := mongodb.NewEnrollmentRepository(db)
		for name, ensure := range map[string]func(context.Context) error{
			"users":       users.EnsureIndexes,
			"courses":     courses.EnsureIndexes,
			"lessons":     lessons.EnsureIndexes,
			"enrollments": enrollments.EnsureIndexes,
		} {
			if err := ensure(ctx); err != nil {
				log.Fatal().Err(err).Str("collection", name).Msg("ensure indexes")
			}
		}

		repos = repositories{
			users:       users,
			profiles:    mongodb.NewProfileRepository(db),
			courses:     courses,
			lessons:     lessons,
			enrollments: enrollments,
			activity:    mongodb.NewActivityRepository(db),
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb storage driver")
	default:
		log.Fatal().Str("driver", cfg.StorageDriver).Msg("unknown storage driver")
	}

	// --- Redis (optional: count cache and activity dedup) ---
	var (
		redisClient *redis.Client
		countCache  service.CountCache
		dedup       service.DedupChecker
	)
	if cfg.Redis.Addr != "" {
		client, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("connect to redis")
		}
		defer func() {
			if err := client.Close(); err != nil {
				log.Error().Err(err).Msg("close redis")
			}
		}()
		redisClient = client
		countCache = redisdb.NewCountCache(client)
		dedup = redisdb.NewDedupChecker(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")
	} else {
		log.Info().Msg("redis disabled: running without count cache and dedup")
	}

	// --- Activity pipeline ---
	activityService := service.NewActivityService(repos.activity, dedup, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start(ctx)

	// --- Core services ---
	authService := service.NewAuthService(repos.users, cfg.JWTSecret, 24*time.Hour)
	enrollmentService := service.NewEnrollmentService(repos.enrollments, repos.courses, countCache, dispatcher, log)
	courseService := service.NewCourseService(repos.courses, repos.lessons, repos.enrollments, enrollmentService, log)
	lessonService := service.NewLessonService(repos.courses, repos.lessons, repos.enrollments, dispatcher, log)
	profileService := service.NewProfileService(repos.profiles, repos.users, log)

	e := api.NewRouter(api.Deps{
		AuthService:       authService,
		CourseService:     courseService,
		LessonService:     lessonService,
		EnrollmentService: enrollmentService,
		ProfileService:    profileService,
		JWTSecret:         cfg.JWTSecret,
		Mongo:             mongoDB,
		Redis:             redisClient,
		Logger:            log,
	})

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
