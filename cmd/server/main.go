package main // Entry point package

import (
	"context"
	"log" // Logging library
	"time"

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/campushub/degree-course-api/internal/auth"
	"github.com/campushub/degree-course-api/internal/config" // Internal config loader
	"github.com/campushub/degree-course-api/internal/database"
	"github.com/campushub/degree-course-api/internal/handler"
	"github.com/campushub/degree-course-api/internal/queue"
	"github.com/campushub/degree-course-api/internal/repository"
	"github.com/campushub/degree-course-api/internal/router" // Internal router setup
	"github.com/campushub/degree-course-api/internal/service"
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win
	cfg := config.Load()

	// The database may come up after the server does; keep trying.
	db := connectWithRetry(cfg)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureIndexes(ctx, db); err != nil {
		cancel()
		log.Fatalf("creating indexes failed: %v", err)
	}

	users := repository.NewUserRepo(db)
	courses := repository.NewDegreeCourseRepo(db)
	applications := repository.NewApplicationRepo(db)

	if err := database.SeedAdmin(ctx, users, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("seeding admin failed: %v", err)
	}
	cancel()

	evaluator := auth.NewEvaluator(cfg.JWTSecret, cfg.TokenTTLSec, cfg.RenewalWindowSec)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, evaluator, config.LoadCacheConfig(), config.NewRedisClient(), router.Handlers{
		Authenticate: handler.NewAuthenticateHandler(evaluator, users),
		Users:        handler.NewUserHandler(cfg, users),
		Courses:      handler.NewDegreeCourseHandler(courses, applications),
		Applications: handler.NewApplicationHandler(applications, courses, service.PublishApplicationReceived),
	})

	go func() {
		if err := queue.StartApplicationConsumer(); err != nil {
			log.Printf("application consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err)
	}
}

// connectWithRetry pings Mongo once a second until it answers.  The
// original deployment starts API and database together and the API must
// survive losing that race.
func connectWithRetry(cfg config.Config) *mongo.Database {
	for {
		db, err := database.Open(cfg.MongoURI, cfg.MongoDB)
		if err == nil {
			return db
		}
		log.Printf("mongodb not reachable yet: %v; retrying in 1s", err)
		time.Sleep(time.Second)
	}
}
