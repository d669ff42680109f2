package main

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/reviewhub/reviewhub-api/internal/auth"
	"github.com/reviewhub/reviewhub-api/internal/config"
	"github.com/reviewhub/reviewhub-api/internal/database"
	"github.com/reviewhub/reviewhub-api/internal/handler"
	"github.com/reviewhub/reviewhub-api/internal/middleware"
	"github.com/reviewhub/reviewhub-api/internal/notifier"
	"github.com/reviewhub/reviewhub-api/internal/queue"
	"github.com/reviewhub/reviewhub-api/internal/repository"
	"github.com/reviewhub/reviewhub-api/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	accounts := repository.NewAccountRepo(db)
	confirmations := repository.NewConfirmationRepo(db)
	categories := repository.NewCategoryRepo(db)
	genres := repository.NewGenreRepo(db)
	titles := repository.NewTitleRepo(db)
	reviews := repository.NewReviewRepo(db)
	comments := repository.NewCommentRepo(db)

	mailer := notifier.NewAMQPNotifier(cfg.AMQPURL)
	registration := auth.NewRegistration(accounts, confirmations, mailer, cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(accounts, confirmations, cfg.JWTSecret, cfg.AccessTTLMin)

	// The consumer drains published confirmation events into the mail log
	// (and an SMTP relay when configured). It reconnects on its own.
	consumer := &queue.ConfirmationConsumer{
		URL:      cfg.AMQPURL,
		SMTPAddr: cfg.SMTPAddr,
		SMTPFrom: cfg.SMTPFrom,
	}
	go consumer.Start()

	e := echo.New()
	e.HideBanner = true

	// Redis is optional: without it the limiter and the response cache
	// are simply not installed.
	rdb := config.NewRedisClient()
	var cache echo.MiddlewareFunc
	if rdb != nil {
		e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))
		cache = middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	}

	authHandler := handler.NewAuthHandler(registration, tokens)
	profileHandler := handler.NewProfileHandler(accounts)
	usersHandler := handler.NewUsersHandler(accounts)
	categoryHandler := handler.NewCategoryHandler(categories)
	genreHandler := handler.NewGenreHandler(genres)
	titleHandler := handler.NewTitleHandler(titles)
	reviewHandler := handler.NewReviewHandler(titles, reviews)
	commentHandler := handler.NewCommentHandler(reviews, comments)

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret, accounts)
	router.RegisterUsers(e, profileHandler, usersHandler, cfg.JWTSecret, accounts)
	router.RegisterCatalogue(e, titleHandler, categoryHandler, genreHandler, cfg.JWTSecret, accounts, cache)
	router.RegisterReviews(e, reviewHandler, commentHandler, cfg.JWTSecret, accounts)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
