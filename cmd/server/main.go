package main

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/pizzastack/pizza-service/internal/config"
	"github.com/pizzastack/pizza-service/internal/database"
	"github.com/pizzastack/pizza-service/internal/handler"
	"github.com/pizzastack/pizza-service/internal/middleware"
	"github.com/pizzastack/pizza-service/internal/repository"
	"github.com/pizzastack/pizza-service/internal/router"
	"github.com/pizzastack/pizza-service/internal/service"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.Bootstrap(ctx, db); err != nil {
		cancel()
		log.Fatalf("schema bootstrap: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	menu := repository.NewMenuRepo(db)
	franchises := repository.NewFranchiseRepo(db)
	orders := repository.NewOrderRepo(db)
	factory := service.NewFactoryClient(cfg.FactoryURL, cfg.FactoryAPIKey)

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Print("redis unavailable, rate limiting disabled")
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(cfg, users, tokens),
		Users:     handler.NewUserHandler(cfg, users, tokens),
		Orders:    handler.NewOrderHandler(cfg, menu, orders, factory),
		Franchise: handler.NewFranchiseHandler(cfg, franchises),
		JWTSecret: cfg.JWTSecret,
		Sessions:  tokens,
		RateLimit: middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
	})

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
