package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/garage-repair-shop/internal/config"
	"github.com/iliyamo/garage-repair-shop/internal/database"
	"github.com/iliyamo/garage-repair-shop/internal/handler"
	"github.com/iliyamo/garage-repair-shop/internal/middleware"
	"github.com/iliyamo/garage-repair-shop/internal/queue"
	"github.com/iliyamo/garage-repair-shop/internal/repository"
	"github.com/iliyamo/garage-repair-shop/internal/router"
	"github.com/iliyamo/garage-repair-shop/internal/view"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments set the environment
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	messages := repository.NewMessageRepo(db)
	parts := repository.NewPartRepo(db)
	repairs := repository.NewRepairRepo(db)
	partsInRepair := repository.NewPartsInRepairRepo(db)

	renderer, err := view.New()
	if err != nil {
		log.Fatalf("parse templates: %v", err)
	}

	e := echo.New()
	e.Renderer = renderer
	e.Use(middleware.Session(cfg.JWTSecret))

	rdb := config.NewRedisClient() // nil when Redis is unreachable; limiter degrades
	rl := middleware.RateLimit(config.LoadRateLimitConfig(), rdb)

	router.RegisterPublic(e, handler.NewAuthHandler(cfg, users), handler.NewContactHandler(messages), rl)
	router.RegisterCustomer(e, handler.NewCustomerHandler(repairs, partsInRepair), users)
	router.RegisterMechanic(e,
		handler.NewMechanicHandler(repairs, parts, partsInRepair, users),
		handler.NewStorageHandler(parts),
		users)
	router.RegisterAdmin(e, handler.NewAdminHandler(users, messages), users)

	// Background consumer writes confirmed repairs to logs/repairs.log.
	go func() {
		if err := queue.StartRepairConsumer(); err != nil {
			log.Printf("repair consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
