package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"schooladmin/internal/config"
	"schooladmin/internal/database"
	"schooladmin/internal/handler"
	"schooladmin/internal/queue"
	"schooladmin/internal/repository"
	"schooladmin/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Nil when Redis is unreachable; limiter and cache then no-op.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable; rate limiting and response cache disabled")
	}

	e := echo.New()
	// The dashboard front-end is served from anywhere, so CORS stays wide
	// open and OPTIONS preflights are answered by the middleware.
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	auth := handler.NewAuthHandler(cfg, repository.NewAdminRepo(db))
	pass := handler.NewPasswordHandler(repository.NewAccountRepo(db))
	avail := handler.NewAvailabilityHandler(repository.NewSettingRepo(db), repository.NewAvailabilityRepo(db))

	router.RegisterRoutes(e)
	router.RegisterAuth(e, auth, rdb)
	router.RegisterAccount(e, pass)
	router.RegisterAvailability(e, avail, rdb)

	// Audit consumer runs for the lifetime of the process and handles its
	// own reconnects.
	go func() {
		if err := queue.StartAuditConsumer(); err != nil {
			log.Printf("audit consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
