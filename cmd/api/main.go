package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/dentalcloud/clinic-scheduler/internal/config"
	dbpkg "github.com/dentalcloud/clinic-scheduler/internal/db"
	"github.com/dentalcloud/clinic-scheduler/internal/lock"
	"github.com/dentalcloud/clinic-scheduler/internal/middleware"
	"github.com/dentalcloud/clinic-scheduler/internal/routes"
	"github.com/dentalcloud/clinic-scheduler/internal/storage"
)

func main() {

	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	locker := lock.New(rdb)

	objectStorage, err := storage.New(cfg.S3)
	if err != nil {
		log.Printf("object storage disabled: %v", err)
		objectStorage = nil
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.RequestID())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg, locker, objectStorage)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
