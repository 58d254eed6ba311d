package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/mentorbase/mentor-scheduler/internal/config"
	dbpkg "github.com/mentorbase/mentor-scheduler/internal/db"
	"github.com/mentorbase/mentor-scheduler/internal/logger"
	"github.com/mentorbase/mentor-scheduler/internal/middleware"
	"github.com/mentorbase/mentor-scheduler/internal/routes"
)

func main() {

	_ = godotenv.Load()

	logger.Init()

	cfg := config.Load()
	db := dbpkg.NewDB(cfg)

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cfg)

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}
