package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	db "wonderlust/database"
	"wonderlust/gcs"
	"wonderlust/routes"
	"wonderlust/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: error loading .env file:", err)
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET not set in .env")
	}

	gcs.InitGCS()
	defer gcs.Close()

	db.InitDB()
	defer db.DisconnectDB()

	// Expired session records get swept in the background.
	c := cron.New()
	if _, err := c.AddFunc("@hourly", services.PurgeExpiredSessions); err != nil {
		log.Fatal("Failed to schedule session purge:", err)
	}
	c.Start()
	defer c.Stop()

	r := gin.Default()
	routes.SetupRoutes(r)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Println("Starting server on :" + port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
