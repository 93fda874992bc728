package main

import (
	"log"
	"os"
	"pixfeed/internal/db"
	"pixfeed/internal/middleware"
	"pixfeed/internal/router"
	"pixfeed/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, finding env vars from system")
	}

	// Initialize Database
	db.Init()

	// Initialize Gin
	r := gin.Default()

	// Middleware
	r.Use(middleware.CORS())

	// Uploaded media
	blobs := services.NewDiskBlobStore()
	r.Static(blobs.URLPrefix, blobs.BaseDir)

	router.RegisterRoutes(r, blobs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("pixfeed server starting on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
