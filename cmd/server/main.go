// CarGurus Scraper API
// @title CarGurus Scraper API
// @version 1.0
// @description Scrapes vehicle listings from CarGurus search results through a headless browser
// @host localhost:8080
// @BasePath /

package main

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "cargurusscraper/docs"
	"cargurusscraper/internal/handlers"
	"cargurusscraper/internal/history"
	"cargurusscraper/internal/middleware"
	"cargurusscraper/internal/scraper"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}

	// Initialize Gin router
	r := gin.Default()

	// Configure trusted proxies for reverse-proxy deployments
	r.SetTrustedProxies([]string{
		"127.0.0.1",
		"::1",
		"172.16.0.0/12",  // Docker networks
		"10.0.0.0/8",     // Private networks
		"192.168.0.0/16", // Private networks
	})

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "X-Admin-Key"}
	r.Use(cors.New(config))

	r.Use(middleware.SecurityHeaders())

	// Scrapes hold a browser for up to a minute each; keep the per-IP budget low
	limiter := middleware.NewRateLimiter(rate.Limit(0.2), 3)

	// Scrape audit log (operational metadata only)
	dbPath := os.Getenv("HISTORY_DB")
	if dbPath == "" {
		dbPath = "data/scrape_history.db"
	}
	store, err := history.Open(dbPath)
	if err != nil {
		log.Printf("History store unavailable, continuing without audit log: %v", err)
		store = nil
	} else {
		defer store.Close()
	}

	handler := handlers.New(scraper.New(), store)

	// Swagger documentation
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/", handler.Health)
	r.POST("/scrape", middleware.RateLimitMiddleware(limiter), handler.Scrape)

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(200, gin.H{"status": "ok"})
		})
		api.GET("/history",
			middleware.AdminKeyMiddleware(os.Getenv("ADMIN_KEY_HASH")),
			handler.History)
	}

	// Get port from environment or use default
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
