package main

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/sortegrande/raffle-backend/config"
	"github.com/sortegrande/raffle-backend/controllers"
	"github.com/sortegrande/raffle-backend/routes"
	"github.com/sortegrande/raffle-backend/services"
	"github.com/sortegrande/raffle-backend/utils/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

// initEnv loads the .env file when present.
func initEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, reading environment variables")
	}
}

// drawSpinDelay is the presentation pacing of the draw animation.
func drawSpinDelay() time.Duration {
	seconds := 3
	if v := os.Getenv("DRAW_SPIN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			seconds = n
		}
	}
	return time.Duration(seconds) * time.Second
}

// setupRouter initializes Gin routes and middleware.
func setupRouter(hub *services.Hub) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000"}, // frontend origin
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.SetupRoutes(r)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now()})
	})

	// Realtime board state and draw events
	r.GET("/ws", hub.HandleWebSocket)

	return r
}

func main() {
	initEnv()
	defer logger.Sync()

	db := config.SetupDatabase()

	store := services.NewStore(db)
	engine := services.NewRaffleEngine(store, services.NewConfirmationBroker(), drawSpinDelay())
	engine.Restore()
	controllers.Engine = engine

	hub := services.NewHub(engine)

	router := setupRouter(hub)

	port := os.Getenv("PORT")
	if port == "" {
		port = "4000"
	}

	logger.Infof("Raffle backend starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("[FATAL] Failed to start server: %v", err)
	}
}
