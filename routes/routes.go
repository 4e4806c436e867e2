package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sortegrande/raffle-backend/controllers"
)

func SetupRoutes(r *gin.Engine) {
	api := r.Group("/api")

	// ----------------------
	// Ticket routes
	// ----------------------
	api.GET("/tickets", controllers.GetBoard)                   // Full board state
	api.POST("/tickets/:number/buyer", controllers.AssignBuyer) // Assign a buyer

	// ----------------------
	// Draw routes
	// ----------------------
	api.POST("/draw", controllers.RunDraw)    // Run a draw
	api.POST("/reset", controllers.ResetPool) // Reset the pool

	// ----------------------
	// Config routes
	// ----------------------
	api.GET("/config", controllers.GetConfig)    // Current configuration
	api.PUT("/config", controllers.UpdateConfig) // Change pool size (resets pool)

	// ----------------------
	// History routes
	// ----------------------
	api.GET("/history", controllers.ListHistory)     // Draws, newest first
	api.DELETE("/history", controllers.ClearHistory) // Clear the ledger

	// ----------------------
	// Backup routes
	// ----------------------
	api.GET("/backup/export", controllers.ExportBackup)  // Download backup
	api.POST("/backup/import", controllers.ImportBackup) // Restore backup
	api.DELETE("/state", controllers.WipeState)          // Wipe everything
}
