package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListHistory returns all completed draws, newest first.
func ListHistory(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"historico": Engine.History()})
}

// ClearHistory empties the draw ledger.
func ClearHistory(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := Engine.ClearHistory(req.Token); err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cleared"})
}
