package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetConfig returns the current raffle configuration.
func GetConfig(c *gin.Context) {
	c.JSON(http.StatusOK, Engine.Config())
}

// UpdateConfig changes the pool size, resetting the pool. Destructive
// when tickets are sold: the first call returns 409 with a confirmation
// token, the retry carries it back.
func UpdateConfig(c *gin.Context) {
	var req struct {
		QuantidadeNumeros int    `json:"quantidadeNumeros" binding:"required"`
		Token             string `json:"token"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := Engine.ChangeConfiguration(req.QuantidadeNumeros, req.Token); err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, Engine.Config())
}
