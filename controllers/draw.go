package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RunDraw picks a winner among the sold tickets. Blocks for the spin
// window; a concurrent second call gets 409.
func RunDraw(c *gin.Context) {
	result, err := Engine.Draw()
	if err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ResetPool discards every assignment, keeping pool size and history.
func ResetPool(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := Engine.ResetPool(req.Token); err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "reset"})
}
