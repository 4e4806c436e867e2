package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetBoard returns the full ticket grid with sold counters.
func GetBoard(c *gin.Context) {
	c.JSON(http.StatusOK, Engine.BoardState())
}

// AssignBuyer commits a buyer to a ticket.
func AssignBuyer(c *gin.Context) {
	number, err := strconv.Atoi(c.Param("number"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket number"})
		return
	}

	var req struct {
		Name    string `json:"name" binding:"required"`
		Contact string `json:"contact" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ticket, err := Engine.AssignBuyer(number, req.Name, req.Contact)
	if err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, ticket)
}
