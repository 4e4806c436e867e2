package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sortegrande/raffle-backend/services"
)

// Engine is wired in main before the router starts serving.
var Engine *services.RaffleEngine

// renderEngineError maps engine errors to HTTP responses. All engine
// errors are terminal at the operation boundary: state is unchanged and
// the operator gets a message.
func renderEngineError(c *gin.Context, err error) {
	var confirm *services.ConfirmationError
	switch {
	case errors.As(err, &confirm):
		c.JSON(http.StatusConflict, gin.H{
			"confirmation_required": true,
			"reason":                confirm.Reason,
			"token":                 confirm.Token,
		})
	case errors.Is(err, services.ErrDrawInProgress):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNoSoldTickets):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
