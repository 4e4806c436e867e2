package controllers

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// ExportBackup downloads the combined backup document, filename stamped
// with the current date.
func ExportBackup(c *gin.Context) {
	doc := Engine.ExportAll()
	payload, err := json.Marshal(doc)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to export backup"})
		return
	}

	filename := fmt.Sprintf("sortegrande_backup_%s.json", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, "application/json", payload)
}

// ImportBackup replaces all state from an uploaded backup document. The
// document is validated whole before anything is written.
func ImportBackup(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read backup document"})
		return
	}

	if err := Engine.ImportAll(raw); err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "imported"})
}

// WipeState clears every persisted record and reinitializes the pool.
func WipeState(c *gin.Context) {
	var req struct {
		Token string `json:"token"`
	}
	_ = c.ShouldBindJSON(&req)

	if err := Engine.WipeState(req.Token); err != nil {
		renderEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "wiped"})
}
