package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetHome returns a basic liveness response.
func GetHome(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "ledger backend is up"})
}
