package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/justsurfingit/senior-job-match/internal/models"
)

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Categories lists the job categories offered by the filters.
func Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": models.Categories})
}
