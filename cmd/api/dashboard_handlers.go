package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/dashboard"
)

func dashboardStatsHandler(svc *dashboard.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rangeDays, _ := strconv.Atoi(c.DefaultQuery("range", "30"))
		stats, err := svc.Stats(c.Request.Context(), rangeDays)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
