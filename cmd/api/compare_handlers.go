package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/compare"
)

func getCompareHandler(store *compare.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"course_ids": store.List(c.Request.Context(), sid(c))})
	}
}

func toggleCompareHandler(store *compare.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			CourseID int64 `json:"course_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.CourseID <= 0 {
			badRequest(c, []string{"course_id must be positive"})
			return
		}
		ids, err := store.Toggle(c.Request.Context(), sid(c), req.CourseID)
		if err != nil {
			if err == compare.ErrFull {
				c.JSON(http.StatusConflict, gin.H{"error": "compare list is full"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"course_ids": ids})
	}
}

func clearCompareHandler(store *compare.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context(), sid(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
