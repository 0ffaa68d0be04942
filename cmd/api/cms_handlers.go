package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursekart/coursekart-api/internal/cms"
)

func getPageHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetPage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func upsertPageHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p cms.Page
		if err := c.ShouldBindJSON(&p); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		p.Slug = c.Param("slug")
		if p.Title == "" {
			badRequest(c, []string{"title is required"})
			return
		}
		if err := repo.UpsertPage(c.Request.Context(), &p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePageHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := repo.DeletePage(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "page not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listPostsHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		posts, err := repo.ListPosts(c.Request.Context(), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if posts == nil {
			posts = []cms.Post{}
		}
		c.JSON(http.StatusOK, gin.H{"items": posts})
	}
}

func getPostHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		p, err := repo.GetPost(c.Request.Context(), c.Param("slug"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func upsertPostHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var p cms.Post
		if err := c.ShouldBindJSON(&p); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		var errs []string
		if p.Title == "" {
			errs = append(errs, "title is required")
		}
		if p.Slug == "" {
			errs = append(errs, "slug is required")
		}
		if len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		if p.PublishedAt.IsZero() {
			p.PublishedAt = time.Now()
		}
		if err := repo.UpsertPost(c.Request.Context(), &p); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePostHandler(repo cms.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		deleted, err := repo.DeletePost(c.Request.Context(), c.Param("id"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "post not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
