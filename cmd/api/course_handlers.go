package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/course"
)

func listCoursesHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		q := course.Query{
			Q:        c.Query("q"),
			Category: c.Query("category"),
			Limit:    limit,
			Offset:   offset,
		}
		items, err := repo.List(c.Request.Context(), q)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if items == nil {
			items = []course.Course{}
		}
		c.JSON(http.StatusOK, course.ListResponse{Q: q.Q, Limit: q.Limit, Offset: q.Offset, Items: items})
	}
}

// getCourseHandler accepts a numeric id or a slug in the same position.
func getCourseHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := c.Param("id")
		var (
			crs *course.Course
			err error
		)
		if id, perr := strconv.ParseInt(param, 10, 64); perr == nil {
			crs, err = repo.GetByID(c.Request.Context(), id)
		} else {
			crs, err = repo.GetBySlug(c.Request.Context(), param)
		}
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusOK, crs)
	}
}

func createCourseHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req courseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		errs := req.Validate()
		if req.Price == "" {
			errs = append(errs, "price is required")
		}
		if len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		crs := &course.Course{
			Title:       req.Title,
			Slug:        req.Slug,
			Description: req.Description,
			Category:    req.Category,
			Price:       req.Price,
			Image:       req.Image,
			Published:   req.Published,
		}
		if err := repo.Create(c.Request.Context(), crs); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusCreated, crs)
	}
}

func updateCourseHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt64(c, "id")
		if !ok {
			return
		}
		var req courseRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if errs := req.Validate(); len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		crs := &course.Course{
			ID:          id,
			Title:       req.Title,
			Description: req.Description,
			Category:    req.Category,
			Price:       req.Price,
			Image:       req.Image,
			Published:   req.Published,
		}
		if err := repo.Update(c.Request.Context(), crs, req.Price != ""); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		out, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

func deleteCourseHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt64(c, "id")
		if !ok {
			return
		}
		deleted, err := repo.Delete(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "course not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func listLessonsHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt64(c, "id")
		if !ok {
			return
		}
		lessons, err := repo.Lessons(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if lessons == nil {
			lessons = []course.Lesson{}
		}
		c.JSON(http.StatusOK, gin.H{"items": lessons})
	}
}

func upsertLessonHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, ok := pathInt64(c, "id")
		if !ok {
			return
		}
		var l course.Lesson
		if err := c.ShouldBindJSON(&l); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if l.Title == "" {
			badRequest(c, []string{"title is required"})
			return
		}
		l.CourseID = courseID
		if err := repo.UpsertLesson(c.Request.Context(), &l); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, l)
	}
}

func deleteLessonHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt64(c, "lessonID")
		if !ok {
			return
		}
		deleted, err := repo.DeleteLesson(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if !deleted {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func saveProgressHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		lessonID, ok := pathInt64(c, "lessonID")
		if !ok {
			return
		}
		var req struct {
			Completed bool `json:"completed"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if err := repo.SaveProgress(c.Request.Context(), uid(c), lessonID, req.Completed); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"lesson_id": lessonID, "completed": req.Completed})
	}
}

func courseProgressHandler(repo course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathInt64(c, "id")
		if !ok {
			return
		}
		pct, err := repo.CourseProgress(c.Request.Context(), uid(c), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"course_id": id, "progress_pct": pct})
	}
}
