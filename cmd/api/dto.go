package main

import (
	"net/http"
	"net/mail"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// Request DTOs validate explicitly at the boundary; a non-empty result of
// Validate is returned as a 400 before any business logic runs.

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
}

func (r registerRequest) Validate() []string {
	var errs []string
	if _, err := mail.ParseAddress(r.Email); err != nil {
		errs = append(errs, "email is invalid")
	}
	if len(r.Password) < 8 {
		errs = append(errs, "password must be at least 8 characters")
	}
	if r.Name == "" {
		errs = append(errs, "name is required")
	}
	return errs
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r loginRequest) Validate() []string {
	var errs []string
	if r.Email == "" {
		errs = append(errs, "email is required")
	}
	if r.Password == "" {
		errs = append(errs, "password is required")
	}
	return errs
}

type addCartItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

func (r addCartItemRequest) Validate() []string {
	var errs []string
	if r.ProductID <= 0 {
		errs = append(errs, "product_id must be positive")
	}
	if r.Quantity < 1 {
		errs = append(errs, "quantity must be at least 1")
	}
	return errs
}

type createReviewRequest struct {
	Category   string `json:"category"`
	TargetItem string `json:"target_item"`
	Rating     int    `json:"rating"`
	Text       string `json:"text"`
}

func (r createReviewRequest) Validate() []string {
	var errs []string
	if r.Rating < 1 || r.Rating > 5 {
		errs = append(errs, "rating must be between 1 and 5")
	}
	if r.Text == "" {
		errs = append(errs, "text is required")
	}
	if r.TargetItem == "" {
		errs = append(errs, "target_item is required")
	}
	return errs
}

type courseRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Price       string `json:"price"`
	Image       string `json:"image"`
	Published   bool   `json:"published"`
}

func (r courseRequest) Validate() []string {
	var errs []string
	if r.Title == "" {
		errs = append(errs, "title is required")
	}
	if r.Slug == "" {
		errs = append(errs, "slug is required")
	}
	if r.Price != "" {
		if p, err := decimal.NewFromString(r.Price); err != nil || p.IsNegative() {
			errs = append(errs, "price must be a non-negative number")
		}
	}
	return errs
}

// badRequest writes the structured 400 used by every validation failure.
func badRequest(c *gin.Context, errs []string) {
	c.JSON(http.StatusBadRequest, gin.H{"errors": errs})
}

func sid(c *gin.Context) string { return c.GetString("sid") }
func uid(c *gin.Context) string { return c.GetString("uid") }

func pathInt64(c *gin.Context, name string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || n <= 0 {
		badRequest(c, []string{name + " must be a positive integer"})
		return 0, false
	}
	return n, true
}
