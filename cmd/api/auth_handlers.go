package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursekart/coursekart-api/internal/auth"
	"github.com/coursekart/coursekart-api/internal/cart"
)

// issueAndMerge finishes any successful sign-in: token pair plus the guest
// cart folded into the user's server cart.
func issueAndMerge(c *gin.Context, tokens *auth.TokenIssuer, merge *cart.MergeService, u *auth.User) (gin.H, error) {
	pair, err := tokens.Issue(c.Request.Context(), u.ID, u.Role)
	if err != nil {
		return nil, err
	}
	resp, err := merge.Merge(c.Request.Context(), u.ID, sid(c))
	if err != nil {
		return nil, err
	}
	return gin.H{"user": u, "tokens": pair, "cart": resp}, nil
}

func registerHandler(users auth.Repository, tokens *auth.TokenIssuer, merge *cart.MergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if errs := req.Validate(); len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		u := &auth.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         auth.RoleStudent,
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if err == auth.ErrAlreadyExist {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		body, err := issueAndMerge(c, tokens, merge, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusCreated, body)
	}
}

func loginHandler(users auth.Repository, tokens *auth.TokenIssuer, merge *cart.MergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if errs := req.Validate(); len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		u, err := users.GetByEmail(c.Request.Context(), req.Email)
		if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		body, err := issueAndMerge(c, tokens, merge, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, body)
	}
}

func sendOTPHandler(otp *auth.OTPService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Phone string `json:"phone"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Phone == "" {
			badRequest(c, []string{"phone is required"})
			return
		}
		if err := otp.Send(c.Request.Context(), req.Phone); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"sent": true})
	}
}

func registerNewHandler(otp *auth.OTPService, users auth.Repository, tokens *auth.TokenIssuer, merge *cart.MergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			registerRequest
			Code string `json:"code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		errs := req.Validate()
		if req.Phone == "" {
			errs = append(errs, "phone is required")
		}
		if req.Code == "" {
			errs = append(errs, "code is required")
		}
		if len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		if err := otp.Verify(c.Request.Context(), req.Phone, req.Code); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "otp invalid or expired"})
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		u := &auth.User{
			ID:           uuid.NewString(),
			Email:        req.Email,
			Name:         req.Name,
			Phone:        req.Phone,
			PasswordHash: hash,
			Role:         auth.RoleStudent,
		}
		if err := users.Create(c.Request.Context(), u); err != nil {
			if err == auth.ErrAlreadyExist {
				c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		body, err := issueAndMerge(c, tokens, merge, u)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusCreated, body)
	}
}

func refreshHandler(users auth.Repository, tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			badRequest(c, []string{"refresh_token is required"})
			return
		}
		userID, err := tokens.UserIDFor(c.Request.Context(), req.RefreshToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		u, err := users.GetByID(c.Request.Context(), userID)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		pair, err := tokens.Refresh(c.Request.Context(), req.RefreshToken, u.Role)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"tokens": pair})
	}
}

func logoutHandler(tokens *auth.TokenIssuer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			RefreshToken string `json:"refresh_token"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.RefreshToken == "" {
			badRequest(c, []string{"refresh_token is required"})
			return
		}
		if err := tokens.Revoke(c.Request.Context(), req.RefreshToken); err != nil {
			log.Printf("[auth] revoke failed: %v", err)
		}
		c.Status(http.StatusNoContent)
	}
}

func meHandler(users auth.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.GetByID(c.Request.Context(), uid(c))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": u})
	}
}
