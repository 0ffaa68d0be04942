package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/cart"
	"github.com/coursekart/coursekart-api/internal/course"
)

func getCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		items, err := repo.Items(c.Request.Context(), uid(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, cart.BuildResponse(items))
	}
}

func addCartItemHandler(repo cart.Repository, courses course.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if errs := req.Validate(); len(errs) > 0 {
			badRequest(c, errs)
			return
		}
		crs, err := courses.GetByID(c.Request.Context(), req.ProductID)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "course does not exist"})
			return
		}
		it := cart.Item{
			ProductID: crs.ID,
			Quantity:  req.Quantity,
			Name:      crs.Title,
			Price:     crs.Price,
			Image:     crs.Image,
		}
		if err := repo.AddItem(c.Request.Context(), uid(c), it); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		items, err := repo.Items(c.Request.Context(), uid(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusCreated, cart.BuildResponse(items))
	}
}

func updateCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathInt64(c, "productID")
		if !ok {
			return
		}
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || req.Quantity < 1 {
			badRequest(c, []string{"quantity must be at least 1"})
			return
		}
		if err := repo.SetQuantity(c.Request.Context(), uid(c), productID, req.Quantity); err != nil {
			if err == cart.ErrItemNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		items, err := repo.Items(c.Request.Context(), uid(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, cart.BuildResponse(items))
	}
}

func removeCartItemHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		productID, ok := pathInt64(c, "productID")
		if !ok {
			return
		}
		if err := repo.RemoveItem(c.Request.Context(), uid(c), productID); err != nil {
			if err == cart.ErrItemNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "cart item not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"removed": true})
	}
}

func clearCartHandler(repo cart.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := repo.Clear(c.Request.Context(), uid(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}

func mergeCartHandler(svc *cart.MergeService) gin.HandlerFunc {
	return func(c *gin.Context) {
		resp, err := svc.Merge(c.Request.Context(), uid(c), sid(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func getGuestCartHandler(store *cart.GuestStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		items := store.Read(c.Request.Context(), sid(c))
		c.JSON(http.StatusOK, cart.BuildResponse(items))
	}
}

// putGuestCartHandler replaces the whole guest cart with the posted items;
// the stored (normalized) result comes back so the client can reconcile.
func putGuestCartHandler(store *cart.GuestStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Items []cart.Item `json:"items"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		items, err := store.Write(c.Request.Context(), sid(c), req.Items)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, cart.BuildResponse(items))
	}
}

func clearGuestCartHandler(store *cart.GuestStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Clear(c.Request.Context(), sid(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"cleared": true})
	}
}
