package main

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/order"
)

func listMyOrdersHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.Query("limit"))
		offset, _ := strconv.Atoi(c.Query("offset"))
		orders, err := repo.ListByUser(c.Request.Context(), uid(c), limit, offset)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if orders == nil {
			orders = []order.Order{}
		}
		c.JSON(http.StatusOK, gin.H{"items": orders})
	}
}

func getOrderHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		o, items, err := repo.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil || o.UserID != uid(c) {
			// An order belonging to someone else looks identical to a
			// missing one.
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"order": o, "items": items})
	}
}

// paymentStatusHandler polls the gateway; a session reported paid promotes a
// pending order. This is the resume path for an interrupted payment.
func paymentStatusHandler(repo order.Repository, gateway *order.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		o, _, err := repo.GetByID(c.Request.Context(), id)
		if err != nil || o.UserID != uid(c) {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		status, err := gateway.Status(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "payment status unavailable"})
			return
		}
		if status == "paid" && o.Status == order.StatusPending {
			if err := repo.UpdateStatus(c.Request.Context(), id, order.StatusPaid); err == nil {
				o.Status = order.StatusPaid
			}
		}
		c.JSON(http.StatusOK, gin.H{"order_status": o.Status, "payment_status": status})
	}
}

func updateOrderStatusHandler(repo order.Repository) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status"`
		}
		if err := c.ShouldBindJSON(&req); err != nil || !order.ValidStatus(req.Status) {
			badRequest(c, []string{"status must be one of pending, paid, completed, canceled"})
			return
		}
		id := c.Param("id")
		o, _, err := repo.GetByID(c.Request.Context(), id)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			return
		}
		if !order.CanTransition(o.Status, req.Status) {
			c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
			return
		}
		if err := repo.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
			if err == order.ErrNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
	}
}
