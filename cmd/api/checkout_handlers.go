package main

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/coursekart/coursekart-api/internal/cart"
	"github.com/coursekart/coursekart-api/internal/checkout"
	"github.com/coursekart/coursekart-api/internal/order"
)

func getDraftHandler(drafts *checkout.DraftStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, drafts.Load(c.Request.Context(), sid(c)))
	}
}

func saveDraftHandler(drafts *checkout.DraftStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var d checkout.Draft
		if err := c.ShouldBindJSON(&d); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		if err := drafts.Save(c.Request.Context(), sid(c), d); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.JSON(http.StatusOK, d)
	}
}

// quoteHandler is the display-as-you-type pricing endpoint. Items may come in
// the body; when omitted the session draft supplies them.
func quoteHandler(drafts *checkout.DraftStore, promos checkout.Rules) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Items        []cart.Item `json:"items"`
			ShippingType string      `json:"shipping_type"`
			PromoCode    string      `json:"promo_code"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, []string{"invalid json"})
			return
		}
		items := cart.Normalize(req.Items)
		if len(items) == 0 {
			items = drafts.Load(c.Request.Context(), sid(c)).Items
		}
		c.JSON(http.StatusOK, checkout.Quote(items, req.ShippingType, promos.Find(req.PromoCode)))
	}
}

func submitCheckoutHandler(carts cart.Repository, drafts *checkout.DraftStore, pending *checkout.PendingStore,
	promos checkout.Rules, orders order.Repository, gateway *order.Gateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		draft := drafts.Load(ctx, sid(c))

		var errs []string
		if draft.Customer.Name == "" {
			errs = append(errs, "customer name is required")
		}
		if draft.Customer.Phone == "" {
			errs = append(errs, "customer phone is required")
		}
		if len(errs) > 0 {
			badRequest(c, errs)
			return
		}

		items, err := carts.Items(ctx, uid(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		if len(items) == 0 {
			badRequest(c, []string{"cart is empty"})
			return
		}

		sub := checkout.Subtotal(items)
		fee := checkout.ShippingFee(draft.ShippingType, sub)
		disc := checkout.Discount(promos.Find(draft.PromoCode), sub)
		total := checkout.Total(sub, fee, disc)

		o := &order.Order{
			ID:           uuid.NewString(),
			UserID:       uid(c),
			Status:       order.StatusPending,
			CustomerName: draft.Customer.Name,
			Phone:        draft.Customer.Phone,
			Address:      draft.Customer.Address,
			ShippingType: draft.ShippingType,
			PayMethod:    draft.PayMethod,
			Subtotal:     sub.String(),
			ShippingFee:  fee.String(),
			Discount:     disc.String(),
			Total:        total.String(),
		}
		lines := make([]order.Item, 0, len(items))
		for _, it := range items {
			lines = append(lines, order.Item{
				ID:        uuid.NewString(),
				OrderID:   o.ID,
				ProductID: it.ProductID,
				Title:     it.Name,
				Quantity:  it.Quantity,
				Price:     it.Price,
			})
		}
		if err := orders.Create(ctx, o, lines); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}

		// Track resume points before clearing session state: one pending
		// order per course per session, newest wins.
		for _, it := range items {
			p := checkout.PendingOrder{OrderID: o.ID, CreatedAt: time.Now()}
			if err := pending.Put(ctx, sid(c), it.ProductID, p); err != nil {
				log.Printf("[checkout] pending put failed order=%s course=%d: %v", o.ID, it.ProductID, err)
			}
		}

		payURL := ""
		if draft.PayMethod == "gateway" {
			payURL, err = gateway.CreateSession(ctx, o.ID, o.Total)
			if err != nil {
				// Order exists; payment resumes via the pending entry.
				log.Printf("[checkout] payment session failed order=%s: %v", o.ID, err)
			}
		}

		if err := carts.Clear(ctx, uid(c)); err != nil {
			log.Printf("[checkout] cart clear failed order=%s: %v", o.ID, err)
		}
		if err := drafts.Clear(ctx, sid(c)); err != nil {
			log.Printf("[checkout] draft clear failed order=%s: %v", o.ID, err)
		}

		c.JSON(http.StatusCreated, gin.H{"order": o, "items": lines, "pay_url": payURL})
	}
}

func getPendingHandler(pending *checkout.PendingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, ok := pathInt64(c, "courseID")
		if !ok {
			return
		}
		p, err := pending.Get(c.Request.Context(), sid(c), courseID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending order"})
			return
		}
		c.JSON(http.StatusOK, p)
	}
}

func deletePendingHandler(pending *checkout.PendingStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		courseID, ok := pathInt64(c, "courseID")
		if !ok {
			return
		}
		if err := pending.Del(c.Request.Context(), sid(c), courseID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
