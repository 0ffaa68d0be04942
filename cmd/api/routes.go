package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/coursekart/coursekart-api/internal/auth"
	"github.com/coursekart/coursekart-api/internal/cart"
	"github.com/coursekart/coursekart-api/internal/checkout"
	"github.com/coursekart/coursekart-api/internal/cms"
	"github.com/coursekart/coursekart-api/internal/compare"
	"github.com/coursekart/coursekart-api/internal/config"
	"github.com/coursekart/coursekart-api/internal/course"
	"github.com/coursekart/coursekart-api/internal/dashboard"
	"github.com/coursekart/coursekart-api/internal/httpx"
	"github.com/coursekart/coursekart-api/internal/order"
	"github.com/coursekart/coursekart-api/internal/review"
)

type deps struct {
	cfg     config.Config
	users   auth.Repository
	tokens  *auth.TokenIssuer
	otp     *auth.OTPService
	courses course.Repository
	carts   cart.Repository
	guest   *cart.GuestStore
	merge   *cart.MergeService
	drafts  *checkout.DraftStore
	pending *checkout.PendingStore
	promos  checkout.Rules
	reviews review.Repository
	votes   *review.VoteStore
	compare *compare.Store
	cms     cms.Repository
	orders  order.Repository
	gateway *order.Gateway
	stats   *dashboard.Service
}

func newRouter(d *deps) *gin.Engine {
	r := gin.New()
	r.Use(httpx.Recovery(), httpx.RequestID(), httpx.Logger(), httpx.CORS(d.cfg.CORSOrigins), httpx.SessionID())

	r.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })

	authed := httpx.Auth(httpx.Bearer(d.tokens.VerifyAccess))
	admin := httpx.Auth(httpx.Bearer(d.tokens.VerifyAccess), httpx.RequireRoles(auth.RoleAdmin))

	ar := r.Group("/auth")
	{
		ar.POST("/register", registerHandler(d.users, d.tokens, d.merge))
		ar.POST("/login", loginHandler(d.users, d.tokens, d.merge))
		ar.POST("/send-otp", sendOTPHandler(d.otp))
		ar.POST("/register-new", registerNewHandler(d.otp, d.users, d.tokens, d.merge))
		ar.POST("/refresh", refreshHandler(d.users, d.tokens))
		ar.POST("/logout", logoutHandler(d.tokens))
		ar.GET("/me", authed, meHandler(d.users))
	}

	api := r.Group("/api")
	{
		api.GET("/guest/cart", getGuestCartHandler(d.guest))
		api.POST("/guest/cart", putGuestCartHandler(d.guest))
		api.DELETE("/guest/cart", clearGuestCartHandler(d.guest))

		api.GET("/cart", authed, getCartHandler(d.carts))
		api.POST("/cart", authed, addCartItemHandler(d.carts, d.courses))
		api.PATCH("/cart/:productID", authed, updateCartItemHandler(d.carts))
		api.DELETE("/cart/:productID", authed, removeCartItemHandler(d.carts))
		api.DELETE("/cart", authed, clearCartHandler(d.carts))
		api.POST("/cart/merge", authed, mergeCartHandler(d.merge))

		api.GET("/checkout/draft", getDraftHandler(d.drafts))
		api.PUT("/checkout/draft", saveDraftHandler(d.drafts))
		api.POST("/checkout/quote", quoteHandler(d.drafts, d.promos))
		api.POST("/checkout", authed, submitCheckoutHandler(d.carts, d.drafts, d.pending, d.promos, d.orders, d.gateway))
		api.GET("/checkout/pending/:courseID", getPendingHandler(d.pending))
		api.DELETE("/checkout/pending/:courseID", deletePendingHandler(d.pending))

		api.GET("/courses", listCoursesHandler(d.courses))
		api.GET("/courses/:id", getCourseHandler(d.courses))
		api.GET("/courses/:id/lessons", listLessonsHandler(d.courses))
		api.GET("/courses/:id/progress", authed, courseProgressHandler(d.courses))
		api.POST("/courses/:id/lessons/:lessonID/progress", authed, saveProgressHandler(d.courses))

		api.GET("/reviews", listReviewsHandler(d.reviews))
		api.POST("/reviews", authed, createReviewHandler(d.reviews, d.users))
		api.POST("/reviews/:id/helpful", helpfulHandler(d.reviews, d.votes))

		api.GET("/compare", getCompareHandler(d.compare))
		api.POST("/compare", toggleCompareHandler(d.compare))
		api.DELETE("/compare", clearCompareHandler(d.compare))

		api.GET("/orders", authed, listMyOrdersHandler(d.orders))
		api.GET("/orders/:id", authed, getOrderHandler(d.orders))
		api.GET("/orders/:id/payment", authed, paymentStatusHandler(d.orders, d.gateway))

		api.GET("/pages/:slug", getPageHandler(d.cms))
		api.GET("/blog", listPostsHandler(d.cms))
		api.GET("/blog/:slug", getPostHandler(d.cms))
	}

	ad := r.Group("/admin", admin)
	{
		ad.GET("/dashboard/stats", dashboardStatsHandler(d.stats))

		ad.POST("/courses", createCourseHandler(d.courses))
		ad.PUT("/courses/:id", updateCourseHandler(d.courses))
		ad.DELETE("/courses/:id", deleteCourseHandler(d.courses))
		ad.PUT("/courses/:id/lessons", upsertLessonHandler(d.courses))
		ad.DELETE("/lessons/:lessonID", deleteLessonHandler(d.courses))

		ad.PATCH("/reviews/:id/reply", replyHandler(d.reviews))
		ad.DELETE("/reviews/:id", deleteReviewHandler(d.reviews))

		ad.PUT("/orders/:id/status", updateOrderStatusHandler(d.orders))

		ad.PUT("/pages/:slug", upsertPageHandler(d.cms))
		ad.DELETE("/pages/:slug", deletePageHandler(d.cms))
		ad.PUT("/blog", upsertPostHandler(d.cms))
		ad.DELETE("/blog/:id", deletePostHandler(d.cms))
	}

	return r
}
