package main

import (
	"context"
	"log"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/coursekart/coursekart-api/internal/auth"
	"github.com/coursekart/coursekart-api/internal/cart"
	"github.com/coursekart/coursekart-api/internal/checkout"
	"github.com/coursekart/coursekart-api/internal/cms"
	"github.com/coursekart/coursekart-api/internal/compare"
	"github.com/coursekart/coursekart-api/internal/config"
	"github.com/coursekart/coursekart-api/internal/course"
	"github.com/coursekart/coursekart-api/internal/dashboard"
	"github.com/coursekart/coursekart-api/internal/kv"
	"github.com/coursekart/coursekart-api/internal/order"
	"github.com/coursekart/coursekart-api/internal/pubsub"
	"github.com/coursekart/coursekart-api/internal/review"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, cfg.PostgresDSN)
	if err != nil {
		log.Fatalf("pgx pool: %v", err)
	}
	defer pool.Close()

	var sessions kv.Store
	if cfg.RedisAddr != "" {
		rs := kv.NewRedisStore(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		if err := rs.Ping(ctx); err != nil {
			log.Fatalf("redis: %v", err)
		}
		sessions = rs
	} else {
		log.Printf("[main] REDIS_ADDR empty, using in-memory session store")
		sessions = kv.NewMemStore()
	}

	bus := pubsub.NewBus()
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.AccessTTL, cfg.RefreshTTL, sessions)
	guest := cart.NewGuestStore(sessions, bus, "guestcart", cfg.SessionTTL)
	carts := cart.NewPGRepo(pool)

	d := &deps{
		cfg:     cfg,
		users:   auth.NewPGRepo(pool),
		tokens:  tokens,
		otp:     auth.NewOTPService(sessions, cfg.OTPTTL),
		courses: course.NewPGRepo(pool),
		carts:   carts,
		guest:   guest,
		merge:   cart.NewMergeService(carts, guest),
		drafts:  checkout.NewDraftStore(sessions, "checkoutdraft", cfg.SessionTTL),
		pending: checkout.NewPendingStore(sessions, "pendingorder", cfg.SessionTTL),
		promos:  checkout.DefaultRules(),
		reviews: review.NewPGRepo(pool),
		votes:   review.NewVoteStore(sessions, "helpfulvotes", cfg.SessionTTL),
		compare: compare.NewStore(sessions, bus, "comparelist", cfg.SessionTTL),
		cms:     cms.NewPGRepo(pool),
		orders:  order.NewPGRepo(pool),
		gateway: order.NewGateway(cfg.PaymentBaseURL, cfg.PaymentAPIKey),
		stats:   dashboard.NewService(dashboard.NewPGRepo(pool)),
	}

	r := newRouter(d)
	log.Printf("api listening on %s", cfg.HTTPAddr)
	log.Fatal(r.Run(cfg.HTTPAddr))
}
