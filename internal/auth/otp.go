package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"math/big"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
)

var ErrOTPMismatch = errors.New("otp invalid or expired")

// OTPService issues one-time registration codes. Delivery (SMS/email) is a
// deployment concern; here the code is only logged.
type OTPService struct {
	store  kv.Store
	prefix string
	ttl    time.Duration
}

func NewOTPService(store kv.Store, ttl time.Duration) *OTPService {
	return &OTPService{store: store, prefix: "otp", ttl: ttl}
}

func (s *OTPService) key(phone string) string { return s.prefix + ":" + phone }

func (s *OTPService) Send(ctx context.Context, phone string) error {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return err
	}
	code := fmt.Sprintf("%06d", n.Int64())
	if err := s.store.Set(ctx, s.key(phone), []byte(code), s.ttl); err != nil {
		return err
	}
	log.Printf("[auth] otp issued for phone=%s", phone)
	return nil
}

// Verify consumes the code on success; a second verify with the same code
// fails.
func (s *OTPService) Verify(ctx context.Context, phone, code string) error {
	raw, err := s.store.Get(ctx, s.key(phone))
	if err != nil || string(raw) != code {
		return ErrOTPMismatch
	}
	return s.store.Del(ctx, s.key(phone))
}
