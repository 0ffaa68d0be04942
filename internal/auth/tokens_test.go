package auth

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
)

func init() {
	log.SetOutput(io.Discard)
}

func newTestIssuer() *TokenIssuer {
	return NewTokenIssuer("test-secret", time.Minute, time.Hour, kv.NewMemStore())
}

func TestIssueAndVerifyAccess(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	pair, err := issuer.Issue(context.Background(), "u-1", RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("empty pair: %+v", pair)
	}

	claims, err := issuer.VerifyAccess(pair.AccessToken)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.UserID != "u-1" || claims.Role != RoleStudent {
		t.Fatalf("claims: %+v", claims)
	}
}

func TestVerifyAccess_RejectsForeignAndGarbageTokens(t *testing.T) {
	t.Parallel()

	issuer := newTestIssuer()
	other := NewTokenIssuer("other-secret", time.Minute, time.Hour, kv.NewMemStore())

	pair, _ := other.Issue(context.Background(), "u-1", RoleStudent)
	if _, err := issuer.VerifyAccess(pair.AccessToken); err != ErrInvalidToken {
		t.Fatalf("foreign signature: err=%v, want ErrInvalidToken", err)
	}
	if _, err := issuer.VerifyAccess("not.a.jwt"); err != ErrInvalidToken {
		t.Fatalf("garbage: err=%v, want ErrInvalidToken", err)
	}
}

func TestVerifyAccess_ExpiredToken(t *testing.T) {
	t.Parallel()

	issuer := NewTokenIssuer("test-secret", -time.Minute, time.Hour, kv.NewMemStore())
	pair, err := issuer.Issue(context.Background(), "u-1", RoleStudent)
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := issuer.VerifyAccess(pair.AccessToken); err != ErrInvalidToken {
		t.Fatalf("expired: err=%v, want ErrInvalidToken", err)
	}
}

func TestRefresh_RotatesAndIsSingleUse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := newTestIssuer()
	pair, _ := issuer.Issue(ctx, "u-1", RoleStudent)

	next, err := issuer.Refresh(ctx, pair.RefreshToken, RoleStudent)
	if err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatal("refresh token was not rotated")
	}
	claims, err := issuer.VerifyAccess(next.AccessToken)
	if err != nil || claims.UserID != "u-1" {
		t.Fatalf("new access: %+v err=%v", claims, err)
	}

	// the old refresh token is consumed
	if _, err := issuer.Refresh(ctx, pair.RefreshToken, RoleStudent); err != ErrInvalidToken {
		t.Fatalf("reused refresh: err=%v, want ErrInvalidToken", err)
	}
}

func TestRevoke(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := newTestIssuer()
	pair, _ := issuer.Issue(ctx, "u-1", RoleStudent)

	if err := issuer.Revoke(ctx, pair.RefreshToken); err != nil {
		t.Fatalf("revoke: %v", err)
	}
	if _, err := issuer.Refresh(ctx, pair.RefreshToken, RoleStudent); err != ErrInvalidToken {
		t.Fatalf("revoked refresh: err=%v, want ErrInvalidToken", err)
	}
}

func TestUserIDFor_DoesNotConsume(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	issuer := newTestIssuer()
	pair, _ := issuer.Issue(ctx, "u-9", RoleAdmin)

	uid, err := issuer.UserIDFor(ctx, pair.RefreshToken)
	if err != nil || uid != "u-9" {
		t.Fatalf("uid=%q err=%v", uid, err)
	}
	// still usable afterwards
	if _, err := issuer.Refresh(ctx, pair.RefreshToken, RoleAdmin); err != nil {
		t.Fatalf("refresh after lookup: %v", err)
	}
}
