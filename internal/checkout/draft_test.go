package checkout

import (
	"context"
	"testing"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
)

func TestDraftStore_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ds := NewDraftStore(kv.NewMemStore(), "checkoutdraft", time.Hour)

	d := Draft{
		Customer:     Customer{Name: "Linh", Phone: "0901234567", Address: "12 Nguyen Trai", City: "HCMC"},
		ShippingType: ShippingExpress,
		PayMethod:    "gateway",
		PromoCode:    "WELCOME10",
	}
	if err := ds.Save(ctx, "sid-1", d); err != nil {
		t.Fatalf("save: %v", err)
	}
	got := ds.Load(ctx, "sid-1")
	if got.Customer.Name != "Linh" || got.ShippingType != ShippingExpress || got.PromoCode != "WELCOME10" {
		t.Fatalf("loaded draft: %+v", got)
	}
}

func TestDraftStore_MissingAndCorruptLoadAsDefault(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemStore()
	ds := NewDraftStore(store, "checkoutdraft", time.Hour)

	if got := ds.Load(ctx, "missing"); got.Customer.Name != "" || got.ShippingType != "" {
		t.Fatalf("missing draft not default: %+v", got)
	}

	_ = store.Set(ctx, "checkoutdraft:bad", []byte(`{{{`), 0)
	if got := ds.Load(ctx, "bad"); got.Customer.Name != "" {
		t.Fatalf("corrupt draft not default: %+v", got)
	}
}

func TestPendingStore_OnePerCourse(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ps := NewPendingStore(kv.NewMemStore(), "pendingorder", time.Hour)

	first := PendingOrder{OrderID: "ord-1", CreatedAt: time.Now()}
	second := PendingOrder{OrderID: "ord-2", CreatedAt: time.Now()}
	if err := ps.Put(ctx, "sid-1", 42, first); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := ps.Put(ctx, "sid-1", 42, second); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := ps.Get(ctx, "sid-1", 42)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OrderID != "ord-2" {
		t.Fatalf("newest pending should win, got %s", got.OrderID)
	}

	// other courses and sessions are independent
	if _, err := ps.Get(ctx, "sid-1", 43); err != kv.ErrNotFound {
		t.Fatalf("course 43: err=%v, want ErrNotFound", err)
	}
	if _, err := ps.Get(ctx, "sid-2", 42); err != kv.ErrNotFound {
		t.Fatalf("other session: err=%v, want ErrNotFound", err)
	}
}

func TestPendingStore_CorruptReadsAsAbsent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := kv.NewMemStore()
	ps := NewPendingStore(store, "pendingorder", time.Hour)

	_ = store.Set(ctx, "pendingorder:sid-x:7", []byte("garbage"), 0)
	if _, err := ps.Get(ctx, "sid-x", 7); err != kv.ErrNotFound {
		t.Fatalf("corrupt pending: err=%v, want ErrNotFound", err)
	}
}

func TestPendingStore_Del(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ps := NewPendingStore(kv.NewMemStore(), "pendingorder", time.Hour)
	_ = ps.Put(ctx, "sid-1", 9, PendingOrder{OrderID: "ord-9", CreatedAt: time.Now()})
	if err := ps.Del(ctx, "sid-1", 9); err != nil {
		t.Fatalf("del: %v", err)
	}
	if _, err := ps.Get(ctx, "sid-1", 9); err != kv.ErrNotFound {
		t.Fatalf("after del: err=%v, want ErrNotFound", err)
	}
}
