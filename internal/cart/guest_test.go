package cart

import (
	"context"
	"testing"
	"time"

	"github.com/coursekart/coursekart-api/internal/kv"
	"github.com/coursekart/coursekart-api/internal/pubsub"
)

func newTestGuestStore() (*GuestStore, kv.Store, *pubsub.Bus) {
	store := kv.NewMemStore()
	bus := pubsub.NewBus()
	return NewGuestStore(store, bus, "guestcart", time.Hour), store, bus
}

func TestGuestStore_WriteNormalizesAndReadsBack(t *testing.T) {
	t.Parallel()

	gs, _, _ := newTestGuestStore()
	ctx := context.Background()

	got, err := gs.Write(ctx, "sid-1", []Item{
		{ProductID: 1, Quantity: 2},
		{ProductID: 1, Quantity: 3},
		{ProductID: 0, Quantity: 5},
	})
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if len(got) != 1 || got[0].Quantity != 5 {
		t.Fatalf("write result: %+v", got)
	}

	read := gs.Read(ctx, "sid-1")
	if len(read) != 1 || read[0].ProductID != 1 || read[0].Quantity != 5 {
		t.Fatalf("read result: %+v", read)
	}
}

func TestGuestStore_CorruptBlobReadsAsEmpty(t *testing.T) {
	t.Parallel()

	gs, store, _ := newTestGuestStore()
	ctx := context.Background()

	if err := store.Set(ctx, "guestcart:sid-2", []byte(`{not json`), 0); err != nil {
		t.Fatalf("seed: %v", err)
	}
	items := gs.Read(ctx, "sid-2")
	if len(items) != 0 {
		t.Fatalf("corrupt blob should read as empty, got %+v", items)
	}
}

func TestGuestStore_MissingKeyReadsAsEmpty(t *testing.T) {
	t.Parallel()

	gs, _, _ := newTestGuestStore()
	if items := gs.Read(context.Background(), "never-written"); len(items) != 0 {
		t.Fatalf("missing key should read as empty, got %+v", items)
	}
}

func TestGuestStore_WriteAndClearPublish(t *testing.T) {
	t.Parallel()

	gs, _, bus := newTestGuestStore()
	ctx := context.Background()
	sub := bus.Subscribe(pubsub.TopicCartChanged)
	defer sub.Unsubscribe()

	if _, err := gs.Write(ctx, "sid-3", []Item{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case got := <-sub.C:
		if got != "sid-3" {
			t.Fatalf("payload=%q, want sid-3", got)
		}
	default:
		t.Fatal("write did not publish cart.changed")
	}

	if err := gs.Clear(ctx, "sid-3"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	select {
	case <-sub.C:
	default:
		t.Fatal("clear did not publish cart.changed")
	}
}

func TestGuestStore_LastWriterWins(t *testing.T) {
	t.Parallel()

	gs, _, _ := newTestGuestStore()
	ctx := context.Background()

	if _, err := gs.Write(ctx, "sid-4", []Item{{ProductID: 1, Quantity: 1}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := gs.Write(ctx, "sid-4", []Item{{ProductID: 2, Quantity: 9}}); err != nil {
		t.Fatalf("write: %v", err)
	}
	got := gs.Read(ctx, "sid-4")
	if len(got) != 1 || got[0].ProductID != 2 {
		t.Fatalf("last write should win, got %+v", got)
	}
}
