package notification

import (
	"context"
	"fmt"
	"sync"
	"testing"
)

func TestMemoryDeduper_MarkAndLookup(t *testing.T) {
	d := NewMemoryDeduper()
	ctx := context.Background()
	key := Key{ReservationID: "r1", UserID: "u1", OffsetType: OneHourBefore}

	notified, err := d.HasBeenNotified(ctx, key)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if notified {
		t.Fatal("fresh deduper must not report the key as notified")
	}

	if err := d.MarkNotified(ctx, key); err != nil {
		t.Fatalf("mark: %v", err)
	}

	notified, _ = d.HasBeenNotified(ctx, key)
	if !notified {
		t.Fatal("marked key must be reported as notified")
	}

	// Same reservation and user, different offset: separate key
	other := Key{ReservationID: "r1", UserID: "u1", OffsetType: FiveMinBefore}
	notified, _ = d.HasBeenNotified(ctx, other)
	if notified {
		t.Fatal("different offset type must not share the marker")
	}
}

func TestMemoryDeduper_ConcurrentMarks(t *testing.T) {
	d := NewMemoryDeduper()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			key := Key{ReservationID: "r1", UserID: fmt.Sprintf("u%d", n), OffsetType: FiveMinAfter}
			if err := d.MarkNotified(ctx, key); err != nil {
				t.Errorf("mark: %v", err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 50; i++ {
		key := Key{ReservationID: "r1", UserID: fmt.Sprintf("u%d", i), OffsetType: FiveMinAfter}
		notified, _ := d.HasBeenNotified(ctx, key)
		if !notified {
			t.Fatalf("key %v lost during concurrent marks", key)
		}
	}
}

func TestKeyString(t *testing.T) {
	key := Key{ReservationID: "r1", UserID: "u1", OffsetType: OneHourBefore}
	want := "r1:u1:one_hour_before"
	if key.String() != want {
		t.Fatalf("want %q, got %q", want, key.String())
	}
}
