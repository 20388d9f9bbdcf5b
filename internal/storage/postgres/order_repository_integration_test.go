package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mahesh199811/OrderManagement/internal/domain"
)

func TestOrderRepository_InsertGetRoundTrip(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{
		CustomerName: "John Doe",
		TotalAmount:  150.50,
	})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if created.ID <= 0 {
		t.Fatalf("expected assigned id, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be assigned")
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerName != "John Doe" {
		t.Errorf("expected customer John Doe, got %s", stored.CustomerName)
	}
	if stored.TotalAmount != 150.50 {
		t.Errorf("expected amount 150.50, got %v", stored.TotalAmount)
	}
	if !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt mismatch: %v vs %v", stored.CreatedAt, created.CreatedAt)
	}
}

func TestOrderRepository_InsertAssignsUniqueIDs(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	seen := map[int64]struct{}{}
	for i := 0; i < 5; i++ {
		created, err := repo.Insert(ctx, domain.Order{CustomerName: "Jane", TotalAmount: 1})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		if _, dup := seen[created.ID]; dup {
			t.Fatalf("duplicate id %d", created.ID)
		}
		seen[created.ID] = struct{}{}
	}
}

func TestOrderRepository_List(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 0 {
		t.Fatalf("expected empty list, got %d", len(orders))
	}

	for _, name := range []string{"first", "second", "third"} {
		if _, err := repo.Insert(ctx, domain.Order{CustomerName: name, TotalAmount: 10}); err != nil {
			t.Fatalf("insert failed: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	orders, err = repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	// Новые первыми.
	if orders[0].CustomerName != "third" {
		t.Errorf("expected third first, got %s", orders[0].CustomerName)
	}
}

func TestOrderRepository_UpdatePreservesCreatedAt(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "before", TotalAmount: 1})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.Update(ctx, created.ID, "after", 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored.CustomerName != "after" || stored.TotalAmount != 2 {
		t.Errorf("update not applied: %+v", stored)
	}
	if !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Errorf("createdAt must be write-once: %v vs %v", stored.CreatedAt, created.CreatedAt)
	}
	if stored.Version != created.Version+1 {
		t.Errorf("expected version increment, got %d", stored.Version)
	}
}

func TestOrderRepository_UpdateMissing(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)

	err := repo.Update(context.Background(), 999, "whoever", 1)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_DeleteIdempotentEffect(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "gone", TotalAmount: 1})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	// Повторное удаление — снова not found, не другая ошибка.
	err = repo.Delete(ctx, created.ID)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}

	_, err = repo.GetByID(ctx, created.ID)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound after delete, got %v", err)
	}
}

func TestOrderRepository_UpdateAfterConcurrentDelete(t *testing.T) {
	store := openPostgresStoreForIntegrationTest(t)
	repo := NewOrderRepository(store)
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "racer", TotalAmount: 1})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}

	err = repo.Update(ctx, created.ID, "too late", 2)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound for update after delete, got %v", err)
	}
}
