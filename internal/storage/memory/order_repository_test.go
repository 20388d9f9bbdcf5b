package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Mahesh199811/OrderManagement/internal/domain"
	"github.com/Mahesh199811/OrderManagement/internal/storage/memory"
)

func TestOrderRepository_InsertAssignsIDAndCreatedAt(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "John Doe", TotalAmount: 150.50})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if created.ID != 1 {
		t.Fatalf("expected id 1, got %d", created.ID)
	}
	if created.CreatedAt.IsZero() {
		t.Fatal("expected createdAt to be set")
	}

	second, err := repo.Insert(ctx, domain.Order{CustomerName: "Jane Doe", TotalAmount: 10})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}
	if second.ID == created.ID {
		t.Fatalf("expected unique ids, both are %d", second.ID)
	}
}

func TestOrderRepository_InsertGetRoundTrip(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "John Doe", TotalAmount: 150.50})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if stored != created {
		t.Fatalf("round trip mismatch: %+v vs %+v", stored, created)
	}
}

func TestOrderRepository_GetMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	_, err := repo.GetByID(context.Background(), 999)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_ListOrdering(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	base := time.Now().UTC()
	for i, name := range []string{"first", "second", "third"} {
		_, err := repo.Insert(ctx, domain.Order{
			CustomerName: name,
			TotalAmount:  float64(i),
			CreatedAt:    base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("insert failed: %v", err)
		}
	}

	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(orders) != 3 {
		t.Fatalf("expected 3 orders, got %d", len(orders))
	}
	if orders[0].CustomerName != "third" || orders[2].CustomerName != "first" {
		t.Fatalf("unexpected ordering: %+v", orders)
	}
}

func TestOrderRepository_ListEmpty(t *testing.T) {
	repo := memory.NewOrderRepository()

	orders, err := repo.List(context.Background())
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if orders == nil || len(orders) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", orders)
	}
}

func TestOrderRepository_UpdatePreservesCreatedAt(t *testing.T) {
	repo := memory.NewOrderRepository()
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
		t.Fatalf("update not applied: %+v", stored)
	}
	if !stored.CreatedAt.Equal(created.CreatedAt) {
		t.Fatal("createdAt must not change on update")
	}
	if stored.Version != created.Version+1 {
		t.Fatalf("expected version increment, got %d", stored.Version)
	}
}

func TestOrderRepository_UpdateMissing(t *testing.T) {
	repo := memory.NewOrderRepository()

	err := repo.Update(context.Background(), 999, "whoever", 1)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestOrderRepository_DeleteIdempotentEffect(t *testing.T) {
	repo := memory.NewOrderRepository()
	ctx := context.Background()

	created, err := repo.Insert(ctx, domain.Order{CustomerName: "gone", TotalAmount: 1})
	if err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := repo.Delete(ctx, created.ID); !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound on repeated delete, got %v", err)
	}
}

func TestOrderRepository_UpdateAfterDelete(t *testing.T) {
	repo := memory.NewOrderRepository()
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
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}
