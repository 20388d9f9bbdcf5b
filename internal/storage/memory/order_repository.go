package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/Mahesh199811/OrderManagement/internal/domain"
)

// orderRepositoryInMemory — простая in-memory реализация OrderRepository
// для локальной разработки и тестов.
type orderRepositoryInMemory struct {
	mu     sync.RWMutex
	items  map[int64]domain.Order
	nextID int64
}

// NewOrderRepository возвращает in-memory репозиторий заказов.
func NewOrderRepository() domain.OrderRepository {
	return &orderRepositoryInMemory{
		items: make(map[int64]domain.Order),
	}
}

// List возвращает все заказы, новые первыми.
func (r *orderRepositoryInMemory) List(_ context.Context) ([]domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.Order, 0, len(r.items))
	for _, order := range r.items {
		result = append(result, order)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].CreatedAt.After(result[j].CreatedAt)
		}
		return result[i].ID > result[j].ID
	})

	return result, nil
}

// GetByID возвращает заказ или ErrOrderNotFound, если его нет.
func (r *orderRepositoryInMemory) GetByID(_ context.Context, id int64) (domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, ok := r.items[id]
	if !ok {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	return order, nil
}

// Insert присваивает следующий ID, фиксирует CreatedAt и сохраняет копию заказа.
func (r *orderRepositoryInMemory) Insert(_ context.Context, order domain.Order) (domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	order.ID = r.nextID
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.Version = 0

	r.items[order.ID] = order
	return order, nil
}

// Update перезаписывает изменяемые поля заказа. CreatedAt и ID не трогаются.
func (r *orderRepositoryInMemory) Update(_ context.Context, id int64, customerName string, totalAmount float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.items[id]
	if !ok {
		return domain.ErrOrderNotFound
	}

	current.CustomerName = customerName
	current.TotalAmount = totalAmount
	current.Version++
	r.items[id] = current
	return nil
}

// Delete удаляет заказ; повторное удаление того же ID снова даёт not found.
func (r *orderRepositoryInMemory) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return domain.ErrOrderNotFound
	}
	delete(r.items, id)
	return nil
}

var _ domain.OrderRepository = (*orderRepositoryInMemory)(nil)
