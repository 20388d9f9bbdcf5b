package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Mahesh199811/OrderManagement/internal/domain"
)

const (
	opTimeout = 5 * time.Second
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository создаёт PostgreSQL-реализацию OrderRepository.
func NewOrderRepository(store *Store) domain.OrderRepository {
	return &orderRepository{db: store.DB()}
}

// List возвращает все заказы, новые первыми. Без фильтрации и пагинации.
func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, customer_name, total_amount, version, created_at
		FROM orders
		ORDER BY created_at DESC, id DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var order domain.Order
		if err := rows.Scan(
			&order.ID, &order.CustomerName, &order.TotalAmount,
			&order.Version, &order.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	return orders, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	var order domain.Order
	err := r.db.QueryRowContext(ctx, `
		SELECT id, customer_name, total_amount, version, created_at
		FROM orders
		WHERE id = $1
	`, id).Scan(
		&order.ID, &order.CustomerName, &order.TotalAmount,
		&order.Version, &order.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Order{}, domain.ErrOrderNotFound
		}
		return domain.Order{}, fmt.Errorf("select order: %w", err)
	}

	return order, nil
}

// Insert сохраняет новый заказ: ID присваивает база, CreatedAt — момент вставки.
func (r *orderRepository) Insert(ctx context.Context, order domain.Order) (domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Now().UTC()
	}
	order.Version = 0

	err := r.db.QueryRowContext(ctx, `
		INSERT INTO orders (customer_name, total_amount, version, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`,
		order.CustomerName, order.TotalAmount, order.Version, order.CreatedAt,
	).Scan(&order.ID)
	if err != nil {
		return domain.Order{}, fmt.Errorf("insert order: %w", err)
	}

	return order, nil
}

// Update выполняет load-then-save с проверкой версии. Если строка исчезла
// между чтением и записью (конкурентное удаление), повторная проверка
// существования детерминированно даёт ErrOrderNotFound; если строка жива,
// но версия ушла вперёд — ErrOrderConflict. Повторных попыток нет.
func (r *orderRepository) Update(ctx context.Context, id int64, customerName string, totalAmount float64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	// Rollback после успешного Commit — no-op; зато любой ранний return
	// гарантированно возвращает соединение в пул.
	defer func() { _ = tx.Rollback() }()

	var version int64
	err = tx.QueryRowContext(ctx, `SELECT version FROM orders WHERE id = $1`, id).Scan(&version)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("load order version: %w", err)
	}

	// created_at намеренно не входит в SET: поле write-once.
	res, err := tx.ExecContext(ctx, `
		UPDATE orders
		SET customer_name = $1,
		    total_amount = $2,
		    version = version + 1
		WHERE id = $3
		  AND version = $4
	`, customerName, totalAmount, id, version)
	if err != nil {
		return fmt.Errorf("update order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		exists, err := r.orderExistsTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if !exists {
			return domain.ErrOrderNotFound
		}
		return domain.ErrOrderConflict
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit update order: %w", err)
	}

	return nil
}

// Delete удаляет заказ. Повторное удаление уже удалённого ID — снова not found.
func (r *orderRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, opTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx, `DELETE FROM orders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.ErrOrderNotFound
	}

	return nil
}

func (r *orderRepository) orderExistsTx(ctx context.Context, tx *sql.Tx, id int64) (bool, error) {
	var found int64
	err := tx.QueryRowContext(ctx, `SELECT id FROM orders WHERE id = $1`, id).Scan(&found)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return false, fmt.Errorf("check order exists: %w", err)
}

var _ domain.OrderRepository = (*orderRepository)(nil)
