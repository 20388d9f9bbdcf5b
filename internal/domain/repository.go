package domain

import "context"

// OrderRepository описывает требования к хранилищу заказов.
type OrderRepository interface {
	// List возвращает все заказы в стабильном порядке (новые первыми).
	// Пустой срез, если заказов нет.
	List(ctx context.Context) ([]Order, error)
	// GetByID возвращает заказ по идентификатору или ErrOrderNotFound, если его нет.
	GetByID(ctx context.Context, id int64) (Order, error)
	// Insert сохраняет новый заказ: хранилище присваивает ID, CreatedAt
	// выставляется в момент вставки. Возвращает сохранённый заказ.
	Insert(ctx context.Context, order Order) (Order, error)
	// Update применяет изменения customerName/totalAmount к существующему заказу.
	// Возвращает ErrOrderNotFound, если заказа нет (в том числе если он был
	// конкурентно удалён между чтением и записью), и ErrOrderConflict, если
	// строка существует, но запись конфликтует по версии.
	Update(ctx context.Context, id int64, customerName string, totalAmount float64) error
	// Delete удаляет заказ или возвращает ErrOrderNotFound, если его нет.
	// Повторное удаление того же ID снова даёт ErrOrderNotFound.
	Delete(ctx context.Context, id int64) error
}
