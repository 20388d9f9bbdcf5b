package domain

import "errors"

var (
	// ErrOrderNotFound возвращается, если заказ не найден в репозитории.
	ErrOrderNotFound = errors.New("order not found")
	// ErrOrderConflict сигнализирует о конкурентном изменении строки между
	// чтением и записью при обновлении.
	ErrOrderConflict = errors.New("order concurrently modified")
)

// IsNotFound проверяет, является ли ошибка отсутствием заказа.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrOrderNotFound)
}

// IsConflict проверяет, является ли ошибка конфликтом конкурентного обновления.
func IsConflict(err error) bool {
	return errors.Is(err, ErrOrderConflict)
}
