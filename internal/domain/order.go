package domain

import "time"

// Order — единственная бизнес-сущность сервиса: заказ клиента.
type Order struct {
	// ID присваивается хранилищем при создании и далее неизменяем.
	ID int64
	// CustomerName — имя клиента, обязательное непустое поле.
	CustomerName string
	// TotalAmount — сумма заказа. Ограничений на знак источник не накладывает.
	TotalAmount float64
	// CreatedAt фиксируется один раз в момент создания (UTC) и не обновляется.
	CreatedAt time.Time
	// Version используется для optimistic locking при обновлении.
	// Наружу (в JSON) не отдаётся.
	Version int64
}
