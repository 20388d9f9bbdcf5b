package api

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	// HeaderRequestID — заголовок сквозного идентификатора запроса.
	HeaderRequestID = "X-Request-ID"
	// ContextRequestIDKey — ключ идентификатора в gin-контексте.
	ContextRequestIDKey = "request_id"
)

// RequestID проставляет идентификатор запроса: берёт клиентский из заголовка
// или генерирует новый. Идентификатор возвращается и в ответе.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, id)
		c.Writer.Header().Set(HeaderRequestID, id)
		c.Next()
	}
}
