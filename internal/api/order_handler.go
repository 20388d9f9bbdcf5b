package api

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/Mahesh199811/OrderManagement/internal/domain"
)

// OrderRequest — тело запроса create/update.
// TotalAmount — указатель, чтобы отличать отсутствующее поле от нуля.
type OrderRequest struct {
	CustomerName string   `json:"customerName" binding:"required" example:"John Doe"`
	TotalAmount  *float64 `json:"totalAmount" binding:"required" example:"150.50"`
}

// OrderResponse — представление заказа в API.
type OrderResponse struct {
	ID           int64     `json:"id" example:"1"`
	CustomerName string    `json:"customerName" example:"John Doe"`
	TotalAmount  float64   `json:"totalAmount" example:"150.50"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ErrorResponse — тело ошибки для 400/409/500.
type ErrorResponse struct {
	Error string `json:"error" example:"customerName is required"`
}

// OrderHandler реализует HTTP API поверх доменного репозитория заказов.
type OrderHandler struct {
	repo   domain.OrderRepository
	logger *log.Entry
}

// NewOrderHandler конструирует хендлер с зависимостями.
func NewOrderHandler(repo domain.OrderRepository, logger *log.Entry) *OrderHandler {
	if logger == nil {
		logger = log.New().WithField("component", "order-handler")
	}
	return &OrderHandler{repo: repo, logger: logger}
}

// List godoc
//
//	@Summary		List orders
//	@Description	Returns all orders, newest first. No pagination.
//	@Tags			orders
//	@Produce		json
//	@Success		200	{array}		api.OrderResponse
//	@Failure		500	{object}	api.ErrorResponse
//	@Router			/orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.repo.List(c.Request.Context())
	if err != nil {
		h.renderRepoError(c, err, "list orders")
		return
	}

	response := make([]OrderResponse, 0, len(orders))
	for _, order := range orders {
		response = append(response, toOrderResponse(order))
	}
	c.JSON(http.StatusOK, response)
}

// Get godoc
//
//	@Summary		Get order by id
//	@Tags			orders
//	@Produce		json
//	@Param			id	path		int	true	"Order ID"
//	@Success		200	{object}	api.OrderResponse
//	@Failure		400	{object}	api.ErrorResponse
//	@Failure		404	"order does not exist"
//	@Failure		500	{object}	api.ErrorResponse
//	@Router			/orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.repo.GetByID(c.Request.Context(), id)
	if err != nil {
		h.renderRepoError(c, err, "get order")
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

// Create godoc
//
//	@Summary		Create order
//	@Description	Creates an order; id and createdAt are assigned by the service.
//	@Tags			orders
//	@Accept			json
//	@Produce		json
//	@Param			order	body		api.OrderRequest	true	"Order payload"
//	@Success		201		{object}	api.OrderResponse
//	@Header			201		{string}	Location	"URL of the created order"
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		500		{object}	api.ErrorResponse
//	@Router			/orders [post]
func (h *OrderHandler) Create(c *gin.Context) {
	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	created, err := h.repo.Insert(c.Request.Context(), domain.Order{
		CustomerName: req.CustomerName,
		TotalAmount:  *req.TotalAmount,
	})
	if err != nil {
		h.renderRepoError(c, err, "create order")
		return
	}

	h.logger.WithFields(log.Fields{
		"order_id": created.ID,
	}).Info("order created")

	c.Header("Location", fmt.Sprintf("/api/orders/%d", created.ID))
	c.JSON(http.StatusCreated, toOrderResponse(created))
}

// Update godoc
//
//	@Summary		Update order
//	@Description	Replaces customerName and totalAmount. id and createdAt never change.
//	@Tags			orders
//	@Accept			json
//	@Param			id		path	int					true	"Order ID"
//	@Param			order	body	api.OrderRequest	true	"Order payload"
//	@Success		204		"updated"
//	@Failure		400		{object}	api.ErrorResponse
//	@Failure		404		"order does not exist"
//	@Failure		409		{object}	api.ErrorResponse
//	@Failure		500		{object}	api.ErrorResponse
//	@Router			/orders/{id} [put]
func (h *OrderHandler) Update(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req OrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.repo.Update(c.Request.Context(), id, req.CustomerName, *req.TotalAmount); err != nil {
		h.renderRepoError(c, err, "update order")
		return
	}

	c.Status(http.StatusNoContent)
}

// Delete godoc
//
//	@Summary		Delete order
//	@Tags			orders
//	@Param			id	path	int	true	"Order ID"
//	@Success		204	"deleted"
//	@Failure		400	{object}	api.ErrorResponse
//	@Failure		404	"order does not exist"
//	@Failure		500	{object}	api.ErrorResponse
//	@Router			/orders/{id} [delete]
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := h.repo.Delete(c.Request.Context(), id); err != nil {
		h.renderRepoError(c, err, "delete order")
		return
	}

	c.Status(http.StatusNoContent)
}

// renderRepoError переводит ошибки репозитория в HTTP-ответы.
// Детали инфраструктурных ошибок наружу не отдаются.
func (h *OrderHandler) renderRepoError(c *gin.Context, err error, op string) {
	switch {
	case domain.IsNotFound(err):
		c.Status(http.StatusNotFound)
	case domain.IsConflict(err):
		c.JSON(http.StatusConflict, ErrorResponse{Error: "order was modified concurrently"})
	default:
		h.logger.WithError(err).Errorf("%s failed", op)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal server error"})
	}
}

func parseOrderID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order id must be an integer"})
		return 0, false
	}
	return id, true
}

func toOrderResponse(order domain.Order) OrderResponse {
	return OrderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		TotalAmount:  order.TotalAmount,
		CreatedAt:    order.CreatedAt,
	}
}
