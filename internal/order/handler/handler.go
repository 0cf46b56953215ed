package handler

import (
	"errors"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	"github.com/donarib/storefront-service/internal/order/dto"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type OrderHandler struct {
	uc     order.UseCase
	logger logger.ZapLogger
}

func NewOrderHandler(uc order.UseCase, log logger.ZapLogger) *OrderHandler {
	return &OrderHandler{
		uc:     uc,
		logger: log,
	}
}

type counterItemRequest struct {
	ProductID string     `json:"product_id"`
	Size      model.Size `json:"size"`
	Quantity  int        `json:"quantity"`
}

type counterOrderRequest struct {
	Items        []counterItemRequest `json:"items"`
	CustomerName string               `json:"customer_name"`
}

type noteRequest struct {
	Note string `json:"note"`
}

func (h *OrderHandler) ListOrders(c *fiber.Ctx) error {
	status := model.OrderStatus(c.Query("status", string(model.OrderStatusPending)))
	orders, err := h.uc.ListByStatus(c.UserContext(), status)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) ListRecent(c *fiber.Ctx) error {
	orders, err := h.uc.ListRecentConfirmed(c.UserContext(), c.QueryInt("limit"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"orders": orders, "count": len(orders)})
}

func (h *OrderHandler) GetOrder(c *fiber.Ctx) error {
	o, err := h.uc.GetOrder(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Confirm(c *fiber.Ctx) error {
	o, err := h.uc.Confirm(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	o, err := h.uc.Cancel(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) UpdateNote(c *fiber.Ctx) error {
	var req noteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	o, err := h.uc.UpdateNote(c.UserContext(), c.Params("id"), req.Note)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(o)
}

func (h *OrderHandler) CreateCounterOrder(c *fiber.Ctx) error {
	var req counterOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input := &dto.CounterOrderInput{CustomerName: req.CustomerName}
	for _, it := range req.Items {
		input.Items = append(input.Items, dto.CounterItem{
			ProductID: it.ProductID,
			Size:      it.Size,
			Quantity:  it.Quantity,
		})
	}

	o, err := h.uc.CreateCounterOrder(c.UserContext(), input)
	if err != nil {
		h.logger.Warn("counter order rejected", zap.Error(err))
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(o)
}

func mapError(err error) error {
	switch {
	case errors.Is(err, order.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, order.ErrInvalidTransition):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.Is(err, order.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
