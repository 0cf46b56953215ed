package handler

import (
	"errors"
	"net/url"

	"github.com/donarib/storefront-service/internal/cart"
	"github.com/donarib/storefront-service/internal/cart/dto"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/order"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type CartHandler struct {
	uc     cart.UseCase
	logger logger.ZapLogger
}

func NewCartHandler(uc cart.UseCase, log logger.ZapLogger) *CartHandler {
	return &CartHandler{
		uc:     uc,
		logger: log,
	}
}

type addItemRequest struct {
	ProductID string     `json:"product_id"`
	Size      model.Size `json:"size"`
	Quantity  int        `json:"quantity"`
}

type adjustRequest struct {
	Delta int `json:"delta"`
}

type checkoutRequest struct {
	DeliveryType  model.DeliveryType  `json:"delivery_type"`
	CustomerName  string              `json:"customer_name"`
	Street        string              `json:"street"`
	PaymentMethod model.PaymentMethod `json:"payment_method"`
}

type cartResponse struct {
	*cart.Cart
	Total     decimal.Decimal `json:"total"`
	ItemCount int             `json:"item_count"`
}

func toResponse(c *cart.Cart) cartResponse {
	return cartResponse{Cart: c, Total: c.Total(), ItemCount: c.ItemCount()}
}

func (h *CartHandler) CreateCart(c *fiber.Ctx) error {
	ct, err := h.uc.Create(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(ct))
}

func (h *CartHandler) GetCart(c *fiber.Ctx) error {
	ct, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(ct))
}

func (h *CartHandler) ClearCart(c *fiber.Ctx) error {
	if err := h.uc.Clear(c.UserContext(), c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *CartHandler) AddItem(c *fiber.Ctx) error {
	var req addItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	ct, err := h.uc.AddItem(c.UserContext(), &dto.AddItemInput{
		CartID:    c.Params("id"),
		ProductID: req.ProductID,
		Size:      req.Size,
		Quantity:  req.Quantity,
	})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(ct))
}

func (h *CartHandler) AdjustItem(c *fiber.Ctx) error {
	key, err := lineKey(c)
	if err != nil {
		return err
	}
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	ct, err := h.uc.Adjust(c.UserContext(), c.Params("id"), key, req.Delta)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(ct))
}

func (h *CartHandler) RemoveItem(c *fiber.Ctx) error {
	key, err := lineKey(c)
	if err != nil {
		return err
	}
	ct, err := h.uc.Remove(c.UserContext(), c.Params("id"), key)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(ct))
}

func (h *CartHandler) Checkout(c *fiber.Ctx) error {
	var req checkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.DeliveryType == "" {
		req.DeliveryType = model.DeliveryTypePickup
	}

	res, err := h.uc.Checkout(c.UserContext(), &dto.CheckoutInput{
		CartID:        c.Params("id"),
		DeliveryType:  req.DeliveryType,
		CustomerName:  req.CustomerName,
		Street:        req.Street,
		PaymentMethod: req.PaymentMethod,
		Lang:          c.Query("lang", c.Get(fiber.HeaderAcceptLanguage)),
	})
	if err != nil {
		h.logger.Warn("checkout rejected", zap.String("cart_id", c.Params("id")), zap.Error(err))
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}

// lineKey unescapes the key path segment; keys carry spaces and accents.
func lineKey(c *fiber.Ctx) (string, error) {
	key, err := url.PathUnescape(c.Params("key"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid line key")
	}
	return key, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, cart.ErrNotFound), errors.Is(err, cart.ErrLineNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, cart.ErrEmptyCart),
		errors.Is(err, cart.ErrInvalidQuantity),
		errors.Is(err, cart.ErrProductUnavailable),
		errors.Is(err, model.ErrSizeNotOffered),
		errors.Is(err, order.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
