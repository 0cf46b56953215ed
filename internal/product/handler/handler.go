package handler

import (
	"errors"
	"strconv"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/product"
	"github.com/donarib/storefront-service/internal/product/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type ProductHandler struct {
	uc     product.UseCase
	logger logger.ZapLogger
}

func NewProductHandler(uc product.UseCase, log logger.ZapLogger) *ProductHandler {
	return &ProductHandler{
		uc:     uc,
		logger: log,
	}
}

type productRequest struct {
	Name              string                `json:"name"`
	Category          model.ProductCategory `json:"category"`
	ImageURL          string                `json:"image_url"`
	PriceSimple       decimal.Decimal       `json:"price_simple"`
	PriceDoble        decimal.Decimal       `json:"price_doble"`
	PriceTriple       decimal.Decimal       `json:"price_triple"`
	Price             decimal.Decimal       `json:"price"`
	Description       string                `json:"description"`
	DescriptionSimple string                `json:"description_simple"`
	DescriptionDoble  string                `json:"description_doble"`
	DescriptionTriple string                `json:"description_triple"`
	Active            *bool                 `json:"active"`
}

func (r *productRequest) toInput() dto.CreateProductInput {
	active := true
	if r.Active != nil {
		active = *r.Active
	}
	return dto.CreateProductInput{
		Name:              r.Name,
		Category:          r.Category,
		ImageURL:          r.ImageURL,
		PriceSimple:       r.PriceSimple,
		PriceDoble:        r.PriceDoble,
		PriceTriple:       r.PriceTriple,
		Price:             r.Price,
		Description:       r.Description,
		DescriptionSimple: r.DescriptionSimple,
		DescriptionDoble:  r.DescriptionDoble,
		DescriptionTriple: r.DescriptionTriple,
		IsActive:          active,
	}
}

func (h *ProductHandler) CreateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	input := req.toInput()
	p, err := h.uc.CreateProduct(c.UserContext(), &input)
	if err != nil {
		h.logger.Error("failed to create product", zap.Error(err))
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) GetProduct(c *fiber.Ctx) error {
	p, err := h.uc.GetProduct(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) ListProducts(c *fiber.Ctx) error {
	filters := &dto.ProductFilters{
		Category:  c.Query("category"),
		SortBy:    c.Query("sort_by"),
		SortOrder: c.Query("sort_order"),
		Page:      c.QueryInt("page", 1),
		PageSize:  c.QueryInt("page_size"),
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "active must be true or false")
		}
		filters.IsActive = &active
	}

	products, total, err := h.uc.ListProducts(c.UserContext(), filters)
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"products": products, "total": total})
}

func (h *ProductHandler) UpdateProduct(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	p, err := h.uc.UpdateProduct(c.UserContext(), &dto.UpdateProductInput{
		ID:                 c.Params("id"),
		CreateProductInput: req.toInput(),
	})
	if err != nil {
		h.logger.Error("failed to update product", zap.String("product_id", c.Params("id")), zap.Error(err))
		return mapError(err)
	}
	return c.JSON(p)
}

// DeleteProduct passes a copy of the id; index cleanup outlives the request.
func (h *ProductHandler) DeleteProduct(c *fiber.Ctx) error {
	id := utils.CopyString(c.Params("id"))
	if err := h.uc.DeleteProduct(c.UserContext(), id); err != nil {
		return mapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *ProductHandler) ToggleActive(c *fiber.Ctx) error {
	p, err := h.uc.ToggleActive(c.UserContext(), c.Params("id"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(p)
}

func (h *ProductHandler) Search(c *fiber.Ctx) error {
	products, err := h.uc.SearchProducts(c.UserContext(), c.Query("q"))
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"products": products})
}

func mapError(err error) error {
	switch {
	case errors.Is(err, product.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, product.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return err
}
