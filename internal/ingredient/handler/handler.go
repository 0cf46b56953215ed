package handler

import (
	"errors"

	"github.com/donarib/storefront-service/internal/ingredient"
	"github.com/donarib/storefront-service/internal/ingredient/dto"
	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type IngredientHandler struct {
	uc     ingredient.UseCase
	logger logger.ZapLogger
}

func NewIngredientHandler(uc ingredient.UseCase, log logger.ZapLogger) *IngredientHandler {
	return &IngredientHandler{
		uc:     uc,
		logger: log,
	}
}

type ingredientRequest struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	MinStock float64 `json:"min_stock"`
}

type adjustRequest struct {
	Delta float64 `json:"delta"`
}

type ingredientResponse struct {
	model.Ingredient
	LowStock bool `json:"low_stock"`
}

func toResponse(i *model.Ingredient) ingredientResponse {
	return ingredientResponse{Ingredient: *i, LowStock: i.IsLowStock()}
}

func toResponses(items []model.Ingredient) []ingredientResponse {
	out := make([]ingredientResponse, 0, len(items))
	for i := range items {
		out = append(out, toResponse(&items[i]))
	}
	return out
}

func (h *IngredientHandler) ListIngredients(c *fiber.Ctx) error {
	items, err := h.uc.ListIngredients(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"ingredients": toResponses(items)})
}

func (h *IngredientHandler) ListLowStock(c *fiber.Ctx) error {
	items, err := h.uc.ListLowStock(c.UserContext())
	if err != nil {
		return mapError(err)
	}
	return c.JSON(fiber.Map{"ingredients": toResponses(items)})
}

func (h *IngredientHandler) CreateIngredient(c *fiber.Ctx) error {
	var req ingredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	i, err := h.uc.CreateIngredient(c.UserContext(), &dto.IngredientInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinStock: req.MinStock,
	})
	if err != nil {
		h.logger.Error("failed to create ingredient", zap.Error(err))
		return mapError(err)
	}
	return c.Status(fiber.StatusCreated).JSON(toResponse(i))
}

func (h *IngredientHandler) UpdateIngredient(c *fiber.Ctx) error {
	var req ingredientRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	i, err := h.uc.UpdateIngredient(c.UserContext(), c.Params("id"), &dto.IngredientInput{
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		MinStock: req.MinStock,
	})
	if err != nil {
		h.logger.Error("failed to update ingredient", zap.String("ingredient_id", c.Params("id")), zap.Error(err))
		return mapError(err)
	}
	return c.JSON(toResponse(i))
}

func (h *IngredientHandler) DeleteIngredient(c *fiber.Ctx) error {
	if err := h.uc.DeleteIngredient(c.UserContext(), c.Params("id")); err != nil {
		return mapError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *IngredientHandler) AdjustQuantity(c *fiber.Ctx) error {
	var req adjustRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	i, err := h.uc.AdjustQuantity(c.UserContext(), &dto.AdjustQuantityInput{ID: c.Params("id"), Delta: req.Delta})
	if err != nil {
		return mapError(err)
	}
	return c.JSON(toResponse(i))
}

func mapError(err error) error {
	switch {
	case errors.Is(err, ingredient.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, ingredient.ErrInvalidInput):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ingredient.ErrBusy):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	}
	return err
}
