package handler

import (
	"github.com/donarib/storefront-service/internal/menu"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type MenuHandler struct {
	uc     menu.UseCase
	logger logger.ZapLogger
}

func NewMenuHandler(uc menu.UseCase, log logger.ZapLogger) *MenuHandler {
	return &MenuHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *MenuHandler) GetMenu(c *fiber.Ctx) error {
	m, err := h.uc.GetMenu(c.UserContext())
	if err != nil {
		h.logger.Error("failed to load menu", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "menu is unavailable")
	}
	return c.JSON(m)
}
