package handler

import (
	"bytes"

	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/stats"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type StatsHandler struct {
	uc     stats.UseCase
	logger logger.ZapLogger
}

func NewStatsHandler(uc stats.UseCase, log logger.ZapLogger) *StatsHandler {
	return &StatsHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *StatsHandler) GetReport(c *fiber.Ctx) error {
	period, err := stats.ParsePeriod(c.Query("period"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "period must be today, week or month")
	}
	return c.JSON(h.uc.Report(c.UserContext(), period))
}

func (h *StatsHandler) Export(c *fiber.Ctx) error {
	period, err := stats.ParsePeriod(c.Query("period"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "period must be today, week or month")
	}
	lang := c.Query("lang", c.Get(fiber.HeaderAcceptLanguage))

	var buf bytes.Buffer
	if err := h.uc.Export(c.UserContext(), period, &buf, lang); err != nil {
		h.logger.Error("failed to export orders", zap.String("period", string(period)), zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "could not export orders")
	}

	c.Attachment(stats.ExportFilename(period, h.uc.Now()))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	return c.Send(buf.Bytes())
}
