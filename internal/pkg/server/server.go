package server

import (
	"errors"
	"time"

	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"go.uber.org/zap"
)

const requestIDLocal = "requestid"

// New builds the fiber app with the shared error handler and middleware.
func New(appName string, log logger.ZapLogger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               appName,
		ErrorHandler:          ErrorHandler(log),
		DisableStartupMessage: true,
		ReadTimeout:           15 * time.Second,
	})
	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{ContextKey: requestIDLocal}))
	app.Use(RequestLogger(log))
	return app
}

// ErrorHandler writes {"error": msg}. Fiber errors keep their status and
// message; anything else is a 500 with a generic message.
func ErrorHandler(log logger.ZapLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		msg := "internal server error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			msg = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error("request failed",
				zap.String("request_id", RequestID(c)),
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Error(err),
			)
		}
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}
}

func RequestLogger(log logger.ZapLogger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(chainErr, &fe) {
			status = fe.Code
		} else if chainErr != nil {
			status = fiber.StatusInternalServerError
		}

		log.Info("http request",
			zap.String("request_id", RequestID(c)),
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", status),
			zap.Duration("latency", time.Since(start)),
		)
		return chainErr
	}
}

func RequestID(c *fiber.Ctx) string {
	id, _ := c.Locals(requestIDLocal).(string)
	return id
}
