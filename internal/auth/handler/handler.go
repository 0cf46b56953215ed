package handler

import (
	"errors"
	"strings"

	"github.com/donarib/storefront-service/internal/auth"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const sessionLocal = "session"

type AuthHandler struct {
	auth   *auth.Authenticator
	logger logger.ZapLogger
}

func NewAuthHandler(a *auth.Authenticator, log logger.ZapLogger) *AuthHandler {
	return &AuthHandler{
		auth:   a,
		logger: log,
	}
}

type loginRequest struct {
	Password string `json:"password"`
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	token, s, err := h.auth.Login(req.Password)
	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		h.logger.Warn("admin login failed", zap.String("ip", c.IP()))
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrLoginDisabled):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case err != nil:
		return err
	}

	h.logger.Info("admin login", zap.String("subject", s.Subject))
	return c.JSON(fiber.Map{
		"token":      token,
		"expires_at": s.ExpiresAt,
	})
}

// RequireStaff verifies the bearer token on every request and makes the
// session available through Locals and the request context.
func (h *AuthHandler) RequireStaff() fiber.Handler {
	return h.requireStaff(false)
}

// RequireStaffStream is RequireStaff for EventSource endpoints, which cannot
// set headers and may pass ?access_token= instead.
func (h *AuthHandler) RequireStaffStream() fiber.Handler {
	return h.requireStaff(true)
}

func (h *AuthHandler) requireStaff(allowQuery bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c, allowQuery)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
		}
		s, err := h.auth.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		c.Locals(sessionLocal, s)
		c.SetUserContext(auth.WithSession(c.UserContext(), s))
		return c.Next()
	}
}

func bearerToken(c *fiber.Ctx, allowQuery bool) (string, bool) {
	header := c.Get(fiber.HeaderAuthorization)
	if token, found := strings.CutPrefix(header, "Bearer "); found && token != "" {
		return token, true
	}
	if !allowQuery {
		return "", false
	}
	if token := c.Query("access_token"); token != "" {
		return token, true
	}
	return "", false
}

func SessionFrom(c *fiber.Ctx) (*auth.Session, bool) {
	s, ok := c.Locals(sessionLocal).(*auth.Session)
	return s, ok
}
