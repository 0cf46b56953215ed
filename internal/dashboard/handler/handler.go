package handler

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/donarib/storefront-service/internal/dashboard"
	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

const heartbeatInterval = 15 * time.Second

type DashboardHandler struct {
	uc     dashboard.UseCase
	logger logger.ZapLogger
}

func NewDashboardHandler(uc dashboard.UseCase, log logger.ZapLogger) *DashboardHandler {
	return &DashboardHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *DashboardHandler) GetSnapshot(c *fiber.Ctx) error {
	s, err := h.uc.Refresh(c.UserContext())
	if err != nil {
		h.logger.Error("dashboard snapshot failed", zap.Error(err))
		return fiber.NewError(fiber.StatusServiceUnavailable, "dashboard temporarily unavailable")
	}
	return c.JSON(s)
}

// Stream pushes snapshots as server-sent events until the client leaves or
// the hub shuts down.
func (h *DashboardHandler) Stream(c *fiber.Ctx) error {
	latest, updates, cancel := h.uc.Subscribe()
	if latest == nil {
		s, err := h.uc.Refresh(c.UserContext())
		if err != nil {
			h.logger.Warn("initial dashboard snapshot failed", zap.Error(err))
		} else {
			latest = s
		}
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer cancel()
		if err := writeStream(w, latest, updates, heartbeatInterval); err != nil {
			h.logger.Debug("dashboard stream closed", zap.Error(err))
		}
	}))
	return nil
}

// writeStream emits snapshots in seq order, skipping any not newer than the
// last one sent. It returns when updates closes or a write fails.
func writeStream(w *bufio.Writer, first *dashboard.Snapshot, updates <-chan *dashboard.Snapshot, heartbeat time.Duration) error {
	var lastSeq uint64
	send := func(s *dashboard.Snapshot) error {
		if s == nil || s.Seq <= lastSeq {
			return nil
		}
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "id: %d\nevent: snapshot\ndata: %s\n\n", s.Seq, data); err != nil {
			return err
		}
		lastSeq = s.Seq
		return w.Flush()
	}

	if err := send(first); err != nil {
		return err
	}

	ticker := time.NewTicker(heartbeat)
	defer ticker.Stop()
	for {
		select {
		case s, ok := <-updates:
			if !ok {
				return nil
			}
			if err := send(s); err != nil {
				return err
			}
		case <-ticker.C:
			// comment lines keep proxies from closing an idle stream
			if _, err := w.WriteString(": ping\n\n"); err != nil {
				return err
			}
			if err := w.Flush(); err != nil {
				return err
			}
		}
	}
}
