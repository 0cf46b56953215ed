package handler

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/donarib/storefront-service/internal/pkg/logger"
	"github.com/donarib/storefront-service/internal/stats"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStats struct {
	exportErr error
	period    stats.Period
}

func (f *fakeStats) Report(_ context.Context, period stats.Period) *stats.PeriodReport {
	f.period = period
	return &stats.PeriodReport{Period: period, Report: stats.EmptyReport()}
}

func (f *fakeStats) Export(_ context.Context, period stats.Period, w io.Writer, _ string) error {
	if f.exportErr != nil {
		return f.exportErr
	}
	_, err := io.WriteString(w, "Fecha,Cliente,Productos,Total,Tipo Entrega,Metodo Pago\n")
	return err
}

func (f *fakeStats) Invalidate(context.Context) {}

func (f *fakeStats) Now() time.Time { return time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC) }

func newApp(uc stats.UseCase) *fiber.App {
	app := fiber.New()
	h := NewStatsHandler(uc, logger.NewNop())
	app.Get("/stats", h.GetReport)
	app.Get("/stats/export", h.Export)
	return app
}

func TestGetReportDefaultsToToday(t *testing.T) {
	uc := &fakeStats{}
	resp, err := newApp(uc).Test(httptest.NewRequest("GET", "/stats", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, stats.PeriodToday, uc.period)
}

func TestGetReportRejectsUnknownPeriod(t *testing.T) {
	resp, err := newApp(&fakeStats{}).Test(httptest.NewRequest("GET", "/stats?period=year", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestExportSetsAttachment(t *testing.T) {
	resp, err := newApp(&fakeStats{}).Test(httptest.NewRequest("GET", "/stats/export?period=week", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentDisposition), "pedidos_week_2024-03-15.csv")
	assert.Equal(t, "text/csv; charset=utf-8", resp.Header.Get(fiber.HeaderContentType))

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Fecha,Cliente")
}

func TestExportFailure(t *testing.T) {
	resp, err := newApp(&fakeStats{exportErr: errors.New("db down")}).Test(httptest.NewRequest("GET", "/stats/export", nil))
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
