package stats

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVRoundTrip(t *testing.T) {
	loc := time.FixedZone("ART", -3*60*60)

	a := order("Ana", item("Cheese", model.SizeDoble, 9000, 2), item("Coca Cola", model.SizeBebida, 2500, 1))
	a.CreatedAt = time.Date(2024, 3, 15, 23, 10, 5, 0, time.UTC)

	b := order("", item("Combo Original", model.SizeCombo, 17400, 1))
	b.DeliveryType = model.DeliveryTypeDelivery
	b.PaymentMethod = model.PaymentMethodTransfer
	b.DeliveryStreet = "Junin 400"
	b.CreatedAt = time.Date(2024, 3, 16, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Order{a, b}, loc, i18n.MustNew().Localizer("es")))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, []string{"Fecha", "Cliente", "Productos", "Total", "Tipo Entrega", "Metodo Pago"}, rows[0])
	assert.Equal(t, []string{"15/03/2024, 20:10:05", "Ana", "2x Cheese Doble | 1x Coca Cola Bebida", "20500", "Retiro", "Efectivo"}, rows[1])
	assert.Equal(t, []string{"16/03/2024, 09:00:00", "Sin nombre", "1x Combo Original Combo", "17400", "Envío", "Transferencia"}, rows[2])
}

func TestWriteCSVQuoting(t *testing.T) {
	o := order(`Juan "el Toro"`, item("Cheese", model.SizeSimple, 7000, 1))
	o.CreatedAt = time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []model.Order{o}, time.UTC, i18n.MustNew().Localizer("es")))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, `"15/03/2024, 12:00:00","Juan ""el Toro""","1x Cheese Simple",7000,"Retiro","Efectivo"`, lines[1])
}

func TestWriteCSVEnglishHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil, time.UTC, i18n.MustNew().Localizer("en")))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Date", rows[0][0])
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 15, 22, 0, 0, 0, time.FixedZone("ART", -3*60*60))
	assert.Equal(t, "pedidos_week_2024-03-16.csv", ExportFilename(PeriodWeek, now))
}
