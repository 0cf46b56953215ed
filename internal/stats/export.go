package stats

import (
	"bufio"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
)

const ExportDateLayout = "02/01/2006, 15:04:05"

const productSeparator = " | "

// ExportFilename names the attachment after the period and the UTC date.
func ExportFilename(period Period, now time.Time) string {
	return "pedidos_" + string(period) + "_" + now.UTC().Format("2006-01-02") + ".csv"
}

// WriteCSV renders one row per order. Text columns are always quoted so
// spreadsheet imports never split product lists; the total stays a bare number.
func WriteCSV(w io.Writer, orders []model.Order, loc *time.Location, l *i18n.Localizer) error {
	bw := bufio.NewWriter(w)

	header := []string{
		l.T("export.header_date", nil),
		l.T("export.header_client", nil),
		l.T("export.header_products", nil),
		l.T("export.header_total", nil),
		l.T("export.header_delivery", nil),
		l.T("export.header_payment", nil),
	}
	bw.WriteString(strings.Join(header, ","))
	bw.WriteByte('\n')

	for i := range orders {
		o := &orders[i]

		client := o.ClientLabel()
		if client == "" {
			client = l.T("client.unknown", nil)
		}

		products := make([]string, 0, len(o.Items))
		for _, item := range o.Items {
			products = append(products, ProductLine(item))
		}

		delivery := l.T("export.delivery", nil)
		if o.DeliveryType == model.DeliveryTypePickup {
			delivery = l.T("export.pickup", nil)
		}
		payment := l.T("export.payment_transfer", nil)
		if o.PaymentMethod == model.PaymentMethodCash {
			payment = l.T("export.payment_cash", nil)
		}

		bw.WriteString(quote(o.CreatedAt.In(loc).Format(ExportDateLayout)))
		bw.WriteByte(',')
		bw.WriteString(quote(client))
		bw.WriteByte(',')
		bw.WriteString(quote(strings.Join(products, productSeparator)))
		bw.WriteByte(',')
		bw.WriteString(o.Total.String())
		bw.WriteByte(',')
		bw.WriteString(quote(delivery))
		bw.WriteByte(',')
		bw.WriteString(quote(payment))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ProductLine formats an item as "{quantity}x {name} {size}".
func ProductLine(item model.OrderItem) string {
	var b strings.Builder
	b.WriteString(strconv.Itoa(item.Quantity))
	b.WriteString("x ")
	b.WriteString(item.Name)
	b.WriteByte(' ')
	b.WriteString(string(item.Size))
	return b.String()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
