package handoff

import (
	"net/url"
	"strings"

	"github.com/donarib/storefront-service/internal/model"
	"github.com/donarib/storefront-service/internal/pkg/i18n"
)

const waBaseURL = "https://wa.me/"

// Handoff is what the customer sends to the store to finish an order.
type Handoff struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

type Composer struct {
	tr    *i18n.Translator
	store string
	phone string
}

func NewComposer(tr *i18n.Translator, storeName, phone string) *Composer {
	return &Composer{tr: tr, store: storeName, phone: phone}
}

func (c *Composer) Compose(o *model.Order, lang string) Handoff {
	msg := c.Message(o, lang)
	return Handoff{Message: msg, Link: c.Link(msg)}
}

// Message renders the order as chat text.
func (c *Composer) Message(o *model.Order, lang string) string {
	l := c.tr.Localizer(lang)

	var b strings.Builder
	b.WriteString(l.T("handoff.title", map[string]any{"Store": c.store}))
	b.WriteString("\n\n")
	for _, it := range o.Items {
		b.WriteString(l.T("handoff.line", map[string]any{
			"Quantity": it.Quantity,
			"Name":     it.Name,
			"Size":     string(it.Size),
			"Amount":   it.Subtotal().String(),
		}))
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	b.WriteString(l.T("handoff.total", map[string]any{"Total": o.Total.String()}))
	b.WriteString("\n\n")

	if o.CustomerName != "" {
		b.WriteString(l.T("handoff.customer", map[string]any{"Name": o.CustomerName}))
		b.WriteByte('\n')
	}
	if o.DeliveryType == model.DeliveryTypeDelivery {
		b.WriteString(l.T("handoff.delivery", nil))
		b.WriteByte('\n')
		b.WriteString(l.T("handoff.address", map[string]any{"Street": o.DeliveryStreet}))
		b.WriteByte('\n')
	} else {
		b.WriteString(l.T("handoff.pickup", nil))
		b.WriteByte('\n')
	}

	method := l.T("handoff.payment_transfer", nil)
	if o.PaymentMethod == model.PaymentMethodCash {
		method = l.T("handoff.payment_cash", nil)
	}
	b.WriteByte('\n')
	b.WriteString(l.T("handoff.payment", map[string]any{"Method": method}))
	return b.String()
}

// Link builds the click-to-chat URL with the message prefilled. Spaces are
// sent as %20 since some clients show a literal + otherwise.
func (c *Composer) Link(message string) string {
	return waBaseURL + c.phone + "?text=" + strings.ReplaceAll(url.QueryEscape(message), "+", "%20")
}
