package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalizer(t *testing.T) {
	tr, err := New()
	require.NoError(t, err)

	es := tr.Localizer("es")
	assert.Equal(t, "Sin nombre", es.T("client.unknown", nil))
	assert.Equal(t, "🍔 *Nuevo Pedido - Doña Rib*", es.T("handoff.title", map[string]any{"Store": "Doña Rib"}))

	en := tr.Localizer("en-US,en;q=0.9")
	assert.Equal(t, "Pickup", en.T("export.pickup", nil))

	// unsupported languages fall back to Spanish
	assert.Equal(t, "Retiro", tr.Localizer("de").T("export.pickup", nil))

	assert.Equal(t, "no.such.key", es.T("no.such.key", nil))
}
