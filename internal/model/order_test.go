package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderClientLabel(t *testing.T) {
	addr := func(s string) *string { return &s }

	tests := []struct {
		name  string
		order Order
		want  string
	}{
		{"explicit name", Order{CustomerName: " Ana "}, "Ana"},
		{"explicit unknown name", Order{CustomerName: UnknownClient}, ""},
		{"explicit unknown name padded", Order{CustomerName: "  " + UnknownClient + " "}, ""},
		{"name wins over address", Order{CustomerName: "Ana", LegacyAddress: addr("Marta")}, "Ana"},
		{"no name no address", Order{}, ""},
		{"legacy pickup", Order{DeliveryType: DeliveryTypePickup, LegacyAddress: addr("Marta")}, "Marta"},
		{"legacy delivery", Order{DeliveryType: DeliveryTypeDelivery, LegacyAddress: addr("Marta - San Martin 123")}, "Marta"},
		{"legacy delivery unknown", Order{DeliveryType: DeliveryTypeDelivery, LegacyAddress: addr(UnknownClient + " - Belgrano 50")}, ""},
		{"legacy delivery empty name", Order{DeliveryType: DeliveryTypeDelivery, LegacyAddress: addr(" - Belgrano 50")}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.order.ClientLabel())
		})
	}
}
