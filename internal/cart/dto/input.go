package dto

import "github.com/donarib/storefront-service/internal/model"

type AddItemInput struct {
	CartID    string
	ProductID string
	Size      model.Size
	Quantity  int
}

type CheckoutInput struct {
	CartID        string
	DeliveryType  model.DeliveryType
	CustomerName  string
	Street        string
	PaymentMethod model.PaymentMethod
	Lang          string
}

func (in *CheckoutInput) Customer() model.Customer {
	if in.DeliveryType == model.DeliveryTypeDelivery {
		return model.DeliveryCustomer(in.CustomerName, in.Street)
	}
	c := model.PickupCustomer(in.CustomerName)
	c.Kind = in.DeliveryType
	return c
}
