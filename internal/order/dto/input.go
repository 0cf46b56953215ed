package dto

import "github.com/donarib/storefront-service/internal/model"

type PlaceOrderInput struct {
	Items         model.OrderItems
	Customer      model.Customer
	PaymentMethod model.PaymentMethod
	Status        model.OrderStatus
}

type CounterItem struct {
	ProductID string
	Size      model.Size
	Quantity  int
}

type CounterOrderInput struct {
	Items        []CounterItem
	CustomerName string
}
