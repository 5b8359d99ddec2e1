package model

import "time"

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	StatusPending        OrderStatus = "Pending"
	StatusConfirmed      OrderStatus = "Confirmed"
	StatusPreparing      OrderStatus = "Preparing"
	StatusOutForDelivery OrderStatus = "Out for Delivery"
	StatusDelivered      OrderStatus = "Delivered"
	StatusCancelled      OrderStatus = "Cancelled"
)

// OrderStatuses lists every valid status.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusPreparing,
	StatusOutForDelivery,
	StatusDelivered,
	StatusCancelled,
}

// Valid reports whether s is a known status.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Terminal reports whether an order in this status has left the fulfilment
// pipeline. Only terminal orders may be deleted.
func (s OrderStatus) Terminal() bool {
	return s == StatusDelivered || s == StatusCancelled
}

// Order is created by placing a cart and is immutable afterwards except for
// its status. CustomerName is denormalised at placement time.
type Order struct {
	ID           string      `json:"id" bson:"-"`
	UserID       string      `json:"userId" bson:"userId"`
	CustomerName string      `json:"customerName" bson:"customerName"`
	Items        []CartItem  `json:"items" bson:"items"`
	Total        float64     `json:"total" bson:"total"`
	Status       OrderStatus `json:"status" bson:"status"`
	OrderDate    time.Time   `json:"orderDate" bson:"orderDate"`
}

// ApplyStatus records a status transition. Transitions are currently
// unrestricted; every status change is routed through here so a legality
// check has a single place to land.
func (o *Order) ApplyStatus(s OrderStatus) {
	o.Status = s
}
