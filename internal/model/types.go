package model

type OrderStatus string

const (
	OrderStatusPending             OrderStatus = "PENDING"
	OrderStatusConfirmed           OrderStatus = "CONFIRMED"
	OrderStatusAwaitingCashPayment OrderStatus = "AWAITING_CASH_PAYMENT"
	OrderStatusPreparing           OrderStatus = "PREPARING"
	OrderStatusReady               OrderStatus = "READY"
	OrderStatusOutForDelivery      OrderStatus = "OUT_FOR_DELIVERY"
	OrderStatusDelivered           OrderStatus = "DELIVERED"
	OrderStatusCancelled           OrderStatus = "CANCELLED"
)

// Printable reports whether a kitchen receipt may be printed for the status.
func (s OrderStatus) Printable() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusAwaitingCashPayment:
		return true
	default:
		return false
	}
}

type OrderType string

const (
	OrderTypeDelivery OrderType = "DELIVERY"
	OrderTypePickup   OrderType = "PICKUP"
	OrderTypeDineIn   OrderType = "DINE_IN"
)

type PromotionType string

const (
	PromotionPercentage PromotionType = "PERCENTAGE"
	PromotionFixed      PromotionType = "FIXED"
)

type PrinterType string

const (
	PrinterTypeThermal PrinterType = "thermal"
	PrinterTypeSystem  PrinterType = "system"
)
