package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// --- Order Structures (Matching the ordering API JSON) ---

type Order struct {
	ID             string           `json:"id"`
	Status         OrderStatus      `json:"status"`
	CreatedAt      time.Time        `json:"createdAt"`
	UpdatedAt      time.Time        `json:"updatedAt"`
	Total          decimal.Decimal  `json:"total"`
	CustomerName   string           `json:"customerName"`
	CustomerPhone  string           `json:"customerPhone,omitempty"`
	CustomerID     string           `json:"customerId,omitempty"`
	OrderType      OrderType        `json:"orderType"`
	PaymentMethod  string           `json:"paymentMethod,omitempty"`
	ChangeFor      *decimal.Decimal `json:"changeFor,omitempty"`
	Notes          string           `json:"notes,omitempty"`
	DeliveryFee    *decimal.Decimal `json:"deliveryFee,omitempty"`
	DiscountAmount *decimal.Decimal `json:"discountAmount,omitempty"`
	Address        *Address         `json:"address,omitempty"`
	Items          []OrderItem      `json:"items"`
	Promotion      *Promotion       `json:"promotion,omitempty"`
	Coupon         *Coupon          `json:"coupon,omitempty"`

	// Set by the remote system only. A non-nil value means the kitchen
	// receipt was already printed and further attempts are no-ops.
	PrintedAt *time.Time `json:"kitchenReceiptAutoPrintedAt,omitempty"`
}

type Address struct {
	Street       string `json:"street,omitempty"`
	Number       string `json:"number,omitempty"`
	Complement   string `json:"complement,omitempty"`
	Neighborhood string `json:"neighborhood,omitempty"`
	City         string `json:"city,omitempty"`
	State        string `json:"state,omitempty"`
	CEP          string `json:"cep,omitempty"`
}

type OrderItem struct {
	ID        string           `json:"id"`
	Quantity  int              `json:"quantity"`
	Price     *decimal.Decimal `json:"price,omitempty"`
	ProductID string           `json:"productId,omitempty"`
	ComboID   string           `json:"comboId,omitempty"`
	Product   *Product         `json:"product,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

type Product struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Promotion struct {
	Name  string          `json:"name,omitempty"`
	Type  PromotionType   `json:"type,omitempty"`
	Value decimal.Decimal `json:"value"`
}

type Coupon struct {
	Code string `json:"code,omitempty"`
}

// Printed reports whether the remote system already recorded a print.
func (o *Order) Printed() bool {
	return o.PrintedAt != nil
}

// ShortID is the order reference used in logs and on receipts.
func ShortID(id string, n int) string {
	if len(id) <= n {
		return id
	}
	return id[len(id)-n:]
}
