// internal/domain/order/entity.go
package order

import (
	"time"
)

// OrderStatus represents the fulfilment stage of an order
type OrderStatus string

const (
	OrderStatusPlaced     OrderStatus = "placed"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipping   OrderStatus = "shipping"
	OrderStatusDelivered  OrderStatus = "delivered"
)

// PaymentStatus represents whether an order has been paid
type PaymentStatus string

const (
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusNotPaid PaymentStatus = "not paid"
)

// PaymentType represents how an order is paid
type PaymentType string

const (
	PaymentTypeNetbanking PaymentType = "netbanking"
	PaymentTypeUPI        PaymentType = "upi"
	PaymentTypeCOD        PaymentType = "cod"
)

// OrderStatuses lists every order status in declaration order
func OrderStatuses() []OrderStatus {
	return []OrderStatus{OrderStatusPlaced, OrderStatusProcessing, OrderStatusShipping, OrderStatusDelivered}
}

// PaymentStatuses lists every payment status in declaration order
func PaymentStatuses() []PaymentStatus {
	return []PaymentStatus{PaymentStatusPaid, PaymentStatusNotPaid}
}

// PaymentTypes lists every payment type in declaration order
func PaymentTypes() []PaymentType {
	return []PaymentType{PaymentTypeNetbanking, PaymentTypeUPI, PaymentTypeCOD}
}

func (s OrderStatus) IsValid() bool {
	for _, v := range OrderStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

func (s PaymentStatus) IsValid() bool {
	for _, v := range PaymentStatuses() {
		if s == v {
			return true
		}
	}
	return false
}

func (t PaymentType) IsValid() bool {
	for _, v := range PaymentTypes() {
		if t == v {
			return true
		}
	}
	return false
}

// Order represents a placed order and its monetary breakdown
type Order struct {
	ID                   uint          `gorm:"column:order_id;primaryKey" json:"id"`
	OrderNumber          string        `gorm:"column:order_number;size:50;unique;not null" json:"order_number"`
	UserID               *uint         `gorm:"column:user_id" json:"user_id"`
	OrderDate            time.Time     `gorm:"column:order_date;default:CURRENT_TIMESTAMP" json:"order_date"`
	TotalAmount          float64       `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`
	DiscountAmount       float64       `gorm:"column:discount_amount;type:numeric(10,2);default:0" json:"discount_amount"`
	GrossAmount          float64       `gorm:"column:gross_amount;type:numeric(10,2);not null" json:"gross_amount"`
	ShippingAmount       float64       `gorm:"column:shipping_amount;type:numeric(10,2);default:0" json:"shipping_amount"`
	NetAmount            float64       `gorm:"column:net_amount;type:numeric(10,2);not null" json:"net_amount"`
	OrderStatus          OrderStatus   `gorm:"column:order_status;type:order_status;not null" json:"order_status"`
	PaymentStatus        PaymentStatus `gorm:"column:payment_status;type:payment_status;not null" json:"payment_status"`
	PaymentType          PaymentType   `gorm:"column:payment_type;type:payment_type;not null" json:"payment_type"`
	PaymentTransactionID *string       `gorm:"column:payment_transaction_id;size:100" json:"payment_transaction_id,omitempty"`
	ShippingAddressID    *uint         `gorm:"column:shipping_address_id" json:"shipping_address_id"`
	PaymentID            *uint         `gorm:"column:payment_id" json:"payment_id"`

	// Relationships
	Items []OrderItem `gorm:"foreignKey:OrderID;references:ID" json:"items,omitempty"`
}

// OrderItem represents a line of an order
type OrderItem struct {
	ID              uint    `gorm:"column:order_item_id;primaryKey" json:"id"`
	OrderID         *uint   `gorm:"column:order_id" json:"order_id"`
	VariantID       *uint   `gorm:"column:variant_id" json:"variant_id"`
	PriceAtPurchase float64 `gorm:"column:price_at_purchase;type:numeric(10,2);not null" json:"price_at_purchase"`
	Quantity        int     `gorm:"column:quantity;not null;check:quantity > 0" json:"quantity"`
	TotalAmount     float64 `gorm:"column:total_amount;type:numeric(10,2);not null" json:"total_amount"`
}

// Payment represents a payment made against an order
type Payment struct {
	ID            uint      `gorm:"column:payment_id;primaryKey" json:"id"`
	OrderID       *uint     `gorm:"column:order_id" json:"order_id"`
	PaymentMethod string    `gorm:"column:payment_method;size:50;not null" json:"payment_method"`
	PaymentDate   time.Time `gorm:"column:payment_date;default:CURRENT_TIMESTAMP" json:"payment_date"`
	Amount        float64   `gorm:"column:amount;type:numeric(10,2);not null" json:"amount"`
	Status        string    `gorm:"column:status;size:50;not null" json:"status"`
}

// TableName overrides
func (Order) TableName() string     { return "orders" }
func (OrderItem) TableName() string { return "order_items" }
func (Payment) TableName() string   { return "payments" }
