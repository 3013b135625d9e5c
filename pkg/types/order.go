package types

import (
	"math"
	"time"
)

// Order statuses. An order moves pending -> processing -> completed, and
// may be cancelled while it is still pending or processing.
const (
	OrderPending    = "pending"
	OrderProcessing = "processing"
	OrderCompleted  = "completed"
	OrderCancelled  = "cancelled"
)

// OrderStatuses lists the order statuses in lifecycle order.
var OrderStatuses = []string{OrderPending, OrderProcessing, OrderCompleted, OrderCancelled}

// TaxRate is applied to the order subtotal.
const TaxRate = 0.08

// orderTransitions lists the statuses reachable from each status.
var orderTransitions = map[string][]string{
	OrderPending:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderCompleted, OrderCancelled},
}

// OrderLine is one customized drink on an order.
type OrderLine struct {
	Drink     string   `json:"drink" yaml:"drink"`
	Size      string   `json:"size,omitempty" yaml:"size,omitempty"`
	Sugar     string   `json:"sugar,omitempty" yaml:"sugar,omitempty"`
	Ice       string   `json:"ice,omitempty" yaml:"ice,omitempty"`
	Toppings  []string `json:"toppings,omitempty" yaml:"toppings,omitempty"`
	Quantity  int      `json:"quantity" yaml:"quantity"`
	UnitPrice float64  `json:"unit_price" yaml:"unit_price"`
}

// Amount returns quantity times unit price.
func (l OrderLine) Amount() float64 {
	return float64(l.Quantity) * l.UnitPrice
}

// Order is a customer order taken at the counter.
type Order struct {
	OrderID   string      `json:"order_id" yaml:"order_id"`
	Customer  string      `json:"customer" yaml:"customer"`
	Lines     []OrderLine `json:"lines" yaml:"lines"`
	Status    string      `json:"status" yaml:"status"`
	CreatedAt time.Time   `json:"created_at" yaml:"created_at"`
	UpdatedAt time.Time   `json:"updated_at" yaml:"updated_at"`
}

// Subtotal sums the line amounts.
func (o *Order) Subtotal() float64 {
	var sum float64
	for _, l := range o.Lines {
		sum += l.Amount()
	}
	return sum
}

// Tax returns the tax on the subtotal, rounded to cents.
func (o *Order) Tax() float64 {
	return math.Round(o.Subtotal()*TaxRate*100) / 100
}

// Total returns subtotal plus tax.
func (o *Order) Total() float64 {
	return o.Subtotal() + o.Tax()
}

// Validate checks the fields required to persist the order.
func (o *Order) Validate() error {
	if o.Customer == "" {
		return ErrInvalidName
	}
	if len(o.Lines) == 0 {
		return ErrInvalidData
	}
	for _, l := range o.Lines {
		if l.Drink == "" {
			return ErrInvalidName
		}
		if l.Quantity <= 0 || l.UnitPrice < 0 {
			return ErrInvalidQuantity
		}
	}
	return nil
}

// Transition moves the order to status.
// Returns ErrInvalidState for an unknown status and ErrInvalidTransition
// when the move is not allowed from the current status. Setting the current
// status again is a no-op.
func (o *Order) Transition(status string) error {
	if !ValidOrderStatus(status) {
		return ErrInvalidState
	}
	if status == o.Status {
		return nil
	}
	for _, next := range orderTransitions[o.Status] {
		if next == status {
			o.Status = status
			o.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrInvalidTransition
}

// ValidOrderStatus reports whether s is a recognized order status.
func ValidOrderStatus(s string) bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}
