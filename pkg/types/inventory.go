package types

import "time"

// Inventory categories.
const (
	CategoryTea     = "tea"
	CategoryMilk    = "milk"
	CategoryTopping = "topping"
	CategorySyrup   = "syrup"
	CategoryCup     = "cup"
)

// InventoryCategories lists the recognized categories in display order.
var InventoryCategories = []string{
	CategoryTea,
	CategoryMilk,
	CategoryTopping,
	CategorySyrup,
	CategoryCup,
}

// Stock statuses derived from CurrentStock and Threshold.
const (
	StockOK  = "ok"
	StockLow = "low"
	StockOut = "out"
)

// StockStatuses lists the stock statuses.
var StockStatuses = []string{StockOK, StockLow, StockOut}

// Supply order urgencies, least to most pressing.
const (
	UrgencyLow      = "low"
	UrgencyNormal   = "normal"
	UrgencyHigh     = "high"
	UrgencyCritical = "critical"
)

// SupplyUrgencies lists the supply order urgencies.
var SupplyUrgencies = []string{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}

// ValidUrgency reports whether s is a recognized supply order urgency.
func ValidUrgency(s string) bool {
	for _, known := range SupplyUrgencies {
		if s == known {
			return true
		}
	}
	return false
}

// InventoryItem is one tracked supply (tea leaves, milk, toppings, cups).
type InventoryItem struct {
	ItemID       string    `json:"item_id" yaml:"item_id"`
	Name         string    `json:"name" yaml:"name"`
	Category     string    `json:"category" yaml:"category"`
	CurrentStock float64   `json:"current_stock" yaml:"current_stock"`
	Threshold    float64   `json:"threshold" yaml:"threshold"`
	Unit         string    `json:"unit" yaml:"unit"`
	Supplier     string    `json:"supplier" yaml:"supplier"`
	UpdatedAt    time.Time `json:"updated_at" yaml:"updated_at"`
}

// Status reports out when nothing is left, low when stock is under the
// reorder threshold, and ok otherwise.
func (i *InventoryItem) Status() string {
	switch {
	case i.CurrentStock <= 0:
		return StockOut
	case i.CurrentStock < i.Threshold:
		return StockLow
	default:
		return StockOK
	}
}

// Adjust adds delta (negative to consume) to the current stock.
// Returns ErrInsufficientStock if the result would be negative; the item is
// left unchanged in that case.
func (i *InventoryItem) Adjust(delta float64) error {
	next := i.CurrentStock + delta
	if next < 0 {
		return ErrInsufficientStock
	}
	i.CurrentStock = next
	i.UpdatedAt = time.Now()
	return nil
}

// Restock receives qty units of a supply order. A non-empty supplier
// replaces the item's supplier. Returns ErrInvalidQuantity unless qty is
// positive.
func (i *InventoryItem) Restock(qty float64, supplier string) error {
	if !(qty > 0) {
		return ErrInvalidQuantity
	}
	if err := i.Adjust(qty); err != nil {
		return err
	}
	if supplier != "" {
		i.Supplier = supplier
	}
	return nil
}

// Validate checks the fields required to persist the item.
func (i *InventoryItem) Validate() error {
	if i.Name == "" {
		return ErrInvalidName
	}
	if !ValidCategory(i.Category) {
		return ErrInvalidCategory
	}
	if i.CurrentStock < 0 || i.Threshold < 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// ValidCategory reports whether c is a recognized inventory category.
func ValidCategory(c string) bool {
	for _, known := range InventoryCategories {
		if c == known {
			return true
		}
	}
	return false
}
