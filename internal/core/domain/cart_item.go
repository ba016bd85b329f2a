package domain

import "github.com/shopspring/decimal"

// Modifier is a named price add-on attached to a cart item (e.g. "extra cheese").
type Modifier struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItem is one product line within a transaction.
// Subtotal and Total are derived by the pricing calculator and never set by callers.
type CartItem struct {
	ID           string          `json:"id"`
	Product      *Product        `json:"product"` // shared, read-only
	VariationID  string          `json:"variationId,omitempty"`
	Quantity     int             `json:"quantity"`
	UnitPrice    decimal.Decimal `json:"unitPrice"` // captured at add time
	Discount     decimal.Decimal `json:"discount"`
	DiscountType DiscountType    `json:"discountType"`
	Modifiers    []Modifier      `json:"modifiers"`
	Note         string          `json:"note,omitempty"`
	Tax          decimal.Decimal `json:"tax"`
	Subtotal     decimal.Decimal `json:"subtotal"`
	Total        decimal.Decimal `json:"total"`
}

// Clone copies the item. The product pointer is shared on purpose.
func (i CartItem) Clone() CartItem {
	c := i
	c.Modifiers = append([]Modifier(nil), i.Modifiers...)
	if c.Modifiers == nil {
		c.Modifiers = []Modifier{}
	}
	return c
}

// ModifierIndex returns the position of the modifier with the given id, or -1.
func (i *CartItem) ModifierIndex(modifierID string) int {
	for idx := range i.Modifiers {
		if i.Modifiers[idx].ID == modifierID {
			return idx
		}
	}
	return -1
}
