package domain

import "github.com/shopspring/decimal"

// ProductVariation is a selectable variant of a product with its own price delta.
type ProductVariation struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

// Product is the catalog descriptor consumed by the cart. It is owned by the catalog
// and never mutated by the engine.
type Product struct {
	ID          string             `json:"id"`
	Name        string             `json:"name"`
	BasePrice   decimal.Decimal    `json:"basePrice"`
	Variations  []ProductVariation `json:"variations,omitempty"`
	TaxCategory string             `json:"taxCategory,omitempty"`
}

// Variation looks up a variation by id.
func (p *Product) Variation(id string) (ProductVariation, bool) {
	for _, v := range p.Variations {
		if v.ID == id {
			return v, true
		}
	}
	return ProductVariation{}, false
}

// PriceFor resolves the unit price for the given variation. An empty or unknown
// variation id yields the base price.
func (p *Product) PriceFor(variationID string) decimal.Decimal {
	if variationID == "" {
		return p.BasePrice
	}
	if v, ok := p.Variation(variationID); ok {
		return p.BasePrice.Add(v.PriceAdjustment)
	}
	return p.BasePrice
}
