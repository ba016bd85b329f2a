package dto

import (
	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ProductVariationRequest is a variation of the product being rung up.
type ProductVariationRequest struct {
	ID              string          `json:"id" binding:"required"`
	Name            string          `json:"name"`
	PriceAdjustment decimal.Decimal `json:"priceAdjustment"`
}

// ProductRequest carries the catalog descriptor resolved by the caller.
type ProductRequest struct {
	ID          string                    `json:"id" binding:"required"`
	Name        string                    `json:"name" binding:"max=128"`
	BasePrice   decimal.Decimal           `json:"basePrice" binding:"gte=0"`
	Variations  []ProductVariationRequest `json:"variations" binding:"omitempty,dive"`
	TaxCategory string                    `json:"taxCategory"`
}

// ToDomainProduct converts the request into a domain.Product.
func (p ProductRequest) ToDomainProduct() *domain.Product {
	variations := make([]domain.ProductVariation, len(p.Variations))
	for i, v := range p.Variations {
		variations[i] = domain.ProductVariation{ID: v.ID, Name: v.Name, PriceAdjustment: v.PriceAdjustment}
	}
	return &domain.Product{
		ID:          p.ID,
		Name:        p.Name,
		BasePrice:   p.BasePrice,
		Variations:  variations,
		TaxCategory: p.TaxCategory,
	}
}

// AddItemRequest adds a product line to the active transaction. Quantity defaults to 1.
type AddItemRequest struct {
	Product     ProductRequest `json:"product"`
	Quantity    int            `json:"quantity" binding:"omitempty,min=1"`
	VariationID string         `json:"variationId"`
}

// SetQuantityRequest replaces the quantity of a line.
type SetQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required,min=1"`
}

// SetUnitPriceRequest overrides the unit price of a line.
type SetUnitPriceRequest struct {
	UnitPrice decimal.Decimal `json:"unitPrice" binding:"gte=0"`
}

// SetNoteRequest writes a free-text note on a line.
type SetNoteRequest struct {
	Note string `json:"note" binding:"max=500"`
}

// AddModifierRequest attaches a price add-on to a line.
type AddModifierRequest struct {
	ID    string          `json:"id" binding:"max=64"`
	Name  string          `json:"name" binding:"required,max=64"`
	Price decimal.Decimal `json:"price" binding:"gte=0"`
}

// ModifierResponse is a price add-on of a line.
type ModifierResponse struct {
	ID    string          `json:"id"`
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

// CartItemResponse defines the data returned for a cart line.
type CartItemResponse struct {
	ID           string              `json:"id"`
	ProductID    string              `json:"productId"`
	ProductName  string              `json:"productName"`
	VariationID  string              `json:"variationId,omitempty"`
	Quantity     int                 `json:"quantity"`
	UnitPrice    decimal.Decimal     `json:"unitPrice"`
	Discount     decimal.Decimal     `json:"discount"`
	DiscountType domain.DiscountType `json:"discountType"`
	Modifiers    []ModifierResponse  `json:"modifiers"`
	Note         string              `json:"note,omitempty"`
	Tax          decimal.Decimal     `json:"tax"`
	Subtotal     decimal.Decimal     `json:"subtotal"`
	Total        decimal.Decimal     `json:"total"`
}

// ToCartItemResponse converts a domain.CartItem to CartItemResponse DTO.
func ToCartItemResponse(item *domain.CartItem) CartItemResponse {
	modifiers := make([]ModifierResponse, len(item.Modifiers))
	for i, m := range item.Modifiers {
		modifiers[i] = ModifierResponse{ID: m.ID, Name: m.Name, Price: m.Price}
	}
	resp := CartItemResponse{
		ID:           item.ID,
		VariationID:  item.VariationID,
		Quantity:     item.Quantity,
		UnitPrice:    item.UnitPrice,
		Discount:     item.Discount,
		DiscountType: item.DiscountType,
		Modifiers:    modifiers,
		Note:         item.Note,
		Tax:          item.Tax,
		Subtotal:     item.Subtotal,
		Total:        item.Total,
	}
	if item.Product != nil {
		resp.ProductID = item.Product.ID
		resp.ProductName = item.Product.Name
	}
	return resp
}

// ToCartItemResponses converts a slice of domain.CartItem to []CartItemResponse.
func ToCartItemResponses(items []domain.CartItem) []CartItemResponse {
	responses := make([]CartItemResponse, len(items))
	for i := range items {
		responses[i] = ToCartItemResponse(&items[i])
	}
	return responses
}
