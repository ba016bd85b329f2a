package dto

import (
	"time"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest opens a new tab. An empty name defaults to "Sale #N".
type CreateTransactionRequest struct {
	Name string `json:"name" binding:"omitempty,max=64"`
}

// RenameTransactionRequest changes the display label of a tab.
type RenameTransactionRequest struct {
	Name string `json:"name" binding:"required,max=64"`
}

// SetCustomerRequest associates (or, with empty values, clears) a customer.
type SetCustomerRequest struct {
	CustomerID   string `json:"customerId" binding:"max=64"`
	CustomerName string `json:"customerName" binding:"max=128"`
}

// DiscountRequest sets a discount on an item or on the whole transaction.
// Percentages above 100 are rejected by struct-level validation.
type DiscountRequest struct {
	Discount     decimal.Decimal     `json:"discount" binding:"gte=0"`
	DiscountType domain.DiscountType `json:"discountType" binding:"required,oneof=fixed percentage"`
}

// AddChargeRequest attaches a named non-item charge.
type AddChargeRequest struct {
	ChargeID string          `json:"chargeId" binding:"required,max=64"`
	Name     string          `json:"name" binding:"required,max=64"`
	Amount   decimal.Decimal `json:"amount" binding:"gte=0"`
}

// AdditionalChargeResponse is a non-item charge of a transaction.
type AdditionalChargeResponse struct {
	ID     string          `json:"id"`
	Name   string          `json:"name"`
	Amount decimal.Decimal `json:"amount"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	ID                string                     `json:"id"`
	Name              string                     `json:"name"`
	Status            domain.TransactionStatus   `json:"status"`
	IsActive          bool                       `json:"isActive"`
	Items             []CartItemResponse         `json:"items"`
	AdditionalCharges []AdditionalChargeResponse `json:"additionalCharges"`
	Subtotal          decimal.Decimal            `json:"subtotal"`
	Tax               decimal.Decimal            `json:"tax"`
	Discount          decimal.Decimal            `json:"discount"`
	Total             decimal.Decimal            `json:"total"`
	CustomerID        string                     `json:"customerId,omitempty"`
	CustomerName      string                     `json:"customerName,omitempty"`
	SplitPayment      *SplitPaymentResponse      `json:"splitPayment,omitempty"`
	CreatedAt         time.Time                  `json:"createdAt"`
	UpdatedAt         time.Time                  `json:"updatedAt"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(tx *domain.Transaction, activeID string) TransactionResponse {
	charges := make([]AdditionalChargeResponse, len(tx.AdditionalCharges))
	for i, c := range tx.AdditionalCharges {
		charges[i] = AdditionalChargeResponse{ID: c.ID, Name: c.Name, Amount: c.Amount}
	}
	return TransactionResponse{
		ID:                tx.ID,
		Name:              tx.Name,
		Status:            tx.Status,
		IsActive:          tx.ID == activeID,
		Items:             ToCartItemResponses(tx.Items),
		AdditionalCharges: charges,
		Subtotal:          tx.Subtotal,
		Tax:               tx.Tax,
		Discount:          tx.Discount,
		Total:             tx.Total,
		CustomerID:        tx.CustomerID,
		CustomerName:      tx.CustomerName,
		SplitPayment:      ToSplitPaymentResponse(tx),
		CreatedAt:         tx.CreatedAt,
		UpdatedAt:         tx.UpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txs []domain.Transaction, activeID string) []TransactionResponse {
	responses := make([]TransactionResponse, len(txs))
	for i := range txs {
		responses[i] = ToTransactionResponse(&txs[i], activeID)
	}
	return responses
}
