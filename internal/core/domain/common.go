package domain

import "time"

// AuditFields holds the creation and last-mutation timestamps of terminal entities.
// UpdatedAt is refreshed by every mutating engine command.
type AuditFields struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// DiscountType tells how a discount value is interpreted.
type DiscountType string

const (
	DiscountFixed      DiscountType = "fixed"
	DiscountPercentage DiscountType = "percentage"
)

// IsValid reports whether the discount type is one of the known values.
func (t DiscountType) IsValid() bool {
	return t == DiscountFixed || t == DiscountPercentage
}
