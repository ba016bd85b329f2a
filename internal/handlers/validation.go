package handlers

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/SscSPs/pos_terminal/internal/core/domain"
	"github.com/SscSPs/pos_terminal/internal/dto"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	registerValidatorsOnce sync.Once
	registerValidatorsErr  error
	hundred                = decimal.NewFromInt(100)
)

// RegisterValidators teaches gin's validator about decimal amounts and the
// cross-field rules of discount and split requests. Safe to call repeatedly.
func RegisterValidators() error {
	registerValidatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			registerValidatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		v.RegisterStructValidation(discountStructLevel, dto.DiscountRequest{})
		v.RegisterStructValidation(addSplitStructLevel, dto.AddSplitRequest{})
	})
	return registerValidatorsErr
}

// decimalValue exposes decimals to numeric tags such as gte and lte.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.InexactFloat64()
	}
	return nil
}

func discountStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.DiscountRequest)
	if req.DiscountType == domain.DiscountPercentage && req.Discount.GreaterThan(hundred) {
		sl.ReportError(req.Discount, "Discount", "discount", "discountbounds", "100")
	}
}

func addSplitStructLevel(sl validator.StructLevel) {
	req := sl.Current().Interface().(dto.AddSplitRequest)
	switch req.SplitType {
	case domain.SplitPercentage:
		if req.Percentage == nil {
			sl.ReportError(req.Percentage, "Percentage", "percentage", "required_for_percentage", "")
		}
	case domain.SplitItems:
		if len(req.ItemIDs) == 0 {
			sl.ReportError(req.ItemIDs, "ItemIDs", "itemIds", "required_for_items", "")
		}
	}
}
