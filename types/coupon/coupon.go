package coupon

import (
	"fmt"
	"strings"
	"time"

	couponModel "fastfast-logistics/models/coupon"
	"fastfast-logistics/utils"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type CreateRequest struct {
	Code          string          `json:"code"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	ExpiryDate    string          `json:"expiryDate"`
	UsageLimit    int             `json:"usageLimit"`
	IsActive      *bool           `json:"isActive"`
}

// ToModel validates the request and builds the coupon row.
// Expiry is the end of the named day.
func (r CreateRequest) ToModel() (couponModel.Coupon, error) {
	c := couponModel.Coupon{
		Code:          strings.ToUpper(strings.TrimSpace(r.Code)),
		DiscountType:  couponModel.DiscountType(strings.ToUpper(strings.TrimSpace(r.DiscountType))),
		DiscountValue: r.DiscountValue,
		UsageLimit:    r.UsageLimit,
		IsActive:      true,
	}
	if c.Code == "" {
		return c, fmt.Errorf("code is required")
	}
	if err := validateDiscount(c.DiscountType, c.DiscountValue); err != nil {
		return c, err
	}
	if c.UsageLimit <= 0 {
		return c, fmt.Errorf("usageLimit must be greater than zero")
	}
	expiry, err := utils.ParseDate(r.ExpiryDate)
	if err != nil {
		return c, fmt.Errorf("expiryDate must be a YYYY-MM-DD date")
	}
	c.ExpiryDate = now.With(expiry).EndOfDay()
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	return c, nil
}

type UpdateRequest struct {
	DiscountType  *string          `json:"discountType"`
	DiscountValue *decimal.Decimal `json:"discountValue"`
	ExpiryDate    *string          `json:"expiryDate"`
	UsageLimit    *int             `json:"usageLimit"`
	IsActive      *bool            `json:"isActive"`
}

// Apply validates the changes against the existing coupon and writes them
// onto it.
func (r UpdateRequest) Apply(c *couponModel.Coupon) error {
	discountType := c.DiscountType
	if r.DiscountType != nil {
		discountType = couponModel.DiscountType(strings.ToUpper(strings.TrimSpace(*r.DiscountType)))
	}
	value := c.DiscountValue
	if r.DiscountValue != nil {
		value = *r.DiscountValue
	}
	if err := validateDiscount(discountType, value); err != nil {
		return err
	}

	if r.UsageLimit != nil {
		if *r.UsageLimit <= 0 {
			return fmt.Errorf("usageLimit must be greater than zero")
		}
		if *r.UsageLimit < c.UsedCount {
			return fmt.Errorf("usageLimit cannot be below usedCount (%d)", c.UsedCount)
		}
		c.UsageLimit = *r.UsageLimit
	}
	if r.ExpiryDate != nil {
		expiry, err := utils.ParseDate(*r.ExpiryDate)
		if err != nil {
			return fmt.Errorf("expiryDate must be a YYYY-MM-DD date")
		}
		c.ExpiryDate = now.With(expiry).EndOfDay()
	}
	if r.IsActive != nil {
		c.IsActive = *r.IsActive
	}
	c.DiscountType = discountType
	c.DiscountValue = value
	return nil
}

func validateDiscount(t couponModel.DiscountType, value decimal.Decimal) error {
	if !t.IsValid() {
		return fmt.Errorf("discountType must be PERCENTAGE or FIXED_AMOUNT")
	}
	if !value.IsPositive() {
		return fmt.Errorf("discountValue must be greater than zero")
	}
	if t == couponModel.DiscountPercentage && value.GreaterThan(hundred) {
		return fmt.Errorf("percentage discount cannot exceed 100")
	}
	return nil
}

type ValidateRequest struct {
	Code  string           `json:"code"`
	Price *decimal.Decimal `json:"price"`
}

// Validation is the result of a coupon lookup.
type Validation struct {
	Code           string                   `json:"code"`
	Valid          bool                     `json:"valid"`
	DiscountType   couponModel.DiscountType `json:"discountType,omitempty"`
	DiscountValue  *decimal.Decimal         `json:"discountValue,omitempty"`
	DiscountAmount *decimal.Decimal         `json:"discountAmount,omitempty"`
	Reason         string                   `json:"reason,omitempty"`
	ExpiresAt      *time.Time               `json:"expiresAt,omitempty"`
}
