package coupon

import (
	"time"

	"github.com/shopspring/decimal"
)

type DiscountType string

const (
	DiscountPercentage  DiscountType = "PERCENTAGE"
	DiscountFixedAmount DiscountType = "FIXED_AMOUNT"
)

func (d DiscountType) IsValid() bool {
	return d == DiscountPercentage || d == DiscountFixedAmount
}

// Coupon codes are always stored upper-cased.
type Coupon struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	Code          string          `gorm:"type:varchar(50);not null;unique" json:"code"`
	DiscountType  DiscountType    `gorm:"type:varchar(20);not null" json:"discountType"`
	DiscountValue decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discountValue"`
	ExpiryDate    time.Time       `gorm:"not null" json:"expiryDate"`
	UsageLimit    int             `gorm:"not null" json:"usageLimit"`
	UsedCount     int             `gorm:"not null;default:0" json:"usedCount"`
	IsActive      bool            `gorm:"not null" json:"isActive"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (Coupon) TableName() string {
	return "coupons"
}

// IsRedeemable applies the single validity policy: active, unexpired and
// under its usage limit.
func (c Coupon) IsRedeemable(at time.Time) bool {
	return c.IsActive && !at.After(c.ExpiryDate) && c.UsedCount < c.UsageLimit
}
