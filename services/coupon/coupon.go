package coupon

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"fastfast-logistics/apperror"
	couponModel "fastfast-logistics/models/coupon"
	couponTypes "fastfast-logistics/types/coupon"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReasonNotFound     = "coupon not found"
	ReasonInactive     = "coupon is inactive"
	ReasonExpired      = "coupon has expired"
	ReasonLimitReached = "coupon usage limit reached"
)

var hundred = decimal.NewFromInt(100)

type Service struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewService(db *gorm.DB) *Service {
	return &Service{DB: db, Now: time.Now}
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// Discount returns what c takes off price, never more than price.
func Discount(c couponModel.Coupon, price decimal.Decimal) decimal.Decimal {
	if !price.IsPositive() {
		return decimal.Zero
	}

	var amount decimal.Decimal
	switch c.DiscountType {
	case couponModel.DiscountPercentage:
		amount = price.Mul(c.DiscountValue).Div(hundred).Round(2)
	case couponModel.DiscountFixedAmount:
		amount = c.DiscountValue
	default:
		return decimal.Zero
	}

	if amount.GreaterThan(price) {
		return price
	}
	return amount
}

// unavailableReason is empty when the coupon can be redeemed at t.
func unavailableReason(c couponModel.Coupon, t time.Time) string {
	switch {
	case !c.IsActive:
		return ReasonInactive
	case t.After(c.ExpiryDate):
		return ReasonExpired
	case c.UsedCount >= c.UsageLimit:
		return ReasonLimitReached
	default:
		return ""
	}
}

// Validate looks the code up without changing usedCount. A missing coupon
// is reported as invalid, not as an error. price, when given, is used to
// compute the discount amount.
func (s *Service) Validate(ctx context.Context, code string, price *decimal.Decimal) (couponTypes.Validation, error) {
	result := couponTypes.Validation{Code: normalizeCode(code)}
	if result.Code == "" {
		return result, apperror.Validation("code is required")
	}

	var c couponModel.Coupon
	err := s.DB.WithContext(ctx).Where("code = ?", result.Code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result.Reason = ReasonNotFound
		return result, nil
	}
	if err != nil {
		return result, apperror.Internal("failed to look up coupon", err)
	}

	if reason := unavailableReason(c, s.Now()); reason != "" {
		result.Reason = reason
		return result, nil
	}

	value := c.DiscountValue
	expiry := c.ExpiryDate
	result.Valid = true
	result.DiscountType = c.DiscountType
	result.DiscountValue = &value
	result.ExpiresAt = &expiry
	if price != nil {
		amount := Discount(c, *price)
		result.DiscountAmount = &amount
	}
	return result, nil
}

// Redeem consumes one use of code on tx and returns the discount for price.
// The increment is conditional so concurrent redemptions cannot push
// usedCount past usageLimit.
func (s *Service) Redeem(tx *gorm.DB, code string, price decimal.Decimal) (decimal.Decimal, error) {
	code = normalizeCode(code)

	var c couponModel.Coupon
	err := tx.Where("code = ?", code).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return decimal.Zero, apperror.Validation(ReasonNotFound)
	}
	if err != nil {
		return decimal.Zero, fmt.Errorf("load coupon %s: %w", code, err)
	}
	if reason := unavailableReason(c, s.Now()); reason != "" {
		return decimal.Zero, apperror.Validation(reason)
	}

	res := tx.Model(&couponModel.Coupon{}).
		Where("id = ? AND is_active = ? AND used_count < usage_limit", c.ID, true).
		Update("used_count", gorm.Expr("used_count + 1"))
	if res.Error != nil {
		return decimal.Zero, fmt.Errorf("redeem coupon %s: %w", code, res.Error)
	}
	if res.RowsAffected == 0 {
		return decimal.Zero, apperror.Validation(ReasonLimitReached)
	}

	return Discount(c, price), nil
}

func (s *Service) Create(ctx context.Context, req couponTypes.CreateRequest) (*couponModel.Coupon, error) {
	c, err := req.ToModel()
	if err != nil {
		return nil, apperror.Validation(err.Error())
	}

	if err := s.DB.WithContext(ctx).Create(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperror.Conflict(fmt.Sprintf("coupon %s already exists", c.Code))
		}
		return nil, apperror.Internal("failed to create coupon", err)
	}
	return &c, nil
}

func (s *Service) List(ctx context.Context) ([]couponModel.Coupon, error) {
	var coupons []couponModel.Coupon
	if err := s.DB.WithContext(ctx).Order("created_at DESC").Find(&coupons).Error; err != nil {
		return nil, apperror.Internal("failed to list coupons", err)
	}
	return coupons, nil
}

func (s *Service) Get(ctx context.Context, id uint) (*couponModel.Coupon, error) {
	var c couponModel.Coupon
	err := s.DB.WithContext(ctx).First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperror.NotFound("coupon not found")
	}
	if err != nil {
		return nil, apperror.Internal("failed to load coupon", err)
	}
	return &c, nil
}

func (s *Service) Update(ctx context.Context, id uint, req couponTypes.UpdateRequest) (*couponModel.Coupon, error) {
	var c couponModel.Coupon
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.NotFound("coupon not found")
			}
			return err
		}
		if err := req.Apply(&c); err != nil {
			return apperror.Validation(err.Error())
		}
		return tx.Select("discount_type", "discount_value", "expiry_date", "usage_limit", "is_active", "updated_at").
			Save(&c).Error
	})
	if err != nil {
		return nil, apperror.Wrap("failed to update coupon", err)
	}
	return &c, nil
}

// Delete removes the coupon permanently.
func (s *Service) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&couponModel.Coupon{}, id)
	if res.Error != nil {
		return apperror.Internal("failed to delete coupon", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperror.NotFound("coupon not found")
	}
	return nil
}
