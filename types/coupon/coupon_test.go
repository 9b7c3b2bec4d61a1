package coupon

import (
	"testing"

	couponModel "fastfast-logistics/models/coupon"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRequestToModel(t *testing.T) {
	inactive := false
	c, err := CreateRequest{
		Code:          " spring ",
		DiscountType:  "percentage",
		DiscountValue: decimal.NewFromInt(15),
		ExpiryDate:    "2026-04-30",
		UsageLimit:    50,
		IsActive:      &inactive,
	}.ToModel()
	require.NoError(t, err)

	assert.Equal(t, "SPRING", c.Code)
	assert.Equal(t, couponModel.DiscountPercentage, c.DiscountType)
	assert.False(t, c.IsActive)
	assert.Equal(t, 23, c.ExpiryDate.Hour())
	assert.Equal(t, 59, c.ExpiryDate.Minute())
}

func TestCreateRequestToModelErrors(t *testing.T) {
	base := CreateRequest{
		Code:          "X",
		DiscountType:  "FIXED_AMOUNT",
		DiscountValue: decimal.NewFromInt(300),
		ExpiryDate:    "2026-04-30",
		UsageLimit:    1,
	}

	tests := []struct {
		name   string
		mutate func(r *CreateRequest)
		want   string
	}{
		{"no code", func(r *CreateRequest) { r.Code = " " }, "code is required"},
		{"bad type", func(r *CreateRequest) { r.DiscountType = "BOGO" }, "discountType must be PERCENTAGE or FIXED_AMOUNT"},
		{"zero value", func(r *CreateRequest) { r.DiscountValue = decimal.Zero }, "discountValue must be greater than zero"},
		{"over 100 percent", func(r *CreateRequest) {
			r.DiscountType = "PERCENTAGE"
			r.DiscountValue = decimal.NewFromInt(101)
		}, "percentage discount cannot exceed 100"},
		{"no limit", func(r *CreateRequest) { r.UsageLimit = 0 }, "usageLimit must be greater than zero"},
		{"bad expiry", func(r *CreateRequest) { r.ExpiryDate = "April" }, "expiryDate must be a YYYY-MM-DD date"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := base
			tt.mutate(&r)
			_, err := r.ToModel()
			assert.EqualError(t, err, tt.want)
		})
	}
}

func TestUpdateRequestApply(t *testing.T) {
	existing := couponModel.Coupon{
		Code:          "SAVE10",
		DiscountType:  couponModel.DiscountPercentage,
		DiscountValue: decimal.NewFromInt(10),
		UsageLimit:    10,
		UsedCount:     4,
		IsActive:      true,
	}

	c := existing
	value := decimal.NewFromInt(250)
	fixed := "fixed_amount"
	require.NoError(t, UpdateRequest{DiscountType: &fixed, DiscountValue: &value}.Apply(&c))
	assert.Equal(t, couponModel.DiscountFixedAmount, c.DiscountType)
	assert.True(t, value.Equal(c.DiscountValue))

	// switching to percentage keeps the old value, which must still be valid
	c = existing
	c.DiscountType = couponModel.DiscountFixedAmount
	c.DiscountValue = decimal.NewFromInt(500)
	pct := "PERCENTAGE"
	assert.EqualError(t, UpdateRequest{DiscountType: &pct}.Apply(&c), "percentage discount cannot exceed 100")

	c = existing
	limit := 3
	assert.EqualError(t, UpdateRequest{UsageLimit: &limit}.Apply(&c), "usageLimit cannot be below usedCount (4)")
	assert.Equal(t, 10, c.UsageLimit)

	limit = 4
	require.NoError(t, UpdateRequest{UsageLimit: &limit}.Apply(&c))
	assert.Equal(t, 4, c.UsageLimit)
}
