package seeders

import (
	"context"
	"log"
	"time"

	couponModel "fastfast-logistics/models/coupon"
	"fastfast-logistics/services/account"

	"github.com/jinzhu/now"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SeedAdmin creates the ADMIN_EMAIL account when it does not exist yet.
func SeedAdmin(db *gorm.DB, email, password string) error {
	if email == "" || password == "" {
		log.Printf("⚠️  ADMIN_EMAIL or ADMIN_PASSWORD not set, skipping admin seed")
		return nil
	}

	log.Printf("🔍 Checking admin account %s...", email)
	admin, created, err := account.NewService(db, nil).EnsureAdmin(context.Background(), email, password)
	if err != nil {
		log.Printf("❌ Failed to seed admin: %v", err)
		return err
	}
	if created {
		log.Printf("✅ Added admin: %s", admin.Email)
	} else {
		log.Printf("✅ Admin %s already present. No seeding needed.", admin.Email)
	}
	return nil
}

func defaultCoupons(at time.Time) []couponModel.Coupon {
	expiry := now.With(at.AddDate(1, 0, 0)).EndOfDay()
	return []couponModel.Coupon{
		{Code: "WELCOME10", DiscountType: couponModel.DiscountPercentage, DiscountValue: decimal.NewFromInt(10), ExpiryDate: expiry, UsageLimit: 1000, IsActive: true},
		{Code: "FLAT500", DiscountType: couponModel.DiscountFixedAmount, DiscountValue: decimal.NewFromInt(500), ExpiryDate: expiry, UsageLimit: 200, IsActive: true},
		{Code: "SAPELE20", DiscountType: couponModel.DiscountPercentage, DiscountValue: decimal.NewFromInt(20), ExpiryDate: expiry, UsageLimit: 100, IsActive: false},
	}
}

// SeedCoupons inserts the sample coupons that are missing, by code.
func SeedCoupons(db *gorm.DB) error {
	log.Printf("🔍 Checking sample coupons...")

	coupons := defaultCoupons(time.Now())

	var existingCodes []string
	if err := db.Model(&couponModel.Coupon{}).Pluck("code", &existingCodes).Error; err != nil {
		log.Printf("❌ Failed to fetch existing coupon codes: %v", err)
		return err
	}
	existing := make(map[string]bool, len(existingCodes))
	for _, code := range existingCodes {
		existing[code] = true
	}

	var missing []couponModel.Coupon
	for _, c := range coupons {
		if !existing[c.Code] {
			missing = append(missing, c)
		}
	}

	log.Printf("📊 Coupons expected: %d, existing: %d, missing: %d", len(coupons), len(existingCodes), len(missing))
	if len(missing) == 0 {
		log.Printf("✅ All sample coupons are already present. No seeding needed.")
		return nil
	}

	successCount, failureCount := 0, 0
	for _, c := range missing {
		if err := db.Create(&c).Error; err != nil {
			log.Printf("❌ Failed to seed coupon %s: %v", c.Code, err)
			failureCount++
			continue
		}
		log.Printf("✅ Added: %s", c.Code)
		successCount++
	}

	log.Printf("🎉 Seeding completed! Successfully inserted %d coupons, %d failures", successCount, failureCount)
	return nil
}

// Run seeds the admin and the sample coupons.
func Run(db *gorm.DB, adminEmail, adminPassword string) error {
	if err := SeedAdmin(db, adminEmail, adminPassword); err != nil {
		return err
	}
	return SeedCoupons(db)
}
