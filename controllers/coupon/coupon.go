package coupon

import (
	"fastfast-logistics/logger"
	couponService "fastfast-logistics/services/coupon"
	couponTypes "fastfast-logistics/types/coupon"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

type CouponController struct {
	Coupons *couponService.Service
}

func NewCouponController(coupons *couponService.Service) *CouponController {
	return &CouponController{Coupons: coupons}
}

func couponID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (cc *CouponController) validate(c *fiber.Ctx, code string, price *decimal.Decimal) error {
	result, err := cc.Coupons.Validate(c.UserContext(), code, price)
	if err != nil {
		return utils.SendError(c, err)
	}
	message := "Coupon is valid"
	if !result.Valid {
		message = "Coupon is not valid"
	}
	return utils.SendSuccess(c, fiber.StatusOK, message, result)
}

// Validate is GET /coupons/validate?code=&price=.
func (cc *CouponController) Validate(c *fiber.Ctx) error {
	var price *decimal.Decimal
	if raw := c.Query("price"); raw != "" {
		p, err := decimal.NewFromString(raw)
		if err != nil {
			return utils.SendBadRequest(c, "price must be a number")
		}
		price = &p
	}
	return cc.validate(c, c.Query("code"), price)
}

func (cc *CouponController) ValidateBody(c *fiber.Ctx) error {
	var req couponTypes.ValidateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	return cc.validate(c, req.Code, req.Price)
}

func (cc *CouponController) Index(c *fiber.Ctx) error {
	coupons, err := cc.Coupons.List(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Coupons fetched successfully", coupons)
}

func (cc *CouponController) Store(c *fiber.Ctx) error {
	var req couponTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	coupon, err := cc.Coupons.Create(c.UserContext(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	logger.Success("Coupon created: " + coupon.Code)
	return utils.SendSuccess(c, fiber.StatusCreated, "Coupon created successfully", coupon)
}

func (cc *CouponController) Update(c *fiber.Ctx) error {
	id, ok := couponID(c)
	if !ok {
		return utils.SendBadRequest(c, "Invalid coupon id")
	}
	var req couponTypes.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	coupon, err := cc.Coupons.Update(c.UserContext(), id, req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Coupon updated successfully", coupon)
}

func (cc *CouponController) Destroy(c *fiber.Ctx) error {
	id, ok := couponID(c)
	if !ok {
		return utils.SendBadRequest(c, "Invalid coupon id")
	}
	if err := cc.Coupons.Delete(c.UserContext(), id); err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Coupon deleted successfully", nil)
}
