package routes

import (
	"fastfast-logistics/controllers/auth"
	"fastfast-logistics/controllers/booking"
	"fastfast-logistics/controllers/coupon"
	"fastfast-logistics/controllers/rider"
	"fastfast-logistics/controllers/tracking"
	"fastfast-logistics/controllers/user"
	"fastfast-logistics/logger"
	"fastfast-logistics/middleware"
	userModel "fastfast-logistics/models/user"
	"fastfast-logistics/services/account"
	bookingService "fastfast-logistics/services/booking"
	couponService "fastfast-logistics/services/coupon"
	"fastfast-logistics/services/event_bus"
	riderService "fastfast-logistics/services/rider"
	"fastfast-logistics/services/session"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Dependencies are built once in main and shared by every controller.
type Dependencies struct {
	DB          *gorm.DB
	Sessions    *session.Manager
	Events      event_bus.Publisher
	AsyncLogger *logger.AsyncLogger
	PublicURL   string
}

func SetupRoutes(app *fiber.App, deps Dependencies) {
	guard := middleware.NewGuard(deps.DB, deps.Sessions)
	authenticated := guard.RequireAuthentication()
	riderOnly := guard.RequireRoles(userModel.RoleRider)
	adminOnly := guard.RequireRoles(userModel.RoleAdmin)

	accounts := account.NewService(deps.DB, deps.Sessions)
	coupons := couponService.NewService(deps.DB)
	bookings := bookingService.NewService(deps.DB, coupons, deps.Events)
	riders := riderService.NewService(deps.DB)

	authController := auth.NewAuthController(accounts)
	bookingController := booking.NewBookingController(bookings)
	trackingController := tracking.NewTrackingController(bookings, deps.PublicURL)
	couponController := coupon.NewCouponController(coupons)
	riderController := rider.NewRiderController(riders)
	userController := user.NewUserController(accounts, riders)

	// Index route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"service": "fastfast-logistics", "status": "ok"})
	})

	api := app.Group("/api", middleware.Audit(deps.AsyncLogger))

	/*=============================================================================
	| Public Routes
	===============================================================================*/
	api.Post("/register", authController.Register)
	api.Post("/login", authController.Login)
	api.Get("/quote", bookingController.Quote)

	api.Get("/tracking", trackingController.Show)
	api.Post("/tracking", trackingController.Lookup)
	api.Get("/tracking/:trackingNumber/label", trackingController.Label)

	/*=============================================================================
	| Protected Routes
	===============================================================================*/
	authGroup := api.Group("/auth", authenticated)
	authGroup.Get("/profile", authController.Profile)
	authGroup.Post("/logout", authController.LogOut)

	/*=============================================================================
	| Booking Routes
	===============================================================================*/
	bookingGroup := api.Group("/bookings")
	bookingGroup.Post("/", authenticated, bookingController.Store)
	bookingGroup.Get("/", authenticated, bookingController.Index)
	bookingGroup.Post("/cancel", authenticated, bookingController.Cancel)
	bookingGroup.Get("/:id", authenticated, bookingController.Show)
	bookingGroup.Get("/:id/history", authenticated, bookingController.History)
	bookingGroup.Put("/:id", riderOnly, bookingController.RiderRespond)

	/*=============================================================================
	| Rider Routes
	===============================================================================*/
	riderGroup := api.Group("/rider", riderOnly)
	riderGroup.Post("/profile", riderController.SaveProfile)
	riderGroup.Get("/profile", riderController.Profile)
	riderGroup.Get("/bookings/available", bookingController.Available)
	riderGroup.Get("/bookings", bookingController.Assigned)

	/*=============================================================================
	| Coupon Routes
	===============================================================================*/
	couponGroup := api.Group("/coupons")
	couponGroup.Get("/validate", authenticated, couponController.Validate)
	couponGroup.Post("/validate", authenticated, couponController.ValidateBody)
	couponGroup.Get("/", adminOnly, couponController.Index)
	couponGroup.Post("/", adminOnly, couponController.Store)
	couponGroup.Put("/:id", adminOnly, couponController.Update)
	couponGroup.Delete("/:id", adminOnly, couponController.Destroy)

	/*=============================================================================
	| Admin Routes
	===============================================================================*/
	adminGroup := api.Group("/admin", adminOnly)
	adminGroup.Put("/update-status", bookingController.AdminUpdateStatus)
	adminGroup.Get("/bookings", bookingController.AdminIndex)
	adminGroup.Get("/users", userController.Index)
	adminGroup.Put("/users/:id/role", userController.UpdateRole)
	adminGroup.Get("/riders", userController.ListRiders)
}
