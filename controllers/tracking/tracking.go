package tracking

import (
	"fastfast-logistics/logger"
	bookingService "fastfast-logistics/services/booking"
	trackingService "fastfast-logistics/services/tracking"
	bookingTypes "fastfast-logistics/types/booking"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

// TrackingController serves the public shipment lookup.
type TrackingController struct {
	Bookings  *bookingService.Service
	PublicURL string
}

func NewTrackingController(bookings *bookingService.Service, publicURL string) *TrackingController {
	return &TrackingController{Bookings: bookings, PublicURL: publicURL}
}

func (tc *TrackingController) track(c *fiber.Ctx, trackingNumber string) error {
	view, err := tc.Bookings.Track(c.UserContext(), trackingNumber)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Shipment found", view)
}

// Show is GET /tracking?trackingNumber=.
func (tc *TrackingController) Show(c *fiber.Ctx) error {
	return tc.track(c, c.Query("trackingNumber"))
}

// Lookup is POST /tracking with {"trackingNumber": "..."}.
func (tc *TrackingController) Lookup(c *fiber.Ctx) error {
	var req bookingTypes.TrackingRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}
	return tc.track(c, req.TrackingNumber)
}

// Label renders a QR code PNG for an existing shipment.
func (tc *TrackingController) Label(c *fiber.Ctx) error {
	view, err := tc.Bookings.Track(c.UserContext(), c.Params("trackingNumber"))
	if err != nil {
		return utils.SendError(c, err)
	}

	png, err := trackingService.LabelQR(tc.PublicURL, view.TrackingNumber, c.QueryInt("size", trackingService.DefaultLabelSize))
	if err != nil {
		logger.Error("Failed to render tracking label", err)
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/png")
	return c.Status(fiber.StatusOK).Send(png)
}
