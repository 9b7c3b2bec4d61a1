package booking

import (
	"fmt"
	"strings"

	"fastfast-logistics/logger"
	"fastfast-logistics/middleware"
	bookingModel "fastfast-logistics/models/booking"
	bookingService "fastfast-logistics/services/booking"
	"fastfast-logistics/services/pricing"
	"fastfast-logistics/types"
	bookingTypes "fastfast-logistics/types/booking"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

// BookingController handles booking-related HTTP requests
type BookingController struct {
	Bookings *bookingService.Service
}

func NewBookingController(bookings *bookingService.Service) *BookingController {
	return &BookingController{Bookings: bookings}
}

func bookingID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

// Store creates a booking and its shipment.
func (bc *BookingController) Store(c *fiber.Ctx) error {
	var req bookingTypes.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	result, err := bc.Bookings.Create(c.UserContext(), middleware.CurrentActor(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusCreated, "Booking created successfully", result)
}

// Index lists the caller's own bookings.
func (bc *BookingController) Index(c *fiber.Ctx) error {
	bookings, err := bc.Bookings.ListForUser(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Bookings fetched successfully", bookings)
}

func (bc *BookingController) Show(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return utils.SendBadRequest(c, "Invalid booking id")
	}
	result, err := bc.Bookings.Get(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Booking fetched successfully", result)
}

func (bc *BookingController) History(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return utils.SendBadRequest(c, "Invalid booking id")
	}
	events, err := bc.Bookings.History(c.UserContext(), middleware.CurrentActor(c), id)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Booking history fetched successfully", events)
}

// RiderRespond is PUT /bookings/:id with {"action": "accept"|"reject"}.
func (bc *BookingController) RiderRespond(c *fiber.Ctx) error {
	id, ok := bookingID(c)
	if !ok {
		return utils.SendBadRequest(c, "Invalid booking id")
	}
	var req bookingTypes.RiderActionRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	b, err := bc.Bookings.RespondAsRider(c.UserContext(), middleware.CurrentActor(c), id, req.Action)
	if err != nil {
		return utils.SendError(c, err)
	}
	message := "Booking accepted"
	if b.RiderResponse == bookingModel.RiderResponseRejected {
		message = "Booking rejected"
	}
	return utils.SendSuccess(c, fiber.StatusOK, message, b)
}

func (bc *BookingController) Cancel(c *fiber.Ctx) error {
	var req bookingTypes.CancelRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	result, err := bc.Bookings.Cancel(c.UserContext(), middleware.CurrentActor(c), req.BookingID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Booking cancelled successfully", result)
}

// Available lists open bookings a rider can accept.
func (bc *BookingController) Available(c *fiber.Ctx) error {
	bookings, err := bc.Bookings.ListAvailable(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Available bookings fetched successfully", bookings)
}

func (bc *BookingController) Assigned(c *fiber.Ctx) error {
	bookings, err := bc.Bookings.ListAssigned(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Assigned bookings fetched successfully", bookings)
}

// AdminIndex lists all bookings. Query: status, from, to (YYYY-MM-DD), page, limit.
func (bc *BookingController) AdminIndex(c *fiber.Ctx) error {
	from, to, err := utils.DayRange(c.Query("from"), c.Query("to"))
	if err != nil {
		return utils.SendBadRequest(c, err.Error())
	}
	page, limit, offset := utils.Pagination(c)

	bookings, total, err := bc.Bookings.ListAll(c.UserContext(), middleware.CurrentActor(c), bookingTypes.Filter{
		Status: strings.ToUpper(strings.TrimSpace(c.Query("status"))),
		From:   from,
		To:     to,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Bookings fetched successfully", types.PaginatedData{
		Items: bookings,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (bc *BookingController) AdminUpdateStatus(c *fiber.Ctx) error {
	var req bookingTypes.StatusUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	result, err := bc.Bookings.AdminUpdateStatus(c.UserContext(), middleware.CurrentActor(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Status updated successfully", result)
}

// Quote prices a prospective booking. No session is needed.
func (bc *BookingController) Quote(c *fiber.Ctx) error {
	pickup := strings.TrimSpace(c.Query("pickup"))
	delivery := strings.TrimSpace(c.Query("delivery"))
	if pickup == "" || delivery == "" {
		return utils.SendBadRequest(c, "pickup and delivery are required")
	}

	size := bookingModel.PackageSize(strings.ToUpper(c.Query("package_size", string(bookingModel.PackageSmall))))
	breakdown, err := pricing.PriceBooking(pickup, delivery, size, c.QueryBool("is_urgent", false))
	if err != nil {
		return utils.SendBadRequest(c, err.Error())
	}

	logger.Debug(fmt.Sprintf("Quote %s -> %s (%s): %s", pickup, delivery, size, breakdown.Total))
	return utils.SendSuccess(c, fiber.StatusOK, "Quote calculated successfully", breakdown)
}
