package rider

import (
	"fastfast-logistics/logger"
	"fastfast-logistics/middleware"
	riderService "fastfast-logistics/services/rider"
	riderTypes "fastfast-logistics/types/rider"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

type RiderController struct {
	Riders *riderService.Service
}

func NewRiderController(riders *riderService.Service) *RiderController {
	return &RiderController{Riders: riders}
}

// SaveProfile creates the caller's rider profile, or updates it.
func (rc *RiderController) SaveProfile(c *fiber.Ctx) error {
	var req riderTypes.ProfileRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	r, created, err := rc.Riders.SaveProfile(c.UserContext(), middleware.CurrentActor(c), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	if created {
		return utils.SendSuccess(c, fiber.StatusCreated, "Rider profile created successfully", r)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Rider profile updated successfully", r)
}

func (rc *RiderController) Profile(c *fiber.Ctx) error {
	r, err := rc.Riders.Profile(c.UserContext(), middleware.CurrentActor(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Rider profile fetched successfully", r)
}
