package user

import (
	"fastfast-logistics/logger"
	"fastfast-logistics/middleware"
	"fastfast-logistics/services/account"
	riderService "fastfast-logistics/services/rider"
	"fastfast-logistics/types"
	authTypes "fastfast-logistics/types/auth"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
)

// UserController is the admin view over accounts and riders.
type UserController struct {
	Accounts *account.Service
	Riders   *riderService.Service
}

func NewUserController(accounts *account.Service, riders *riderService.Service) *UserController {
	return &UserController{Accounts: accounts, Riders: riders}
}

func (uc *UserController) Index(c *fiber.Ctx) error {
	page, limit, offset := utils.Pagination(c)
	users, total, err := uc.Accounts.ListUsers(c.UserContext(), middleware.CurrentActor(c), c.Query("role"), limit, offset)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Users fetched successfully", types.PaginatedData{
		Items: users,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

func (uc *UserController) UpdateRole(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return utils.SendBadRequest(c, "Invalid user id")
	}
	var req authTypes.RoleUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		logger.Error("Failed to parse request body", err)
		return utils.SendBadRequest(c, "Invalid request body")
	}

	u, err := uc.Accounts.SetRole(c.UserContext(), middleware.CurrentActor(c), uint(id), req.Role)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Role updated successfully", u)
}

// ListRiders lists rider profiles; ?available=true keeps only available ones.
func (uc *UserController) ListRiders(c *fiber.Ctx) error {
	riders, err := uc.Riders.List(c.UserContext(), middleware.CurrentActor(c), c.QueryBool("available", false))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, fiber.StatusOK, "Riders fetched successfully", riders)
}
