package middleware

import (
	"errors"
	"strings"

	"fastfast-logistics/logger"
	"fastfast-logistics/models/user"
	"fastfast-logistics/services/session"
	"fastfast-logistics/types"
	"fastfast-logistics/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const (
	actorKey   = "actor"
	sessionKey = "session"
)

// Guard authenticates requests from the Authorization header or the access
// cookie and stores the caller in the fiber context.
type Guard struct {
	DB       *gorm.DB
	Sessions *session.Manager
}

func NewGuard(db *gorm.DB, sessions *session.Manager) *Guard {
	return &Guard{DB: db, Sessions: sessions}
}

// RequireAuthentication only requires a valid session.
func (g *Guard) RequireAuthentication() fiber.Handler {
	return g.authenticate(nil)
}

// RequireRoles requires a valid session whose user holds one of roles. The
// role is read from the database, not from the token.
func (g *Guard) RequireRoles(roles ...user.Role) fiber.Handler {
	return g.authenticate(roles)
}

func bearerToken(c *fiber.Ctx) (string, bool) {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return c.Cookies(session.CookieName), true
	}

	tokenParts := strings.Split(authHeader, " ")
	if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
		return "", false
	}
	return tokenParts[1], true
}

func (g *Guard) authenticate(roles []user.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return deny(c, fiber.StatusUnauthorized, "Invalid authorization header format")
		}

		claims, err := g.Sessions.Parse(c.UserContext(), token)
		if err != nil {
			return utils.SendError(c, err)
		}

		u, err := utils.GetUserByUUID(g.DB.WithContext(c.UserContext()), claims.Subject)
		if errors.Is(err, utils.ErrUserNotFound) {
			return deny(c, fiber.StatusUnauthorized, "Session expired. Login again.")
		}
		if err != nil {
			logger.Error("Failed to load session user", err)
			return deny(c, fiber.StatusInternalServerError, "internal server error")
		}

		if len(roles) > 0 && !hasRole(u.Role, roles) {
			logger.Warning("Access denied for " + u.Email + " with role " + u.Role.String())
			return deny(c, fiber.StatusForbidden, "Insufficient permissions")
		}

		c.Locals(actorKey, types.Actor{UserID: u.ID, UUID: u.Uuid, Email: u.Email, Role: u.Role})
		c.Locals(sessionKey, claims)
		return c.Next()
	}
}

func hasRole(role user.Role, allowed []user.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

func deny(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(types.ErrorResponse{Error: message, Status: status})
}

// CurrentActor returns the caller set by the guard. The zero Actor is
// returned on public routes.
func CurrentActor(c *fiber.Ctx) types.Actor {
	actor, _ := c.Locals(actorKey).(types.Actor)
	return actor
}

func CurrentSession(c *fiber.Ctx) *session.Claims {
	claims, _ := c.Locals(sessionKey).(*session.Claims)
	return claims
}
