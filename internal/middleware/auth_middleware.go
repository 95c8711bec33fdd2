package middleware

import (
	"errors"

	"sportshop/internal/apperror"
	"sportshop/internal/auth"
	"sportshop/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const userKey = "user"

// Authenticate is a Fiber middleware that resolves the caller from the
// Authorization header and stores it in the context for later handlers.
// Every rejection surfaces as apperror.ErrUnauthenticated; the exact cause is
// only logged.
func Authenticate(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := gate.Authenticate(c.UserContext(), c.Get(fiber.HeaderAuthorization))
		if err != nil {
			if errors.Is(err, apperror.ErrUnauthenticated) {
				logrus.WithFields(logrus.Fields{
					"event":  "auth_rejected",
					"path":   c.Path(),
					"reason": err.Error(),
				}).Info("authentication rejected")
			}
			return err
		}

		c.Locals(userKey, user)
		return c.Next()
	}
}

// CurrentUser returns the user stored by Authenticate, or nil.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(userKey).(*models.User)
	return user
}

// RequireAdmin rejects callers that are not administrators. It must run
// after Authenticate.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if err := auth.RequireAdmin(user); err != nil {
			logDenied(c, user, err)
			return err
		}
		return c.Next()
	}
}

// RequireSelfOrAdmin lets through administrators and the user whose id is
// in route parameter param. When the route has no such value, a "userId"
// field of a JSON body is used instead.
func RequireSelfOrAdmin(param string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := CurrentUser(c)
		if err := auth.RequireSelfOrAdmin(user, targetUserID(c, param)); err != nil {
			logDenied(c, user, err)
			return err
		}
		return c.Next()
	}
}

func targetUserID(c *fiber.Ctx, param string) string {
	if id := c.Params(param); id != "" {
		return id
	}
	var body struct {
		UserID string `json:"userId"`
	}
	if len(c.Body()) == 0 || c.BodyParser(&body) != nil {
		return ""
	}
	return body.UserID
}

func logDenied(c *fiber.Ctx, user *models.User, err error) {
	fields := logrus.Fields{"event": "access_denied", "path": c.Path(), "reason": err.Error()}
	if user != nil {
		fields["user_id"] = user.ID
	}
	logrus.WithFields(fields).Info("access denied")
}
