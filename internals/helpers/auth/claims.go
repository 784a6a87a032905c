// internals/helpers/auth/claims.go
package helperAuth

import (
	"github.com/gofiber/fiber/v2"
)

/* =========================
   Claim readers (locals set by the auth middleware)
========================= */

func GetUserID(c *fiber.Ctx) (string, error) {
	if v, ok := c.Locals("user_id").(string); ok && v != "" {
		return v, nil
	}
	return "", fiber.NewError(fiber.StatusUnauthorized, "Missing user identity")
}

func GetUserEmail(c *fiber.Ctx) string {
	v, _ := c.Locals("user_email").(string)
	return v
}

func IsAdmin(c *fiber.Ctx) bool {
	v, _ := c.Locals("is_admin").(bool)
	return v
}

func IsTutor(c *fiber.Ctx) bool {
	v, _ := c.Locals("is_tutor").(bool)
	return v
}

// GetTutorID returns the Tutor PK linked to a tutor principal.
func GetTutorID(c *fiber.Ctx) (uint, error) {
	if v, ok := c.Locals("tutor_id").(uint); ok && v > 0 {
		return v, nil
	}
	return 0, fiber.NewError(fiber.StatusForbidden, "No tutor profile linked to this account")
}

// ActorLabel is what goes into audit entries: email when present,
// otherwise the raw principal id.
func ActorLabel(c *fiber.Ctx) string {
	if e := GetUserEmail(c); e != "" {
		return e
	}
	id, _ := c.Locals("user_id").(string)
	return id
}
