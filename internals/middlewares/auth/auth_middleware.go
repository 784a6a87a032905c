// internals/middlewares/auth/auth_middleware.go
package auth

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

/* =========================================================
   JWT auth.

   Identity is issued upstream; this middleware only consumes
   the claims the core cares about:
     user_id  — principal id (string)
     email    — principal email, used for audit actor names
     is_admin — may verify sessions, drive the gig lifecycle
     is_tutor — may log sessions for own gigs
     tutor_id — numeric Tutor PK, present iff is_tutor
========================================================= */

func AuthMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenString, err := extractBearerToken(c)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, err.Error())
		}

		if secret == "" {
			log.Println("[ERROR] JWT secret is empty")
			return fiber.NewError(fiber.StatusInternalServerError, "Missing JWT secret")
		}

		claims := jwt.MapClaims{}
		parser := jwt.Parser{SkipClaimsValidation: true}
		if _, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(secret), nil
		}); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token parse error")
		}

		if err := validateTokenExpiry(claims, 30*time.Second); err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Unauthorized - Token expired")
		}

		storeClaimsToLocals(c, claims)
		return c.Next()
	}
}

// OnlyAdmin gates lifecycle, verification and destructive endpoints.
func OnlyAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isAdmin, _ := c.Locals("is_admin").(bool); !isAdmin {
			return fiber.NewError(fiber.StatusForbidden, "Administrator access required")
		}
		return c.Next()
	}
}

// OnlyTutor gates the tutor self-service endpoints.
func OnlyTutor() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if isTutor, _ := c.Locals("is_tutor").(bool); !isTutor {
			return fiber.NewError(fiber.StatusForbidden, "Tutor access required")
		}
		return c.Next()
	}
}

func extractBearerToken(c *fiber.Ctx) (string, error) {
	h := c.Get("Authorization")
	if h == "" {
		// cookie fallback for the dashboard
		if t := c.Cookies("access_token"); t != "" {
			return t, nil
		}
		return "", errors.New("missing Authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid Authorization header")
	}
	return parts[1], nil
}

func validateTokenExpiry(claims jwt.MapClaims, leeway time.Duration) error {
	exp, ok := claims["exp"].(float64)
	if !ok {
		return errors.New("missing exp claim")
	}
	if time.Now().Add(-leeway).After(time.Unix(int64(exp), 0)) {
		return errors.New("token expired")
	}
	return nil
}

func storeClaimsToLocals(c *fiber.Ctx, claims jwt.MapClaims) {
	if v, ok := claims["user_id"].(string); ok {
		c.Locals("user_id", v)
	}
	if v, ok := claims["email"].(string); ok {
		c.Locals("user_email", v)
	}
	if v, ok := claims["is_admin"].(bool); ok {
		c.Locals("is_admin", v)
	}
	if v, ok := claims["is_tutor"].(bool); ok {
		c.Locals("is_tutor", v)
	}
	// numeric claims arrive as float64 from MapClaims
	if v, ok := claims["tutor_id"].(float64); ok && v > 0 {
		c.Locals("tutor_id", uint(v))
	}
}
