// internals/features/gigs/gig_sessions/route/gig_session_routes_test.go
package route

import (
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func registeredMethods(app *fiber.App, pathSuffix string) []string {
	var methods []string
	for _, r := range app.GetRoutes() {
		if strings.HasSuffix(r.Path, pathSuffix) {
			methods = append(methods, r.Method)
		}
	}
	return methods
}

// Session removal moves verified hours back onto the ledger; only an
// administrator may trigger it.
func TestSessionDeleteIsAdminOnly(t *testing.T) {
	app := fiber.New()
	AdminGigSessionRoutes(app.Group("/api/a"), nil, nil)
	TutorGigSessionRoutes(app.Group("/api/u"), nil, nil)

	assert.Contains(t, registeredMethods(app, "/api/a/sessions/:session_id"), fiber.MethodDelete)
	assert.NotContains(t, registeredMethods(app, "/api/u/sessions/:session_id"), fiber.MethodDelete)
}

func TestVerifyEndpointOnlyUnderAdmin(t *testing.T) {
	app := fiber.New()
	AdminGigSessionRoutes(app.Group("/api/a"), nil, nil)
	TutorGigSessionRoutes(app.Group("/api/u"), nil, nil)

	assert.NotEmpty(t, registeredMethods(app, "/api/a/sessions/:session_id/verify"))
	assert.Empty(t, registeredMethods(app, "/api/u/sessions/:session_id/verify"))
}
