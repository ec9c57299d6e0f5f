package handlers

import (
	applog "autoguide/internal/log"
	"autoguide/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AttachUser resolves the session cookie into the current user for templates
// and logging, and loads their favorite total for the header badge. Anonymous
// requests pass through untouched.
func AttachUser(auth *services.AuthService, favs *services.FavoriteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if sid := c.Cookies("sid"); sid != "" {
			if u, err := auth.CurrentUser(sid); err == nil && u != nil {
				c.Locals("user", u)
				if n, err := favs.CountFor(u.ID); err == nil {
					c.Locals("favCount", n)
				}
			}
		}
		return c.Next()
	}
}

// RequireUser enforces that a user is logged in; otherwise redirect to login.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		c.Locals("user", u)
		return c.Next()
	}
}

// RequirePermission authenticates, then checks the named capability. The two
// checks run in order: anonymous requests go to login, authenticated requests
// without the capability get a 403 page.
func RequirePermission(auth *services.AuthService, perm string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sid := c.Cookies("sid")
		if sid == "" {
			return c.Redirect("/login")
		}
		u, err := auth.CurrentUser(sid)
		if err != nil || u == nil {
			return c.Redirect("/login")
		}
		if !services.Can(u, perm) {
			applog.Security(c, "access.denied", map[string]any{"perm": perm, "user": u.ID})
			return c.Status(fiber.StatusForbidden).Render("notfound", fiber.Map{"Message": "Access denied"})
		}
		c.Locals("user", u)
		return c.Next()
	}
}
