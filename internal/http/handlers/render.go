package handlers

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// withCommon injects the template data every page shares: the current user,
// the CSRF token and any pending flash notice.
func withCommon(c *fiber.Ctx, data fiber.Map) fiber.Map {
	if data == nil {
		data = fiber.Map{}
	}
	if u := c.Locals("user"); u != nil {
		data["User"] = u
	}
	if n, ok := c.Locals("favCount").(int); ok {
		data["FavCount"] = n
	}
	// Pick up the token the CSRF middleware put into Locals
	tok, _ := c.Locals("CSRFToken").(string)
	if tok == "" {
		// Fallback to the cookie so hidden form fields are never empty.
		tok = c.Cookies("csrf_")
	}
	if tok != "" {
		data["CSRFToken"] = tok
	}
	if lvl, msg := popFlash(c); msg != "" {
		data["Flash"] = fiber.Map{"Level": lvl, "Message": msg}
	}
	return data
}

func render(c *fiber.Ctx, tmpl string, data fiber.Map) error {
	return c.Render(tmpl, withCommon(c, data))
}

// Flash notices ride in a short-lived cookie and are consumed on the next
// rendered page (compare warnings, favorite confirmations).

func setFlash(c *fiber.Ctx, level, message string) {
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    level + "|" + url.QueryEscape(message),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

func popFlash(c *fiber.Ctx) (level, message string) {
	raw := c.Cookies("flash")
	if raw == "" {
		return "", ""
	}
	c.Cookie(&fiber.Cookie{
		Name:     "flash",
		Value:    "",
		Path:     "/",
		HTTPOnly: true,
		Expires:  time.Now().Add(-1 * time.Hour),
	})
	level, rest, ok := strings.Cut(raw, "|")
	if !ok {
		return "", ""
	}
	message, err := url.QueryUnescape(rest)
	if err != nil {
		return "", ""
	}
	return level, message
}

// backTo picks the redirect target for handlers that return the visitor to
// the page they came from.
func backTo(c *fiber.Ctx, fallback string) string {
	if back := c.Get("Referer"); back != "" {
		return back
	}
	return fallback
}
