package handlers

import (
	"fmt"

	"autoguide/internal/domain"
	applog "autoguide/internal/log"
	"autoguide/internal/services"
	"autoguide/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoriteHandler struct {
	Favs    *services.FavoriteService
	Catalog *services.CatalogService
}

// GET /favorites  (RequireUser)
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	cars, err := h.Favs.List(u.ID)
	if err != nil {
		applog.Error(c, "favorites.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load favorites. Please retry."})
	}
	return render(c, "favorites", fiber.Map{"Cars": cars})
}

// POST /favorites/toggle/:id  (RequireUser; also reachable via the
// /fav/toggle/:id and /toggle_favorite/:id aliases)
func (h *FavoriteHandler) Toggle(c *fiber.Ctx) error {
	u := c.Locals("user").(*domain.User)
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}

	status, count, err := h.Favs.Toggle(u.ID, id)
	if err != nil {
		applog.Error(c, "favorites.toggle.fail", err, map[string]any{"car_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not update favorites. Please retry."})
	}
	applog.Audit(c, "favorites.toggle", map[string]any{"car_id": id, "status": status})

	// Async callers signal themselves with the X-Requested-With header and
	// get the structured result for badge updates.
	if c.Get("X-Requested-With") == "XMLHttpRequest" {
		return c.JSON(fiber.Map{"status": status, "count": count})
	}

	if status == "added" {
		setFlash(c, "success", fmt.Sprintf("%s %s added to favorites.", car.BrandName, car.ModelName))
	} else {
		setFlash(c, "info", fmt.Sprintf("%s %s removed from favorites.", car.BrandName, car.ModelName))
	}
	return c.Redirect(backTo(c, "/"))
}
