package handlers

import (
	"fmt"

	"autoguide/internal/compare"
	applog "autoguide/internal/log"
	"autoguide/internal/services"
	"autoguide/internal/validate"

	"github.com/gofiber/fiber/v2"
)

const compareCookie = "compare"

type CompareHandler struct {
	Catalog *services.CatalogService
}

func readCompare(c *fiber.Ctx) compare.Set {
	return compare.Parse(c.Cookies(compareCookie))
}

func writeCompare(c *fiber.Ctx, set compare.Set) {
	c.Cookie(&fiber.Cookie{
		Name:     compareCookie,
		Value:    set.Encode(),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// GET /compare
func (h *CompareHandler) View(c *fiber.Ctx) error {
	set := readCompare(c)
	cars, err := h.Catalog.CarsByIDs(set.IDs())
	if err != nil {
		applog.Error(c, "compare.view.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the comparison. Please retry."})
	}
	// Prune ids whose cars were deleted since they were added.
	alive := make(map[int64]bool, len(cars))
	for _, car := range cars {
		alive[car.ID] = true
	}
	if len(cars) != set.Len() {
		set.Keep(alive)
		writeCompare(c, set)
	}
	return render(c, "compare", fiber.Map{"Cars": cars})
}

// GET /compare/add/:id
func (h *CompareHandler) Add(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}

	set := readCompare(c)
	if set.Add(id) {
		writeCompare(c, set)
		setFlash(c, "success", fmt.Sprintf("%s %s added to comparison.", car.BrandName, car.ModelName))
	} else {
		setFlash(c, "warning", fmt.Sprintf("You can compare at most %d cars.", compare.Cap))
		applog.Info(c, "compare.full", map[string]any{"car_id": id})
	}
	return c.Redirect(backTo(c, "/"))
}

// GET /compare/remove/:id
func (h *CompareHandler) Remove(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Redirect("/compare")
	}
	set := readCompare(c)
	set.Remove(id)
	writeCompare(c, set)
	return c.Redirect("/compare")
}
