package handlers

import (
	applog "autoguide/internal/log"
	"autoguide/internal/services"
	"autoguide/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ModelsHandler struct {
	Catalog *services.CatalogService
}

type modelOption struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// GET /ajax/models?brand_id=
// Feeds the dependent model dropdown: the brand's models as {id, name}, or an
// empty list when no (or a malformed) brand id is supplied.
func (h *ModelsHandler) ForBrand(c *fiber.Ctx) error {
	brandID, ok := validate.ID(c.Query("brand_id"))
	if !ok {
		return c.JSON([]modelOption{})
	}
	models, err := h.Catalog.ModelsForBrand(brandID)
	if err != nil {
		applog.Error(c, "models.ajax.fail", err, map[string]any{"brand_id": brandID})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not load models"})
	}
	out := make([]modelOption, 0, len(models))
	for _, m := range models {
		out = append(out, modelOption{ID: m.ID, Name: m.Name})
	}
	return c.JSON(out)
}
