package handlers

import (
	"html/template"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"autoguide/internal/domain"
	applog "autoguide/internal/log"
	"autoguide/internal/repos"
	"autoguide/internal/services"
	"autoguide/internal/validate"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CarHandler struct {
	Catalog  *services.CatalogService
	Favs     *services.FavoriteService
	MediaDir string
}

// filterFromQuery builds the list filter from the query string. Malformed
// values read as absent rather than failing the request.
func filterFromQuery(c *fiber.Ctx) repos.Filter {
	var f repos.Filter
	if id, ok := validate.ID(c.Query("brand")); ok {
		f.BrandID = id
	}
	if id, ok := validate.ID(c.Query("model")); ok {
		f.ModelID = id
	}
	if y, ok := validate.Year(c.Query("year_min")); ok {
		f.YearMin = y
	}
	if y, ok := validate.Year(c.Query("year_max")); ok {
		f.YearMax = y
	}
	if p, ok := validate.Price(c.Query("price_min")); ok {
		f.PriceMin = p
	}
	if p, ok := validate.Price(c.Query("price_max")); ok {
		f.PriceMax = p
	}
	if e, ok := validate.EngineType(c.Query("engine_type")); ok {
		f.EngineType = e
	}
	if t, ok := validate.Transmission(c.Query("transmission")); ok {
		f.Transmission = t
	}
	return f
}

// GET /
func (h *CarHandler) List(c *fiber.Ctx) error {
	f := filterFromQuery(c)
	sort := ""
	if s, ok := validate.Sort(c.Query("sort")); ok {
		sort = s
	}
	page := validate.Page(c.Query("page"))

	cp, err := h.Catalog.List(f, sort, page)
	if err != nil {
		applog.Error(c, "cars.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}

	brands, err := h.Catalog.ListBrands()
	if err != nil {
		applog.Error(c, "cars.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}
	// Model options narrow to the selected brand, fresh on every request.
	models, err := h.Catalog.ModelsForBrand(f.BrandID)
	if err != nil {
		applog.Error(c, "cars.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the catalog. Please retry."})
	}

	favIDs := map[int64]bool{}
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		if ids, err := h.Favs.IDSet(u.ID); err == nil {
			favIDs = ids
		}
	}

	// Page links re-submit the active filters and sort with a new page number.
	qv := url.Values{}
	for k, v := range c.Queries() {
		if k != "page" && v != "" {
			qv.Set(k, v)
		}
	}
	pageURL := func(p int) template.URL {
		qv.Set("page", strconv.Itoa(p))
		return template.URL("?" + qv.Encode())
	}

	return render(c, "car_list", fiber.Map{
		"Cars":    cp.Cars,
		"Total":   cp.Total,
		"Pages":   cp.Pages,
		"Page":    cp.Current,
		"HasPrev": cp.Current > 1,
		"HasNext": cp.Current < cp.Pages,
		"PrevURL": pageURL(cp.Current - 1),
		"NextURL": pageURL(cp.Current + 1),
		"Brands":  brands,
		"Models":  models,
		"Sort":    sort,
		"Q":       c.Queries(),
		"FavIDs":  favIDs,
	})
}

// GET /cars/:id
func (h *CarHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}

	fav := false
	if u, ok := c.Locals("user").(*domain.User); ok && u != nil {
		if ids, err := h.Favs.IDSet(u.ID); err == nil {
			fav = ids[car.ID]
		}
	}
	return render(c, "car_detail", fiber.Map{"Car": car, "IsFavorite": fav})
}

// parseCarForm reads the submitted car fields. Field-level problems come back
// in the errs map keyed by field name; the form is re-rendered with them.
func (h *CarHandler) parseCarForm(c *fiber.Ctx) (domain.Car, map[string]string) {
	var car domain.Car
	errs := map[string]string{}

	if id, ok := validate.ID(c.FormValue("brand_id")); ok {
		car.BrandID = id
	} else {
		errs["brand"] = "Choose a brand"
	}
	if id, ok := validate.ID(c.FormValue("model_id")); ok {
		car.ModelID = id
	} else {
		errs["model"] = "Choose a model"
	}
	if y, ok := validate.Year(c.FormValue("year")); ok {
		car.Year = y
	} else {
		errs["year"] = "Enter a valid year"
	}
	if p, ok := validate.Price(c.FormValue("price")); ok {
		car.Price = p
	} else {
		errs["price"] = "Enter a valid price"
	}
	if e, ok := validate.EngineType(c.FormValue("engine_type")); ok {
		car.EngineType = e
	} else {
		errs["engine_type"] = "Choose an engine type"
	}
	if t, ok := validate.Transmission(c.FormValue("transmission")); ok {
		car.Transmission = t
	} else {
		errs["transmission"] = "Choose a transmission"
	}
	car.Description = strings.TrimSpace(c.FormValue("description"))

	if name, ferr := h.saveImage(c); ferr != "" {
		errs["image"] = ferr
	} else if name != "" {
		car.Image = name
	}
	return car, errs
}

// saveImage stores an optional uploaded photo under the media dir and returns
// its relative path. An absent file is not an error.
func (h *CarHandler) saveImage(c *fiber.Ctx) (string, string) {
	file, err := c.FormFile("image")
	if err != nil || file == nil {
		return "", ""
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", "Image must be jpg, png or webp"
	}
	name := filepath.Join("cars", uuid.NewString()+ext)
	if err := os.MkdirAll(filepath.Join(h.MediaDir, "cars"), 0o755); err != nil {
		return "", "Could not store image"
	}
	if err := c.SaveFile(file, filepath.Join(h.MediaDir, name)); err != nil {
		return "", "Could not store image"
	}
	return filepath.ToSlash(name), ""
}

func (h *CarHandler) renderCarForm(c *fiber.Ctx, status int, car domain.Car, errs map[string]string) error {
	brands, err := h.Catalog.ListBrands()
	if err != nil {
		applog.Error(c, "cars.form.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load the form. Please retry."})
	}
	// Model choices follow the car's brand; none selected means an empty
	// list that the dependent dropdown fills in.
	var models []domain.CarModel
	if car.BrandID > 0 {
		models, _ = h.Catalog.ModelsForBrand(car.BrandID)
	}
	return c.Status(status).Render("car_form", withCommon(c, fiber.Map{
		"Car":    car,
		"Brands": brands,
		"Models": models,
		"Errs":   errs,
	}))
}

// GET /cars/add
func (h *CarHandler) AddForm(c *fiber.Ctx) error {
	return h.renderCarForm(c, 200, domain.Car{}, nil)
}

// POST /cars/add
func (h *CarHandler) Add(c *fiber.Ctx) error {
	car, errs := h.parseCarForm(c)
	if len(errs) > 0 {
		return h.renderCarForm(c, 400, car, errs)
	}
	id, err := h.Catalog.CreateCar(car)
	if err == services.ErrModelBrandMismatch {
		errs["model"] = "Selected model does not belong to the selected brand"
		return h.renderCarForm(c, 400, car, errs)
	}
	if err != nil {
		applog.Error(c, "cars.create.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the car. Please retry."})
	}
	applog.Audit(c, "cars.create", map[string]any{"car_id": id})
	return c.Redirect("/")
}

// GET /cars/:id/edit
func (h *CarHandler) EditForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	return h.renderCarForm(c, 200, car, nil)
}

// POST /cars/:id/edit
func (h *CarHandler) Edit(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	existing, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}

	car, errs := h.parseCarForm(c)
	car.ID = id
	if car.Image == "" {
		car.Image = existing.Image
	}
	if len(errs) > 0 {
		return h.renderCarForm(c, 400, car, errs)
	}
	if err := h.Catalog.UpdateCar(car); err == services.ErrModelBrandMismatch {
		errs["model"] = "Selected model does not belong to the selected brand"
		return h.renderCarForm(c, 400, car, errs)
	} else if err != nil {
		applog.Error(c, "cars.update.fail", err, map[string]any{"car_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not save the car. Please retry."})
	}
	applog.Audit(c, "cars.update", map[string]any{"car_id": id})
	return c.Redirect("/cars/" + c.Params("id"))
}

// GET /cars/:id/delete
func (h *CarHandler) DeleteForm(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	car, err := h.Catalog.GetCar(id)
	if err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	return render(c, "car_confirm_delete", fiber.Map{"Car": car})
}

// POST /cars/:id/delete
func (h *CarHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	if _, err := h.Catalog.GetCar(id); err != nil {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This car is no longer listed"})
	}
	if err := h.Catalog.DeleteCar(id); err != nil {
		applog.Error(c, "cars.delete.fail", err, map[string]any{"car_id": id})
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not delete the car. Please retry."})
	}
	applog.Audit(c, "cars.delete", map[string]any{"car_id": id})
	return c.Redirect("/")
}
