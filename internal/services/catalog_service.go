package services

import (
	"errors"

	"autoguide/internal/domain"
	"autoguide/internal/repos"
)

// PageSize is the fixed number of cars per list page.
const PageSize = 9

var ErrModelBrandMismatch = errors.New("selected model does not belong to the selected brand")

type CatalogService struct {
	Brands *repos.BrandRepo
	Cars   *repos.CarRepo
}

func NewCatalogService(brands *repos.BrandRepo, cars *repos.CarRepo) *CatalogService {
	return &CatalogService{Brands: brands, Cars: cars}
}

type CarPage struct {
	Cars    []domain.Car
	Total   int
	Pages   int
	Current int
}

// Sort tokens the list page accepts, mapped to ORDER BY clauses. Anything
// else falls back to newest-first.
var sortOrder = map[string]string{
	"price":  "c.price ASC, c.id ASC",
	"-price": "c.price DESC, c.id ASC",
	"year":   "c.year ASC, c.id ASC",
	"-year":  "c.year DESC, c.id ASC",
}

// List produces one page of filtered, sorted cars plus pagination metadata.
// The page number is clamped into [1, Pages].
func (s *CatalogService) List(f repos.Filter, sort string, page int) (CarPage, error) {
	orderBy, ok := sortOrder[sort]
	if !ok {
		orderBy = "c.created_at DESC, c.id DESC"
	}

	total, err := s.Cars.Count(f)
	if err != nil {
		return CarPage{}, err
	}
	pages := (total + PageSize - 1) / PageSize
	if pages < 1 {
		pages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pages {
		page = pages
	}

	cars, err := s.Cars.List(f, orderBy, PageSize, (page-1)*PageSize)
	if err != nil {
		return CarPage{}, err
	}
	return CarPage{Cars: cars, Total: total, Pages: pages, Current: page}, nil
}

// ModelsForBrand narrows the model options to the selected brand; with no
// brand selected every model is offered. Recomputed fresh on each request.
func (s *CatalogService) ModelsForBrand(brandID int64) ([]domain.CarModel, error) {
	if brandID > 0 {
		return s.Brands.ModelsByBrand(brandID)
	}
	return s.Brands.ModelsAll()
}

func (s *CatalogService) ListBrands() ([]domain.Brand, error) {
	return s.Brands.List()
}

func (s *CatalogService) GetCar(id int64) (domain.Car, error) {
	return s.Cars.Get(id)
}

func (s *CatalogService) CarsByIDs(ids []int64) ([]domain.Car, error) {
	return s.Cars.ByIDs(ids)
}

// checkModelBrand enforces the cross-field invariant before any write: the
// model's owning brand must match the car's declared brand.
func (s *CatalogService) checkModelBrand(c domain.Car) error {
	m, err := s.Brands.GetModel(c.ModelID)
	if err != nil {
		return ErrModelBrandMismatch
	}
	if m.BrandID != c.BrandID {
		return ErrModelBrandMismatch
	}
	return nil
}

func (s *CatalogService) CreateCar(c domain.Car) (int64, error) {
	if err := s.checkModelBrand(c); err != nil {
		return 0, err
	}
	return s.Cars.Create(c)
}

func (s *CatalogService) UpdateCar(c domain.Car) error {
	if err := s.checkModelBrand(c); err != nil {
		return err
	}
	return s.Cars.Update(c)
}

func (s *CatalogService) DeleteCar(id int64) error {
	return s.Cars.Delete(id)
}
