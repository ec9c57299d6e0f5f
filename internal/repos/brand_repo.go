package repos

import (
	"autoguide/internal/domain"

	"github.com/jmoiron/sqlx"
)

type BrandRepo struct{ db *sqlx.DB }

func NewBrandRepo(db *sqlx.DB) *BrandRepo { return &BrandRepo{db: db} }

func (r *BrandRepo) List() ([]domain.Brand, error) {
	var out []domain.Brand
	err := r.db.Select(&out, `SELECT id, name FROM brands ORDER BY name`)
	return out, err
}

func (r *BrandRepo) Get(id int64) (domain.Brand, error) {
	var b domain.Brand
	err := r.db.Get(&b, `SELECT id, name FROM brands WHERE id = ?`, id)
	return b, err
}

// ModelsAll lists every model ordered by brand then model name.
func (r *BrandRepo) ModelsAll() ([]domain.CarModel, error) {
	var out []domain.CarModel
	err := r.db.Select(&out, `
	  SELECT m.id, m.brand_id, m.name
	  FROM car_models m JOIN brands b ON b.id = m.brand_id
	  ORDER BY b.name, m.name
	`)
	return out, err
}

// ModelsByBrand lists the models owned by one brand.
func (r *BrandRepo) ModelsByBrand(brandID int64) ([]domain.CarModel, error) {
	var out []domain.CarModel
	err := r.db.Select(&out, `
	  SELECT id, brand_id, name FROM car_models
	  WHERE brand_id = ?
	  ORDER BY name
	`, brandID)
	return out, err
}

func (r *BrandRepo) GetModel(id int64) (domain.CarModel, error) {
	var m domain.CarModel
	err := r.db.Get(&m, `SELECT id, brand_id, name FROM car_models WHERE id = ?`, id)
	return m, err
}
