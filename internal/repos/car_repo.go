package repos

import (
	"autoguide/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CarRepo struct{ db *sqlx.DB }

func NewCarRepo(db *sqlx.DB) *CarRepo { return &CarRepo{db: db} }

// Filter carries the optional list-page criteria. Zero values mean "not set";
// every set field is ANDed into the query.
type Filter struct {
	BrandID      int64
	ModelID      int64
	YearMin      int
	YearMax      int
	PriceMin     float64
	PriceMax     float64
	EngineType   string
	Transmission string
}

func (f Filter) where() (string, []any) {
	where := `1=1`
	args := []any{}
	if f.BrandID > 0 {
		where += ` AND c.brand_id = ?`
		args = append(args, f.BrandID)
	}
	if f.ModelID > 0 {
		where += ` AND c.model_id = ?`
		args = append(args, f.ModelID)
	}
	if f.YearMin > 0 {
		where += ` AND c.year >= ?`
		args = append(args, f.YearMin)
	}
	if f.YearMax > 0 {
		where += ` AND c.year <= ?`
		args = append(args, f.YearMax)
	}
	if f.PriceMin > 0 {
		where += ` AND c.price >= ?`
		args = append(args, f.PriceMin)
	}
	if f.PriceMax > 0 {
		where += ` AND c.price <= ?`
		args = append(args, f.PriceMax)
	}
	if f.EngineType != "" {
		where += ` AND c.engine_type = ?`
		args = append(args, f.EngineType)
	}
	if f.Transmission != "" {
		where += ` AND c.transmission = ?`
		args = append(args, f.Transmission)
	}
	return where, args
}

const carColumns = `
  c.id, c.brand_id, c.model_id, b.name AS brand_name, m.name AS model_name,
  c.year, c.engine_type, c.transmission, c.price, c.image, c.description, c.created_at`

// List returns one page of cars matching the filter. orderBy must come from
// the service-side allow-list; it is interpolated, never user input.
func (r *CarRepo) List(f Filter, orderBy string, limit, offset int) ([]domain.Car, error) {
	where, args := f.where()
	sql := `
	  SELECT ` + carColumns + `
	  FROM cars c
	  JOIN brands b ON b.id = c.brand_id
	  JOIN car_models m ON m.id = c.model_id
	  WHERE ` + where + `
	  ORDER BY ` + orderBy + `
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	var out []domain.Car
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *CarRepo) Count(f Filter) (int, error) {
	where, args := f.where()
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM cars c WHERE `+where, args...)
	return n, err
}

func (r *CarRepo) Get(id int64) (domain.Car, error) {
	var c domain.Car
	err := r.db.Get(&c, `
	  SELECT `+carColumns+`
	  FROM cars c
	  JOIN brands b ON b.id = c.brand_id
	  JOIN car_models m ON m.id = c.model_id
	  WHERE c.id = ?
	`, id)
	return c, err
}

// ByIDs resolves a set of ids; missing ids are simply absent from the result.
func (r *CarRepo) ByIDs(ids []int64) ([]domain.Car, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`
	  SELECT `+carColumns+`
	  FROM cars c
	  JOIN brands b ON b.id = c.brand_id
	  JOIN car_models m ON m.id = c.model_id
	  WHERE c.id IN (?)
	  ORDER BY c.id`, ids)
	if err != nil {
		return nil, err
	}
	var out []domain.Car
	err = r.db.Select(&out, query, args...)
	return out, err
}

func (r *CarRepo) Create(c domain.Car) (int64, error) {
	res, err := r.db.Exec(`
	  INSERT INTO cars(brand_id,model_id,year,engine_type,transmission,price,image,description,created_at)
	  VALUES(?,?,?,?,?,?,?,?,CURRENT_TIMESTAMP)
	`, c.BrandID, c.ModelID, c.Year, c.EngineType, c.Transmission, c.Price, c.Image, c.Description)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (r *CarRepo) Update(c domain.Car) error {
	_, err := r.db.Exec(`
	  UPDATE cars
	  SET brand_id=?, model_id=?, year=?, engine_type=?, transmission=?, price=?, image=?, description=?
	  WHERE id=?
	`, c.BrandID, c.ModelID, c.Year, c.EngineType, c.Transmission, c.Price, c.Image, c.Description, c.ID)
	return err
}

func (r *CarRepo) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM cars WHERE id=?`, id)
	return err
}
