package domain

type Brand struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

type CarModel struct {
	ID      int64  `db:"id"`
	BrandID int64  `db:"brand_id"`
	Name    string `db:"name"`
}

// Engine type codes as stored in the cars table.
const (
	EnginePetrol   = "petrol"
	EngineDiesel   = "diesel"
	EngineHybrid   = "hybrid"
	EngineElectric = "electric"
)

// Transmission codes as stored in the cars table.
const (
	TransManual    = "manual"
	TransAutomatic = "automatic"
	TransCVT       = "cvt"
	TransDCT       = "dct"
)

// Car carries the joined brand/model names for list and detail pages.
type Car struct {
	ID           int64   `db:"id"`
	BrandID      int64   `db:"brand_id"`
	ModelID      int64   `db:"model_id"`
	BrandName    string  `db:"brand_name"`
	ModelName    string  `db:"model_name"`
	Year         int     `db:"year"`
	EngineType   string  `db:"engine_type"`
	Transmission string  `db:"transmission"`
	Price        float64 `db:"price"`
	Image        string  `db:"image"`
	Description  string  `db:"description"`
	CreatedAt    string  `db:"created_at"`
}

type Favorite struct {
	ID        int64  `db:"id"`
	UserID    string `db:"user_id"`
	CarID     int64  `db:"car_id"`
	CreatedAt string `db:"created_at"`
}
