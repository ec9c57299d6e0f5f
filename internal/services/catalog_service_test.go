package services_test

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"autoguide/internal/domain"
	"autoguide/internal/repos"
	"autoguide/internal/services"
)

// seededDB opens an in-memory database with the standard demo seed:
// 4 brands, 9 models, 12 cars (3 electric) and 3 users.
func seededDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := repos.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	return db
}

func newCatalog(t *testing.T) *services.CatalogService {
	t.Helper()
	db := seededDB(t)
	return services.NewCatalogService(repos.NewBrandRepo(db), repos.NewCarRepo(db))
}

func TestListFilterPredicates(t *testing.T) {
	svc := newCatalog(t)

	f := repos.Filter{
		YearMin:    2020,
		YearMax:    2022,
		PriceMin:   20000,
		PriceMax:   50000,
		EngineType: domain.EngineElectric,
	}
	page, err := svc.List(f, "", 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Cars)
	for _, c := range page.Cars {
		require.Equal(t, domain.EngineElectric, c.EngineType)
		require.GreaterOrEqual(t, c.Year, 2020)
		require.LessOrEqual(t, c.Year, 2022)
		require.GreaterOrEqual(t, c.Price, 20000.0)
		require.LessOrEqual(t, c.Price, 50000.0)
	}
}

func TestListBrandModelMismatchYieldsEmpty(t *testing.T) {
	svc := newCatalog(t)

	// brand 1 is Toyota, model 4 is Tesla Model 3: an impossible combination
	// filters to an empty page, not an error.
	page, err := svc.List(repos.Filter{BrandID: 1, ModelID: 4}, "", 1)
	require.NoError(t, err)
	require.Empty(t, page.Cars)
	require.Equal(t, 0, page.Total)
	require.Equal(t, 1, page.Pages)
}

func TestListSortAllowListAndFallback(t *testing.T) {
	svc := newCatalog(t)

	page, err := svc.List(repos.Filter{}, "-price", 1)
	require.NoError(t, err)
	for i := 1; i < len(page.Cars); i++ {
		require.GreaterOrEqual(t, page.Cars[i-1].Price, page.Cars[i].Price)
	}

	page, err = svc.List(repos.Filter{}, "year", 1)
	require.NoError(t, err)
	for i := 1; i < len(page.Cars); i++ {
		require.LessOrEqual(t, page.Cars[i-1].Year, page.Cars[i].Year)
	}

	// unknown token falls back to newest-first
	page, err = svc.List(repos.Filter{}, "id; DROP TABLE cars", 1)
	require.NoError(t, err)
	require.NotEmpty(t, page.Cars)
	require.Equal(t, int64(12), page.Cars[0].ID)
}

func TestListPagination(t *testing.T) {
	svc := newCatalog(t)

	page, err := svc.List(repos.Filter{}, "", 1)
	require.NoError(t, err)
	require.Equal(t, 12, page.Total)
	require.Equal(t, 2, page.Pages)
	require.Len(t, page.Cars, services.PageSize)

	page, err = svc.List(repos.Filter{}, "", 2)
	require.NoError(t, err)
	require.Len(t, page.Cars, 3)

	// out-of-range page clamps to the last page
	page, err = svc.List(repos.Filter{}, "", 99)
	require.NoError(t, err)
	require.Equal(t, 2, page.Current)
	require.Len(t, page.Cars, 3)
}

func TestModelsForBrand(t *testing.T) {
	svc := newCatalog(t)

	models, err := svc.ModelsForBrand(2) // Tesla
	require.NoError(t, err)
	require.Len(t, models, 2)
	for _, m := range models {
		require.Equal(t, int64(2), m.BrandID)
	}

	all, err := svc.ModelsForBrand(0)
	require.NoError(t, err)
	require.Len(t, all, 9)
}

func TestCreateCarRejectsBrandModelMismatch(t *testing.T) {
	svc := newCatalog(t)

	_, err := svc.CreateCar(domain.Car{
		BrandID: 1, ModelID: 4, // Toyota with a Tesla model
		Year: 2021, EngineType: domain.EnginePetrol, Transmission: domain.TransManual, Price: 10000,
	})
	require.ErrorIs(t, err, services.ErrModelBrandMismatch)

	id, err := svc.CreateCar(domain.Car{
		BrandID: 1, ModelID: 1,
		Year: 2021, EngineType: domain.EnginePetrol, Transmission: domain.TransManual, Price: 10000,
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	// the mismatch is also rejected on update
	car, err := svc.GetCar(id)
	require.NoError(t, err)
	car.ModelID = 4
	require.ErrorIs(t, svc.UpdateCar(car), services.ErrModelBrandMismatch)
}

func TestCarsByIDsOmitsMissing(t *testing.T) {
	svc := newCatalog(t)

	cars, err := svc.CarsByIDs([]int64{1, 2, 9999})
	require.NoError(t, err)
	require.Len(t, cars, 2)
}
