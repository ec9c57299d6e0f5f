package repos

import (
	"autoguide/internal/domain"

	"github.com/jmoiron/sqlx"
)

type FavoriteRepo struct{ db *sqlx.DB }

func NewFavoriteRepo(db *sqlx.DB) *FavoriteRepo { return &FavoriteRepo{db: db} }

// Add inserts the (user, car) row. The UNIQUE constraint absorbs a concurrent
// duplicate insert: inserted=false means the row already existed.
func (r *FavoriteRepo) Add(userID string, carID int64) (inserted bool, err error) {
	res, err := r.db.Exec(`
	  INSERT INTO favorites(user_id, car_id, created_at)
	  VALUES(?, ?, CURRENT_TIMESTAMP)
	  ON CONFLICT(user_id, car_id) DO NOTHING
	`, userID, carID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n == 1, nil
}

func (r *FavoriteRepo) Remove(userID string, carID int64) error {
	_, err := r.db.Exec(`DELETE FROM favorites WHERE user_id=? AND car_id=?`, userID, carID)
	return err
}

func (r *FavoriteRepo) Exists(userID string, carID int64) (bool, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id=? AND car_id=?`, userID, carID)
	return n > 0, err
}

func (r *FavoriteRepo) Count(userID string) (int, error) {
	var n int
	err := r.db.Get(&n, `SELECT COUNT(*) FROM favorites WHERE user_id=?`, userID)
	return n, err
}

// CarIDs returns the ids the user has favorited, for star highlighting.
func (r *FavoriteRepo) CarIDs(userID string) ([]int64, error) {
	var out []int64
	err := r.db.Select(&out, `SELECT car_id FROM favorites WHERE user_id=?`, userID)
	return out, err
}

// Cars lists the user's favorited cars, newest favorite first.
func (r *FavoriteRepo) Cars(userID string) ([]domain.Car, error) {
	var out []domain.Car
	err := r.db.Select(&out, `
	  SELECT `+carColumns+`
	  FROM favorites f
	  JOIN cars c ON c.id = f.car_id
	  JOIN brands b ON b.id = c.brand_id
	  JOIN car_models m ON m.id = c.model_id
	  WHERE f.user_id = ?
	  ORDER BY f.created_at DESC, f.id DESC
	`, userID)
	return out, err
}
