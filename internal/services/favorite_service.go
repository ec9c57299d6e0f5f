package services

import (
	"autoguide/internal/domain"
	"autoguide/internal/repos"
)

type FavoriteService struct {
	Favs *repos.FavoriteRepo
}

func NewFavoriteService(favs *repos.FavoriteRepo) *FavoriteService {
	return &FavoriteService{Favs: favs}
}

// Toggle flips (user, car) membership and reports the new total. A losing
// concurrent insert sees the row already there and removes it, which is the
// same outcome as arriving second in sequence.
func (s *FavoriteService) Toggle(userID string, carID int64) (status string, count int, err error) {
	inserted, err := s.Favs.Add(userID, carID)
	if err != nil {
		return "", 0, err
	}
	if inserted {
		status = "added"
	} else {
		if err := s.Favs.Remove(userID, carID); err != nil {
			return "", 0, err
		}
		status = "removed"
	}
	count, err = s.Favs.Count(userID)
	return status, count, err
}

// CountFor reports how many cars the user has favorited (the header badge).
func (s *FavoriteService) CountFor(userID string) (int, error) {
	return s.Favs.Count(userID)
}

func (s *FavoriteService) List(userID string) ([]domain.Car, error) {
	return s.Favs.Cars(userID)
}

// IDSet returns the user's favorited car ids keyed for template lookups.
func (s *FavoriteService) IDSet(userID string) (map[int64]bool, error) {
	ids, err := s.Favs.CarIDs(userID)
	if err != nil {
		return nil, err
	}
	set := make(map[int64]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
