package services_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"autoguide/internal/repos"
	"autoguide/internal/services"
)

func TestToggleIsAnInvolution(t *testing.T) {
	db := seededDB(t)
	svc := services.NewFavoriteService(repos.NewFavoriteRepo(db))

	status, count, err := svc.Toggle("u-alice", 1)
	require.NoError(t, err)
	require.Equal(t, "added", status)
	require.Equal(t, 1, count)

	status, count, err = svc.Toggle("u-alice", 3)
	require.NoError(t, err)
	require.Equal(t, "added", status)
	require.Equal(t, 2, count)

	// toggling again removes and the count steps back down
	status, count, err = svc.Toggle("u-alice", 1)
	require.NoError(t, err)
	require.Equal(t, "removed", status)
	require.Equal(t, 1, count)

	ids, err := svc.IDSet("u-alice")
	require.NoError(t, err)
	require.Equal(t, map[int64]bool{3: true}, ids)

	// another user's favorites are independent
	_, count, err = svc.Toggle("u-bob", 1)
	require.NoError(t, err)
	require.Equal(t, 1, count)
}

func TestFavoriteListNewestFirst(t *testing.T) {
	db := seededDB(t)
	svc := services.NewFavoriteService(repos.NewFavoriteRepo(db))

	for _, id := range []int64{2, 5, 8} {
		_, _, err := svc.Toggle("u-alice", id)
		require.NoError(t, err)
	}

	cars, err := svc.List("u-alice")
	require.NoError(t, err)
	require.Len(t, cars, 3)
	require.Equal(t, int64(8), cars[0].ID)
}

func TestFavoriteRowsVanishWithCar(t *testing.T) {
	db := seededDB(t)
	favRepo := repos.NewFavoriteRepo(db)
	svc := services.NewFavoriteService(favRepo)

	_, _, err := svc.Toggle("u-alice", 2)
	require.NoError(t, err)

	// same statement batch so the pragma applies to the deleting connection
	_, err = db.Exec(`PRAGMA foreign_keys = ON; DELETE FROM cars WHERE id=2;`)
	require.NoError(t, err)

	count, err := favRepo.Count("u-alice")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}
