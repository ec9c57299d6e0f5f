package handlers

import (
	"autoguide/internal/config"
	"autoguide/internal/repos"
	"autoguide/internal/services"

	"github.com/jmoiron/sqlx"
)

type Deps struct {
	CarHandler      *CarHandler
	ModelsHandler   *ModelsHandler
	CompareHandler  *CompareHandler
	FavoriteHandler *FavoriteHandler
	Favs            *services.FavoriteService
}

func NewDeps(db *sqlx.DB, cfg config.Config, auth *services.AuthService) *Deps {
	brandRepo := repos.NewBrandRepo(db)
	carRepo := repos.NewCarRepo(db)
	favRepo := repos.NewFavoriteRepo(db)

	catalogSvc := services.NewCatalogService(brandRepo, carRepo)
	favSvc := services.NewFavoriteService(favRepo)

	return &Deps{
		CarHandler:      &CarHandler{Catalog: catalogSvc, Favs: favSvc, MediaDir: cfg.MediaDir},
		ModelsHandler:   &ModelsHandler{Catalog: catalogSvc},
		CompareHandler:  &CompareHandler{Catalog: catalogSvc},
		FavoriteHandler: &FavoriteHandler{Favs: favSvc, Catalog: catalogSvc},
		Favs:            favSvc,
	}
}
