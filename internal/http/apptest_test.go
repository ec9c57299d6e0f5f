package handlers_test

import (
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	html "github.com/gofiber/template/html/v2"
	"github.com/jmoiron/sqlx"

	"autoguide/internal/config"
	"autoguide/internal/format"
	"autoguide/internal/http/handlers"
	"autoguide/internal/repos"
	"autoguide/internal/services"
)

// newTestApp wires a minimal app over a seeded in-memory database with the
// same routes and guards as main.
func newTestApp(t *testing.T) (*fiber.App, *sqlx.DB, *repos.UserRepo) {
	t.Helper()
	cfg := config.Config{DBDSN: ":memory:", MediaDir: t.TempDir()}
	db, err := repos.OpenDB(cfg.DBDSN)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	userRepo := repos.NewUserRepo(db)
	authSvc := &services.AuthService{Users: userRepo}
	authH := &handlers.AuthHandler{Auth: authSvc}

	engine := html.New("../../web/templates", ".html")
	engine.AddFunc("money", format.Money)
	app := fiber.New(fiber.Config{Views: engine})
	app.Use(requestid.New())
	app.Use(csrf.New(csrf.Config{KeyLookup: "form:csrf", CookieName: "csrf_", CookieSameSite: "Lax"}))

	deps := handlers.NewDeps(db, cfg, authSvc)
	app.Use(handlers.AttachUser(authSvc, deps.Favs))
	app.Get("/", deps.CarHandler.List)
	app.Get("/cars/add", handlers.RequirePermission(authSvc, "car.add"), deps.CarHandler.AddForm)
	app.Post("/cars/add", handlers.RequirePermission(authSvc, "car.add"), deps.CarHandler.Add)
	app.Get("/cars/:id", deps.CarHandler.Detail)
	app.Get("/cars/:id/edit", handlers.RequirePermission(authSvc, "car.change"), deps.CarHandler.EditForm)
	app.Post("/cars/:id/edit", handlers.RequirePermission(authSvc, "car.change"), deps.CarHandler.Edit)
	app.Get("/cars/:id/delete", handlers.RequirePermission(authSvc, "car.delete"), deps.CarHandler.DeleteForm)
	app.Post("/cars/:id/delete", handlers.RequirePermission(authSvc, "car.delete"), deps.CarHandler.Delete)
	app.Get("/ajax/models", deps.ModelsHandler.ForBrand)
	app.Get("/compare", deps.CompareHandler.View)
	app.Get("/compare/add/:id", deps.CompareHandler.Add)
	app.Get("/compare/remove/:id", deps.CompareHandler.Remove)
	app.Get("/favorites", handlers.RequireUser(authSvc), deps.FavoriteHandler.List)
	app.Post("/favorites/toggle/:id", handlers.RequireUser(authSvc), deps.FavoriteHandler.Toggle)
	app.Get("/login", authH.LoginForm)
	app.Post("/login", authH.Login)
	app.Get("/register", authH.RegisterForm)
	app.Post("/register", authH.Register)

	return app, db, userRepo
}

func extractCookie(resp *http.Response, name string) string {
	for _, c := range resp.Cookies() {
		if c.Name == name {
			return c.Value
		}
	}
	return ""
}

// bindSession attaches a seeded user to a session id, sidestepping the login
// form in tests that are not about login itself.
func bindSession(t *testing.T, users *repos.UserRepo, sid, userID string) {
	t.Helper()
	if err := users.BindSession(sid, userID); err != nil {
		t.Fatalf("bind session: %v", err)
	}
}
