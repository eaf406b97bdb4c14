// Package routes wires controllers, middleware, and the router together.
package routes

import (
	"github.com/shashiranjanraj/skirmish/app/controllers"
	appmw "github.com/shashiranjanraj/skirmish/app/middleware"
	"github.com/shashiranjanraj/skirmish/app/services"
	"github.com/shashiranjanraj/skirmish/config"
	"github.com/shashiranjanraj/skirmish/pkg/auth"
	"github.com/shashiranjanraj/skirmish/pkg/metrics"
	"github.com/shashiranjanraj/skirmish/pkg/middleware"
	"github.com/shashiranjanraj/skirmish/pkg/reqid"
	"github.com/shashiranjanraj/skirmish/pkg/router"
)

// Deps collects everything the route table needs.
type Deps struct {
	Tokens     *auth.Tokens
	Users      services.UserStore
	Auth       *controllers.AuthController
	Combatants *controllers.CombatantController
	Encounters *controllers.EncounterController
	Items      *controllers.ItemController
	Orders     *controllers.OrderController
}

// Register mounts the full API surface and returns the router.
func Register(d Deps) *router.Router {
	r := router.New()

	r.Use(
		reqid.Middleware(),
		middleware.Recovery,
		middleware.Logger,
		metrics.Middleware(),
		middleware.CORS(middleware.DefaultCORSOptions()),
		middleware.RateLimit(config.RateLimit(), config.RateWindow()),
	)

	authed := middleware.Authenticate(d.Tokens)
	admin := appmw.RequireAdmin(d.Users)

	r.Get("/metrics", "metrics", metrics.Handler())

	authGroup := r.Group("/auth")
	authGroup.Post("/signup", "auth.signup", d.Auth.Signup)
	authGroup.Post("/login", "auth.login", d.Auth.Login)
	authGroup.Put("/password", "auth.password", d.Auth.UpdatePassword, authed)

	// Catalog reads need a valid token; writes additionally pass the admin
	// gate, which re-reads the user from the store.
	combatants := r.Group("/combatants", authed)
	combatants.Get("/", "combatants.list", d.Combatants.List)
	combatants.Get("/{id}", "combatants.get", d.Combatants.Get)
	combatants.Post("/", "combatants.create", d.Combatants.Create, admin)
	combatants.Put("/{id}", "combatants.update", d.Combatants.Update, admin)
	combatants.Delete("/{id}", "combatants.delete", d.Combatants.Delete, admin)

	// The owner lookup is public; everything else needs a token.
	r.Get("/encounters/{id}/user", "encounters.owner", d.Encounters.Owner)
	encounters := r.Group("/encounters", authed)
	encounters.Get("/", "encounters.list", d.Encounters.List)
	encounters.Get("/search", "encounters.search", d.Encounters.Search)
	encounters.Get("/{id}", "encounters.get", d.Encounters.Get)
	encounters.Post("/", "encounters.create", d.Encounters.Create)
	encounters.Put("/{id}", "encounters.update", d.Encounters.Update)
	encounters.Delete("/{id}", "encounters.delete", d.Encounters.Delete)

	items := r.Group("/items", authed)
	items.Get("/", "items.list", d.Items.List)
	items.Get("/{id}", "items.get", d.Items.Get)
	items.Post("/", "items.create", d.Items.Create, admin)
	items.Put("/{id}", "items.update", d.Items.Update, admin)
	items.Delete("/{id}", "items.delete", d.Items.Delete, admin)

	r.Get("/orders/{id}/user", "orders.owner", d.Orders.Owner)
	orders := r.Group("/orders", authed)
	orders.Get("/", "orders.list", d.Orders.List)
	orders.Get("/{id}", "orders.get", d.Orders.Get)
	orders.Post("/", "orders.create", d.Orders.Create)
	orders.Put("/{id}", "orders.update", d.Orders.Update)

	return r
}
