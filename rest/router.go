package rest

import (
	"github.com/gofiber/fiber/v2"

	"github.com/goliatone/go-shop/auth"
	"github.com/goliatone/go-shop/catalog"
)

// Deps collects everything the route table wires together.
type Deps struct {
	Auther    *auth.Auther
	Tokens    auth.TokenService
	Carriers  *auth.Carriers
	Catalog   catalog.RepositoryManager
	Logger    auth.Logger
	UploadDir string
}

// RegisterRoutes mounts the full API surface. Reads on the catalog are
// public; catalog mutations are admin only; order updates and deletes pass
// for the owner or an admin.
func RegisterRoutes(app *fiber.App, d Deps) {
	authenticated := auth.Authenticate(d.Tokens, d.Carriers, d.Logger)
	adminOnly := auth.RequireRole(auth.RoleAdmin)
	ownerOrAdmin := auth.RequireOwnerOrRole(d.Catalog.Orders(), auth.RoleAdmin)

	sessions := NewAuthController(d.Auther, d.Carriers, d.Logger)
	categories := &CategoriesController{Repo: d.Catalog, Logger: d.Logger}
	products := &ProductsController{Repo: d.Catalog, Logger: d.Logger, UploadDir: d.UploadDir}
	orders := &OrdersController{Repo: d.Catalog, Logger: d.Logger}

	api := app.Group("/api")

	session := api.Group("/auth")
	session.Post("/register", sessions.Register)
	session.Post("/login", sessions.Login)
	session.Post("/refresh", sessions.Refresh)
	session.Delete("/logout", sessions.Logout)
	session.Delete("/logout-all", authenticated, sessions.LogoutAll)
	session.Get("/me", authenticated, sessions.Me)

	category := api.Group("/categories")
	category.Get("/", categories.List)
	category.Get("/:id", categories.Get)
	category.Post("/", authenticated, adminOnly, categories.Create)
	category.Put("/:id", authenticated, adminOnly, categories.Update)
	category.Delete("/:id", authenticated, adminOnly, categories.Delete)

	product := api.Group("/products")
	product.Get("/", products.List)
	product.Get("/:id", products.Get)
	product.Post("/", authenticated, adminOnly, products.Create)
	product.Put("/:id", authenticated, adminOnly, products.Update)
	product.Delete("/:id", authenticated, adminOnly, products.Delete)

	order := api.Group("/orders")
	order.Get("/", orders.List)
	order.Get("/:id", orders.Get)
	order.Post("/", authenticated, orders.Create)
	order.Put("/:id", authenticated, ownerOrAdmin, orders.Update)
	order.Delete("/:id", authenticated, ownerOrAdmin, orders.Delete)

	app.Static("/uploads", d.UploadDir)
}
