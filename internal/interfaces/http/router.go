package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/foodzo-api/internal/application/auth"
	"github.com/jhoicas/foodzo-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC       *usecase.CatalogUseCase
	AdminCategoryUC *usecase.AdminCategoryUseCase
	AdminProductUC  *usecase.AdminProductUseCase
	AdminUserUC     *usecase.AdminUserUseCase
	ProfileUC       *usecase.ProfileUseCase
	MenuUC          *usecase.MenuUseCase
	AuthUC          *auth.AuthUseCase
	JWTSecret       string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/signin", authHandler.Signin)
	authGroup.Post("/google", authHandler.Google)
	authGroup.Post("/phone", authHandler.Phone)

	// Catálogo público
	catalogHandler := NewCatalogHandler(deps.CatalogUC)
	api.Get("/categories", catalogHandler.ListCategories)
	api.Get("/categories/:id", catalogHandler.GetCategory)
	api.Get("/categories/:id/products", catalogHandler.ListCategoryProducts)
	api.Get("/products", catalogHandler.ListProducts)
	api.Get("/products/search", catalogHandler.SearchProducts)

	api.Get("/profile", NewProfileHandler(deps.ProfileUC).Get)

	// Consola de administración: JWT + rol admin + verificación contra el almacén
	admin := api.Group("/admin",
		AuthMiddleware(deps.JWTSecret),
		RequireRole("admin"),
		RequireAdmin(deps.AdminUserUC),
	)

	categories := admin.Group("/categories")
	categoryHandler := NewAdminCategoryHandler(deps.AdminCategoryUC)
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Delete)

	products := admin.Group("/products")
	productHandler := NewAdminProductHandler(deps.AdminProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Patch("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	users := admin.Group("/users")
	userHandler := NewAdminUserHandler(deps.AdminUserUC)
	users.Get("/", userHandler.List)
	users.Post("/", userHandler.Promote)

	admin.Get("/menu.pdf", NewMenuHandler(deps.MenuUC).Download)
}
