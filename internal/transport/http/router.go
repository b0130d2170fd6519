package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/me1610247/API-ecommerce/internal/transport/http/handler"
	"github.com/me1610247/API-ecommerce/internal/transport/http/middleware"
)

type Handlers struct {
	Auth     *handler.AuthHandler
	Product  *handler.ProductHandler
	Category *handler.CategoryHandler
	Cart     *handler.CartHandler
	Order    *handler.OrderHandler
	Review   *handler.ReviewHandler
	Wishlist *handler.WishlistHandler
}

func RegisterRoutes(app *fiber.App, h *Handlers) {
	authGroup := app.Group("/auth")

	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/login", h.Auth.Login)
	authGroup.Post("/refresh", h.Auth.Refresh)

	api := app.Group("/api", middleware.NewAuthMiddleware())
	api.Get("/me", h.Auth.GetMe)
	api.Patch("/me", h.Auth.UpdateMe)

	product := api.Group("/products")
	product.Post("", h.Product.Create)
	product.Get("", h.Product.List)
	product.Get("/:id", h.Product.FindByID)
	product.Patch("/:id", h.Product.Update)
	product.Delete("/:id", h.Product.Delete)
	product.Get("/:id/reviews", h.Review.ListByProduct)
	product.Post("/:id/reviews", h.Review.Create)

	category := api.Group("/categories")
	category.Post("", h.Category.Create)
	category.Get("", h.Category.List)

	cart := api.Group("/cart")
	cart.Post("/items", h.Cart.AddLine)
	cart.Get("/items", h.Cart.List)
	cart.Patch("/items/:id", h.Cart.UpdateLine)
	cart.Delete("/items/:id", h.Cart.RemoveLine)

	order := api.Group("/orders")
	order.Post("", h.Order.Create)
	order.Get("", h.Order.Get)

	review := api.Group("/reviews")
	review.Delete("/:id", h.Review.Delete)

	wishlist := api.Group("/wishlist")
	wishlist.Post("", h.Wishlist.Add)
	wishlist.Get("", h.Wishlist.List)
	wishlist.Delete("/:id", h.Wishlist.Remove)
}
