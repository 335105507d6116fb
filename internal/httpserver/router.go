package httpserver

import (
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/kindmarket/kindmarket/internal/service/token"
)

type Deps struct {
	DB              *gorm.DB
	Tokens          *token.TokenService
	AuthHandler     *AuthHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	CheckoutHandler *CheckoutHandler
	OrderHandler    *OrderHandler
	SellerHandler   *SellerHandler
	AdminHandler    *AdminHandler
	CharityHandler  *CharityHandler
	SearchHandler   *SearchHandler
}

func Register(e *echo.Echo, d *Deps) {
	e.GET("/health/live", func(c echo.Context) error { return c.NoContent(200) })
	e.GET("/health/ready", func(c echo.Context) error { return c.NoContent(200) })

	v1 := e.Group("/api/v1")

	v1.POST("/register", d.AuthHandler.Register)
	v1.POST("/login", d.AuthHandler.Login)
	v1.POST("/logout", d.AuthHandler.Logout)

	v1.GET("/products", d.ProductHandler.GetProducts)
	v1.GET("/products/:id", d.ProductHandler.GetProduct)
	v1.GET("/search", d.SearchHandler.Search)

	v1.GET("/charity/causes", d.CharityHandler.ListCauses)
	v1.POST("/charity/applications", d.CharityHandler.ApplyCharity)

	user := v1.Group("", d.Tokens.RequireUser)

	user.GET("/cart", d.CartHandler.GetCart)
	user.GET("/cart/count", d.CartHandler.Count)
	user.POST("/cart", d.CartHandler.AddToCart)
	user.PATCH("/cart/:id", d.CartHandler.UpdateItem)
	user.DELETE("/cart/:id", d.CartHandler.RemoveItem)

	user.POST("/checkout", d.CheckoutHandler.Checkout)
	user.GET("/orders", d.OrderHandler.ListOrders)
	user.GET("/orders/:id", d.OrderHandler.GetOrder)

	user.POST("/charity/donations", d.CharityHandler.Donate)
	user.POST("/charity/donor-applications", d.CharityHandler.ApplyDonor)

	user.POST("/seller/register", d.SellerHandler.Register)
	user.GET("/seller/entry", d.SellerHandler.Entry)
	user.GET("/seller/products", d.ProductHandler.MyProducts)
	user.POST("/seller/products", d.ProductHandler.CreateProduct)
	user.PATCH("/seller/products/:id", d.ProductHandler.PatchProduct)
	user.DELETE("/seller/products/:id", d.ProductHandler.DeleteProduct)

	admin := v1.Group("/admin", d.Tokens.RequireAdmin)

	admin.GET("/dashboard", d.AdminHandler.Dashboard)
	admin.GET("/sellers", d.AdminHandler.ListSellers)
	admin.POST("/sellers/:id/approve", d.AdminHandler.ApproveSeller)
	admin.POST("/sellers/:id/reject", d.AdminHandler.RejectSeller)
	admin.GET("/donor-applications", d.AdminHandler.ListDonorApplications)
	admin.POST("/donor-applications/:id/approve", d.AdminHandler.ApproveDonor)
	admin.POST("/donor-applications/:id/reject", d.AdminHandler.RejectDonor)
	admin.GET("/charity-applications", d.AdminHandler.ListCharityApplications)
	admin.POST("/charity-applications/:id/approve", d.AdminHandler.ApproveCharity)
	admin.POST("/charity-applications/:id/reject", d.AdminHandler.RejectCharity)
	admin.PATCH("/orders/:id/status", d.AdminHandler.SetOrderStatus)
}
