// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/luxfakia/storefront/internal/config"
	"github.com/luxfakia/storefront/internal/domain/authz"
	"github.com/luxfakia/storefront/internal/interfaces/http/handlers"
	"github.com/luxfakia/storefront/internal/interfaces/http/middleware"
	"github.com/luxfakia/storefront/internal/pkg/session"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Deps carries what every route group needs
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Sessions *session.Manager
	Limiter  middleware.Counter
	Renderer handlers.Renderer
	Logger   *logrus.Logger
}

// SetupRoutes registers every session-backed route on r
func SetupRoutes(r gin.IRouter, d Deps) {
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Sessions, d.Renderer, d.Logger)

	site := r.Group("")
	site.Use(middleware.Session(d.Sessions, d.Logger))
	site.Use(middleware.CurrentUser(authHandler.UserService(), d.Logger))
	site.Use(middleware.Language(d.Config.App.DefaultLang))

	SetupStorefrontRoutes(site, d)
	SetupAccountRoutes(site, d, authHandler)
	SetupAdminRoutes(site, d, authHandler)
}

// SetupStorefrontRoutes sets up catalog, cart and checkout routes
func SetupStorefrontRoutes(rg *gin.RouterGroup, d Deps) {
	productHandler := handlers.NewProductHandler(d.DB, d.Config, d.Renderer, d.Logger)
	cartHandler := handlers.NewCartHandler(d.DB, d.Config, d.Renderer, d.Logger)
	checkoutHandler := handlers.NewCheckoutHandler(d.DB, d.Config, d.Renderer, d.Logger)
	uploadHandler := handlers.NewUploadHandler(d.DB, d.Config, d.Renderer, d.Logger)

	rg.GET("/", productHandler.Home)
	rg.GET("/shop", productHandler.Shop)
	rg.GET("/product/:id", productHandler.Product)
	rg.GET("/images/:id", uploadHandler.ServeImage)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.GET("/add/:id", cartHandler.AddToCart)
		cart.POST("/add/:id", cartHandler.AddToCart)
		cart.POST("/update/:id", cartHandler.UpdateCartItem)
		cart.GET("/remove/:id", cartHandler.RemoveFromCart)
	}

	rg.GET("/checkout", checkoutHandler.CheckoutForm)
	rg.POST("/checkout", checkoutHandler.PlaceOrder)
	rg.GET("/order-confirmation/:id", checkoutHandler.Confirmation)
}

// SetupAccountRoutes sets up login, registration and profile routes
func SetupAccountRoutes(rg *gin.RouterGroup, d Deps, authHandler *handlers.AuthHandler) {
	limit := middleware.RateLimit(d.Limiter, "login", d.Config.Security.LoginRateLimit, d.Logger)

	rg.GET("/login", authHandler.LoginForm)
	rg.POST("/login", limit, authHandler.Login)
	rg.GET("/register", authHandler.RegisterForm)
	rg.POST("/register", limit, authHandler.Register)
	rg.GET("/logout", authHandler.Logout)
	rg.GET("/forgot_password", authHandler.ForgotPasswordForm)
	rg.POST("/forgot_password", authHandler.ForgotPassword)
	rg.GET("/set_lang/:code", authHandler.SetLang)

	account := rg.Group("")
	account.Use(middleware.LoginRequired())
	{
		account.GET("/profile", authHandler.Profile)
		account.POST("/profile", authHandler.UpdateProfile)
		account.GET("/my-orders", authHandler.MyOrders)
	}
}

// SetupAdminRoutes sets up the admin console. Every route passes the staff
// gate, then the capability its action needs.
func SetupAdminRoutes(rg *gin.RouterGroup, d Deps, authHandler *handlers.AuthHandler) {
	analyticsHandler := handlers.NewAnalyticsHandler(d.DB, d.Config, d.Renderer, d.Logger)
	productHandler := handlers.NewAdminProductHandler(d.DB, d.Config, d.Renderer, d.Logger)
	categoryHandler := handlers.NewCategoryHandler(d.DB, d.Config, d.Renderer, d.Logger)
	userHandler := handlers.NewAdminUserHandler(d.DB, d.Config, d.Renderer, d.Logger)
	orderHandler := handlers.NewOrderHandler(d.DB, d.Config, d.Renderer, d.Logger)
	contentHandler := handlers.NewContentHandler(d.DB, d.Config, d.Renderer, d.Logger)
	uploadHandler := handlers.NewUploadHandler(d.DB, d.Config, d.Renderer, d.Logger)

	limit := middleware.RateLimit(d.Limiter, "login", d.Config.Security.LoginRateLimit, d.Logger)
	rg.GET("/admin/login", authHandler.LoginForm)
	rg.POST("/admin/login", limit, authHandler.Login)

	can := func(a authz.Action) gin.HandlerFunc { return middleware.Require(a, d.Logger) }

	admin := rg.Group("/admin")
	admin.Use(middleware.AdminGate(d.Logger))
	{
		admin.GET("/", can(authz.ViewDashboard), analyticsHandler.Dashboard)

		products := admin.Group("/products")
		{
			products.GET("", can(authz.ViewProducts), productHandler.ListProducts)
			products.GET("/export", can(authz.ExportProducts), productHandler.ExportProducts)
			products.GET("/add", can(authz.CreateProduct), productHandler.NewProductForm)
			products.POST("/add", can(authz.CreateProduct), productHandler.CreateProduct)
			products.GET("/:id/edit", can(authz.UpdateProduct), productHandler.EditProductForm)
			products.POST("/:id/edit", can(authz.UpdateProduct), productHandler.UpdateProduct)
			products.POST("/:id/toggle-hidden", can(authz.ToggleProduct), productHandler.ToggleHidden)
			products.POST("/:id/toggle-stock", can(authz.ToggleProduct), productHandler.ToggleOutOfStock)
			products.POST("/:id/delete", can(authz.RemoveProduct), productHandler.DeleteProduct)
		}

		categories := admin.Group("/categories")
		{
			categories.GET("", can(authz.ViewCategories), categoryHandler.ListCategories)
			categories.POST("/add", can(authz.CreateCategory), categoryHandler.CreateCategory)
			categories.GET("/:id/edit", can(authz.UpdateCategory), categoryHandler.EditCategoryForm)
			categories.POST("/:id/edit", can(authz.UpdateCategory), categoryHandler.UpdateCategory)
			categories.POST("/:id/delete", can(authz.RemoveCategory), categoryHandler.DeleteCategory)
		}

		users := admin.Group("/users")
		{
			users.GET("", can(authz.ViewUsers), userHandler.GetUsers)
			users.GET("/logs", can(authz.ViewUserLogs), userHandler.GetLogs)
			users.GET("/add", can(authz.CreateUser), userHandler.NewUserForm)
			users.POST("/add", can(authz.CreateUser), userHandler.CreateUser)
			users.GET("/:id", can(authz.ViewUsers), userHandler.GetUser)
			users.GET("/:id/edit", can(authz.UpdateUser), userHandler.EditUserForm)
			users.POST("/:id/edit", can(authz.UpdateUser), userHandler.UpdateUser)
			users.POST("/:id/permissions", can(authz.ManagePermissions), userHandler.SetPermissions)
			users.POST("/:id/promote", can(authz.ManagePermissions), userHandler.Promote)
			users.POST("/:id/demote", can(authz.ManagePermissions), userHandler.Demote)
			users.POST("/:id/delete", can(authz.RemoveUser), userHandler.DeleteUser)
		}

		orders := admin.Group("/orders")
		{
			orders.GET("", can(authz.ViewOrders), orderHandler.ListOrders)
			orders.GET("/:id", can(authz.ViewOrders), orderHandler.GetOrder)
			orders.POST("/:id/status", can(authz.UpdateOrderStatus), orderHandler.UpdateOrderStatus)
			orders.GET("/:id/invoice", can(authz.DownloadInvoice), orderHandler.DownloadInvoice)
		}

		content := admin.Group("/content")
		{
			content.GET("", can(authz.ManageHomeContent), contentHandler.GetContent)
			content.POST("/sections", can(authz.ManageHomeContent), contentHandler.CreateSection)
			content.GET("/sections/:id/edit", can(authz.ManageHomeContent), contentHandler.EditSectionForm)
			content.POST("/sections/:id/edit", can(authz.ManageHomeContent), contentHandler.UpdateSection)
			content.POST("/sections/:id/delete", can(authz.ManageHomeContent), contentHandler.DeleteSection)
			content.POST("/settings", can(authz.ManageHomeContent), contentHandler.UpdateSettings)
		}

		uploads := admin.Group("/uploads")
		{
			uploads.GET("", can(authz.UploadImages), uploadHandler.ListImages)
			uploads.POST("", can(authz.UploadImages), uploadHandler.UploadImage)
			uploads.POST("/:id/delete", can(authz.UploadImages), uploadHandler.DeleteImage)
		}
	}
}
