package httpserver

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopfront/internal/auth"
	"shopfront/internal/catalog"
	"shopfront/internal/domain"
	"shopfront/internal/service/checkout"
	"shopfront/internal/service/orders"
)

// CartService is the cart aggregate surface used by handlers.
type CartService interface {
	Get(ctx context.Context, sessionID string) (domain.CartState, error)
	AddItem(ctx context.Context, sessionID string, item domain.CartItem, quantity int) (domain.CartState, error)
	RemoveItem(ctx context.Context, sessionID string, id int64) (domain.CartState, error)
	SetQuantity(ctx context.Context, sessionID string, id int64, quantity int) (domain.CartState, error)
	SetOpen(ctx context.Context, sessionID string, open bool) (domain.CartState, error)
	Clear(ctx context.Context, sessionID string) error
}

// WishlistService is the wishlist aggregate surface.
type WishlistService interface {
	Get(ctx context.Context, sessionID string) (domain.WishlistState, error)
	Add(ctx context.Context, sessionID string, item domain.WishlistItem) (domain.WishlistState, error)
	Remove(ctx context.Context, sessionID string, id int64) (domain.WishlistState, error)
	Clear(ctx context.Context, sessionID string) error
}

// OrderService is the order aggregate surface, customer and admin sides.
type OrderService interface {
	List(ctx context.Context, sessionID string) ([]domain.Order, error)
	Get(ctx context.Context, sessionID, orderID string) (*domain.Order, error)
	ListAll(ctx context.Context) ([]orders.SessionOrder, error)
	SetStatusByID(ctx context.Context, orderID string, status domain.OrderStatus) (*domain.Order, error)
	ClearAll(ctx context.Context) error
}

// CheckoutService starts checkouts and verifies payment callbacks.
type CheckoutService interface {
	Start(ctx context.Context, sessionID string, in checkout.StartInput) (*checkout.StartOutput, error)
	Verify(ctx context.Context, sessionID, reference, trxref string) (*checkout.VerifyResult, error)
}

// AccountService holds the customer auth session.
type AccountService interface {
	Login(ctx context.Context, sessionID, username, password string) (*domain.User, error)
	Logout(ctx context.Context, sessionID string) error
	Current(ctx context.Context, sessionID string) (*domain.User, bool, error)
}

// CatalogClient proxies the external product catalog.
type CatalogClient interface {
	ListProducts(ctx context.Context, limit, skip int) (*catalog.Page, error)
	GetProduct(ctx context.Context, id int64) (*catalog.Product, error)
	SearchProducts(ctx context.Context, query string) (*catalog.Page, error)
	ListCategories(ctx context.Context) ([]catalog.Category, error)
	ListByCategory(ctx context.Context, slug string) (*catalog.Page, error)
}

// NewsletterRepo stores newsletter signups.
type NewsletterRepo interface {
	Subscribe(ctx context.Context, email, source string) error
}

// AdminService logs dashboard operators in.
type AdminService interface {
	Login(ctx context.Context, email, password string) (string, time.Time, error)
}

// TokenValidator checks admin bearer tokens.
type TokenValidator interface {
	Validate(token string) (*auth.Claims, error)
}

// Deps carries everything the router needs.
type Deps struct {
	CartSvc     CartService
	WishlistSvc WishlistService
	OrderSvc    OrderService
	CheckoutSvc CheckoutService
	AccountSvc  AccountService
	Catalog     CatalogClient
	Newsletter  NewsletterRepo
	AdminSvc    AdminService
	Tokens      TokenValidator
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     corsOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Session-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")
	api.POST("/sessions", createSessionHandler)
	api.POST("/newsletter/subscribe", subscribeHandler(logger, deps.Newsletter))

	// Catalog proxy needs no session.
	api.GET("/products", listProductsHandler(logger, deps.Catalog))
	api.GET("/products/search", searchProductsHandler(logger, deps.Catalog))
	api.GET("/products/categories", listCategoriesHandler(logger, deps.Catalog))
	api.GET("/products/category/:slug", listByCategoryHandler(logger, deps.Catalog))
	api.GET("/products/:id", getProductHandler(logger, deps.Catalog))

	session := api.Group("", sessionMiddleware())
	{
		session.GET("/cart", getCartHandler(deps.CartSvc))
		session.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		session.PATCH("/cart/items/:id", setCartQuantityHandler(deps.CartSvc))
		session.DELETE("/cart/items/:id", removeCartItemHandler(deps.CartSvc))
		session.POST("/cart/open", setCartOpenHandler(deps.CartSvc))
		session.DELETE("/cart", clearCartHandler(deps.CartSvc))

		session.GET("/wishlist", getWishlistHandler(deps.WishlistSvc))
		session.POST("/wishlist", addWishlistItemHandler(deps.WishlistSvc))
		session.DELETE("/wishlist/:id", removeWishlistItemHandler(deps.WishlistSvc))
		session.DELETE("/wishlist", clearWishlistHandler(deps.WishlistSvc))

		session.GET("/orders", listOrdersHandler(deps.OrderSvc))
		session.GET("/orders/:id", getOrderHandler(deps.OrderSvc))

		session.POST("/checkout", startCheckoutHandler(logger, deps.CheckoutSvc))
		session.GET("/payments/verify", verifyPaymentHandler(deps.CheckoutSvc))

		session.POST("/auth/login", loginHandler(logger, deps.AccountSvc))
		session.POST("/auth/logout", logoutHandler(deps.AccountSvc))
		session.GET("/auth/me", currentUserHandler(deps.AccountSvc))
	}

	api.POST("/admin/login", adminLoginHandler(deps.AdminSvc))
	adminGroup := api.Group("/admin", adminAuthMiddleware(deps.Tokens))
	{
		adminGroup.GET("/orders", adminListOrdersHandler(logger, deps.OrderSvc))
		adminGroup.PATCH("/orders/:id/status", adminSetOrderStatusHandler(deps.OrderSvc))
		adminGroup.DELETE("/orders", adminClearOrdersHandler(deps.OrderSvc))
	}

	return router, nil
}
