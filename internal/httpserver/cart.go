package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

type cartProductRequest struct {
	ID             int64  `json:"id" binding:"required"`
	Title          string `json:"title" binding:"required"`
	UnitPriceCents int64  `json:"unitPriceCents"`
	Thumbnail      string `json:"thumbnail"`
	Description    string `json:"description"`
}

type addCartItemRequest struct {
	Product  cartProductRequest `json:"product" binding:"required"`
	Quantity int                `json:"quantity"`
}

func getCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load cart"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func addCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addCartItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cart item payload"})
			return
		}
		if req.Product.UnitPriceCents < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit price must not be negative"})
			return
		}
		quantity := req.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if quantity < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity must be positive"})
			return
		}
		item := domain.CartItem{
			ID:             req.Product.ID,
			Title:          req.Product.Title,
			UnitPriceCents: req.Product.UnitPriceCents,
			Thumbnail:      req.Product.Thumbnail,
			Description:    req.Product.Description,
		}
		st, err := svc.AddItem(c.Request.Context(), sessionID(c), item, quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func setCartQuantityHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		var req struct {
			Quantity int `json:"quantity"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid quantity payload"})
			return
		}
		st, err := svc.SetQuantity(c.Request.Context(), sessionID(c), id, req.Quantity)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func removeCartItemHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		st, err := svc.RemoveItem(c.Request.Context(), sessionID(c), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func setCartOpenHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Open bool `json:"open"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid payload"})
			return
		}
		st, err := svc.SetOpen(c.Request.Context(), sessionID(c), req.Open)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update cart"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func clearCartHandler(svc CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), sessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear cart"})
			return
		}
		c.JSON(http.StatusOK, domain.EmptyCart())
	}
}
