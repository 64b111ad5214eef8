package httpserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

func getWishlistHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		st, err := svc.Get(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load wishlist"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func addWishlistItemHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var item domain.WishlistItem
		if err := c.ShouldBindJSON(&item); err != nil || item.ID == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid wishlist item payload"})
			return
		}
		st, err := svc.Add(c.Request.Context(), sessionID(c), item)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update wishlist"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func removeWishlistItemHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item id"})
			return
		}
		st, err := svc.Remove(c.Request.Context(), sessionID(c), id)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update wishlist"})
			return
		}
		c.JSON(http.StatusOK, st)
	}
}

func clearWishlistHandler(svc WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Clear(c.Request.Context(), sessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear wishlist"})
			return
		}
		c.JSON(http.StatusOK, domain.EmptyWishlist())
	}
}
