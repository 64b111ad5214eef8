package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

func listOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.List(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func getOrderHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		order, err := svc.Get(c.Request.Context(), sessionID(c), c.Param("id"))
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load order"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func adminListOrdersHandler(logger *log.Logger, svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		list, err := svc.ListAll(c.Request.Context())
		if err != nil {
			logger.Printf("admin: list orders: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": list})
	}
}

func adminSetOrderStatusHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req struct {
			Status string `json:"status" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "status required"})
			return
		}
		order, err := svc.SetStatusByID(c.Request.Context(), c.Param("id"), domain.OrderStatus(req.Status))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "order not found"})
			case errors.Is(err, domain.ErrInvalidTransition):
				c.JSON(http.StatusConflict, gin.H{"error": "invalid status transition"})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": "could not update order"})
			}
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

func adminClearOrdersHandler(svc OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.ClearAll(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not clear orders"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}
