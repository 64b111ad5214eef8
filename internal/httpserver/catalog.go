package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

// Catalog failures surface as 502 with a safe message; the storefront offers
// a manual refresh rather than retrying automatically.

func listProductsHandler(logger *log.Logger, client CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
		skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
		page, err := client.ListProducts(c.Request.Context(), limit, skip)
		if err != nil {
			logger.Printf("catalog: list products: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func getProductHandler(logger *log.Logger, client CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
			return
		}
		product, err := client.GetProduct(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			logger.Printf("catalog: get product %d: %v", id, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}

func searchProductsHandler(logger *log.Logger, client CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := c.Query("q")
		if query == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "q required"})
			return
		}
		page, err := client.SearchProducts(c.Request.Context(), query)
		if err != nil {
			logger.Printf("catalog: search %q: %v", query, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

func listCategoriesHandler(logger *log.Logger, client CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := client.ListCategories(c.Request.Context())
		if err != nil {
			logger.Printf("catalog: list categories: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}

func listByCategoryHandler(logger *log.Logger, client CatalogClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		slug := c.Param("slug")
		page, err := client.ListByCategory(c.Request.Context(), slug)
		if err != nil {
			logger.Printf("catalog: category %q: %v", slug, err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}
