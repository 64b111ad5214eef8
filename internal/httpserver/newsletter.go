package httpserver

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
)

type subscribeRequest struct {
	Email  string `json:"email" binding:"required"`
	Source string `json:"source"`
}

func subscribeHandler(logger *log.Logger, repo NewsletterRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req subscribeRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email required"})
			return
		}
		email := strings.TrimSpace(req.Email)
		if !strings.Contains(email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid email address"})
			return
		}
		if err := repo.Subscribe(c.Request.Context(), email, req.Source); err != nil {
			if errors.Is(err, domain.ErrAlreadyExists) {
				c.JSON(http.StatusConflict, gin.H{"error": "already subscribed"})
				return
			}
			logger.Printf("newsletter: subscribe failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not subscribe"})
			return
		}
		c.JSON(http.StatusCreated, gin.H{"subscribed": true})
	}
}
