package httpserver

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"shopfront/internal/catalog"
)

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func loginHandler(logger *log.Logger, svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "username and password required"})
			return
		}
		user, err := svc.Login(c.Request.Context(), sessionID(c), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, catalog.ErrBadCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid username or password"})
				return
			}
			logger.Printf("auth: login failed: %v", err)
			c.JSON(http.StatusBadGateway, gin.H{"error": "login unavailable, please try again"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

func logoutHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := svc.Logout(c.Request.Context(), sessionID(c)); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log out"})
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func currentUserHandler(svc AccountService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok, err := svc.Current(c.Request.Context(), sessionID(c))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load session"})
			return
		}
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
