package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	adminsvc "shopfront/internal/service/admin"
)

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func adminLoginHandler(svc AdminService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req adminLoginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "email and password required"})
			return
		}
		token, expiresAt, err := svc.Login(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, adminsvc.ErrInvalidCredentials) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not log in"})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"token":     token,
			"expiresAt": expiresAt.UTC().Format(time.RFC3339),
		})
	}
}
