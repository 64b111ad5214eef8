package httpserver

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"shopfront/internal/domain"
	"shopfront/internal/payment"
	"shopfront/internal/service/checkout"
)

type startCheckoutRequest struct {
	Email         string                 `json:"email" binding:"required"`
	Shipping      domain.ShippingDetails `json:"shipping" binding:"required"`
	PaymentMethod string                 `json:"paymentMethod"`
	UserID        string                 `json:"userId"`
}

func startCheckoutHandler(logger *log.Logger, svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req startCheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid checkout payload"})
			return
		}
		out, err := svc.Start(c.Request.Context(), sessionID(c), checkout.StartInput{
			Email:         req.Email,
			Shipping:      req.Shipping,
			PaymentMethod: req.PaymentMethod,
			UserID:        req.UserID,
		})
		if err != nil {
			if errors.Is(err, checkout.ErrEmptyCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "cart is empty"})
				return
			}
			var initErr *payment.InitError
			if errors.As(err, &initErr) {
				logger.Printf("checkout: initialize failed: %v", initErr)
				c.JSON(http.StatusBadGateway, gin.H{"error": "could not start payment, please try again"})
				return
			}
			logger.Printf("checkout: start failed: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start checkout"})
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// verifyResponse is the envelope for GET /api/payments/verify. Amount is in
// major units; internal minor units never leak through this surface.
type verifyResponse struct {
	Success   bool                        `json:"success"`
	Status    string                      `json:"status,omitempty"`
	Reference string                      `json:"reference,omitempty"`
	Amount    *float64                    `json:"amount,omitempty"`
	Currency  string                      `json:"currency,omitempty"`
	Channel   string                      `json:"channel,omitempty"`
	PaidAt    string                      `json:"paidAt,omitempty"`
	Customer  string                      `json:"customer,omitempty"`
	Metadata  *domain.TransactionMetadata `json:"metadata,omitempty"`
	OrderID   string                      `json:"orderId,omitempty"`
	Error     string                      `json:"error,omitempty"`
}

func verifyPaymentHandler(svc CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		result, err := svc.Verify(c.Request.Context(), sessionID(c), c.Query("reference"), c.Query("trxref"))
		if err != nil {
			if errors.Is(err, checkout.ErrVerifyInFlight) {
				c.JSON(http.StatusConflict, verifyResponse{Success: false, Error: "verification already in progress"})
				return
			}
			c.JSON(http.StatusInternalServerError, verifyResponse{Success: false, Error: "could not verify payment"})
			return
		}

		if !result.Success {
			status := http.StatusOK
			if result.Message == checkout.MsgNoReference {
				status = http.StatusBadRequest
			}
			c.JSON(status, verifyResponse{
				Success:   false,
				Status:    result.Status,
				Reference: result.Reference,
				Error:     result.Message,
			})
			return
		}

		amount := domain.MajorUnits(result.AmountCents)
		resp := verifyResponse{
			Success:   true,
			Status:    result.Status,
			Reference: result.Reference,
			Amount:    &amount,
			Currency:  result.Currency,
			Channel:   result.Channel,
			Customer:  result.CustomerEmail,
			Metadata:  &result.Metadata,
			OrderID:   result.OrderID,
		}
		if result.PaidAt != nil {
			resp.PaidAt = result.PaidAt.UTC().Format(time.RFC3339)
		}
		c.JSON(http.StatusOK, resp)
	}
}
