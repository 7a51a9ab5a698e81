package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/middleware"
	"github.com/AlexSpeaker/shop-app/internal/notifier"
	"github.com/AlexSpeaker/shop-app/internal/order"
)

// POST /api/payment/:id — structural card validation, price snapshot, paid
// flag. Confirmation messages go out after the transaction commits and never
// affect the response.
func PayOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var card order.Card
	if err := c.ShouldBindJSON(&card); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	paid, err := order.NewService(db.DB).Pay(orderID, card)
	if err != nil {
		switch {
		case errors.Is(err, order.ErrInvalidCard),
			errors.Is(err, order.ErrNotFound),
			errors.Is(err, order.ErrAlreadyPaid):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("payment failed",
				slog.String("trace_id", middleware.GetTraceID(c)),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "payment failed"})
		}
		return
	}

	total := order.TotalCost(paid, time.Now())

	if paid.Email != "" {
		go func(email, name string, orderID uint, total string) {
			if err := notifier.SendEmail(email, name, orderID, total); err != nil {
				fmt.Printf("Failed to send email for order %d to %s: %v\n", orderID, email, err)
			}
		}(paid.Email, paid.FullName, paid.ID, total.StringFixed(2))
	}

	if paid.Phone != "" {
		go func(phone string, orderID uint, total string) {
			if err := notifier.SendSMS(phone, orderID, total); err != nil {
				fmt.Printf("Failed to send SMS for order %d to %s: %v\n", orderID, phone, err)
			}
		}(paid.Phone, paid.ID, total.StringFixed(2))
	}

	c.JSON(http.StatusOK, gin.H{"message": "order paid"})
}
