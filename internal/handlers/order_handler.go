package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexSpeaker/shop-app/internal/auth"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/middleware"
	"github.com/AlexSpeaker/shop-app/internal/order"
)

type UpdateOrderRequest struct {
	FullName     string `json:"fullName" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Phone        string `json:"phone" binding:"required"`
	DeliveryType string `json:"deliveryType"`
	PaymentType  string `json:"paymentType"`
	City         string `json:"city" binding:"required"`
	Address      string `json:"address" binding:"required"`
}

// POST /api/orders — checkout: fold the caller's unordered basket lines into a
// new order.
func CreateOrder(c *gin.Context) {
	id, err := identity.Resolve(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	orderID, err := order.NewService(db.DB).Checkout(id)
	if err != nil {
		slog.Error("checkout failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "checkout failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": orderID})
}

// GET /api/orders — authenticated-only order history.
func ListOrders(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	orders, err := order.NewService(db.DB).ListForUser(user.ID)
	if err != nil {
		slog.Error("list orders failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list orders"})
		return
	}

	now := time.Now()
	out := make([]OrderOut, 0, len(orders))
	for i := range orders {
		out = append(out, NewOrderOut(&orders[i], now))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/order/:id
func GetOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	o, err := order.NewService(db.DB).Get(orderID)
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order not found"})
			return
		}
		slog.Error("get order failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch order"})
		return
	}

	c.JSON(http.StatusOK, NewOrderOut(o, time.Now()))
}

// POST /api/order/:id — fill contact and delivery fields.
func UpdateOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	_, err := order.NewService(db.DB).Update(orderID, order.UpdateParams{
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		DeliveryType: req.DeliveryType,
		PaymentType:  req.PaymentType,
		City:         req.City,
		Address:      req.Address,
	})
	if err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order not found"})
			return
		}
		slog.Error("update order failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"orderId": orderID})
}

// DELETE /api/order/:id — unpaid orders return their reserved units.
func DeleteOrder(c *gin.Context) {
	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	if err := order.NewService(db.DB).Delete(orderID); err != nil {
		if errors.Is(err, order.ErrNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "order not found"})
			return
		}
		slog.Error("delete order failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete order"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "order deleted"})
}

func orderIDParam(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	parsed, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || parsed == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return 0, false
	}
	return uint(parsed), true
}
