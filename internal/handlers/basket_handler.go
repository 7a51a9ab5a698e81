package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AlexSpeaker/shop-app/internal/basket"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/inventory"
	"github.com/AlexSpeaker/shop-app/internal/middleware"
)

type BasketRequest struct {
	ID    uint `json:"id" binding:"required"`
	Count int  `json:"count" binding:"required"`
}

// POST /api/basket
func AddToBasket(c *gin.Context) {
	var req BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := identity.Resolve(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	lines, err := basket.NewService(db.DB).Add(id, req.ID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, basket.ErrInvalidQuantity),
			errors.Is(err, inventory.ErrInsufficientStock),
			errors.Is(err, inventory.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("add to basket failed",
				slog.String("trace_id", middleware.GetTraceID(c)),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to add to basket"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBasketOut(lines, time.Now()))
}

// GET /api/basket
func GetBasket(c *gin.Context) {
	id, err := identity.Resolve(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	lines, err := basket.NewService(db.DB).List(id)
	if err != nil {
		slog.Error("list basket failed",
			slog.String("trace_id", middleware.GetTraceID(c)),
			slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list basket"})
		return
	}

	c.JSON(http.StatusOK, NewBasketOut(lines, time.Now()))
}

// DELETE /api/basket
func RemoveFromBasket(c *gin.Context) {
	var req BasketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := identity.Resolve(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session error"})
		return
	}

	lines, err := basket.NewService(db.DB).Remove(id, req.ID, req.Count)
	if err != nil {
		switch {
		case errors.Is(err, basket.ErrInvalidQuantity),
			errors.Is(err, basket.ErrNotFound),
			errors.Is(err, inventory.ErrNotFound):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			slog.Error("remove from basket failed",
				slog.String("trace_id", middleware.GetTraceID(c)),
				slog.String("error", err.Error()))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to remove from basket"})
		}
		return
	}

	c.JSON(http.StatusOK, NewBasketOut(lines, time.Now()))
}
