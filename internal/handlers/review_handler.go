package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/auth"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

type CreateReviewRequest struct {
	Text string `json:"text" binding:"required"`
	Rate int    `json:"rate" binding:"gte=0,lte=5"`
}

// POST /api/product/:id/reviews — authenticated only; ratings feed the
// averages shown in basket and catalog responses.
func CreateReview(c *gin.Context) {
	user, ok := auth.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	review := models.Review{
		UserID:    user.ID,
		ProductID: productID,
		Text:      req.Text,
		Rate:      req.Rate,
	}
	if err := db.DB.Create(&review).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   review.ID,
		"text": review.Text,
		"rate": review.Rate,
	})
}
