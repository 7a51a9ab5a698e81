package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/models"
	"github.com/AlexSpeaker/shop-app/internal/utils"
)

type CreateProductRequest struct {
	Title           string          `json:"title" binding:"required"`
	Description     string          `json:"description"`
	FullDescription string          `json:"fullDescription"`
	Price           decimal.Decimal `json:"price" binding:"required"`
	Count           int             `json:"count" binding:"gte=0"`
	CategoryID      uint            `json:"category_id" binding:"required"`
	FreeDelivery    bool            `json:"freeDelivery"`
}

func CreateProduct(c *gin.Context) {
	var req CreateProductRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Price.LessThan(decimal.NewFromInt(1)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "price must be at least 1"})
		return
	}

	var category models.Category
	if err := db.DB.First(&category, req.CategoryID).Error; err != nil {
		errorMessage := fmt.Sprintf("Category not found with ID: %d", req.CategoryID)

		c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
		return
	}

	product := models.Product{
		Title:           req.Title,
		Description:     req.Description,
		FullDescription: req.FullDescription,
		Price:           req.Price,
		Count:           req.Count,
		CategoryID:      req.CategoryID,
		FreeDelivery:    req.FreeDelivery,
	}

	if err := db.DB.Create(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, NewProductOut(&product, time.Now()))
}

// GET /api/products?category_id= — catalog listing, optionally narrowed to a
// category and its whole subtree. Archived products never show.
func ListProducts(c *gin.Context) {
	query := db.DB.
		Where("archived = ?", false).
		Preload("Sales").
		Preload("Reviews").
		Order("id")

	if categoryIDParam := c.Query("category_id"); categoryIDParam != "" {
		var categoryID uint
		if _, err := fmt.Sscan(categoryIDParam, &categoryID); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category_id"})
			return
		}

		categoryIDs, err := utils.GetAllCategoryIDs(categoryID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		query = query.Where("category_id IN ?", categoryIDs)
	}

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]ProductOut, 0, len(products))
	for i := range products {
		out = append(out, NewProductOut(&products[i], now))
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/product/:id
func GetProduct(c *gin.Context) {
	var productID uint
	if _, err := fmt.Sscan(c.Param("id"), &productID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}

	var product models.Product
	err := db.DB.
		Preload("Sales").
		Preload("Reviews").
		Preload("Reviews.User").
		First(&product, productID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, NewProductOut(&product, time.Now()))
}
