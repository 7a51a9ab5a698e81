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
)

type CreateSaleRequest struct {
	ProductID uint            `json:"product_id" binding:"required"`
	DateFrom  string          `json:"dateFrom" binding:"required"` // YYYY-MM-DD
	DateTo    string          `json:"dateTo" binding:"required"`
	Price     decimal.Decimal `json:"price" binding:"required"`
	SalePrice decimal.Decimal `json:"salePrice" binding:"required"`
}

type SaleOut struct {
	ID        uint            `json:"id"`
	ProductID uint            `json:"product_id"`
	DateFrom  string          `json:"dateFrom"`
	DateTo    string          `json:"dateTo"`
	Price     decimal.Decimal `json:"price"`
	SalePrice decimal.Decimal `json:"salePrice"`
	Title     string          `json:"title"`
}

const saleDateLayout = "2006-01-02"

// POST /api/sales — start a sale. Dates must be ordered, the sale price must
// undercut the displayed one, and a product can run only one active sale at a
// time.
func CreateSale(c *gin.Context) {
	var req CreateSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	dateFrom, err := time.Parse(saleDateLayout, req.DateFrom)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateFrom must be YYYY-MM-DD"})
		return
	}
	dateTo, err := time.Parse(saleDateLayout, req.DateTo)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo must be YYYY-MM-DD"})
		return
	}
	if !dateFrom.Before(dateTo) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "dateTo must be after dateFrom"})
		return
	}
	if req.SalePrice.GreaterThanOrEqual(req.Price) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "salePrice must be less than price"})
		return
	}
	if req.SalePrice.LessThan(decimal.NewFromInt(1)) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "salePrice must be at least 1"})
		return
	}

	var product models.Product
	if err := db.DB.First(&product, req.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			errorMessage := fmt.Sprintf("Product not found with ID: %d", req.ProductID)
			c.JSON(http.StatusNotFound, gin.H{"error": errorMessage})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// One active sale per product: finish the running one before starting
	// another.
	var existing []models.Sale
	if err := db.DB.Where("product_id = ?", req.ProductID).Find(&existing).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	now := time.Now()
	for i := range existing {
		if existing[i].ActiveAt(now) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "an active sale already exists for this product"})
			return
		}
	}

	sale := models.Sale{
		ProductID: req.ProductID,
		DateFrom:  dateFrom,
		DateTo:    dateTo,
		Price:     req.Price,
		SalePrice: req.SalePrice,
	}
	if err := db.DB.Create(&sale).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, newSaleOut(&sale, product.Title))
}

// GET /api/sales — all currently active sales.
func ListSales(c *gin.Context) {
	var sales []models.Sale
	if err := db.DB.Order("date_to DESC").Find(&sales).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	out := make([]SaleOut, 0, len(sales))
	for i := range sales {
		if !sales[i].ActiveAt(now) {
			continue
		}
		var product models.Product
		if err := db.DB.First(&product, sales[i].ProductID).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		out = append(out, newSaleOut(&sales[i], product.Title))
	}
	c.JSON(http.StatusOK, out)
}

func newSaleOut(s *models.Sale, title string) SaleOut {
	return SaleOut{
		ID:        s.ID,
		ProductID: s.ProductID,
		DateFrom:  s.DateFrom.Format(saleDateLayout),
		DateTo:    s.DateTo.Format(saleDateLayout),
		Price:     s.Price,
		SalePrice: s.SalePrice,
		Title:     title,
	}
}
