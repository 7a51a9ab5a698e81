package handlers_test

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/AlexSpeaker/shop-app/internal/models"
)

func TestAddToBasketReservesStock(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	recorder := client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 3})
	assert.Equal(t, http.StatusOK, recorder.Code)

	items := decodeBasket(t, recorder)
	assert.Len(t, items, 1)
	assert.Equal(t, product.ID, items[0].ID)
	assert.Equal(t, 3, items[0].Count)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(700)))

	assert.Equal(t, 7, productCount(t, testDB, product.ID))
}

func TestAddToBasketAccumulatesOneLine(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 3})
	recorder := client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 2})
	assert.Equal(t, http.StatusOK, recorder.Code)

	items := decodeBasket(t, recorder)
	assert.Len(t, items, 1)
	assert.Equal(t, 5, items[0].Count)

	assert.Equal(t, 5, productCount(t, testDB, product.ID))

	var lines int64
	testDB.Model(&models.Basket{}).Where("product_id = ?", product.ID).Count(&lines)
	assert.Equal(t, int64(1), lines)
}

func TestAddToBasketInsufficientStock(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	recorder := client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 12})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	assert.Equal(t, 10, productCount(t, testDB, product.ID))

	var lines int64
	testDB.Model(&models.Basket{}).Count(&lines)
	assert.Equal(t, int64(0), lines)
}

func TestAddToBasketRejectsBadQuantity(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	recorder := client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 0})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	recorder = client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": -2})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	assert.Equal(t, 10, productCount(t, testDB, product.ID))
}

func TestAddToBasketUnknownProduct(t *testing.T) {
	router, _ := setupTestRouter(t)
	client := newTestClient(router)

	recorder := client.do("POST", "/api/basket", gin.H{"id": 9999, "count": 1})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

// Two adds against the last unit of stock: one wins, one gets a 400, and no
// unit is ever double-sold.
func TestAddToBasketLastUnitSingleWinner(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 1)

	first := newTestClient(router)
	second := newTestClient(router)

	recFirst := first.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 1})
	recSecond := second.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 1})

	assert.Equal(t, http.StatusOK, recFirst.Code)
	assert.Equal(t, http.StatusBadRequest, recSecond.Code)
	assert.Equal(t, 0, productCount(t, testDB, product.ID))

	var reserved int64
	testDB.Model(&models.Basket{}).Where("product_id = ?", product.ID).Count(&reserved)
	assert.Equal(t, int64(1), reserved)
}

func TestRemoveFromBasketPartial(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 5})
	recorder := client.do("DELETE", "/api/basket", gin.H{"id": product.ID, "count": 2})
	assert.Equal(t, http.StatusOK, recorder.Code)

	items := decodeBasket(t, recorder)
	assert.Len(t, items, 1)
	assert.Equal(t, 3, items[0].Count)
	assert.Equal(t, 7, productCount(t, testDB, product.ID))
}

// Removing at least as many units as the line holds deletes the whole line
// and returns everything to stock.
func TestRemoveFromBasketOvershootDeletesLine(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 3})
	assert.Equal(t, 7, productCount(t, testDB, product.ID))

	recorder := client.do("DELETE", "/api/basket", gin.H{"id": product.ID, "count": 5})
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeBasket(t, recorder))
	assert.Equal(t, 10, productCount(t, testDB, product.ID))

	// stock is whole again, so a fresh add for more than 10 still fails
	recorder = client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 12})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 10, productCount(t, testDB, product.ID))
}

func TestRemoveFromBasketMissingLine(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	client := newTestClient(router)

	recorder := client.do("DELETE", "/api/basket", gin.H{"id": product.ID, "count": 1})
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, 10, productCount(t, testDB, product.ID))
}

func TestBasketIsolatedPerSession(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)

	first := newTestClient(router)
	second := newTestClient(router)

	first.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 2})

	recorder := second.do("GET", "/api/basket", nil)
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Empty(t, decodeBasket(t, recorder))

	recorder = first.do("GET", "/api/basket", nil)
	items := decodeBasket(t, recorder)
	assert.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Count)
}

func TestGetBasketShowsActiveSalePrice(t *testing.T) {
	router, testDB := setupTestRouter(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)

	now := time.Now().UTC()
	sale := models.Sale{
		ProductID: product.ID,
		Price:     product.Price,
		SalePrice: decimal.NewFromInt(500),
		DateFrom:  now.AddDate(0, 0, -1),
		DateTo:    now.AddDate(0, 0, 1),
	}
	assert.NoError(t, testDB.Create(&sale).Error)

	client := newTestClient(router)
	client.do("POST", "/api/basket", gin.H{"id": product.ID, "count": 1})

	recorder := client.do("GET", "/api/basket", nil)
	items := decodeBasket(t, recorder)
	assert.Len(t, items, 1)
	assert.True(t, items[0].Price.Equal(decimal.NewFromInt(500)),
		"expected sale price 500, got %s", items[0].Price)
}
