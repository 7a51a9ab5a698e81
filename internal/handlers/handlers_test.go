package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/auth"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/handlers"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	gin.SetMode(gin.TestMode)

	// A uniquely named shared in-memory database per test keeps gorm's
	// connection pool on one database without leaking state between tests.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		panic("failed to connect test database: " + err.Error())
	}

	if err := db.Migrate(testDB); err != nil {
		panic("failed to auto-migrate models: " + err.Error())
	}

	originalDB := db.DB
	db.SetTestDB(testDB)

	r := gin.New()
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte("test-secret-key"))
	r.Use(sessions.Sessions("shopsess", store))

	api := r.Group("/api")
	{
		api.POST("/sign-up", auth.SignUp)
		api.POST("/sign-in", auth.SignIn)
		api.POST("/sign-out", auth.SignOut)

		api.POST("/categories", handlers.CreateCategory)
		api.GET("/categories", handlers.ListCategories)
		api.POST("/products", handlers.CreateProduct)
		api.GET("/products", handlers.ListProducts)
		api.GET("/product/:id", handlers.GetProduct)
		api.POST("/sales", handlers.CreateSale)
		api.GET("/sales", handlers.ListSales)

		api.POST("/basket", handlers.AddToBasket)
		api.GET("/basket", handlers.GetBasket)
		api.DELETE("/basket", handlers.RemoveFromBasket)
		api.POST("/orders", handlers.CreateOrder)
		api.GET("/order/:id", handlers.GetOrder)
		api.POST("/order/:id", handlers.UpdateOrder)
		api.DELETE("/order/:id", handlers.DeleteOrder)
		api.POST("/payment/:id", handlers.PayOrder)
	}

	authed := r.Group("/api")
	authed.Use(auth.RequireAuth())
	{
		authed.GET("/orders", handlers.ListOrders)
		authed.POST("/product/:id/reviews", handlers.CreateReview)
	}

	t.Cleanup(func() {
		db.SetTestDB(originalDB)
	})

	return r, testDB
}

// testClient carries the session cookie across requests, simulating one
// browser. Separate clients get separate anonymous identities.
type testClient struct {
	router  *gin.Engine
	cookies []*http.Cookie
}

func newTestClient(router *gin.Engine) *testClient {
	return &testClient{router: router}
}

func (tc *testClient) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	var reqBody []byte
	if body != nil {
		reqBody, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewBuffer(reqBody))
	req.Header.Set("Content-Type", "application/json")
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}

	recorder := httptest.NewRecorder()
	tc.router.ServeHTTP(recorder, req)

	if issued := recorder.Result().Cookies(); len(issued) > 0 {
		tc.cookies = issued
	}
	return recorder
}

func decodeBasket(t *testing.T, recorder *httptest.ResponseRecorder) []handlers.BasketItemOut {
	t.Helper()
	var items []handlers.BasketItemOut
	if err := json.Unmarshal(recorder.Body.Bytes(), &items); err != nil {
		t.Fatalf("failed to decode basket response: %v", err)
	}
	return items
}

func seedProduct(t *testing.T, testDB *gorm.DB, title string, price int64, count int) models.Product {
	t.Helper()
	category := models.Category{Name: "Electronics-" + title}
	if err := testDB.Create(&category).Error; err != nil {
		t.Fatalf("failed to seed category: %v", err)
	}
	product := models.Product{
		CategoryID: category.ID,
		Title:      title,
		Price:      decimal.NewFromInt(price),
		Count:      count,
	}
	if err := testDB.Create(&product).Error; err != nil {
		t.Fatalf("failed to seed product: %v", err)
	}
	return product
}

func uintToString(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

func productCount(t *testing.T, testDB *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := testDB.First(&product, productID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return product.Count
}
