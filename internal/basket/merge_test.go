package basket_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/basket"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	testDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect test database: %v", err)
	}
	if err := db.Migrate(testDB); err != nil {
		t.Fatalf("failed to auto-migrate models: %v", err)
	}
	return testDB
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

func seedUser(t *testing.T, testDB *gorm.DB, username string) models.User {
	t.Helper()
	user := models.User{Username: username, FullName: "Jane Doe", Email: "jane@example.com", Phone: "+1555000111"}
	if err := testDB.Create(&user).Error; err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

const anonToken = "b2f1c9a0-0000-0000-0000-000000000001"

// Anonymous lines {A:2, B:1} merged into a user already holding {A:3} must
// yield {A:5, B:1} with no line left on the token and no stock movement.
func TestMergeBasketsFoldsDuplicates(t *testing.T) {
	testDB := setupTestDB(t)
	productA := seedProduct(t, testDB, "Laptop", 700, 10)
	productB := seedProduct(t, testDB, "Mouse", 30, 20)
	user := seedUser(t, testDB, "jane")

	svc := basket.NewService(testDB)
	anon := identity.Anonymous(anonToken)
	asUser := identity.ForUser(user.ID)

	_, err := svc.Add(anon, productA.ID, 2)
	assert.NoError(t, err)
	_, err = svc.Add(anon, productB.ID, 1)
	assert.NoError(t, err)
	_, err = svc.Add(asUser, productA.ID, 3)
	assert.NoError(t, err)

	countA := productCount(t, testDB, productA.ID)
	countB := productCount(t, testDB, productB.ID)

	err = testDB.Transaction(func(tx *gorm.DB) error {
		return basket.MergeBaskets(tx, &user, anonToken)
	})
	assert.NoError(t, err)

	lines, err := svc.List(asUser)
	assert.NoError(t, err)
	assert.Len(t, lines, 2)

	byProduct := map[uint]int{}
	for _, line := range lines {
		byProduct[line.ProductID] = line.Count
	}
	assert.Equal(t, 5, byProduct[productA.ID])
	assert.Equal(t, 1, byProduct[productB.ID])

	var orphaned int64
	testDB.Model(&models.Basket{}).Where("session_id = ?", anonToken).Count(&orphaned)
	assert.Equal(t, int64(0), orphaned)

	// merging moves reservations between identities, it never touches stock
	assert.Equal(t, countA, productCount(t, testDB, productA.ID))
	assert.Equal(t, countB, productCount(t, testDB, productB.ID))
}

func TestMergeBasketsNoAnonymousLines(t *testing.T) {
	testDB := setupTestDB(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	user := seedUser(t, testDB, "jane")

	svc := basket.NewService(testDB)
	_, err := svc.Add(identity.ForUser(user.ID), product.ID, 2)
	assert.NoError(t, err)

	err = testDB.Transaction(func(tx *gorm.DB) error {
		return basket.MergeBaskets(tx, &user, anonToken)
	})
	assert.NoError(t, err)

	lines, err := svc.List(identity.ForUser(user.ID))
	assert.NoError(t, err)
	assert.Len(t, lines, 1)
	assert.Equal(t, 2, lines[0].Count)
}

// Lines already folded into an order stay with that order through a merge.
func TestMergeBasketsIgnoresOrderedLines(t *testing.T) {
	testDB := setupTestDB(t)
	product := seedProduct(t, testDB, "Laptop", 700, 10)
	user := seedUser(t, testDB, "jane")

	token := anonToken
	order := models.Order{SessionID: &token}
	assert.NoError(t, testDB.Create(&order).Error)

	ordered := models.Basket{ProductID: product.ID, Count: 1, SessionID: &token, OrderID: &order.ID}
	assert.NoError(t, testDB.Create(&ordered).Error)

	err := testDB.Transaction(func(tx *gorm.DB) error {
		return basket.MergeBaskets(tx, &user, anonToken)
	})
	assert.NoError(t, err)

	var reloaded models.Basket
	assert.NoError(t, testDB.First(&reloaded, ordered.ID).Error)
	assert.NotNil(t, reloaded.OrderID)
	assert.Nil(t, reloaded.UserID)
}

func TestClaimOrdersStampsContact(t *testing.T) {
	testDB := setupTestDB(t)
	user := seedUser(t, testDB, "jane")

	token := anonToken
	order := models.Order{SessionID: &token}
	assert.NoError(t, testDB.Create(&order).Error)

	err := testDB.Transaction(func(tx *gorm.DB) error {
		return basket.ClaimOrders(tx, &user, anonToken)
	})
	assert.NoError(t, err)

	var reloaded models.Order
	assert.NoError(t, testDB.First(&reloaded, order.ID).Error)
	assert.NotNil(t, reloaded.UserID)
	assert.Equal(t, user.ID, *reloaded.UserID)
	assert.Nil(t, reloaded.SessionID)
	assert.Equal(t, "Jane Doe", reloaded.FullName)
	assert.Equal(t, "jane@example.com", reloaded.Email)
}

func productCount(t *testing.T, testDB *gorm.DB, productID uint) int {
	t.Helper()
	var product models.Product
	if err := testDB.First(&product, productID).Error; err != nil {
		t.Fatalf("failed to reload product: %v", err)
	}
	return product.Count
}
