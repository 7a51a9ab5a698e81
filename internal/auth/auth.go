package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/AlexSpeaker/shop-app/internal/basket"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/identity"
	"github.com/AlexSpeaker/shop-app/internal/models"
)

const userContextKey = "user"

type SignUpRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type SignInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignUp registers a user and signs them in. The anonymous basket built before
// registration follows the user in, same as on sign-in.
func SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var existing models.User
	if err := db.DB.Where("username = ?", req.Username).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username already taken"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to hash password"})
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
	}
	if err := db.DB.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create user"})
		return
	}

	if err := CompleteLogin(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "registered"})
}

// SignIn verifies credentials, merges the session's anonymous basket lines and
// orders into the user's, then switches the session to the user. The merge
// runs exactly once, inside the login transition.
func SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := db.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
		return
	}
	if user.PasswordHash == "" ||
		bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid username or password"})
		return
	}

	if err := CompleteLogin(c, &user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// SignOut flushes the session.
func SignOut(c *gin.Context) {
	if err := identity.Logout(c); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "logout failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

// CompleteLogin runs the login transition for an already-verified user: fold
// the anonymous session's baskets and orders into the user's inside one
// transaction, then bind the session to the user.
func CompleteLogin(c *gin.Context, user *models.User) error {
	if token, ok := identity.PreLoginToken(c); ok {
		err := db.DB.Transaction(func(tx *gorm.DB) error {
			if err := basket.MergeBaskets(tx, user, token); err != nil {
				return err
			}
			return basket.ClaimOrders(tx, user, token)
		})
		if err != nil {
			slog.Error("basket merge failed",
				slog.Any("user_id", user.ID), slog.String("error", err.Error()))
			return err
		}
	}
	return identity.Login(c, user.ID)
}

// RequireAuth ensures the caller is logged in and injects *models.User into
// the context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := identity.Resolve(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "session error"})
			return
		}
		userID, ok := id.UserID()
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var user models.User
		if err := db.DB.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "user not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "storage error"})
			return
		}
		c.Set(userContextKey, &user)
		c.Next()
	}
}

// CurrentUser returns the user injected by RequireAuth.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}
