package main

import (
	"log"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"github.com/AlexSpeaker/shop-app/configs"
	"github.com/AlexSpeaker/shop-app/internal/auth"
	"github.com/AlexSpeaker/shop-app/internal/db"
	"github.com/AlexSpeaker/shop-app/internal/handlers"
	"github.com/AlexSpeaker/shop-app/internal/middleware"
)

func main() {

	config.LoadEnv()
	srvCfg := config.LoadServerConfig()

	db.Init(config.LoadDBConfig())

	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	// ── session store ──
	store := cookie.NewStore([]byte(srvCfg.SessionSecret))
	r.Use(sessions.Sessions(srvCfg.SessionName, store))

	// ── public endpoints ──
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"status": "ok"}) })

	// SSO is optional; credential login always works.
	if oidcCfg := config.LoadOIDCConfig(); oidcCfg.Issuer != "" {
		auth.InitOIDC(oidcCfg)
		r.GET("/auth/login", auth.OIDCLogin)
		r.GET("/auth/callback", auth.OIDCCallback)
	}

	api := r.Group("/api")
	{
		api.POST("/sign-up", auth.SignUp)
		api.POST("/sign-in", auth.SignIn)
		api.POST("/sign-out", auth.SignOut)

		// catalog
		api.POST("/categories", handlers.CreateCategory)
		api.GET("/categories", handlers.ListCategories)
		api.POST("/products", handlers.CreateProduct)
		api.GET("/products", handlers.ListProducts)
		api.GET("/product/:id", handlers.GetProduct)
		api.POST("/sales", handlers.CreateSale)
		api.GET("/sales", handlers.ListSales)

		// basket and checkout work for anonymous sessions too
		api.POST("/basket", handlers.AddToBasket)
		api.GET("/basket", handlers.GetBasket)
		api.DELETE("/basket", handlers.RemoveFromBasket)
		api.POST("/orders", handlers.CreateOrder)
		api.GET("/order/:id", handlers.GetOrder)
		api.POST("/order/:id", handlers.UpdateOrder)
		api.DELETE("/order/:id", handlers.DeleteOrder)
		api.POST("/payment/:id", handlers.PayOrder)
	}

	// ── authenticated-only API ──
	authed := r.Group("/api")
	authed.Use(auth.RequireAuth())
	{
		authed.GET("/orders", handlers.ListOrders)
		authed.GET("/profile", auth.GetProfile)
		authed.POST("/profile", auth.UpdateProfile)
		authed.POST("/profile/password", auth.ChangePassword)
		authed.POST("/product/:id/reviews", handlers.CreateReview)
	}

	if err := r.Run(":" + srvCfg.Port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
