package routes

import (
	"go-marketplace/cart"
	"go-marketplace/config"
	"go-marketplace/controllers"
	"go-marketplace/middleware"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// NewRouter builds the engine with global middleware and every route.
func NewRouter(cfg *config.Config, store *cart.Store, log *logrus.Entry) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(middleware.CORSMiddleware(cfg.OriginURL))
	SetupRoutes(router, cfg, store)
	return router
}

func SetupRoutes(router *gin.Engine, cfg *config.Config, store *cart.Store) {
	cartCtrl := &controllers.CartController{}
	healthCtrl := controllers.NewHealthController(store)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", healthCtrl.Live)
	router.GET("/ready", healthCtrl.Ready)

	cartGroup := router.Group("/cart")
	cartGroup.Use(middleware.AuthMiddleware(cfg.JWTSecret), middleware.CartProvider(store))
	{
		cartGroup.GET("", cartCtrl.GetCart)
		cartGroup.POST("/items", cartCtrl.AddToCart)
		cartGroup.POST("/items/:id/increment", cartCtrl.Increment)
		cartGroup.POST("/items/:id/decrement", cartCtrl.Decrement)
	}
}
