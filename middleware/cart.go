package middleware

import (
	"go-marketplace/cart"

	"github.com/gin-gonic/gin"
)

// CartProvider opens a cart provider scope on every request's context.
func CartProvider(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request = c.Request.WithContext(cart.WithStore(c.Request.Context(), store))
		c.Next()
	}
}
