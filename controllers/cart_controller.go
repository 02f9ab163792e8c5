package controllers

import (
	"errors"
	"go-marketplace/cart"
	"go-marketplace/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

type CartController struct{}

func cartFrom(c *gin.Context) (*cart.Store, bool) {
	store, err := cart.FromContext(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{
			Success: false,
			Message: "Cart is not available",
			Error:   err.Error(),
		})
		return nil, false
	}
	return store, true
}

func writeCartError(c *gin.Context, err error) {
	_ = c.Error(err)

	status := http.StatusInternalServerError
	message := "Failed to update cart"
	switch {
	case errors.Is(err, cart.ErrInvalidItem):
		status, message = http.StatusBadRequest, "Invalid cart item"
	case errors.Is(err, cart.ErrNotSaved):
		status, message = http.StatusServiceUnavailable, "Cart not saved"
	case errors.Is(err, cart.ErrNotLoaded):
		status, message = http.StatusServiceUnavailable, "Cart is still loading"
	}

	c.JSON(status, models.ErrorResponse{
		Success: false,
		Message: message,
		Error:   err.Error(),
	})
}

func writeCart(c *gin.Context, status int, message string, items []models.CartItem) {
	c.JSON(status, models.CartResponse{
		Success: true,
		Message: message,
		Data:    items,
	})
}

// @Summary Get cart
// @Description Get the products currently in the cart
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.CartResponse
// @Router /cart [get]
func (ctrl *CartController) GetCart(c *gin.Context) {
	store, ok := cartFrom(c)
	if !ok {
		return
	}
	writeCart(c, http.StatusOK, "Cart retrieved", store.Products())
}

// @Summary Add to cart
// @Description Append a product to the cart with quantity 1
// @Tags Cart
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param item body models.NewCartItem true "Product to add"
// @Success 201 {object} models.CartResponse
// @Failure 400 {object} models.ErrorResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /cart/items [post]
func (ctrl *CartController) AddToCart(c *gin.Context) {
	store, ok := cartFrom(c)
	if !ok {
		return
	}

	var req models.NewCartItem
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Success: false,
			Message: "Invalid request body",
			Error:   err.Error(),
		})
		return
	}

	items, err := store.AddToCart(c.Request.Context(), req)
	if err != nil {
		writeCartError(c, err)
		return
	}
	writeCart(c, http.StatusCreated, "Product added to cart", items)
}

// @Summary Increment quantity
// @Description Increase the quantity of every cart row with the given id
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.CartResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /cart/items/{id}/increment [post]
func (ctrl *CartController) Increment(c *gin.Context) {
	store, ok := cartFrom(c)
	if !ok {
		return
	}

	items, err := store.Increment(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCartError(c, err)
		return
	}
	writeCart(c, http.StatusOK, "Quantity increased", items)
}

// @Summary Decrement quantity
// @Description Decrease the quantity of every cart row with the given id, removing rows that reach zero
// @Tags Cart
// @Security BearerAuth
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.CartResponse
// @Failure 503 {object} models.ErrorResponse
// @Router /cart/items/{id}/decrement [post]
func (ctrl *CartController) Decrement(c *gin.Context) {
	store, ok := cartFrom(c)
	if !ok {
		return
	}

	items, err := store.Decrement(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeCartError(c, err)
		return
	}
	writeCart(c, http.StatusOK, "Quantity decreased", items)
}
