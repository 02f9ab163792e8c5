package models

import (
	"encoding/json"
	"strings"
)

type CartItem struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
}

// NewCartItem is a CartItem without its quantity, which the cart assigns.
type NewCartItem struct {
	ID       string  `json:"id" binding:"required"`
	Title    string  `json:"title"`
	ImageURL string  `json:"image_url"`
	Price    float64 `json:"price"`
}

func (n NewCartItem) WithQuantity(quantity int) CartItem {
	return CartItem{
		ID:       n.ID,
		Title:    n.Title,
		ImageURL: n.ImageURL,
		Price:    n.Price,
		Quantity: quantity,
	}
}

func EncodeCart(items []CartItem) (string, error) {
	if items == nil {
		items = []CartItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeCart treats an empty payload and the literal null as an empty cart.
func DecodeCart(raw string) ([]CartItem, error) {
	items := []CartItem{}
	if strings.TrimSpace(raw) == "" {
		return items, nil
	}
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []CartItem{}
	}
	return items, nil
}
