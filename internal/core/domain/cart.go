package domain

import "time"

// CartItem is one game line in a cart. Price is the line total.
type CartItem struct {
	ID       string  `json:"id"`
	GameID   string  `json:"game_id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// Cart belongs to exactly one user.
type Cart struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Items     []CartItem `json:"items"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Total sums the line prices.
func (c *Cart) Total() float64 {
	var total float64
	for _, it := range c.Items {
		total += it.Price
	}
	return total
}

// Item returns the line with the given id, or nil.
func (c *Cart) Item(id string) *CartItem {
	for i := range c.Items {
		if c.Items[i].ID == id {
			return &c.Items[i]
		}
	}
	return nil
}

// ItemForGame returns the line holding gameID, or nil.
func (c *Cart) ItemForGame(gameID string) *CartItem {
	for i := range c.Items {
		if c.Items[i].GameID == gameID {
			return &c.Items[i]
		}
	}
	return nil
}
