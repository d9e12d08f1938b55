package model

// CartItem is one line of a cart, copied verbatim into orders.
type CartItem struct {
	ProductID     string            `json:"product_id"`
	Customization map[string]string `json:"customization"`
	Quantity      int               `json:"quantity"`
	Price         float64           `json:"price"`
}

// Validate checks the fields the store relies on.
func (i CartItem) Validate() error {
	if i.ProductID == "" {
		return ErrMissingProductID
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	if i.Price < 0 {
		return ErrInvalidPrice
	}
	return nil
}

// Cart holds a user's pending items.
type Cart struct {
	UserID string     `json:"user_id"`
	Items  []CartItem `json:"items"`
}

// WishlistItem references a product a user saved for later.
type WishlistItem struct {
	ProductID string `json:"product_id"`
}

// Wishlist is a set of products keyed by product_id.
type Wishlist struct {
	UserID string         `json:"user_id"`
	Items  []WishlistItem `json:"items"`
}

// MessageResponse is a plain acknowledgement body.
type MessageResponse struct {
	Message string `json:"message"`
}
