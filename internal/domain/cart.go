package domain

import "time"

type Cart struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Currency  string    `db:"currency" json:"currency"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ID        string    `db:"id" json:"id"`
	CartID    string    `db:"cart_id" json:"cart_id"`
	ProductID string    `db:"product_id" json:"product_id"`
	Quantity  int64     `db:"quantity" json:"quantity"`
	AddedAt   time.Time `db:"added_at" json:"added_at"`
}

// CartLine - позиция корзины вместе с карточкой товара.
type CartLine struct {
	Item           CartItem `json:"item"`
	Product        Product  `json:"product"`
	LineTotalCents int64    `json:"line_total_cents"`
}

// CartView - корзина, собранная для отображения.
// Unavailable - позиции, товар которых удалён или снят с продажи.
type CartView struct {
	Cart        Cart       `json:"cart"`
	Lines       []CartLine `json:"lines"`
	Unavailable []CartItem `json:"unavailable,omitempty"`
	TotalCents  int64      `json:"total_cents"`
}
