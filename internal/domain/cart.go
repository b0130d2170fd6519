package domain

import "time"

// CartLine is one product entry in a user's cart. Price is a snapshot of
// unit price multiplied by quantity, taken at the time of the last write;
// later catalog price changes do not touch it.
type CartLine struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"user_id"`
	ProductID   int64     `db:"product_id" json:"product_id"`
	ProductName string    `db:"product_name" json:"product_name"`
	Quantity    int32     `db:"quantity" json:"quantity"`
	Price       int64     `db:"price" json:"price"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// Reprice recomputes the line's price snapshot from the given unit price.
func (l *CartLine) Reprice(unitPrice int64) {
	l.Price = unitPrice * int64(l.Quantity)
}
