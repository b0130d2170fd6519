package domain

import "time"

// OrderLine is a cart line copied by value into an order. The snapshot is
// serialized as JSON on the order row; there is no reference back to the
// originating cart line.
type OrderLine struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int32  `json:"quantity"`
	Price     int64  `json:"price"`
}

// Order is an immutable snapshot of a user's cart at materialization time.
// A user has at most one order; the orders table enforces this with a
// unique constraint on user_id.
type Order struct {
	ID         int64       `db:"id" json:"id"`
	UserID     int64       `db:"user_id" json:"user_id"`
	Lines      []OrderLine `db:"cart_items" json:"cart_items"`
	TotalPrice int64       `db:"total_price" json:"total_price"`
	Address    string      `db:"address" json:"address"`
	Phone      string      `db:"phone" json:"phone"`
	CreatedAt  time.Time   `db:"created_at" json:"created_at"`
}

// MaterializeOrder builds an order from the user's current cart lines,
// preserving their order. Cart line prices are already quantity-adjusted,
// so the total is a flat sum. Address and phone are copied from the
// profile as-is, empty values included.
func MaterializeOrder(user *User, lines []CartLine) *Order {
	order := &Order{
		UserID:  user.ID,
		Lines:   make([]OrderLine, 0, len(lines)),
		Address: user.Address,
		Phone:   user.Phone,
	}

	for _, line := range lines {
		order.Lines = append(order.Lines, OrderLine{
			ProductID: line.ProductID,
			Name:      line.ProductName,
			Quantity:  line.Quantity,
			Price:     line.Price,
		})
		order.TotalPrice += line.Price
	}

	return order
}
