package domain

import "time"

type OrderCreatedEvent struct {
	OrderID    int64       `json:"order_id"`
	UserID     int64       `json:"user_id"`
	Email      string      `json:"email"`
	TotalPrice int64       `json:"total_price"`
	Items      []OrderLine `json:"items"`
	CreatedAt  time.Time   `json:"created_at"`
}

type UserRegisteredEvent struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`
}
