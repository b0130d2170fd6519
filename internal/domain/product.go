package domain

import "time"

// Price and all other money values in the system are stored in minor
// currency units (cents).
type Product struct {
	ID            int64     `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	Description   string    `db:"description" json:"description"`
	Price         int64     `db:"price" json:"price"`
	StockQuantity int64     `db:"stock_quantity" json:"stock_quantity"`
	ImageUrl      string    `db:"image_url" json:"image_url"`
	CategoryID    int64     `db:"category_id" json:"category_id"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
	DeletedAt     time.Time `db:"deleted_at" json:"-"`
}

type Category struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

type UpdateProductInput struct {
	Name          *string `json:"name"`
	Description   *string `json:"description"`
	Price         *int64  `json:"price"`
	StockQuantity *int64  `json:"stock_quantity"`
	ImageUrl      *string `json:"image_url"`
	CategoryID    *int64  `json:"category_id"`
}
