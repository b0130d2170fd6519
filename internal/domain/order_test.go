package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterializeOrder(t *testing.T) {
	user := &User{
		ID:      7,
		Address: "1 Main St",
		Phone:   "+15550100",
	}

	lines := []CartLine{
		{ID: 1, UserID: 7, ProductID: 10, ProductName: "Keyboard", Quantity: 2, Price: 9000},
		{ID: 2, UserID: 7, ProductID: 11, ProductName: "Mouse", Quantity: 1, Price: 2000},
	}

	order := MaterializeOrder(user, lines)

	assert.Equal(t, int64(7), order.UserID)
	assert.Equal(t, int64(11000), order.TotalPrice)
	assert.Equal(t, "1 Main St", order.Address)
	assert.Equal(t, "+15550100", order.Phone)

	require.Len(t, order.Lines, 2)
	assert.Equal(t, OrderLine{ProductID: 10, Name: "Keyboard", Quantity: 2, Price: 9000}, order.Lines[0])
	assert.Equal(t, OrderLine{ProductID: 11, Name: "Mouse", Quantity: 1, Price: 2000}, order.Lines[1])
}

func TestMaterializeOrder_PreservesLineOrder(t *testing.T) {
	user := &User{ID: 1}
	lines := []CartLine{
		{ProductID: 3, Price: 1},
		{ProductID: 1, Price: 2},
		{ProductID: 2, Price: 3},
	}

	order := MaterializeOrder(user, lines)

	require.Len(t, order.Lines, 3)
	assert.Equal(t, int64(3), order.Lines[0].ProductID)
	assert.Equal(t, int64(1), order.Lines[1].ProductID)
	assert.Equal(t, int64(2), order.Lines[2].ProductID)
}

func TestMaterializeOrder_EmptyProfileFields(t *testing.T) {
	user := &User{ID: 2}
	lines := []CartLine{{ProductID: 1, Quantity: 1, Price: 500}}

	order := MaterializeOrder(user, lines)

	assert.Empty(t, order.Address, "address is copied as-is, empty included")
	assert.Empty(t, order.Phone)
	assert.Equal(t, int64(500), order.TotalPrice)
}

func TestCartLineReprice(t *testing.T) {
	line := &CartLine{Quantity: 4, Price: 1}

	line.Reprice(250)

	assert.Equal(t, int64(1000), line.Price)
}
