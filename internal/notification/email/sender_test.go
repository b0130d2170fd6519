package email

import (
	"testing"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestOrderItemsHTML(t *testing.T) {
	lines := []domain.OrderLine{
		{ProductID: 1, Name: "Mechanical Keyboard", Quantity: 2, Price: 10000},
		{ProductID: 3, Name: "USB-C Cable", Quantity: 1, Price: 1550},
	}

	html := orderItemsHTML(lines)

	assert.Equal(t, "<li>Mechanical Keyboard x2 &mdash; 100.00</li><li>USB-C Cable x1 &mdash; 15.50</li>", html)
}

func TestOrderItemsHTML_Empty(t *testing.T) {
	assert.Empty(t, orderItemsHTML(nil))
}
