package tests

import (
	"fmt"
	"sync"
	"time"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
)

func (s *IntegrationTestSuite) TestCreateOrder_Success() {
	user := s.registerUser("order1@example.com")

	address := "1 Main St"
	phone := "+15550100"
	_, err := s.AuthService.UpdateProfile(s.Ctx, user.ID, &domain.UpdateProfileInput{
		Address: &address,
		Phone:   &phone,
	})
	s.Require().NoError(err)

	keyboard := s.createProduct("Keyboard", 4500)
	mouse := s.createProduct("Mouse", 2000)

	_, err = s.CartService.AddLine(s.Ctx, user.ID, keyboard, 2)
	s.Require().NoError(err)
	_, err = s.CartService.AddLine(s.Ctx, user.ID, mouse, 1)
	s.Require().NoError(err)

	order, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Require().NotNil(order)

	s.Equal(user.ID, order.UserID)
	s.Equal(int64(11000), order.TotalPrice, "total is the flat sum of line prices")
	s.Equal(address, order.Address)
	s.Equal(phone, order.Phone)
	s.Require().Len(order.Lines, 2)

	s.Equal(keyboard, order.Lines[0].ProductID)
	s.Equal("Keyboard", order.Lines[0].Name)
	s.Equal(int32(2), order.Lines[0].Quantity)
	s.Equal(int64(9000), order.Lines[0].Price)
	s.Equal(mouse, order.Lines[1].ProductID)

	stored, err := s.OrderService.GetOrder(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(order.ID, stored.ID)
	s.Equal(order.TotalPrice, stored.TotalPrice)
	s.Len(stored.Lines, 2)
}

func (s *IntegrationTestSuite) TestCreateOrder_CartIsKept() {
	user := s.registerUser("order2@example.com")
	productID := s.createProduct("Desk", 12000)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	_, err = s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().NoError(err)

	lines, err := s.CartService.ListLines(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Len(lines, 1, "materializing an order leaves the cart untouched")
}

func (s *IntegrationTestSuite) TestCreateOrder_SnapshotSurvivesCatalogChanges() {
	user := s.registerUser("order3@example.com")
	productID := s.createProduct("Lamp", 700)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 3)
	s.Require().NoError(err)

	order, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().NoError(err)

	newPrice := int64(999)
	newName := "Renamed Lamp"
	err = s.ProductRepo.Update(s.Ctx, productID, &domain.UpdateProductInput{
		Price: &newPrice,
		Name:  &newName,
	})
	s.Require().NoError(err)

	stored, err := s.OrderService.GetOrder(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(order.TotalPrice, stored.TotalPrice)
	s.Equal("Lamp", stored.Lines[0].Name, "snapshot is immutable after materialization")
	s.Equal(int64(2100), stored.Lines[0].Price)
}

func (s *IntegrationTestSuite) TestCreateOrder_EmptyCart_Fails() {
	user := s.registerUser("order4@example.com")

	order, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().ErrorIs(err, service.ErrEmptyCart)
	s.Require().Nil(order)
}

func (s *IntegrationTestSuite) TestCreateOrder_SecondOrder_Conflicts() {
	user := s.registerUser("order5@example.com")
	productID := s.createProduct("Chair", 9900)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	first, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().NoError(err)

	second, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().ErrorIs(err, repository.ErrOrderExists)
	s.Require().Nil(second)

	stored, err := s.OrderService.GetOrder(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Equal(first.ID, stored.ID, "the first order is untouched by the rejected retry")
}

func (s *IntegrationTestSuite) TestCreateOrder_Concurrent_OneWinner() {
	user := s.registerUser("order6@example.com")
	productID := s.createProduct("Table", 15000)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	const attempts = 8

	var wg sync.WaitGroup
	errs := make([]error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, errs[n] = s.OrderService.CreateOrder(s.Ctx, user.ID)
		}(i)
	}
	wg.Wait()

	var successes int
	for _, err := range errs {
		if err == nil {
			successes++
		} else {
			s.Require().ErrorIs(err, repository.ErrOrderExists)
		}
	}

	s.Equal(1, successes, "exactly one concurrent create may win")

	var count int
	err = s.DbPool.QueryRow(s.Ctx, "SELECT COUNT(*) FROM orders WHERE user_id=$1", user.ID).Scan(&count)
	s.Require().NoError(err)
	s.Equal(1, count)
}

func (s *IntegrationTestSuite) TestGetOrder_NotFound() {
	user := s.registerUser("order7@example.com")

	order, err := s.OrderService.GetOrder(s.Ctx, user.ID)
	s.Require().ErrorIs(err, repository.ErrOrderNotFound)
	s.Require().Nil(order)
}

func (s *IntegrationTestSuite) TestCreateOrder_EventPublished() {
	user := s.registerUser("order8@example.com")
	productID := s.createProduct("Stand", 2500)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	order, err := s.OrderService.CreateOrder(s.Ctx, user.ID)
	s.Require().NoError(err)

	query := `
		SELECT published_at
		FROM outbox
		WHERE aggregate_type = 'Order' AND aggregate_id = $1
	`

	s.Require().Eventually(func() bool {
		var publishedAt *time.Time
		err := s.DbPool.QueryRow(s.Ctx, query, fmt.Sprintf("%d", order.ID)).
			Scan(&publishedAt)

		if err != nil || publishedAt == nil {
			return false
		}

		return true
	}, 5*time.Second, 100*time.Millisecond, "order event must be published within 5 seconds")
}
