package tests

import (
	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/me1610247/API-ecommerce/internal/service"
)

func (s *IntegrationTestSuite) TestAddCartLine_Success() {
	user := s.registerUser("cart1@example.com")
	productID := s.createProduct("Keyboard", 4500)

	line, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 3)
	s.Require().NoError(err)
	s.Require().NotNil(line)

	s.Equal(user.ID, line.UserID)
	s.Equal(productID, line.ProductID)
	s.Equal(int32(3), line.Quantity)
	s.Equal(int64(13500), line.Price, "price snapshot is unit price times quantity")
}

func (s *IntegrationTestSuite) TestAddCartLine_DuplicateProduct_Fails() {
	user := s.registerUser("cart2@example.com")
	productID := s.createProduct("Mouse", 2000)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	_, err = s.CartService.AddLine(s.Ctx, user.ID, productID, 2)
	s.Require().ErrorIs(err, repository.ErrCartLineExists)

	lines, err := s.CartService.ListLines(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Len(lines, 1, "duplicate add must not create a second line")
}

func (s *IntegrationTestSuite) TestAddCartLine_UnknownProduct_Fails() {
	user := s.registerUser("cart3@example.com")

	_, err := s.CartService.AddLine(s.Ctx, user.ID, 999999, 1)
	s.Require().ErrorIs(err, repository.ErrProductNotFound)
}

func (s *IntegrationTestSuite) TestAddCartLine_InvalidQuantity_Fails() {
	user := s.registerUser("cart4@example.com")
	productID := s.createProduct("Monitor", 30000)

	_, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 0)
	s.Require().ErrorIs(err, service.ErrInvalidQuantity)
}

func (s *IntegrationTestSuite) TestUpdateCartLine_RepricesFromCatalog() {
	user := s.registerUser("cart5@example.com")
	productID := s.createProduct("Webcam", 1000)

	line, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 2)
	s.Require().NoError(err)
	s.Equal(int64(2000), line.Price)

	newPrice := int64(1500)
	err = s.ProductRepo.Update(s.Ctx, productID, &domain.UpdateProductInput{Price: &newPrice})
	s.Require().NoError(err)

	updated, err := s.CartService.UpdateLine(s.Ctx, user.ID, line.ID, 4)
	s.Require().NoError(err)

	s.Equal(int32(4), updated.Quantity)
	s.Equal(int64(6000), updated.Price, "update must reprice from the current catalog price")
}

func (s *IntegrationTestSuite) TestUpdateCartLine_NotFound() {
	user := s.registerUser("cart6@example.com")

	_, err := s.CartService.UpdateLine(s.Ctx, user.ID, 424242, 1)
	s.Require().ErrorIs(err, repository.ErrCartLineNotFound)
}

func (s *IntegrationTestSuite) TestRemoveCartLine() {
	user := s.registerUser("cart7@example.com")
	productID := s.createProduct("Headset", 8000)

	line, err := s.CartService.AddLine(s.Ctx, user.ID, productID, 1)
	s.Require().NoError(err)

	s.Require().NoError(s.CartService.RemoveLine(s.Ctx, user.ID, line.ID))

	lines, err := s.CartService.ListLines(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Empty(lines)

	err = s.CartService.RemoveLine(s.Ctx, user.ID, line.ID)
	s.Require().ErrorIs(err, repository.ErrCartLineNotFound)
}

func (s *IntegrationTestSuite) TestListCartLines_InsertionOrder() {
	user := s.registerUser("cart8@example.com")
	first := s.createProduct("First", 100)
	second := s.createProduct("Second", 200)
	third := s.createProduct("Third", 300)

	for _, id := range []int64{first, second, third} {
		_, err := s.CartService.AddLine(s.Ctx, user.ID, id, 1)
		s.Require().NoError(err)
	}

	lines, err := s.CartService.ListLines(s.Ctx, user.ID)
	s.Require().NoError(err)
	s.Require().Len(lines, 3)

	s.Equal(first, lines[0].ProductID)
	s.Equal(second, lines[1].ProductID)
	s.Equal(third, lines[2].ProductID)
	s.Equal("First", lines[0].ProductName)
}

func (s *IntegrationTestSuite) TestListCartLines_IsolatedPerUser() {
	alice := s.registerUser("alice@example.com")
	bob := s.registerUser("bob@example.com")
	productID := s.createProduct("Shared", 500)

	_, err := s.CartService.AddLine(s.Ctx, alice.ID, productID, 1)
	s.Require().NoError(err)

	lines, err := s.CartService.ListLines(s.Ctx, bob.ID)
	s.Require().NoError(err)
	s.Empty(lines)
}
