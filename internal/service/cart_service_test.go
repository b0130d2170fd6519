package service

import (
	"context"
	"testing"

	"github.com/me1610247/API-ecommerce/internal/domain"
	"github.com/me1610247/API-ecommerce/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeCartRepo struct {
	nextID int64
	lines  map[int64]*domain.CartLine
}

func newFakeCartRepo() *fakeCartRepo {
	return &fakeCartRepo{lines: make(map[int64]*domain.CartLine)}
}

func (f *fakeCartRepo) CreateLine(_ context.Context, line *domain.CartLine) error {
	for _, existing := range f.lines {
		if existing.UserID == line.UserID && existing.ProductID == line.ProductID {
			return repository.ErrCartLineExists
		}
	}

	f.nextID++
	line.ID = f.nextID
	stored := *line
	f.lines[line.ID] = &stored
	return nil
}

func (f *fakeCartRepo) GetLine(_ context.Context, userID, lineID int64) (*domain.CartLine, error) {
	line, ok := f.lines[lineID]
	if !ok || line.UserID != userID {
		return nil, repository.ErrCartLineNotFound
	}

	copied := *line
	return &copied, nil
}

func (f *fakeCartRepo) SetLineQuantity(_ context.Context, userID, lineID int64, quantity int32, price int64) error {
	line, ok := f.lines[lineID]
	if !ok || line.UserID != userID {
		return repository.ErrCartLineNotFound
	}

	line.Quantity = quantity
	line.Price = price
	return nil
}

func (f *fakeCartRepo) DeleteLine(_ context.Context, userID, lineID int64) error {
	line, ok := f.lines[lineID]
	if !ok || line.UserID != userID {
		return repository.ErrCartLineNotFound
	}

	delete(f.lines, lineID)
	return nil
}

func (f *fakeCartRepo) ListByUser(_ context.Context, userID int64) ([]domain.CartLine, error) {
	var result []domain.CartLine
	for id := int64(1); id <= f.nextID; id++ {
		if line, ok := f.lines[id]; ok && line.UserID == userID {
			result = append(result, *line)
		}
	}
	return result, nil
}

type fakeProductRepo struct {
	products map[int64]*domain.Product
}

func newFakeProductRepo(products ...*domain.Product) *fakeProductRepo {
	f := &fakeProductRepo{products: make(map[int64]*domain.Product)}
	for _, p := range products {
		f.products[p.ID] = p
	}
	return f
}

func (f *fakeProductRepo) Create(_ context.Context, product *domain.Product) (int64, error) {
	f.products[product.ID] = product
	return product.ID, nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id int64) (*domain.Product, error) {
	product, ok := f.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return product, nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ int64, _ string, _ int64) ([]domain.Product, int64, error) {
	return nil, 0, nil
}

func (f *fakeProductRepo) Update(_ context.Context, id int64, input *domain.UpdateProductInput) error {
	product, ok := f.products[id]
	if !ok {
		return repository.ErrProductNotFound
	}
	if input.Price != nil {
		product.Price = *input.Price
	}
	return nil
}

func (f *fakeProductRepo) DeleteByID(_ context.Context, id int64) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func newTestCartService(cartRepo repository.CartRepository, productRepo repository.ProductRepository) CartService {
	return NewCartService(cartRepo, productRepo, zap.NewNop())
}

func TestCartServiceAddLine(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(&domain.Product{ID: 10, Name: "Keyboard", Price: 4500})
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	line, err := svc.AddLine(ctx, 1, 10, 3)
	require.NoError(t, err)

	assert.Equal(t, int64(1), line.UserID)
	assert.Equal(t, "Keyboard", line.ProductName)
	assert.Equal(t, int64(13500), line.Price)
	assert.NotZero(t, line.ID)
}

func TestCartServiceAddLine_InvalidQuantity(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newFakeCartRepo(), newFakeProductRepo())

	_, err := svc.AddLine(ctx, 1, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.AddLine(ctx, 1, 10, -2)
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCartServiceAddLine_UnknownProduct(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newFakeCartRepo(), newFakeProductRepo())

	_, err := svc.AddLine(ctx, 1, 99, 1)
	assert.ErrorIs(t, err, repository.ErrProductNotFound)
}

func TestCartServiceAddLine_Duplicate(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(&domain.Product{ID: 10, Name: "Keyboard", Price: 4500})
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	_, err := svc.AddLine(ctx, 1, 10, 1)
	require.NoError(t, err)

	_, err = svc.AddLine(ctx, 1, 10, 2)
	assert.ErrorIs(t, err, repository.ErrCartLineExists)
}

func TestCartServiceUpdateLine_RepricesFromCatalog(t *testing.T) {
	ctx := context.Background()
	product := &domain.Product{ID: 10, Name: "Webcam", Price: 1000}
	productRepo := newFakeProductRepo(product)
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	line, err := svc.AddLine(ctx, 1, 10, 2)
	require.NoError(t, err)
	require.Equal(t, int64(2000), line.Price)

	product.Price = 1500

	updated, err := svc.UpdateLine(ctx, 1, line.ID, 4)
	require.NoError(t, err)

	assert.Equal(t, int32(4), updated.Quantity)
	assert.Equal(t, int64(6000), updated.Price)
}

func TestCartServiceUpdateLine_NotFound(t *testing.T) {
	ctx := context.Background()
	svc := newTestCartService(newFakeCartRepo(), newFakeProductRepo())

	_, err := svc.UpdateLine(ctx, 1, 42, 1)
	assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
}

func TestCartServiceUpdateLine_WrongUser(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(&domain.Product{ID: 10, Name: "Keyboard", Price: 100})
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	line, err := svc.AddLine(ctx, 1, 10, 1)
	require.NoError(t, err)

	_, err = svc.UpdateLine(ctx, 2, line.ID, 3)
	assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
}

func TestCartServiceRemoveLine(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(&domain.Product{ID: 10, Name: "Keyboard", Price: 100})
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	line, err := svc.AddLine(ctx, 1, 10, 1)
	require.NoError(t, err)

	require.NoError(t, svc.RemoveLine(ctx, 1, line.ID))

	err = svc.RemoveLine(ctx, 1, line.ID)
	assert.ErrorIs(t, err, repository.ErrCartLineNotFound)
}

func TestCartServiceListLines(t *testing.T) {
	ctx := context.Background()
	productRepo := newFakeProductRepo(
		&domain.Product{ID: 10, Name: "First", Price: 100},
		&domain.Product{ID: 11, Name: "Second", Price: 200},
	)
	svc := newTestCartService(newFakeCartRepo(), productRepo)

	_, err := svc.AddLine(ctx, 1, 10, 1)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, 1, 11, 1)
	require.NoError(t, err)
	_, err = svc.AddLine(ctx, 2, 10, 1)
	require.NoError(t, err)

	lines, err := svc.ListLines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, lines, 2)
	assert.Equal(t, "First", lines[0].ProductName)
	assert.Equal(t, "Second", lines[1].ProductName)
}
