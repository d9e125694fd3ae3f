package usecase_test

import (
	"context"

	"artvista/internal/domain/model"
	"artvista/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Mock: UserRepository
// =====================

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

// =====================
// Mock: ArtRepository
// =====================

type MockArtRepository struct {
	mock.Mock
}

func (m *MockArtRepository) List(ctx context.Context, q repository.ArtListQuery) ([]model.Art, int64, error) {
	args := m.Called(ctx, q)
	arts, _ := args.Get(0).([]model.Art)
	return arts, args.Get(1).(int64), args.Error(2)
}

func (m *MockArtRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	cats, _ := args.Get(0).([]string)
	return cats, args.Error(1)
}

func (m *MockArtRepository) FindByID(ctx context.Context, id int64) (model.Art, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Art)
	return a, args.Error(1)
}

func (m *MockArtRepository) FindByIDWithOwner(ctx context.Context, id int64) (model.Art, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(model.Art)
	return a, args.Error(1)
}

func (m *MockArtRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Art, error) {
	args := m.Called(ctx, ownerID)
	arts, _ := args.Get(0).([]model.Art)
	return arts, args.Error(1)
}

func (m *MockArtRepository) Create(ctx context.Context, a model.Art) (model.Art, error) {
	args := m.Called(ctx, a)
	created, _ := args.Get(0).(model.Art)
	return created, args.Error(1)
}

func (m *MockArtRepository) Update(ctx context.Context, a model.Art) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockArtRepository) DeleteWithReferences(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

var _ repository.ArtRepository = (*MockArtRepository)(nil)

// =====================
// Mock: CartRepository
// =====================

type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	args := m.Called(ctx, cartID)
	items, _ := args.Get(0).([]model.CartItem)
	return items, args.Error(1)
}

func (m *MockCartRepository) AddItem(ctx context.Context, userID int64, artID int64, addQty int64) (model.Cart, error) {
	args := m.Called(ctx, userID, artID, addQty)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) SetItemQuantity(ctx context.Context, userID int64, artID int64, qty int64) (model.Cart, error) {
	args := m.Called(ctx, userID, artID, qty)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) RemoveItem(ctx context.Context, userID int64, artID int64) (model.Cart, error) {
	args := m.Called(ctx, userID, artID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

func (m *MockCartRepository) Clear(ctx context.Context, userID int64) (model.Cart, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Cart)
	return c, args.Error(1)
}

var _ repository.CartRepository = (*MockCartRepository)(nil)

// =====================
// Mock: WishlistRepository
// =====================

type MockWishlistRepository struct {
	mock.Mock
}

func (m *MockWishlistRepository) Exists(ctx context.Context, userID int64, artID int64) (bool, error) {
	args := m.Called(ctx, userID, artID)
	return args.Bool(0), args.Error(1)
}

func (m *MockWishlistRepository) Add(ctx context.Context, userID int64, artID int64) error {
	args := m.Called(ctx, userID, artID)
	return args.Error(0)
}

func (m *MockWishlistRepository) Remove(ctx context.Context, userID int64, artID int64) error {
	args := m.Called(ctx, userID, artID)
	return args.Error(0)
}

func (m *MockWishlistRepository) ListArts(ctx context.Context, userID int64) ([]model.Art, error) {
	args := m.Called(ctx, userID)
	arts, _ := args.Get(0).([]model.Art)
	return arts, args.Error(1)
}

var _ repository.WishlistRepository = (*MockWishlistRepository)(nil)
