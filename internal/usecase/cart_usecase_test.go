package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"artvista/internal/domain/model"
	"artvista/internal/repository"
	"artvista/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newCartUC(cartRepo *MockCartRepository, artRepo *MockArtRepository) *usecase.CartUsecase {
	return usecase.NewCartUsecase(cartRepo, artRepo)
}

func assertHTTPStatus(t *testing.T, err error, want int) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if !ok {
		t.Fatalf("expected HTTPError, got %v", err)
	}
	assert.Equal(t, want, he.Status)
}

func TestCartUsecase_Add_Success(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	art := model.Art{ID: 10, Title: "Sunset", Price: 1000, OwnerID: 2}

	artRepo.On("FindByID", mock.Anything, int64(10)).Return(art, nil)
	cartRepo.On("AddItem", mock.Anything, int64(1), int64(10), int64(2)).
		Return(model.Cart{ID: 5, UserID: 1, TotalPrice: 2000}, nil)
	cartRepo.On("ListItems", mock.Anything, int64(5)).
		Return([]model.CartItem{{ID: 7, CartID: 5, ArtID: 10, Quantity: 2}}, nil)
	artRepo.On("FindByIDWithOwner", mock.Anything, int64(10)).Return(art, nil)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.Add(ctx, 1, usecase.AddCartInput{ArtID: 10, Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(2), out.Items[0].Quantity)
	assert.Equal(t, int64(10), out.Items[0].Art.ID)
	assert.Equal(t, 2000.0, out.TotalPrice)

	cartRepo.AssertExpectations(t)
	artRepo.AssertExpectations(t)
}

// 数量未指定（0以下）は1として扱う
func TestCartUsecase_Add_DefaultQuantityIsOne(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	art := model.Art{ID: 10, Price: 500}

	artRepo.On("FindByID", mock.Anything, int64(10)).Return(art, nil)
	cartRepo.On("AddItem", mock.Anything, int64(1), int64(10), int64(1)).
		Return(model.Cart{ID: 5, UserID: 1, TotalPrice: 500}, nil)
	cartRepo.On("ListItems", mock.Anything, int64(5)).
		Return([]model.CartItem{{ID: 7, CartID: 5, ArtID: 10, Quantity: 1}}, nil)
	artRepo.On("FindByIDWithOwner", mock.Anything, int64(10)).Return(art, nil)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.Add(ctx, 1, usecase.AddCartInput{ArtID: 10, Quantity: 0})
	assert.NoError(t, err)
	assert.Equal(t, 500.0, out.TotalPrice)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_Add_ArtNotFound(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	artRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Art{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	_, err := u.Add(ctx, 1, usecase.AddCartInput{ArtID: 99, Quantity: 1})
	assertHTTPStatus(t, err, http.StatusNotFound)

	cartRepo.AssertNotCalled(t, "AddItem", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

// カートがまだ無いユーザーには空の形を返す（エラーにしない・作成もしない）
func TestCartUsecase_Get_NoCartReturnsEmpty(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0.0, out.TotalPrice)
}

// 合計はRepositoryが保存した値をそのまま返す（読み取りで再計算しない）
func TestCartUsecase_Get_UsesStoredTotal(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	// 作品価格は1500に上がっているが、保存済み合計は2000のまま
	art := model.Art{ID: 10, Price: 1500}

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 5, UserID: 1, TotalPrice: 2000}, nil)
	cartRepo.On("ListItems", mock.Anything, int64(5)).
		Return([]model.CartItem{{ID: 7, CartID: 5, ArtID: 10, Quantity: 2}}, nil)
	artRepo.On("FindByIDWithOwner", mock.Anything, int64(10)).Return(art, nil)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Equal(t, 2000.0, out.TotalPrice)
	assert.Equal(t, 1500.0, out.Items[0].Art.Price)
}

func TestCartUsecase_Remove_NoCart(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	cartRepo.On("RemoveItem", mock.Anything, int64(1), int64(10)).
		Return(model.Cart{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	_, err := u.Remove(ctx, 1, 10)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

func TestCartUsecase_UpdateItem_ArtNotFound(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	artRepo.On("FindByID", mock.Anything, int64(99)).Return(model.Art{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	_, err := u.UpdateItem(ctx, 1, usecase.UpdateCartItemInput{ArtID: 99, Quantity: 3})
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// qty <= 0 もRepositoryへそのまま渡す（明細削除はRepositoryの仕事）
func TestCartUsecase_UpdateItem_ZeroQuantityDelegatesRemoval(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	art := model.Art{ID: 10, Price: 1000}

	artRepo.On("FindByID", mock.Anything, int64(10)).Return(art, nil)
	cartRepo.On("SetItemQuantity", mock.Anything, int64(1), int64(10), int64(0)).
		Return(model.Cart{ID: 5, UserID: 1, TotalPrice: 0}, nil)
	cartRepo.On("ListItems", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.UpdateItem(ctx, 1, usecase.UpdateCartItemInput{ArtID: 10, Quantity: 0})
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
	assert.Equal(t, 0.0, out.TotalPrice)

	cartRepo.AssertExpectations(t)
}

func TestCartUsecase_Clear_NoCart(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	cartRepo.On("Clear", mock.Anything, int64(1)).Return(model.Cart{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	_, err := u.Clear(ctx, 1)
	assertHTTPStatus(t, err, http.StatusNotFound)
}

// 消えた作品の明細はレスポンスから落ちる（合計は保存値のまま）
func TestCartUsecase_Get_SkipsDanglingItems(t *testing.T) {
	ctx := context.Background()

	cartRepo := new(MockCartRepository)
	artRepo := new(MockArtRepository)

	cartRepo.On("FindByUserID", mock.Anything, int64(1)).
		Return(model.Cart{ID: 5, UserID: 1, TotalPrice: 1000}, nil)
	cartRepo.On("ListItems", mock.Anything, int64(5)).
		Return([]model.CartItem{
			{ID: 7, CartID: 5, ArtID: 10, Quantity: 1},
			{ID: 8, CartID: 5, ArtID: 11, Quantity: 1},
		}, nil)
	artRepo.On("FindByIDWithOwner", mock.Anything, int64(10)).
		Return(model.Art{ID: 10, Price: 1000}, nil)
	artRepo.On("FindByIDWithOwner", mock.Anything, int64(11)).
		Return(model.Art{}, repository.ErrNotFound)

	u := newCartUC(cartRepo, artRepo)

	out, err := u.Get(ctx, 1)
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(10), out.Items[0].Art.ID)
}
