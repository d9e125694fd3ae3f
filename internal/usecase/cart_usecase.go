package usecase

import (
	"artvista/internal/domain/model"
	repo "artvista/internal/repository"
	"context"
	"errors"
	"net/http"
)

// CartUsecase は /api/cart の業務ロジックです。
// 合計の再計算そのものはRepositoryのトランザクション内で行い、
// ここでは作品の存在チェックと返却用の組み立てだけを受け持ちます。
type CartUsecase struct {
	cartRepo repo.CartRepository
	artRepo  repo.ArtRepository
}

func NewCartUsecase(
	cartRepo repo.CartRepository,
	artRepo repo.ArtRepository,
) *CartUsecase {
	return &CartUsecase{
		cartRepo: cartRepo,
		artRepo:  artRepo,
	}
}

// 明細は作品の詳細（出品者名込み）付きで返す
type CartItemResponse struct {
	ID       int64     `json:"id"`
	Art      model.Art `json:"art"`
	Quantity int64     `json:"quantity"`
}

type CartResponse struct {
	Items      []CartItemResponse `json:"items"`
	TotalPrice float64            `json:"total_price"`
}

type AddCartInput struct {
	ArtID    int64
	Quantity int64
}

type UpdateCartItemInput struct {
	ArtID    int64
	Quantity int64
}

// カートに追加（同一作品は数量加算、数量未指定は1）。カートは初回追加時に作られる
func (u *CartUsecase) Add(ctx context.Context, userID int64, in AddCartInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ArtID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid art_id")
	}

	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}

	// 作品チェック
	if _, err := u.artRepo.FindByID(ctx, in.ArtID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "art not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.AddItem(ctx, userID, in.ArtID, qty)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// カート取得。まだカートが無いユーザーには空の形を返す（作成はしない）
func (u *CartUsecase) Get(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.FindByUserID(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{Items: []CartItemResponse{}, TotalPrice: 0}, nil
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細の削除。カート自体が無ければ404、明細が無いだけならエラーにしない
func (u *CartUsecase) Remove(ctx context.Context, userID int64, artID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if artID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid art_id")
	}

	cart, err := u.cartRepo.RemoveItem(ctx, userID, artID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 数量変更。qty > 0 は設定（無ければ挿入）、qty <= 0 は明細削除
func (u *CartUsecase) UpdateItem(ctx context.Context, userID int64, in UpdateCartItemInput) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ArtID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusBadRequest, "invalid art_id")
	}

	// 作品チェック
	if _, err := u.artRepo.FindByID(ctx, in.ArtID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return CartResponse{}, NewHTTPError(http.StatusNotFound, "art not found")
		}
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	cart, err := u.cartRepo.SetItemQuantity(ctx, userID, in.ArtID, in.Quantity)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 全明細を削除。カート行は残る（空のカートに戻るだけ）
func (u *CartUsecase) Clear(ctx context.Context, userID int64) (CartResponse, error) {
	if userID <= 0 {
		return CartResponse{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	cart, err := u.cartRepo.Clear(ctx, userID)
	if errors.Is(err, repo.ErrNotFound) {
		return CartResponse{}, NewHTTPError(http.StatusNotFound, "cart not found")
	}
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return u.buildCartResponse(ctx, cart)
}

// 明細に作品詳細を詰めてCartResponseを作る。
// total_priceはRepositoryが再計算した保存値をそのまま使う（次の更新まで据え置き）
func (u *CartUsecase) buildCartResponse(ctx context.Context, cart model.Cart) (CartResponse, error) {
	items, err := u.cartRepo.ListItems(ctx, cart.ID)
	if err != nil {
		return CartResponse{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	respItems := make([]CartItemResponse, 0, len(items))

	for _, it := range items {
		a, err := u.artRepo.FindByIDWithOwner(ctx, it.ArtID)
		if err != nil {
			continue
		}

		respItems = append(respItems, CartItemResponse{
			ID:       it.ID,
			Art:      a,
			Quantity: it.Quantity,
		})
	}

	return CartResponse{Items: respItems, TotalPrice: cart.TotalPrice}, nil
}
