package usecase

import (
	"context"
	"errors"
	"net/http"

	"artvista/internal/domain/model"
	repo "artvista/internal/repository"
)

// WishlistUsecase は /api/wishlist の業務ロジックです。
// 数量は無く、入っているかどうかだけを扱います
type WishlistUsecase struct {
	wishlistRepo repo.WishlistRepository
	artRepo      repo.ArtRepository
}

func NewWishlistUsecase(
	wishlistRepo repo.WishlistRepository,
	artRepo repo.ArtRepository,
) *WishlistUsecase {
	return &WishlistUsecase{
		wishlistRepo: wishlistRepo,
		artRepo:      artRepo,
	}
}

// 追加。既に入っていたら400
func (u *WishlistUsecase) Add(ctx context.Context, userID int64, artID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if artID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid art_id")
	}

	// 作品チェック
	if _, err := u.artRepo.FindByID(ctx, artID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "art not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	exists, err := u.wishlistRepo.Exists(ctx, userID, artID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if exists {
		return NewHTTPError(http.StatusBadRequest, "already in wishlist")
	}

	if err := u.wishlistRepo.Add(ctx, userID, artID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 削除。入っていなくても成功（冪等）
func (u *WishlistUsecase) Remove(ctx context.Context, userID int64, artID int64) error {
	if userID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if artID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid art_id")
	}

	if err := u.wishlistRepo.Remove(ctx, userID, artID); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}

// 一覧。作品は出品者名込み
func (u *WishlistUsecase) Get(ctx context.Context, userID int64) ([]model.Art, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	arts, err := u.wishlistRepo.ListArts(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return arts, nil
}
