package repository

import (
	"context"

	"artvista/internal/domain/model"
	domainrepo "artvista/internal/repository"

	"gorm.io/gorm"
)

type WishlistGormRepository struct {
	db *gorm.DB
}

// DI
func NewWishlistGormRepository(db *gorm.DB) domainrepo.WishlistRepository {
	return &WishlistGormRepository{db: db}
}

// 既にお気に入りに入っているか
func (r *WishlistGormRepository) Exists(ctx context.Context, userID int64, artID int64) (bool, error) {
	var count int64

	err := r.db.WithContext(ctx).
		Model(&model.WishlistItem{}).
		Where("user_id = ? AND art_id = ?", userID, artID).
		Count(&count).Error
	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// お気に入りに追加
func (r *WishlistGormRepository) Add(ctx context.Context, userID int64, artID int64) error {
	item := model.WishlistItem{
		UserID: userID,
		ArtID:  artID,
	}
	return r.db.WithContext(ctx).Create(&item).Error
}

// お気に入りから削除。入っていなくても成功扱い
func (r *WishlistGormRepository) Remove(ctx context.Context, userID int64, artID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND art_id = ?", userID, artID).
		Delete(&model.WishlistItem{}).Error
}

// 追加順で作品（出品者付き）を返す
func (r *WishlistGormRepository) ListArts(ctx context.Context, userID int64) ([]model.Art, error) {
	var arts []model.Art

	err := r.db.WithContext(ctx).
		Model(&model.Art{}).
		Preload("Owner").
		Joins("JOIN wishlist_items ON wishlist_items.art_id = arts.id").
		Where("wishlist_items.user_id = ?", userID).
		Order("wishlist_items.id asc").
		Find(&arts).Error
	if err != nil {
		return []model.Art{}, err
	}

	return arts, nil
}
