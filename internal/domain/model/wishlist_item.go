package model

import "time"

// ユーザーと作品のお気に入り関連。同じ作品は1回まで
type WishlistItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;index;uniqueIndex:idx_wishlist_items_user_art" json:"user_id"`
	ArtID     int64     `gorm:"not null;index;uniqueIndex:idx_wishlist_items_user_art" json:"art_id"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
