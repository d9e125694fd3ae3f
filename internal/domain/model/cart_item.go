package model

import "time"

// カートの明細
// 同じ作品は1行に集約（数量加算）。価格は持たず、合計はカート更新時に再計算する
type CartItem struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CartID    int64     `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_art" json:"cart_id"`
	ArtID     int64     `gorm:"not null;index;uniqueIndex:idx_cart_items_cart_art" json:"art_id"`
	Quantity  int64     `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
