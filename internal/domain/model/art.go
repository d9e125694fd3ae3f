package model

import "time"

// 出品作品。カテゴリは小文字に正規化して保存する
type Art struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:varchar(255);not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`
	Price       float64   `gorm:"not null" json:"price"`
	Images      []string  `gorm:"serializer:json;type:jsonb" json:"images"`
	Categories  []string  `gorm:"serializer:json;type:jsonb" json:"categories"`
	OwnerID     int64     `gorm:"not null;index" json:"owner_id"`
	Owner       *User     `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
