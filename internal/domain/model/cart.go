package model

import "time"

// 1ユーザーにつきカートは1つ。最終更新時点の合計を保持する
// （作品価格が後から変わっても、次のカート更新まで再計算しない）
type Cart struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64     `gorm:"not null;uniqueIndex" json:"user_id"`
	TotalPrice float64   `gorm:"not null;default:0" json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
