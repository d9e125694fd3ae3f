package repository

import (
	"context"

	"artvista/internal/domain/model"
)

// お気に入りの永続化。数量は持たない（入っているか/いないかだけ）
type WishlistRepository interface {
	Exists(ctx context.Context, userID int64, artID int64) (bool, error)
	Add(ctx context.Context, userID int64, artID int64) error
	// 入っていなくてもエラーにしない
	Remove(ctx context.Context, userID int64, artID int64) error
	// 追加順のまま、作品（出品者付き）を返す
	ListArts(ctx context.Context, userID int64) ([]model.Art, error)
}
