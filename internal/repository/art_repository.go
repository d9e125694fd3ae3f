package repository

import (
	"artvista/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 一覧検索
// Categoryは正規化済み（小文字）で渡す。空なら絞り込みなし
type ArtListQuery struct {
	Category string
	Page     int
	Limit    int
}

// 作品の永続化（保存・取得）だけを約束。
type ArtRepository interface {
	List(ctx context.Context, q ArtListQuery) ([]model.Art, int64, error)
	DistinctCategories(ctx context.Context) ([]string, error)
	FindByID(ctx context.Context, id int64) (model.Art, error)
	FindByIDWithOwner(ctx context.Context, id int64) (model.Art, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Art, error)

	Create(ctx context.Context, a model.Art) (model.Art, error)
	Update(ctx context.Context, a model.Art) error
	// 作品本体と、参照しているカート明細・お気に入りを同一トランザクションで削除し、
	// 影響を受けたカートの合計を作り直す
	DeleteWithReferences(ctx context.Context, id int64) error
}
