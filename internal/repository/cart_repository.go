package repository

import (
	"context"

	"artvista/internal/domain/model"
)

// カートの永続化。変更系は同一ユーザーのカート行をロックして直列化し、
// 合計（現在の作品価格×数量の総和）を同一トランザクション内で作り直す
type CartRepository interface {
	// カートが無ければErrNotFound
	FindByUserID(ctx context.Context, userID int64) (model.Cart, error)
	ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error)

	// カートが無ければ作成。同一作品は数量加算
	AddItem(ctx context.Context, userID int64, artID int64, addQty int64) (model.Cart, error)
	// qty > 0 は設定（明細が無ければ挿入）、qty <= 0 は明細削除。カートが無ければErrNotFound
	SetItemQuantity(ctx context.Context, userID int64, artID int64, qty int64) (model.Cart, error)
	// 明細が無くてもエラーにしない。カートが無ければErrNotFound
	RemoveItem(ctx context.Context, userID int64, artID int64) (model.Cart, error)
	// 全明細を削除して合計を0に。カートが無ければErrNotFound
	Clear(ctx context.Context, userID int64) (model.Cart, error)
}
