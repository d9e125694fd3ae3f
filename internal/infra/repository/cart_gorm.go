package repository

import (
	"artvista/internal/domain/model"
	repo "artvista/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// ユーザーのカートを取得
func (r *CartGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート明細を一覧取得
func (r *CartGormRepository) ListItems(ctx context.Context, cartID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Where("cart_id = ?", cartID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}

// カートに追加。カートが無ければ作り、同一作品は数量加算
func (r *CartGormRepository) AddItem(ctx context.Context, userID int64, artID int64, addQty int64) (model.Cart, error) {
	if addQty <= 0 {
		return model.Cart{}, errors.New("invalid quantity")
	}

	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockOrCreateCart(tx, userID)
		if err != nil {
			return err
		}

		var item model.CartItem
		findErr := tx.
			Where("cart_id = ? AND art_id = ?", c.ID, artID).
			First(&item).Error

		if findErr == nil {
			// 既存ありだったら数量を増やす
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", item.Quantity+addQty)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return repo.ErrNotFound
			}
		} else if errors.Is(findErr, gorm.ErrRecordNotFound) {
			//無い場合は新規作成
			now := time.Now()
			newItem := model.CartItem{
				CartID:    c.ID,
				ArtID:     artID,
				Quantity:  addQty,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return err
			}
		} else {
			return findErr
		}

		if err := recomputeTotal(tx, &c); err != nil {
			return err
		}

		cart = c
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 数量を設定。qty <= 0 は明細削除、明細が無ければ挿入
func (r *CartGormRepository) SetItemQuantity(ctx context.Context, userID int64, artID int64, qty int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		var item model.CartItem
		findErr := tx.
			Where("cart_id = ? AND art_id = ?", c.ID, artID).
			First(&item).Error

		switch {
		case findErr == nil && qty > 0:
			res := tx.Model(&model.CartItem{}).
				Where("id = ?", item.ID).
				Update("quantity", qty)
			if res.Error != nil {
				return res.Error
			}
		case findErr == nil:
			// qty <= 0 は削除
			if err := tx.Delete(&model.CartItem{}, item.ID).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound) && qty > 0:
			now := time.Now()
			newItem := model.CartItem{
				CartID:    c.ID,
				ArtID:     artID,
				Quantity:  qty,
				CreatedAt: now,
				UpdatedAt: now,
			}
			if err := tx.Create(&newItem).Error; err != nil {
				return err
			}
		case errors.Is(findErr, gorm.ErrRecordNotFound):
			// 無い明細に qty <= 0 は何もしない
		default:
			return findErr
		}

		if err := recomputeTotal(tx, &c); err != nil {
			return err
		}

		cart = c
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 明細を取り除く。無くてもエラーにしない
func (r *CartGormRepository) RemoveItem(ctx context.Context, userID int64, artID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		if err := tx.
			Where("cart_id = ? AND art_id = ?", c.ID, artID).
			Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		if err := recomputeTotal(tx, &c); err != nil {
			return err
		}

		cart = c
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 全明細を削除して合計を0に
func (r *CartGormRepository) Clear(ctx context.Context, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := lockCart(tx, userID)
		if err != nil {
			return err
		}

		//cart_itemsを全削除
		if err := tx.Where("cart_id = ?", c.ID).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}

		res := tx.Model(&model.Cart{}).
			Where("id = ?", c.ID).
			Update("total_price", 0)
		if res.Error != nil {
			return res.Error
		}

		c.TotalPrice = 0
		cart = c
		return nil
	})

	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ユーザーのカート行をFOR UPDATEでロックして返す。無ければrepo.ErrNotFound
func lockCart(tx *gorm.DB, userID int64) (model.Cart, error) {
	var cart model.Cart

	err := tx.
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// ロック付きで取得し、無ければ作成
func lockOrCreateCart(tx *gorm.DB, userID int64) (model.Cart, error) {
	cart, err := lockCart(tx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, repo.ErrNotFound) {
		return model.Cart{}, err
	}

	// 無ければ作る
	now := time.Now()
	newCart := model.Cart{
		UserID:     userID,
		TotalPrice: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if createErr := tx.Create(&newCart).Error; createErr != nil {
		// 同時作成に負けた場合は作られた方を拾う
		retry, retryErr := lockCart(tx, userID)
		if retryErr == nil {
			return retry, nil
		}
		return model.Cart{}, createErr
	}

	return newCart, nil
}

// 合計＝現在の作品価格×数量の総和。トランザクション内で呼ぶ
func recomputeTotal(tx *gorm.DB, cart *model.Cart) error {
	var total float64

	if err := tx.Model(&model.CartItem{}).
		Select("COALESCE(SUM(arts.price * cart_items.quantity), 0)").
		Joins("JOIN arts ON arts.id = cart_items.art_id").
		Where("cart_items.cart_id = ?", cart.ID).
		Scan(&total).Error; err != nil {
		return err
	}

	res := tx.Model(&model.Cart{}).
		Where("id = ?", cart.ID).
		Update("total_price", total)
	if res.Error != nil {
		return res.Error
	}

	cart.TotalPrice = total
	return nil
}
