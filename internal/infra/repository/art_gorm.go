package repository

import (
	"context"
	"encoding/json"
	"errors"

	"artvista/internal/domain/model"
	repo "artvista/internal/repository"

	"gorm.io/gorm"
)

type ArtGormRepository struct {
	db *gorm.DB
}

// DI
func NewArtGormRepository(db *gorm.DB) *ArtGormRepository {
	return &ArtGormRepository{db: db}
}

// カテゴリ絞り込み＋ページング付きで新着順に返す。出品者（name/email）も読み込む
func (r *ArtGormRepository) List(ctx context.Context, q repo.ArtListQuery) ([]model.Art, int64, error) {
	var arts []model.Art
	var total int64

	tx := r.db.WithContext(ctx).Model(&model.Art{})

	// categories はjsonb配列なので包含演算子で絞り込む
	if q.Category != "" {
		needle, err := json.Marshal([]string{q.Category})
		if err != nil {
			return []model.Art{}, 0, err
		}
		tx = tx.Where("categories @> ?", string(needle))
	}

	//total（件数）
	if err := tx.Count(&total).Error; err != nil {
		return []model.Art{}, 0, err
	}

	offset := (q.Page - 1) * q.Limit
	if err := tx.
		Preload("Owner").
		Order("created_at desc").Order("id desc").
		Offset(offset).Limit(q.Limit).
		Find(&arts).Error; err != nil {
		return []model.Art{}, 0, err
	}

	return arts, total, nil
}

// 全作品のカテゴリ集合（重複なし）を返す
func (r *ArtGormRepository) DistinctCategories(ctx context.Context) ([]string, error) {
	var categories []string

	err := r.db.WithContext(ctx).
		Raw(`SELECT DISTINCT jsonb_array_elements_text(categories) AS category
		     FROM arts ORDER BY category`).
		Scan(&categories).Error
	if err != nil {
		return []string{}, err
	}

	return categories, nil
}

// IDで作品を取得
func (r *ArtGormRepository) FindByID(ctx context.Context, id int64) (model.Art, error) {
	var a model.Art
	err := r.db.WithContext(ctx).First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Art{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Art{}, err
	}
	return a, nil
}

// IDで作品を取得（出品者付き）
func (r *ArtGormRepository) FindByIDWithOwner(ctx context.Context, id int64) (model.Art, error) {
	var a model.Art
	err := r.db.WithContext(ctx).Preload("Owner").First(&a, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Art{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Art{}, err
	}
	return a, nil
}

// 出品者の作品一覧
func (r *ArtGormRepository) ListByOwner(ctx context.Context, ownerID int64) ([]model.Art, error) {
	var arts []model.Art

	if err := r.db.WithContext(ctx).
		Preload("Owner").
		Where("owner_id = ?", ownerID).
		Order("created_at desc").Order("id desc").
		Find(&arts).Error; err != nil {
		return []model.Art{}, err
	}

	return arts, nil
}

// 作品の作成
func (r *ArtGormRepository) Create(ctx context.Context, a model.Art) (model.Art, error) {
	if err := r.db.WithContext(ctx).Create(&a).Error; err != nil {
		return model.Art{}, err
	}
	return a, nil
}

// 作品の更新
func (r *ArtGormRepository) Update(ctx context.Context, a model.Art) error {
	// jsonb列（images/categories）にserializerを効かせるためstructで更新する
	res := r.db.WithContext(ctx).Model(&model.Art{ID: a.ID}).
		Select("title", "description", "price", "images", "categories").
		Updates(a)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 作品削除
// 参照しているカート明細・お気に入りも同一トランザクションで掃除し、
// 影響を受けたカートの合計を現在価格で作り直す
func (r *ArtGormRepository) DeleteWithReferences(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a model.Art
		if err := tx.First(&a, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return repo.ErrNotFound
			}
			return err
		}

		// この作品を参照しているカートを控えておく
		var cartIDs []int64
		if err := tx.Model(&model.CartItem{}).
			Where("art_id = ?", id).
			Distinct("cart_id").
			Pluck("cart_id", &cartIDs).Error; err != nil {
			return err
		}

		if err := tx.Where("art_id = ?", id).Delete(&model.CartItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("art_id = ?", id).Delete(&model.WishlistItem{}).Error; err != nil {
			return err
		}

		// 合計を残った明細から再計算
		if len(cartIDs) > 0 {
			if err := tx.Exec(`
				UPDATE carts SET total_price = COALESCE((
					SELECT SUM(arts.price * cart_items.quantity)
					FROM cart_items
					JOIN arts ON arts.id = cart_items.art_id
					WHERE cart_items.cart_id = carts.id
				), 0)
				WHERE id IN ?`, cartIDs).Error; err != nil {
				return err
			}
		}

		if err := tx.Delete(&model.Art{}, id).Error; err != nil {
			return err
		}

		return nil
	})
}
