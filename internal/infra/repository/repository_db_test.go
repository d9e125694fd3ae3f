package repository_test

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"artvista/internal/domain/model"
	infrarepo "artvista/internal/infra/repository"
	repo "artvista/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// 実DB（PostgreSQL）に対する結合テスト。
// TEST_DATABASE_DSN が無ければスキップする
func testDSN(t *testing.T) string {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set")
	}
	return dsn
}

// 接続確認はpgxドライバで素のSQLを叩く
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := testDSN(t)

	raw, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	require.NoError(t, raw.Ping())
	_ = raw.Close()

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, gdb.AutoMigrate(
		&model.User{},
		&model.Art{},
		&model.Cart{},
		&model.CartItem{},
		&model.WishlistItem{},
	))

	return gdb
}

func createTestUser(t *testing.T, gdb *gorm.DB) model.User {
	t.Helper()

	u := model.User{
		Name:         "db-test",
		Email:        fmt.Sprintf("db-test-%d@example.com", time.Now().UnixNano()),
		PasswordHash: "x",
		Role:         model.RoleUser,
	}
	require.NoError(t, gdb.Create(&u).Error)

	t.Cleanup(func() {
		gdb.Where("user_id = ?", u.ID).Delete(&model.WishlistItem{})
		var cart model.Cart
		if err := gdb.Where("user_id = ?", u.ID).First(&cart).Error; err == nil {
			gdb.Where("cart_id = ?", cart.ID).Delete(&model.CartItem{})
			gdb.Delete(&model.Cart{}, cart.ID)
		}
		gdb.Where("owner_id = ?", u.ID).Delete(&model.Art{})
		gdb.Delete(&model.User{}, u.ID)
	})

	return u
}

func createTestArt(t *testing.T, gdb *gorm.DB, ownerID int64, title string, price float64, categories []string) model.Art {
	t.Helper()

	a := model.Art{
		Title:      title,
		Price:      price,
		Images:     []string{},
		Categories: categories,
		OwnerID:    ownerID,
	}
	require.NoError(t, gdb.Create(&a).Error)
	return a
}

func TestDB_ArtRepository_RoundTrip(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	owner := createTestUser(t, gdb)
	art := createTestArt(t, gdb, owner.ID, "db-test-sunset", 1200, []string{"abstract", "modern"})

	arts := infrarepo.NewArtGormRepository(gdb)

	// jsonbのシリアライズが往復して戻ること
	got, err := arts.FindByID(ctx, art.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"abstract", "modern"}, got.Categories)

	// カテゴリの @> 絞り込み
	list, total, err := arts.List(ctx, repo.ArtListQuery{Category: "abstract", Page: 1, Limit: 100})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, total, int64(1))

	found := false
	for _, a := range list {
		if a.ID == art.ID {
			found = true
		}
	}
	assert.True(t, found)

	// 出品者込みの取得
	withOwner, err := arts.FindByIDWithOwner(ctx, art.ID)
	require.NoError(t, err)
	require.NotNil(t, withOwner.Owner)
	assert.Equal(t, owner.ID, withOwner.Owner.ID)

	// 全カテゴリ集合に含まれる
	cats, err := arts.DistinctCategories(ctx)
	require.NoError(t, err)
	assert.Contains(t, cats, "modern")
}

func TestDB_CartRepository_AddAndRecompute(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, gdb)
	art := createTestArt(t, gdb, user.ID, "db-test-cart", 500, []string{"test"})

	carts := infrarepo.NewCartGormRepository(gdb)

	// 初回追加でカートが作られる
	cart, err := carts.AddItem(ctx, user.ID, art.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1000.0, cart.TotalPrice)

	// 同一作品は数量加算（行は増えない）
	cart, err = carts.AddItem(ctx, user.ID, art.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1500.0, cart.TotalPrice)

	items, err := carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, int64(3), items[0].Quantity)

	// 作品価格が変わったら、次の更新で新価格が効く
	require.NoError(t, gdb.Model(&model.Art{}).Where("id = ?", art.ID).Update("price", 600).Error)

	cart, err = carts.SetItemQuantity(ctx, user.ID, art.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1200.0, cart.TotalPrice)

	// 全消し
	cart, err = carts.Clear(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 0.0, cart.TotalPrice)
}

func TestDB_DeleteWithReferences_SweepsCartAndWishlist(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, gdb)
	keep := createTestArt(t, gdb, user.ID, "db-test-keep", 300, []string{"test"})
	gone := createTestArt(t, gdb, user.ID, "db-test-gone", 700, []string{"test"})

	arts := infrarepo.NewArtGormRepository(gdb)
	carts := infrarepo.NewCartGormRepository(gdb)
	wish := infrarepo.NewWishlistGormRepository(gdb)

	_, err := carts.AddItem(ctx, user.ID, keep.ID, 1)
	require.NoError(t, err)
	cart, err := carts.AddItem(ctx, user.ID, gone.ID, 2)
	require.NoError(t, err)
	assert.Equal(t, 1700.0, cart.TotalPrice)

	require.NoError(t, wish.Add(ctx, user.ID, gone.ID))

	// 削除で参照も掃除され、合計が再計算される
	require.NoError(t, arts.DeleteWithReferences(ctx, gone.ID))

	cart, err = carts.FindByUserID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, 300.0, cart.TotalPrice)

	items, err := carts.ListItems(ctx, cart.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, keep.ID, items[0].ArtID)

	exists, err := wish.Exists(ctx, user.ID, gone.ID)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = arts.FindByID(ctx, gone.ID)
	assert.ErrorIs(t, err, repo.ErrNotFound)
}

func TestDB_WishlistRepository(t *testing.T) {
	gdb := openTestDB(t)
	ctx := context.Background()

	user := createTestUser(t, gdb)
	art := createTestArt(t, gdb, user.ID, "db-test-wish", 100, []string{"test"})

	wish := infrarepo.NewWishlistGormRepository(gdb)

	require.NoError(t, wish.Add(ctx, user.ID, art.ID))

	exists, err := wish.Exists(ctx, user.ID, art.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	arts, err := wish.ListArts(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, arts, 1)
	assert.Equal(t, art.ID, arts[0].ID)

	// 削除は冪等
	require.NoError(t, wish.Remove(ctx, user.ID, art.ID))
	require.NoError(t, wish.Remove(ctx, user.ID, art.ID))

	exists, err = wish.Exists(ctx, user.ID, art.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}
