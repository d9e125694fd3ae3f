package server

import (
	"net/http"

	"artvista/internal/config"
	"artvista/internal/handler"
	"artvista/internal/infra/storage"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// Handlers はルート登録に必要なハンドラ一式
type Handlers struct {
	Auth     *handler.AuthHandler
	Art      *handler.ArtHandler
	Cart     *handler.CartHandler
	Wishlist *handler.WishlistHandler
}

// New はechoを組み立てて返す（起動はmainで）
func New(cfg config.Config, store *storage.ImageStore, h Handlers) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: []string{cfg.FEURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAuthorization},
	}))

	//アップロード画像の静的配信
	e.Static(storage.PublicPath, store.Dir())

	//疎通確認
	e.GET("/", func(c echo.Context) error {
		return c.String(http.StatusOK, "ArtVista API is running...")
	})

	RegisterRoutes(e, cfg, h)

	return e
}

// Start はルーティングを組んでサーバーを起動する
func Start(addr string, cfg config.Config, store *storage.ImageStore, h Handlers) error {
	e := New(cfg, store, h)
	return e.Start(addr)
}
