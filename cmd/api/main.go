package main

import (
	"artvista/internal/config"
	"artvista/internal/domain/model"
	"artvista/internal/handler"
	"artvista/internal/infra/db"
	infraRepo "artvista/internal/infra/repository"
	"artvista/internal/infra/storage"
	"artvista/internal/server"
	"artvista/internal/usecase"
	"artvista/internal/validator"

	"github.com/joho/godotenv"
)

func main() {
	//.envがあれば読む（無くても起動する）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}
	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Art{},
		&model.Cart{},
		&model.CartItem{},
		&model.WishlistItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	userRepo := infraRepo.NewUserGormRepository(gormDB)
	artRepo := infraRepo.NewArtGormRepository(gormDB)
	cartRepo := infraRepo.NewCartGormRepository(gormDB)
	wishlistRepo := infraRepo.NewWishlistGormRepository(gormDB)

	//画像の保存先
	store, err := storage.NewImageStore(cfg.UploadDir)
	if err != nil {
		panic(err)
	}

	//Usecase生成
	authUC := usecase.NewAuthUsecase(cfg, userRepo, validator.NewAuthValidator(userRepo))
	artUC := usecase.NewArtUsecase(artRepo)
	cartUC := usecase.NewCartUsecase(cartRepo, artRepo)
	wishlistUC := usecase.NewWishlistUsecase(wishlistRepo, artRepo)

	//Handler生成
	handlers := server.Handlers{
		Auth:     handler.NewAuthHandler(authUC),
		Art:      handler.NewArtHandler(artUC, store),
		Cart:     handler.NewCartHandler(cartUC),
		Wishlist: handler.NewWishlistHandler(wishlistUC),
	}

	//Server起動
	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(addr, cfg, store, handlers); err != nil {
		panic(err)
	}
}
