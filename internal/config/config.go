package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port string // サーバーポート（8080）

	JWTSecret string // JWT署名シークレット

	UploadDir string // 画像保存先ディレクトリ
	FEURL     string // フロントURL（CORSで使う）
}

// Loadは環境変数
// DB接続の環境変数はinfra/dbが直接読む
func Load() (Config, error) {
	cfg := Config{
		Port:      getenv("PORT", "8080"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: getenv("UPLOAD_DIR", "./uploads"),
		FEURL:     getenv("FE_URL", "*"),
	}

	//必須チェック
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getenv(key string, def string) string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	return v
}
