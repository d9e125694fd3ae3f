package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// 公開URLのプレフィックス（echoの静的配信と合わせる）
const PublicPath = "/uploads"

// アップロード画像をローカルディスクに保存する
type ImageStore struct {
	dir string
}

// DI
func NewImageStore(dir string) (*ImageStore, error) {
	if dir == "" {
		dir = "./uploads"
	}
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ImageStore{dir: dir}, nil
}

// Dir は保存先ディレクトリ（静的配信の設定に使う）
func (s *ImageStore) Dir() string {
	return s.dir
}

// Save は1ファイルを保存して公開パス（/uploads/...）を返す。
// ファイル名はuuidで付け直して衝突を避ける
func (s *ImageStore) Save(file *multipart.FileHeader) (string, error) {
	ext := filepath.Ext(file.Filename)
	base := strings.TrimSuffix(filepath.Base(file.Filename), ext)
	base = strings.ReplaceAll(base, " ", "_")

	filename := fmt.Sprintf("%s_%s%s", uuid.NewString(), base, ext)

	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(filepath.Join(s.dir, filename))
	if err != nil {
		return "", err
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return fmt.Sprintf("%s/%s", PublicPath, filename), nil
}
