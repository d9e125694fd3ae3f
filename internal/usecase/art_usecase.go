package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"artvista/internal/domain/model"
	repo "artvista/internal/repository"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

// NormalizeCategories はカテゴリ入力を1か所で正規化する。
// カンマ区切り文字列と複数値のどちらも受け、trim＋小文字化＋重複除去
func NormalizeCategories(raw []string) []string {
	out := make([]string, 0, len(raw))
	seen := make(map[string]struct{})

	for _, r := range raw {
		for _, part := range strings.Split(r, ",") {
			cat := strings.ToLower(strings.TrimSpace(part))
			if cat == "" {
				continue
			}
			if _, ok := seen[cat]; ok {
				continue
			}
			seen[cat] = struct{}{}
			out = append(out, cat)
		}
	}

	return out
}

type ArtUsecase struct {
	artRepo repo.ArtRepository
}

// DI
func NewArtUsecase(artRepo repo.ArtRepository) *ArtUsecase {
	return &ArtUsecase{artRepo: artRepo}
}

type CreateArtInput struct {
	Title       string
	Description string
	Price       float64
	Categories  []string
	ImagePaths  []string
}

// GET /api/artsの入力DTO
type ListArtsInput struct {
	Category string
	Page     int
	Limit    int
}

type ArtListOutput struct {
	Arts          []model.Art `json:"arts"`
	TotalPages    int         `json:"total_pages"`
	CurrentPage   int         `json:"current_page"`
	Total         int64       `json:"total"`
	AllCategories []string    `json:"all_categories"`
}

type UpdateArtInput struct {
	Title       string
	Description string
	Price       float64
	// nil は「変更なし」。空でない場合は全置き換え
	Categories []string
	ImagePaths []string
}

func (u *ArtUsecase) Create(ctx context.Context, ownerID int64, in CreateArtInput) (model.Art, error) {
	if strings.TrimSpace(in.Title) == "" {
		return model.Art{}, NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if in.Price < 0 {
		return model.Art{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}

	images := in.ImagePaths
	if images == nil {
		images = []string{}
	}

	art := model.Art{
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Price:       in.Price,
		Images:      images,
		Categories:  NormalizeCategories(in.Categories),
		OwnerID:     ownerID,
	}

	created, err := u.artRepo.Create(ctx, art)
	if err != nil {
		return model.Art{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return created, nil
}

// 一覧（カテゴリ絞り込み＋ページング）。フィルタUI用に全カテゴリ集合も毎回返す
func (u *ArtUsecase) List(ctx context.Context, in ListArtsInput) (ArtListOutput, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 12
	}

	// "all"は絞り込みなし
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category == "all" {
		category = ""
	}

	allCategories, err := u.artRepo.DistinctCategories(ctx)
	if err != nil {
		return ArtListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	arts, total, err := u.artRepo.List(ctx, repo.ArtListQuery{
		Category: category,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return ArtListOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))

	return ArtListOutput{
		Arts:          arts,
		TotalPages:    totalPages,
		CurrentPage:   page,
		Total:         total,
		AllCategories: allCategories,
	}, nil
}

func (u *ArtUsecase) Categories(ctx context.Context) ([]string, error) {
	cats, err := u.artRepo.DistinctCategories(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return cats, nil
}

func (u *ArtUsecase) GetByID(ctx context.Context, artID int64) (model.Art, error) {
	if artID <= 0 {
		return model.Art{}, NewHTTPError(http.StatusBadRequest, "invalid art id")
	}

	a, err := u.artRepo.FindByIDWithOwner(ctx, artID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Art{}, NewHTTPError(http.StatusNotFound, "art not found")
	}
	if err != nil {
		return model.Art{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return a, nil
}

func (u *ArtUsecase) ListMine(ctx context.Context, ownerID int64) ([]model.Art, error) {
	arts, err := u.artRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return arts, nil
}

// 更新は所有者のみ。空値のフィールドは据え置き（ゼロ埋めでの消去はできない）
func (u *ArtUsecase) Update(ctx context.Context, artID int64, ownerID int64, in UpdateArtInput) (model.Art, error) {
	art, err := u.artRepo.FindByID(ctx, artID)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Art{}, NewHTTPError(http.StatusNotFound, "art not found")
	}
	if err != nil {
		return model.Art{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if art.OwnerID != ownerID {
		return model.Art{}, NewHTTPError(http.StatusForbidden, "not the owner")
	}

	if strings.TrimSpace(in.Title) != "" {
		art.Title = strings.TrimSpace(in.Title)
	}
	if in.Description != "" {
		art.Description = in.Description
	}
	if in.Price != 0 {
		if in.Price < 0 {
			return model.Art{}, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
		}
		art.Price = in.Price
	}
	if len(in.Categories) > 0 {
		art.Categories = NormalizeCategories(in.Categories)
	}
	// 新しい画像があれば全置き換え
	if len(in.ImagePaths) > 0 {
		art.Images = in.ImagePaths
	}

	if err := u.artRepo.Update(ctx, art); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return model.Art{}, NewHTTPError(http.StatusNotFound, "art not found")
		}
		return model.Art{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return art, nil
}

// 削除は所有者のみ。参照しているカート明細・お気に入りも一緒に掃除する
func (u *ArtUsecase) Delete(ctx context.Context, artID int64, ownerID int64) error {
	art, err := u.artRepo.FindByID(ctx, artID)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "art not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	if art.OwnerID != ownerID {
		return NewHTTPError(http.StatusForbidden, "not the owner")
	}

	if err := u.artRepo.DeleteWithReferences(ctx, artID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusNotFound, "art not found")
		}
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return nil
}
