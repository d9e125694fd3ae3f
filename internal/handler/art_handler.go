package handler

import (
	"mime/multipart"
	"net/http"
	"strconv"

	"artvista/internal/config"
	"artvista/internal/infra/storage"
	"artvista/internal/middleware"
	"artvista/internal/usecase"

	"github.com/labstack/echo/v4"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}
	if he, ok := usecase.AsHTTPError(err); ok {
		return c.JSON(he.Status, ErrorResponse{Error: he.Message})
	}

	//500
	return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// 1回の出品・更新で受け付ける画像の上限
const maxImagesPerArt = 5

// /api/arts のAPI
type ArtHandler struct {
	uc    *usecase.ArtUsecase
	store *storage.ImageStore
}

// DI
func NewArtHandler(uc *usecase.ArtUsecase, store *storage.ImageStore) *ArtHandler {
	return &ArtHandler{uc: uc, store: store}
}

// 公開ルートと認証必須ルートを登録
func (h *ArtHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/api/arts")

	g.GET("", h.list)
	g.GET("/categories", h.categories)
	g.GET("/my", h.listMine, middleware.AuthJWT(cfg))
	g.GET("/:id", h.detail)

	g.POST("", h.create, middleware.AuthJWT(cfg))
	g.PUT("/:id", h.update, middleware.AuthJWT(cfg))
	g.DELETE("/:id", h.delete, middleware.AuthJWT(cfg))
}

func (h *ArtHandler) list(c echo.Context) error {
	// page（default 1）
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	// limit（default 12）
	limit := 12
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.List(c.Request().Context(), usecase.ListArtsInput{
		Category: c.QueryParam("category"),
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ArtHandler) categories(c echo.Context) error {
	cats, err := h.uc.Categories(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, cats)
}

func (h *ArtHandler) detail(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	a, err := h.uc.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, a)
}

func (h *ArtHandler) listMine(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	arts, err := h.uc.ListMine(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, arts)
}

// multipartで受け付け（title, description, price, categories, images×5まで）
func (h *ArtHandler) create(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	priceStr := c.FormValue("price")
	if priceStr == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "price is required"})
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
	}

	imagePaths, err := h.saveImages(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Create(c.Request().Context(), userID, usecase.CreateArtInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Categories:  formValues(c, "categories"),
		ImagePaths:  imagePaths,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

// 空のフィールドは据え置き。新しい画像があれば全置き換え
func (h *ArtHandler) update(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var price float64
	if v := c.FormValue("price"); v != "" {
		p, parseErr := strconv.ParseFloat(v, 64)
		if parseErr != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid price"})
		}
		price = p
	}

	imagePaths, err := h.saveImages(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.uc.Update(c.Request().Context(), id, userID, usecase.UpdateArtInput{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Price:       price,
		Categories:  formValues(c, "categories"),
		ImagePaths:  imagePaths,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *ArtHandler) delete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id, userID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, usecase.SuccessResponse{Message: "art deleted"})
}

// imagesフィールドのファイルを保存して公開パスを返す。
// ファイルが無ければnil（呼び出し側で「変更なし」扱い）
func (h *ArtHandler) saveImages(c echo.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil {
		// multipartでないリクエストは画像なし扱い
		return nil, nil
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, nil
	}
	if len(files) > maxImagesPerArt {
		return nil, usecase.NewHTTPError(http.StatusBadRequest, "too many images")
	}

	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := h.saveOne(f)
		if err != nil {
			return nil, usecase.NewHTTPError(http.StatusInternalServerError, "failed to save image")
		}
		paths = append(paths, path)
	}

	return paths, nil
}

func (h *ArtHandler) saveOne(f *multipart.FileHeader) (string, error) {
	return h.store.Save(f)
}

// 同名フィールドの複数値（無ければ単値）を集める
func formValues(c echo.Context, key string) []string {
	if form, err := c.MultipartForm(); err == nil {
		if vs, ok := form.Value[key]; ok {
			return vs
		}
	}

	if v := c.FormValue(key); v != "" {
		return []string{v}
	}
	return nil
}
