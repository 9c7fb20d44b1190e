package handlers

import (
	"CurtainSamples/internal/service"
	"context"
	"errors"
	"fmt"
	"mime"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	maxMultipartMemory = 8 << 20
	formFieldImage     = "image"
)

// CurtainHandler CRUD образцов штор. Запись принимает JSON или multipart/form-data с полем image.
type CurtainHandler struct {
	CatalogService *service.CatalogService
	ImageService   *service.ImageService
	Logger         *zap.SugaredLogger
}

func NewCurtainHandler(catalogService *service.CatalogService, imageService *service.ImageService, logger *zap.SugaredLogger) *CurtainHandler {
	return &CurtainHandler{CatalogService: catalogService, ImageService: imageService, Logger: logger}
}

type CurtainDTO struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Description  *string  `json:"description"`
	ImageURL     *string  `json:"image_url"`
	Price        *float64 `json:"price"`
	Material     *string  `json:"material"`
	Width        *string  `json:"width"`
	Pattern      *string  `json:"pattern"`
	Style        *string  `json:"style"`
	Features     *string  `json:"features"`
	InStock      bool     `json:"in_stock"`
	IsNew        bool     `json:"is_new"`
	CategoryID   int64    `json:"category_id"`
	CategoryName string   `json:"category_name"`
	CreatedAt    string   `json:"created_at"`
	UpdatedAt    string   `json:"updated_at"`
}

func toCurtainDTO(d *service.CurtainDetail) CurtainDTO {
	return CurtainDTO{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		ImageURL:     d.ImageURL,
		Price:        d.Price,
		Material:     d.Material,
		Width:        d.Width,
		Pattern:      d.Pattern,
		Style:        d.Style,
		Features:     d.Features,
		InStock:      d.InStock,
		IsNew:        d.IsNew,
		CategoryID:   d.CategoryID,
		CategoryName: d.CategoryName,
		CreatedAt:    d.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:    d.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (h *CurtainHandler) writeList(w http.ResponseWriter, list []service.CurtainDetail) {
	resp := make([]CurtainDTO, 0, len(list))
	for i := range list {
		resp = append(resp, toCurtainDTO(&list[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CurtainHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.CatalogService.ListCurtains(r.Context(), nil)
	if err != nil {
		writeServiceError(w, h.Logger, "ListCurtains", err)
		return
	}
	h.writeList(w, list)
}

// ListByCategory шторы одной категории; для несуществующей категории пустой список.
func (h *CurtainHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	list, err := h.CatalogService.ListCurtains(r.Context(), &id)
	if err != nil {
		writeServiceError(w, h.Logger, "ListCurtainsByCategory", err)
		return
	}
	h.writeList(w, list)
}

func (h *CurtainHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	d, err := h.CatalogService.GetCurtain(r.Context(), id)
	if err != nil {
		writeServiceError(w, h.Logger, "GetCurtain", err)
		return
	}
	writeJSON(w, http.StatusOK, toCurtainDTO(d))
}

func (h *CurtainHandler) Create(w http.ResponseWriter, r *http.Request) {
	fields, saved, err := h.readFields(r)
	if err != nil {
		h.writeReadError(w, err)
		return
	}
	d, err := h.CatalogService.CreateCurtain(r.Context(), fields)
	if err != nil {
		h.discardImage(r.Context(), saved)
		writeServiceError(w, h.Logger, "CreateCurtain", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCurtainDTO(d))
}

func (h *CurtainHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	fields, saved, err := h.readFields(r)
	if err != nil {
		h.writeReadError(w, err)
		return
	}
	d, err := h.CatalogService.UpdateCurtain(r.Context(), id, fields)
	if err != nil {
		h.discardImage(r.Context(), saved)
		writeServiceError(w, h.Logger, "UpdateCurtain", err)
		return
	}
	writeJSON(w, http.StatusOK, toCurtainDTO(d))
}

func (h *CurtainHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.CatalogService.DeleteCurtain(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, "DeleteCurtain", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "curtain deleted"})
}

// badRequestError ошибка разбора запроса, отдаётся клиенту как 400.
type badRequestError struct {
	msg string
}

func (e *badRequestError) Error() string { return e.msg }

func (h *CurtainHandler) writeReadError(w http.ResponseWriter, err error) {
	var bad *badRequestError
	if errors.As(err, &bad) {
		writeError(w, http.StatusBadRequest, bad.msg)
		return
	}
	h.Logger.Errorw("curtain request: failed to store image", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// readFields разбирает тело как JSON или multipart. Файл из поля image сохраняется,
// его адрес становится image_url и возвращается в saved; файл с неподходящим расширением игнорируется.
func (h *CurtainHandler) readFields(r *http.Request) (fields service.CurtainFields, saved string, err error) {
	if !isMultipart(r) {
		if err := decodeJSON(r, &fields); err != nil {
			return fields, "", &badRequestError{msg: err.Error()}
		}
		return fields, "", nil
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		h.Logger.Warnw("curtain request: invalid multipart form", "error", err)
		return fields, "", &badRequestError{msg: "invalid multipart form"}
	}
	fields, err = curtainFieldsFromForm(r.MultipartForm)
	if err != nil {
		return fields, "", &badRequestError{msg: err.Error()}
	}

	files := r.MultipartForm.File[formFieldImage]
	if len(files) == 0 {
		return fields, "", nil
	}
	url, ok, err := h.saveFormFile(r.Context(), files[0])
	if err != nil {
		return fields, "", err
	}
	if ok {
		fields.ImageURL = &url
		saved = url
	}
	return fields, saved, nil
}

// discardImage удаляет картинку, сохранённую для запроса, который не дошёл до базы.
func (h *CurtainHandler) discardImage(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := h.ImageService.Remove(ctx, url); err != nil {
		h.Logger.Warnw("curtain request: failed to remove unused image", "url", url, "error", err)
	}
}

func (h *CurtainHandler) saveFormFile(ctx context.Context, fh *multipart.FileHeader) (string, bool, error) {
	f, err := fh.Open()
	if err != nil {
		return "", false, fmt.Errorf("open form file: %w", err)
	}
	defer f.Close()
	return h.ImageService.SaveImage(ctx, fh.Filename, f, fh.Size)
}

func isMultipart(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "multipart/form-data"
}

// curtainFieldsFromForm переносит значения формы в CurtainFields. Отсутствующий ключ остаётся nil.
func curtainFieldsFromForm(form *multipart.Form) (service.CurtainFields, error) {
	var f service.CurtainFields
	str := func(key string) *string {
		if v, ok := form.Value[key]; ok && len(v) > 0 {
			s := v[0]
			return &s
		}
		return nil
	}

	f.Name = str("name")
	f.Description = str("description")
	f.ImageURL = str("image_url")
	f.Material = str("material")
	f.Width = str("width")
	f.Pattern = str("pattern")
	f.Style = str("style")
	f.Features = str("features")

	if v := str("price"); v != nil && strings.TrimSpace(*v) != "" {
		p, err := strconv.ParseFloat(strings.TrimSpace(*v), 64)
		if err != nil {
			return f, errors.New("invalid price")
		}
		f.Price = &p
	}
	if v := str("category_id"); v != nil && strings.TrimSpace(*v) != "" {
		id, err := strconv.ParseInt(strings.TrimSpace(*v), 10, 64)
		if err != nil {
			return f, errors.New("invalid category_id")
		}
		f.CategoryID = &id
	}
	for _, fb := range []struct {
		key string
		dst **bool
	}{
		{"in_stock", &f.InStock},
		{"is_new", &f.IsNew},
	} {
		v := str(fb.key)
		if v == nil || strings.TrimSpace(*v) == "" {
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(*v))
		if err != nil {
			return f, fmt.Errorf("invalid %s", fb.key)
		}
		*fb.dst = &b
	}
	return f, nil
}
