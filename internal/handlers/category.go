package handlers

import (
	"CurtainSamples/internal/model"
	"CurtainSamples/internal/service"
	"net/http"

	"go.uber.org/zap"
)

// CategoryHandler CRUD разделов каталога.
type CategoryHandler struct {
	CatalogService *service.CatalogService
	Logger         *zap.SugaredLogger
}

func NewCategoryHandler(catalogService *service.CatalogService, logger *zap.SugaredLogger) *CategoryHandler {
	return &CategoryHandler{CatalogService: catalogService, Logger: logger}
}

type CategoryDTO struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func toCategoryDTO(c *model.Category) CategoryDTO {
	return CategoryDTO{ID: c.ID, Name: c.Name, Description: c.Description}
}

func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	cats, err := h.CatalogService.ListCategories(r.Context())
	if err != nil {
		writeServiceError(w, h.Logger, "ListCategories", err)
		return
	}
	resp := make([]CategoryDTO, 0, len(cats))
	for i := range cats {
		resp = append(resp, toCategoryDTO(&cats[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req service.CategoryFields
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.CatalogService.CreateCategory(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.Logger, "CreateCategory", err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryDTO(c))
}

func (h *CategoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var req service.CategoryFields
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	c, err := h.CatalogService.UpdateCategory(r.Context(), id, req)
	if err != nil {
		writeServiceError(w, h.Logger, "UpdateCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryDTO(c))
}

// Delete удаляет пустую категорию; при наличии штор отвечает 409.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := h.CatalogService.DeleteCategory(r.Context(), id); err != nil {
		writeServiceError(w, h.Logger, "DeleteCategory", err)
		return
	}
	writeJSON(w, http.StatusOK, MessageResponse{Message: "category deleted"})
}
