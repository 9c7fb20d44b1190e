package service

import (
	"CurtainSamples/internal/model"
	"CurtainSamples/internal/repo"
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CategoryFields поля категории из запроса. nil: поле не передано.
type CategoryFields struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type categoryName struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CurtainFields поля шторы из запроса. При обновлении меняются только не-nil поля.
type CurtainFields struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	ImageURL    *string  `json:"image_url" validate:"omitempty,max=255"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Material    *string  `json:"material" validate:"omitempty,max=100"`
	Width       *string  `json:"width" validate:"omitempty,max=50"`
	Pattern     *string  `json:"pattern" validate:"omitempty,max=100"`
	Style       *string  `json:"style" validate:"omitempty,max=100"`
	Features    *string  `json:"features"`
	InStock     *bool    `json:"in_stock"`
	IsNew       *bool    `json:"is_new"`
	CategoryID  *int64   `json:"category_id" validate:"omitempty,gt=0"`
}

type curtainRequired struct {
	Name       string `json:"name" validate:"required,max=100"`
	CategoryID int64  `json:"category_id" validate:"required"`
}

// CurtainDetail штора вместе с именем её категории, которое подставляется при чтении.
type CurtainDetail struct {
	model.Curtain
	CategoryName string
}

// CatalogService операции над категориями и шторами.
type CatalogService struct {
	categories repo.CategoryRepository
	curtains   repo.CurtainRepository
	logger     *zap.SugaredLogger
}

func NewCatalogService(categories repo.CategoryRepository, curtains repo.CurtainRepository, logger *zap.SugaredLogger) *CatalogService {
	return &CatalogService{categories: categories, curtains: curtains, logger: logger}
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]model.Category, error) {
	res, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return res, nil
}

func (s *CatalogService) CreateCategory(ctx context.Context, in CategoryFields) (*model.Category, error) {
	name := deref(trimPtr(in.Name))
	if err := validateStruct(categoryName{Name: name}); err != nil {
		return nil, err
	}
	c := &model.Category{Name: name, Description: in.Description}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.logger.Infow("category created", "id", c.ID, "name", c.Name)
	return c, nil
}

// UpdateCategory частичное обновление: отсутствующие поля остаются прежними.
func (s *CatalogService) UpdateCategory(ctx context.Context, id int64, in CategoryFields) (*model.Category, error) {
	updates := map[string]any{}
	if in.Name != nil {
		name := deref(trimPtr(in.Name))
		if err := validateStruct(categoryName{Name: name}); err != nil {
			return nil, err
		}
		updates["name"] = name
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}

	c, err := s.categories.Update(ctx, id, updates)
	if err != nil {
		return nil, s.mapCategoryErr(id, err)
	}
	return c, nil
}

// DeleteCategory удаляет категорию без штор; иначе ErrCategoryInUse.
func (s *CatalogService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		return s.mapCategoryErr(id, err)
	}
	s.logger.Infow("category deleted", "id", id)
	return nil
}

// ListCurtains все шторы или только шторы категории categoryID.
func (s *CatalogService) ListCurtains(ctx context.Context, categoryID *int64) ([]CurtainDetail, error) {
	curtains, err := s.curtains.List(ctx, categoryID)
	if err != nil {
		return nil, fmt.Errorf("list curtains: %w", err)
	}
	return s.withCategoryNames(ctx, curtains)
}

func (s *CatalogService) GetCurtain(ctx context.Context, id int64) (*CurtainDetail, error) {
	c, err := s.curtains.GetByID(ctx, id)
	if err != nil {
		return nil, s.mapCurtainErr(id, err)
	}
	return s.detail(ctx, c)
}

// CreateCurtain создаёт штору. Обязательны name и category_id; in_stock по умолчанию true.
func (s *CatalogService) CreateCurtain(ctx context.Context, in CurtainFields) (*CurtainDetail, error) {
	in.Name = trimPtr(in.Name)
	var catID int64
	if in.CategoryID != nil {
		catID = *in.CategoryID
	}
	if err := validateStruct(curtainRequired{Name: deref(in.Name), CategoryID: catID}); err != nil {
		return nil, err
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c := &model.Curtain{
		Name:        *in.Name,
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Price:       in.Price,
		Material:    in.Material,
		Width:       in.Width,
		Pattern:     in.Pattern,
		Style:       in.Style,
		Features:    in.Features,
		InStock:     true,
		CategoryID:  catID,
	}
	if in.InStock != nil {
		c.InStock = *in.InStock
	}
	if in.IsNew != nil {
		c.IsNew = *in.IsNew
	}

	if err := s.curtains.Create(ctx, c); err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("create curtain: %w", err)
	}
	s.logger.Infow("curtain created", "id", c.ID, "category_id", c.CategoryID)
	return s.detail(ctx, c)
}

// UpdateCurtain частичное обновление; updated_at сдвигается при каждом вызове.
func (s *CatalogService) UpdateCurtain(ctx context.Context, id int64, in CurtainFields) (*CurtainDetail, error) {
	if in.Name != nil {
		in.Name = trimPtr(in.Name)
		if err := validateStruct(categoryName{Name: *in.Name}); err != nil {
			return nil, err
		}
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	c, err := s.curtains.Update(ctx, id, curtainUpdates(in))
	if err != nil {
		if errors.Is(err, repo.ErrCategoryNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, s.mapCurtainErr(id, err)
	}
	return s.detail(ctx, c)
}

func (s *CatalogService) DeleteCurtain(ctx context.Context, id int64) error {
	if err := s.curtains.Delete(ctx, id); err != nil {
		return s.mapCurtainErr(id, err)
	}
	s.logger.Infow("curtain deleted", "id", id)
	return nil
}

// CountCurtains сколько штор в каталоге.
func (s *CatalogService) CountCurtains(ctx context.Context) (int64, error) {
	n, err := s.curtains.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count curtains: %w", err)
	}
	return n, nil
}

func curtainUpdates(in CurtainFields) map[string]any {
	updates := map[string]any{}
	set := func(col string, ok bool, v any) {
		if ok {
			updates[col] = v
		}
	}
	set("name", in.Name != nil, deref(in.Name))
	set("description", in.Description != nil, deref(in.Description))
	set("image_url", in.ImageURL != nil, deref(in.ImageURL))
	set("material", in.Material != nil, deref(in.Material))
	set("width", in.Width != nil, deref(in.Width))
	set("pattern", in.Pattern != nil, deref(in.Pattern))
	set("style", in.Style != nil, deref(in.Style))
	set("features", in.Features != nil, deref(in.Features))
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.InStock != nil {
		updates["in_stock"] = *in.InStock
	}
	if in.IsNew != nil {
		updates["is_new"] = *in.IsNew
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	return updates
}

func (s *CatalogService) detail(ctx context.Context, c *model.Curtain) (*CurtainDetail, error) {
	res, err := s.withCategoryNames(ctx, []model.Curtain{*c})
	if err != nil {
		return nil, err
	}
	return &res[0], nil
}

// withCategoryNames подставляет имена категорий одним запросом на весь список.
func (s *CatalogService) withCategoryNames(ctx context.Context, curtains []model.Curtain) ([]CurtainDetail, error) {
	ids := make([]int64, 0, len(curtains))
	seen := make(map[int64]struct{}, len(curtains))
	for _, c := range curtains {
		if _, ok := seen[c.CategoryID]; ok {
			continue
		}
		seen[c.CategoryID] = struct{}{}
		ids = append(ids, c.CategoryID)
	}

	cats, err := s.categories.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load categories: %w", err)
	}
	names := make(map[int64]string, len(cats))
	for _, c := range cats {
		names[c.ID] = c.Name
	}

	res := make([]CurtainDetail, 0, len(curtains))
	for _, c := range curtains {
		name, ok := names[c.CategoryID]
		if !ok {
			s.logger.Warnw("curtain references missing category", "curtain_id", c.ID, "category_id", c.CategoryID)
		}
		res = append(res, CurtainDetail{Curtain: c, CategoryName: name})
	}
	return res, nil
}

func (s *CatalogService) mapCategoryErr(id int64, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrCategoryNotFound
	case errors.Is(err, repo.ErrCategoryInUse):
		return ErrCategoryInUse
	default:
		return fmt.Errorf("category %d: %w", id, err)
	}
}

func (s *CatalogService) mapCurtainErr(id int64, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCurtainNotFound
	}
	return fmt.Errorf("curtain %d: %w", id, err)
}
