package repo

import (
	"CurtainSamples/internal/model"
	"context"

	"gorm.io/gorm"
)

// CategoryRepository доступ к категориям каталога.
type CategoryRepository interface {
	List(ctx context.Context) ([]model.Category, error)
	GetByID(ctx context.Context, id int64) (*model.Category, error)
	// FindByIDs возвращает найденные категории; отсутствующие id просто пропускаются.
	FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error)
	Create(ctx context.Context, c *model.Category) error
	// Update меняет только переданные колонки и возвращает запись после изменения.
	Update(ctx context.Context, id int64, updates map[string]any) (*model.Category, error)
	// Delete удаляет пустую категорию. Если к ней привязаны шторы: ErrCategoryInUse.
	Delete(ctx context.Context, id int64) error
}

type categoryRepo struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var res []model.Category
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *categoryRepo) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) FindByIDs(ctx context.Context, ids []int64) ([]model.Category, error) {
	if len(ids) == 0 {
		return []model.Category{}, nil
	}
	var res []model.Category
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *categoryRepo) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&model.Category{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return err
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *categoryRepo) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c model.Category
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		var n int64
		if err := tx.Model(&model.Curtain{}).Where("category_id = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return ErrCategoryInUse
		}
		if err := tx.Delete(&model.Category{}, id).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrCategoryInUse
			}
			return err
		}
		return nil
	})
}
