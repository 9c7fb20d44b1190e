package repo

import (
	"CurtainSamples/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

// CurtainRepository доступ к шторам.
// Ссылка на категорию проверяется в транзакции записи и ещё раз внешним ключом в БД.
type CurtainRepository interface {
	// List возвращает все шторы по возрастанию id; categoryID != nil ограничивает выборку одной категорией.
	List(ctx context.Context, categoryID *int64) ([]model.Curtain, error)
	GetByID(ctx context.Context, id int64) (*model.Curtain, error)
	Create(ctx context.Context, c *model.Curtain) error
	Update(ctx context.Context, id int64, updates map[string]any) (*model.Curtain, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type curtainRepo struct {
	db *gorm.DB
}

func NewCurtainRepository(db *gorm.DB) CurtainRepository {
	return &curtainRepo{db: db}
}

func (r *curtainRepo) List(ctx context.Context, categoryID *int64) ([]model.Curtain, error) {
	q := r.db.WithContext(ctx).Order("id ASC")
	if categoryID != nil {
		q = q.Where("category_id = ?", *categoryID)
	}
	var res []model.Curtain
	if err := q.Find(&res).Error; err != nil {
		return nil, err
	}
	return res, nil
}

func (r *curtainRepo) GetByID(ctx context.Context, id int64) (*model.Curtain, error) {
	var c model.Curtain
	if err := r.db.WithContext(ctx).First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *curtainRepo) Create(ctx context.Context, c *model.Curtain) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := categoryExists(tx, c.CategoryID); err != nil {
			return err
		}
		if err := tx.Omit("Category").Create(c).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrCategoryNotFound
			}
			return err
		}
		return nil
	})
}

func (r *curtainRepo) Update(ctx context.Context, id int64, updates map[string]any) (*model.Curtain, error) {
	var c model.Curtain
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&c, id).Error; err != nil {
			return err
		}
		if v, ok := updates["category_id"]; ok {
			catID, _ := v.(int64)
			if err := categoryExists(tx, catID); err != nil {
				return err
			}
		}

		cols := make(map[string]any, len(updates)+1)
		for k, v := range updates {
			cols[k] = v
		}
		cols["updated_at"] = time.Now().UTC()

		if err := tx.Model(&model.Curtain{}).Where("id = ?", id).Updates(cols).Error; err != nil {
			if isForeignKeyViolation(err) {
				return ErrCategoryNotFound
			}
			return err
		}
		return tx.First(&c, id).Error
	})
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Delete возвращает gorm.ErrRecordNotFound, если удалять нечего.
func (r *curtainRepo) Delete(ctx context.Context, id int64) error {
	tx := r.db.WithContext(ctx).Delete(&model.Curtain{}, id)
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *curtainRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&model.Curtain{}).Count(&n).Error
	return n, err
}

func categoryExists(tx *gorm.DB, id int64) error {
	var c model.Category
	err := tx.Select("id").First(&c, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrCategoryNotFound
	}
	return err
}
