package repo

import (
	"CurtainSamples/internal/model"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func mkCategory(t *testing.T, db *gorm.DB, name string) *model.Category {
	t.Helper()
	c := &model.Category{Name: name}
	require.NoError(t, NewCategoryRepository(db).Create(context.Background(), c))
	return c
}

func TestCurtainRepository_CreateRequiresCategory(t *testing.T) {
	db := newTestDB(t)
	r := NewCurtainRepository(db)
	ctx := context.Background()

	err := r.Create(ctx, &model.Curtain{Name: "Orphan", CategoryID: 777})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestCurtainRepository_CreateGetListDelete(t *testing.T) {
	db := newTestDB(t)
	r := NewCurtainRepository(db)
	ctx := context.Background()
	c1 := mkCategory(t, db, "Modern")
	c2 := mkCategory(t, db, "Classic")

	// in_stock=false должен сохраниться как есть
	a := &model.Curtain{Name: "Blackout", CategoryID: c1.ID, Price: floatPtr(199.5), InStock: false, IsNew: true}
	b := &model.Curtain{Name: "Sheer", CategoryID: c2.ID, InStock: true}
	require.NoError(t, r.Create(ctx, a))
	require.NoError(t, r.Create(ctx, b))

	got, err := r.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Blackout", got.Name)
	assert.False(t, got.InStock)
	assert.True(t, got.IsNew)
	assert.Equal(t, 199.5, *got.Price)
	assert.Nil(t, got.Material)
	assert.False(t, got.CreatedAt.IsZero())

	all, err := r.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	only, err := r.List(ctx, &c2.ID)
	require.NoError(t, err)
	if assert.Len(t, only, 1) {
		assert.Equal(t, "Sheer", only[0].Name)
	}

	missing := int64(555)
	none, err := r.List(ctx, &missing)
	require.NoError(t, err)
	assert.Empty(t, none)

	require.NoError(t, r.Delete(ctx, a.ID))
	_, err = r.GetByID(ctx, a.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.ErrorIs(t, r.Delete(ctx, a.ID), gorm.ErrRecordNotFound)
}

func TestCurtainRepository_UpdatePartialAdvancesUpdatedAt(t *testing.T) {
	db := newTestDB(t)
	r := NewCurtainRepository(db)
	ctx := context.Background()
	c1 := mkCategory(t, db, "Modern")

	base := &model.Curtain{Name: "Roman", CategoryID: c1.ID, Material: strPtr("linen"), Price: floatPtr(100), InStock: true}
	require.NoError(t, r.Create(ctx, base))
	before, err := r.GetByID(ctx, base.ID)
	require.NoError(t, err)

	time.Sleep(5 * time.Millisecond)
	got, err := r.Update(ctx, base.ID, map[string]any{"price": 250.0})
	require.NoError(t, err)
	assert.Equal(t, 250.0, *got.Price)
	assert.Equal(t, "Roman", got.Name)
	assert.Equal(t, "linen", *got.Material)
	assert.True(t, got.InStock)
	assert.Equal(t, c1.ID, got.CategoryID)
	assert.True(t, got.UpdatedAt.After(before.UpdatedAt), "updated_at must advance")
	assert.WithinDuration(t, before.CreatedAt, got.CreatedAt, time.Millisecond)
}

func TestCurtainRepository_UpdateCategoryReference(t *testing.T) {
	db := newTestDB(t)
	r := NewCurtainRepository(db)
	ctx := context.Background()
	c1 := mkCategory(t, db, "Modern")
	c2 := mkCategory(t, db, "Classic")

	cur := &model.Curtain{Name: "Roller", CategoryID: c1.ID, InStock: true}
	require.NoError(t, r.Create(ctx, cur))

	_, err := r.Update(ctx, cur.ID, map[string]any{"category_id": int64(9999)})
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	got, err := r.Update(ctx, cur.ID, map[string]any{"category_id": c2.ID})
	require.NoError(t, err)
	assert.Equal(t, c2.ID, got.CategoryID)

	_, err = r.Update(ctx, 4242, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
