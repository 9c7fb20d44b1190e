package repo

import (
	"CurtainSamples/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestUserRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	r := NewUserRepository(db)
	ctx := context.Background()

	// успешное создание
	u, err := r.CreateUser(ctx, &model.User{Login: "admin", Password: "hash", IsAdmin: true})
	assert.NoError(t, err)
	assert.NotZero(t, u.ID)

	// поиск по логину: найдено
	got, err := r.GetUserByLogin(ctx, "admin")
	assert.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)
	assert.True(t, got.IsAdmin)

	// поиск по id
	got, err = r.GetUserByID(ctx, u.ID)
	assert.NoError(t, err)
	assert.Equal(t, "admin", got.Login)

	// уникальный логин: вторая вставка должна дать ошибку
	_, err = r.CreateUser(ctx, &model.User{Login: "admin", Password: "x"})
	assert.Error(t, err)

	// поиск несуществующего: ожидаем gorm.ErrRecordNotFound
	got, err = r.GetUserByLogin(ctx, "doesnotexist")
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)

	got, err = r.GetUserByID(ctx, 9999)
	assert.Nil(t, got)
	assert.Equal(t, gorm.ErrRecordNotFound, err)
}
