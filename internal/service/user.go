package service

import (
	"CurtainSamples/internal/model"
	"CurtainSamples/internal/repo"
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService вход и учётные записи администраторов.
type UserService struct {
	repo repo.UserRepository
}

func NewUserService(r repo.UserRepository) *UserService {
	return &UserService{repo: r}
}

// CreateUser регистрирует пользователя с bcrypt-хешем пароля.
func (s *UserService) CreateUser(ctx context.Context, login, password string, isAdmin bool) (*model.User, error) {
	if login == "" || password == "" {
		return nil, fmt.Errorf("%w: login and password are required", ErrValidation)
	}
	existing, err := s.findByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user, err := s.repo.CreateUser(ctx, &model.User{Login: login, Password: string(hash), IsAdmin: isAdmin})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// EnsureAdmin создаёт администратора, если пользователя с таким логином ещё нет.
// created=false означает, что учётная запись уже была.
func (s *UserService) EnsureAdmin(ctx context.Context, login, password string) (created bool, err error) {
	_, err = s.CreateUser(ctx, login, password, true)
	if errors.Is(err, ErrLoginTaken) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Login проверяет логин и пароль. Неизвестный логин и неверный пароль неотличимы: ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, login, password string) (*model.User, error) {
	if login == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.findByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// GetByID возвращает пользователя, к которому привязан токен.
func (s *UserService) GetByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if errors.Is(err, gorm.ErrRecordNotFound) || (err == nil && user == nil) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get user %d: %w", id, err)
	}
	return user, nil
}

func (s *UserService) findByLogin(ctx context.Context, login string) (*model.User, error) {
	user, err := s.repo.GetUserByLogin(ctx, login)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get user by login: %w", err)
	}
	return user, nil
}
