package model

import "time"

// User: учётная запись для входа в админку каталога.
type User struct {
	ID       int64  `gorm:"primaryKey"`
	Login    string `gorm:"uniqueIndex;not null;size:80"`
	Password string `gorm:"not null"` // bcrypt-хеш
	IsAdmin  bool   `gorm:"not null;default:false"`

	CreatedAt time.Time `gorm:"autoCreateTime"`
}
