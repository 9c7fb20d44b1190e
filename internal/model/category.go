package model

// Category: раздел каталога. Шторы ссылаются на него через Curtain.CategoryID.
type Category struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"not null;size:100"`
	Description *string `gorm:"type:text"`
}
