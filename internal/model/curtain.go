package model

import "time"

// Curtain: образец шторы в каталоге.
type Curtain struct {
	ID          int64   `gorm:"primaryKey"`
	Name        string  `gorm:"not null;size:100"`
	Description *string `gorm:"type:text"`
	ImageURL    *string `gorm:"size:255"`
	Price       *float64
	Material    *string `gorm:"size:100"`
	Width       *string `gorm:"size:50"`
	Pattern     *string `gorm:"size:100"`
	Style       *string `gorm:"size:100"`
	Features    *string `gorm:"type:text"`
	InStock     bool    `gorm:"not null"` // по умолчанию true, выставляется сервисом
	IsNew       bool    `gorm:"not null;default:false"`

	CategoryID int64     `gorm:"not null;index"`
	Category   *Category `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"` // внешний ключ на categories.id

	CreatedAt time.Time `gorm:"autoCreateTime"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
