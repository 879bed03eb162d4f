package models

import (
	"time"
)

const ProjectStatusCompleted = "completed"

// Project, tamamlanmış bir üretimin kaydı. Input/output blob key'leri
// satırda saklanır, silme sırasında URL'den türetilmez.
type Project struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	UserID         uint      `json:"user_id" gorm:"index;not null"`
	InputImageURL  string    `json:"input_image_url" gorm:"not null"`
	OutputImageURL string    `json:"output_image_url" gorm:"not null"`
	InputKey       string    `json:"-" gorm:"not null"`
	OutputKey      string    `json:"-" gorm:"not null"`
	Prompt         string    `json:"prompt" gorm:"not null"`
	Status         string    `json:"status" gorm:"not null;default:'completed'"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
