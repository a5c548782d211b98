package models

import "time"

type Title struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"not null;size:100"`
	Year        *int    `json:"year,omitempty"`
	Description *string `json:"description,omitempty" gorm:"type:text"`

	CategoryID *int64    `json:"-" gorm:"index"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Rating is the mean of associated review scores, computed at read
	// time by the repository. Nil when the title has no reviews.
	Rating *float64 `json:"rating" gorm:"->;-:migration"`

	// associations
	Genres   []Genre   `json:"genres,omitempty" gorm:"many2many:title_genres;constraint:OnDelete:CASCADE;"`
	Category *Category `json:"category,omitempty" gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL;"`
}

func (Title) TableName() string {
	return "titles"
}
