package entity

import (
	"time"
)

// Newspaper represents a single scanned newspaper page.
type Newspaper struct {
	ID              string    `gorm:"primaryKey;type:uuid;default:gen_random_uuid()" json:"id"`
	PublicationDate time.Time `gorm:"not null;index" json:"publication_date"`
	Year            int       `json:"year"`
	Month           int       `json:"month"`
	Day             int       `json:"day"`
	PageNumber      int       `gorm:"not null;default:1" json:"page_number"`
	Section         string    `json:"section"`
	ImagePath       string    `json:"image_path"`
	ProcessedAt     time.Time `gorm:"autoCreateTime" json:"processed_at"`
	Articles        []Article `gorm:"foreignKey:NewspaperID" json:"articles,omitempty"`
}

// TableName specifies the table name for the Newspaper model.
func (Newspaper) TableName() string {
	return "newspapers"
}
