package models

import "time"

// Category groups submissions within one artifact kind
// (e.g. "Clinical Research" abstracts).
type Category struct {
	CategoryID   int        `gorm:"primaryKey;column:category_id" json:"category_id"`
	CategoryName string     `gorm:"column:category_name" json:"category_name"`
	CategoryFor  string     `gorm:"column:category_for" json:"category_for"` // abstract|best_paper|award
	CreateAt     time.Time  `gorm:"column:create_at" json:"create_at"`
	UpdateAt     time.Time  `gorm:"column:update_at" json:"update_at"`
	DeleteAt     *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}
