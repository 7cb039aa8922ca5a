package model

import "time"

type PostModel struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"type:varchar(256);not null" json:"title"`
	Text        string         `gorm:"type:text;not null" json:"text"`
	Image       string         `gorm:"type:varchar(500);not null;default:''" json:"image"`
	ImageKey    string         `gorm:"type:varchar(500);not null;default:''" json:"-"`
	PubDate     time.Time      `gorm:"not null;index" json:"pub_date"`
	IsPublished bool           `gorm:"not null" json:"is_published"`
	CreatedAt   time.Time      `json:"created_at"`
	AuthorID    uint           `gorm:"not null;index" json:"author_id"`
	CategoryID  *uint          `gorm:"index" json:"category_id"`
	LocationID  *uint          `gorm:"index" json:"location_id"`
	Author      *UserModel     `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Category    *CategoryModel `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Location    *LocationModel `gorm:"foreignKey:LocationID" json:"location,omitempty"`

	// Filled by feed queries through a correlated subquery.
	CommentCount int64 `gorm:"->;-:migration" json:"comment_count"`
}

func (PostModel) TableName() string {
	return "posts"
}

type CommentModel struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Text      string     `gorm:"type:text;not null" json:"text"`
	PostID    uint       `gorm:"not null;index" json:"post_id"`
	AuthorID  uint       `gorm:"not null;index" json:"author_id"`
	Author    *UserModel `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	CreatedAt time.Time  `gorm:"index" json:"created_at"`
}

func (CommentModel) TableName() string {
	return "comments"
}
