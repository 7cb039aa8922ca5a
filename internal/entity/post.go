package entity

import "time"

type Post struct {
	ID           uint      `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	Image        string    `json:"image,omitempty"`
	ImageKey     string    `json:"-"`
	PubDate      time.Time `json:"pub_date"`
	IsPublished  bool      `json:"is_published"`
	CreatedAt    time.Time `json:"created_at"`
	AuthorID     uint      `json:"author_id"`
	CategoryID   *uint     `json:"category_id,omitempty"`
	LocationID   *uint     `json:"location_id,omitempty"`
	Author       *User     `json:"author,omitempty"`
	Category     *Category `json:"category,omitempty"`
	Location     *Location `json:"location,omitempty"`
	CommentCount int64     `json:"comment_count"`
}

func (p *Post) OwnerID() uint {
	return p.AuthorID
}

// IsVisibleAt reports whether the post may be shown to readers other than
// its author at the given moment. Category must be loaded when CategoryID is set.
func (p *Post) IsVisibleAt(now time.Time) bool {
	if !p.IsPublished || p.PubDate.After(now) {
		return false
	}
	if p.CategoryID != nil && (p.Category == nil || !p.Category.IsPublished) {
		return false
	}
	return true
}

type Comment struct {
	ID        uint      `json:"id"`
	Text      string    `json:"text"`
	PostID    uint      `json:"post_id"`
	AuthorID  uint      `json:"author_id"`
	Author    *User     `json:"author,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *Comment) OwnerID() uint {
	return c.AuthorID
}
