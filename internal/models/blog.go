package models

import (
	"time"

	"github.com/gosimple/slug"
)

// BlogCategory groups blog posts, e.g. "engineering" or "announcements".
type BlogCategory struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:80;uniqueIndex;not null"`
	Description string    `gorm:"size:160;not null"`
	CreatedAt   time.Time
}

// BlogTag is a label attached to any number of blog posts.
type BlogTag struct {
	ID          uint      `gorm:"primaryKey"`
	Name        string    `gorm:"size:80;uniqueIndex;not null"`
	Description string    `gorm:"size:160;not null"`
	CreatedAt   time.Time
}

// Blog represents a single blog post.
type Blog struct {
	ID          uint      `gorm:"primaryKey"`
	Title       string    `gorm:"size:80;not null"`
	Description string    `gorm:"size:160;not null"`
	Content     string    `gorm:"type:text;not null"`
	CategoryID  uint      `gorm:"index"`
	CreatedAt   time.Time

	Category BlogCategory `gorm:"constraint:OnDelete:SET NULL"`
	Tags     []BlogTag    `gorm:"many2many:blog_tags_association"`
}

// SlugURL returns a URL-friendly version of the blog title.
func (b *Blog) SlugURL() string {
	return slug.Make(b.Title)
}
