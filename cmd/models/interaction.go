package models

import "time"

const (
    InteractionComment = "comment"
    InteractionLike    = "like"
)

// Content is a pointer because a like stores NULL while a comment stores text.
type Interaction struct {
    ID        uint      `gorm:"primaryKey" json:"id"`
    Type      string    `gorm:"column:type;size:50;not null" json:"type"`
    CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
    UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
    AuthorID  uint      `gorm:"column:author_id;not null" json:"author_id"`
    PostID    uint      `gorm:"column:post_id;not null" json:"post_id"`
    Content   *string   `gorm:"column:content;type:text" json:"content"`
}
