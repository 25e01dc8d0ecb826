package models

import "time"

type Post struct {
    ID        uint      `gorm:"primaryKey" json:"id"`
    Title     string    `gorm:"column:title;type:text;not null" json:"title"`
    CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
    UpdatedAt time.Time `gorm:"column:updated_at" json:"updated_at"`
    AuthorID  uint      `gorm:"column:author_id;not null" json:"author_id"`

    // Attached with a follow-up query per post; author existence is checked
    // in code, so no relation or constraint is declared on the schema.
    Interactions []Interaction `gorm:"-" json:"interactions"`
}
