package db

import (
    "github.com/socialboard/socialboard-server/cmd/models"
    "gorm.io/gorm"
)

// InteractionFilter narrows FilterByPost. Date matches the calendar date of
// creation; City matches the interaction author's stored (lower-cased) city
// through a join on users.
type InteractionFilter struct {
    Date string
    City string
}

type InteractionRepository struct {
    db *gorm.DB
}

func NewInteractionRepository(db *gorm.DB) *InteractionRepository {
    return &InteractionRepository{db: db}
}

// ListByPost returns a post's interactions, newest first.
func (r *InteractionRepository) ListByPost(postID uint) ([]models.Interaction, error) {
    interactions := make([]models.Interaction, 0)
    err := r.db.Where("post_id = ?", postID).
        Order("created_at DESC").
        Find(&interactions).Error
    if err != nil {
        return nil, err
    }
    return interactions, nil
}

// FilterByPost returns a post's interactions restricted by the filter.
func (r *InteractionRepository) FilterByPost(postID uint, filter InteractionFilter) ([]models.Interaction, error) {
    interactions := make([]models.Interaction, 0)
    query := r.db.Model(&models.Interaction{}).Where("interactions.post_id = ?", postID)
    if filter.Date != "" {
        query = query.Where("DATE(interactions.created_at) = ?", filter.Date)
    }
    if filter.City != "" {
        query = query.
            Joins("LEFT JOIN users ON interactions.author_id = users.id").
            Where("users.city = ?", filter.City)
    }
    if err := query.Find(&interactions).Error; err != nil {
        return nil, err
    }
    return interactions, nil
}

// ListByPostAndAuthor returns every interaction one author left on one post.
func (r *InteractionRepository) ListByPostAndAuthor(postID, authorID uint) ([]models.Interaction, error) {
    interactions := make([]models.Interaction, 0)
    err := r.db.Where("post_id = ? AND author_id = ?", postID, authorID).
        Order("created_at DESC").
        Find(&interactions).Error
    if err != nil {
        return nil, err
    }
    return interactions, nil
}

func (r *InteractionRepository) Create(interaction *models.Interaction) error {
    return r.db.Create(interaction).Error
}

// UpdateComment rewrites the content of a comment matching id and author_id.
// The type predicate keeps likes (and anything else) untouched regardless of
// the stored casing.
func (r *InteractionRepository) UpdateComment(id, authorID uint, content string) (int64, error) {
    result := r.db.Model(&models.Interaction{}).
        Where("id = ? AND author_id = ? AND LOWER(type) = ?", id, authorID, models.InteractionComment).
        Update("content", content)
    return result.RowsAffected, result.Error
}

func (r *InteractionRepository) Delete(id, authorID uint) (int64, error) {
    result := r.db.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Interaction{})
    return result.RowsAffected, result.Error
}

// DeleteByPost removes every interaction attached to a post. Runs as its own
// statement after the post delete; there is no wrapping transaction.
func (r *InteractionRepository) DeleteByPost(postID uint) (int64, error) {
    result := r.db.Where("post_id = ?", postID).Delete(&models.Interaction{})
    return result.RowsAffected, result.Error
}
