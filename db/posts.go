package db

import (
    "errors"

    "github.com/socialboard/socialboard-server/cmd/models"
    "gorm.io/gorm"
)

// PostFilter narrows List. A nil AuthorID or empty Date leaves the
// corresponding predicate out; both set, both apply.
type PostFilter struct {
    AuthorID *uint
    Date     string
}

type PostRepository struct {
    db *gorm.DB
}

func NewPostRepository(db *gorm.DB) *PostRepository {
    return &PostRepository{db: db}
}

func (r *PostRepository) List(filter PostFilter) ([]models.Post, error) {
    posts := make([]models.Post, 0)
    query := r.db.Model(&models.Post{})
    if filter.AuthorID != nil {
        query = query.Where("author_id = ?", *filter.AuthorID)
    }
    if filter.Date != "" {
        query = query.Where("DATE(created_at) = ?", filter.Date)
    }
    if err := query.Order("created_at DESC").Find(&posts).Error; err != nil {
        return nil, err
    }
    return posts, nil
}

// ByID returns nil without an error when no post matches.
func (r *PostRepository) ByID(id uint) (*models.Post, error) {
    var post models.Post
    err := r.db.First(&post, id).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &post, nil
}

func (r *PostRepository) Exists(id uint) (bool, error) {
    post, err := r.ByID(id)
    return post != nil, err
}

func (r *PostRepository) Create(post *models.Post) error {
    return r.db.Create(post).Error
}

// Update retitles the post matching both id and author_id; a mismatched
// author shows up as zero rows affected.
func (r *PostRepository) Update(id, authorID uint, title string) (int64, error) {
    result := r.db.Model(&models.Post{}).
        Where("id = ? AND author_id = ?", id, authorID).
        Update("title", title)
    return result.RowsAffected, result.Error
}

func (r *PostRepository) Delete(id, authorID uint) (int64, error) {
    result := r.db.Where("id = ? AND author_id = ?", id, authorID).Delete(&models.Post{})
    return result.RowsAffected, result.Error
}
