package db

import (
    "errors"

    "github.com/socialboard/socialboard-server/cmd/models"
    "gorm.io/gorm"
)

type UserRepository struct {
    db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
    return &UserRepository{db: db}
}

func (r *UserRepository) List() ([]models.User, error) {
    users := make([]models.User, 0)
    if err := r.db.Find(&users).Error; err != nil {
        return nil, err
    }
    return users, nil
}

// ByID returns nil without an error when no user matches.
func (r *UserRepository) ByID(id uint) (*models.User, error) {
    var user models.User
    err := r.db.First(&user, id).Error
    if errors.Is(err, gorm.ErrRecordNotFound) {
        return nil, nil
    }
    if err != nil {
        return nil, err
    }
    return &user, nil
}

func (r *UserRepository) Exists(id uint) (bool, error) {
    user, err := r.ByID(id)
    return user != nil, err
}

func (r *UserRepository) Create(user *models.User) error {
    return r.db.Create(user).Error
}

// Update writes nickname, age and city for the given id and reports how
// many rows matched.
func (r *UserRepository) Update(id uint, user models.User) (int64, error) {
    result := r.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
        "nickname": user.Nickname,
        "age":      user.Age,
        "city":     user.City,
    })
    return result.RowsAffected, result.Error
}

func (r *UserRepository) Delete(id uint) (int64, error) {
    result := r.db.Where("id = ?", id).Delete(&models.User{})
    return result.RowsAffected, result.Error
}
