// Package rules holds the cross-entity consistency checks that the schema
// does not enforce. Every check is a read followed by the caller's write;
// two concurrent identical requests can both pass a check before either
// writes. That race is accepted, the store has no constraint backing it
// except the nickname index.
package rules

import (
    "strings"

    "github.com/socialboard/socialboard-server/cmd/models"
    "github.com/socialboard/socialboard-server/db"
)

type Engine struct {
    users        *db.UserRepository
    posts        *db.PostRepository
    interactions *db.InteractionRepository
}

func New(users *db.UserRepository, posts *db.PostRepository, interactions *db.InteractionRepository) *Engine {
    return &Engine{users: users, posts: posts, interactions: interactions}
}

func (e *Engine) AuthorExists(id uint) (bool, error) {
    return e.users.Exists(id)
}

func (e *Engine) PostExists(id uint) (bool, error) {
    return e.posts.Exists(id)
}

// LikeExists reports whether the author already left a like on the post.
// The stored type is compared case-insensitively.
func (e *Engine) LikeExists(postID, authorID uint) (bool, error) {
    interactions, err := e.interactions.ListByPostAndAuthor(postID, authorID)
    if err != nil {
        return false, err
    }
    for _, interaction := range interactions {
        if strings.EqualFold(interaction.Type, models.InteractionLike) {
            return true, nil
        }
    }
    return false, nil
}
