package post

import (
    "encoding/json"
    "net/http"
    "strconv"
    "strings"

    "github.com/gorilla/mux"
    "github.com/socialboard/socialboard-server/cmd/models"
    "github.com/socialboard/socialboard-server/cmd/utils"
    "github.com/socialboard/socialboard-server/db"
    "github.com/socialboard/socialboard-server/log"
    "github.com/socialboard/socialboard-server/service/rules"
)

type Handler struct {
    posts        *db.PostRepository
    interactions *db.InteractionRepository
    rules        *rules.Engine
}

func NewHandler(posts *db.PostRepository, interactions *db.InteractionRepository, rules *rules.Engine) *Handler {
    return &Handler{posts: posts, interactions: interactions, rules: rules}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
    router.HandleFunc("/posts",
        utils.ValidDateQuery(utils.ValidAuthorIDQuery(h.GetPosts))).Methods("GET")
    router.HandleFunc("/posts/{id}",
        utils.NumericParam("id", utils.ValidDateQuery(utils.ValidCityQuery(h.GetPost)))).Methods("GET")
    router.HandleFunc("/posts", utils.RequireJSONBody(h.CreatePost)).Methods("POST")
    router.HandleFunc("/posts/{id}",
        utils.NumericParam("id", utils.RequireJSONBody(h.UpdatePost))).Methods("PUT")
    router.HandleFunc("/posts/{id}",
        utils.NumericParam("id", utils.RequireJSONBody(h.DeletePost))).Methods("DELETE")
}

type postPayload struct {
    Title    *string  `json:"title"`
    AuthorID *float64 `json:"author_id"`
}

type deletePostPayload struct {
    AuthorID *float64 `json:"author_id"`
}

type listPostsResponse struct {
    Message string        `json:"message"`
    Count   int           `json:"count"`
    Posts   []models.Post `json:"posts"`
}

type getPostResponse struct {
    Message string       `json:"message"`
    Post    *models.Post `json:"post"`
}

// GetPosts lists posts, optionally narrowed by author_id and/or creation
// date, and attaches each post's interactions with one follow-up query per
// post, keeping the listing order.
func (h *Handler) GetPosts(w http.ResponseWriter, r *http.Request) {
    query := r.URL.Query()

    filter := db.PostFilter{Date: query.Get("date")}
    if v := query.Get("author_id"); v != "" {
        // author_id=0 never matches a generated id and is treated as no
        // filter at all.
        if id, _ := strconv.ParseFloat(v, 64); id != 0 {
            authorID := uint(id)
            filter.AuthorID = &authorID
        }
    }

    posts, err := h.posts.List(filter)
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if len(posts) == 0 {
        utils.WriteMessage(w, http.StatusNotFound, "No posts found!")
        return
    }

    for i := range posts {
        interactions, err := h.interactions.FilterByPost(posts[i].ID, db.InteractionFilter{})
        if err != nil {
            log.Error.Println(err)
            utils.WriteError(w, http.StatusBadRequest, err.Error())
            return
        }
        posts[i].Interactions = interactions
    }

    utils.WriteJSON(w, http.StatusOK, listPostsResponse{
        Message: "Here is the requested posts list",
        Count:   len(posts),
        Posts:   posts,
    })
}

// GetPost retrieves one post and its interactions, the latter optionally
// narrowed by creation date and/or the interaction author's city.
func (h *Handler) GetPost(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])
    query := r.URL.Query()

    post, err := h.posts.ByID(uint(id))
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if post == nil {
        utils.WriteMessage(w, http.StatusNotFound, "No post found with selected ID!")
        return
    }

    filter := db.InteractionFilter{
        Date: query.Get("date"),
        City: strings.ToLower(query.Get("city")),
    }
    interactions, err := h.interactions.FilterByPost(post.ID, filter)
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    post.Interactions = interactions

    utils.WriteJSON(w, http.StatusOK, getPostResponse{
        Message: "Here is the chosen post!",
        Post:    post,
    })
}

// CreatePost validates title and author_id, verifies the author exists and
// inserts the post.
func (h *Handler) CreatePost(w http.ResponseWriter, r *http.Request) {
    var payload postPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidString(payload.Title) {
        utils.WriteError(w, http.StatusBadRequest, "Please insert all the required parameters for the creation of a Post! Post title must be a not empty string")
        return
    }
    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Please insert all the required parameters for the creation of a Post! The post's author_id must be a number!")
        return
    }

    authorID := uint(*payload.AuthorID)
    exists, err := h.rules.AuthorExists(authorID)
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if !exists {
        utils.WriteError(w, http.StatusBadRequest, "The user who's trying to make a post doesn't exist!")
        return
    }

    post := models.Post{Title: *payload.Title, AuthorID: authorID}
    if err := h.posts.Create(&post); err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    utils.WriteMessage(w, http.StatusOK, "Post successfully created!")
}

// UpdatePost retitles a post. The row must match both the path id and the
// body's author_id; a non-owning author_id reads as "doesn't exist".
func (h *Handler) UpdatePost(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    var payload postPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidString(payload.Title) {
        utils.WriteError(w, http.StatusBadRequest, "Please insert all the required parameters for the update of a Post! Post title must be a not empty string!")
        return
    }
    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Please insert all the required parameters for the update of a Post! The post's author_id must be a number!")
        return
    }

    rows, err := h.posts.Update(uint(id), uint(*payload.AuthorID), *payload.Title)
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteError(w, http.StatusBadRequest, "Can't update post. Selected Post doesn't exist!")
        return
    }

    utils.WriteMessage(w, http.StatusOK, "Post successfully updated!")
}

// DeletePost removes a post matching id and author_id, then removes its
// interactions with a second statement. The two writes are not wrapped in a
// transaction; a failure in between leaves orphaned interactions and is
// reported as-is.
func (h *Handler) DeletePost(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    var payload deletePostPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Please insert all the required parameters to delete a Post! The post's author_id must be a number!")
        return
    }

    rows, err := h.posts.Delete(uint(id), uint(*payload.AuthorID))
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteError(w, http.StatusNotFound, "Can't delete post. The selected Post doesn't already exist!")
        return
    }

    if _, err := h.interactions.DeleteByPost(uint(id)); err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    utils.WriteMessage(w, http.StatusOK, "Post successfully deleted!")
}
