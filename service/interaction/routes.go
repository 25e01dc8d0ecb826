package interaction

import (
    "encoding/json"
    "fmt"
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
    interactions *db.InteractionRepository
    rules        *rules.Engine
}

func NewHandler(interactions *db.InteractionRepository, rules *rules.Engine) *Handler {
    return &Handler{interactions: interactions, rules: rules}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
    router.HandleFunc("/interactions/{id}",
        utils.NumericParam("id", h.GetPostInteractions)).Methods("GET")
    router.HandleFunc("/interactions",
        utils.RequireJSONBody(utils.AvailableInteractionType(h.CreateInteraction))).Methods("POST")
    router.HandleFunc("/interactions/{id}",
        utils.NumericParam("id", utils.RequireJSONBody(utils.AvailableInteractionType(h.UpdateInteraction)))).Methods("PUT")
    router.HandleFunc("/interactions/{id}",
        utils.NumericParam("id", utils.RequireJSONBody(h.DeleteInteraction))).Methods("DELETE")
}

type createInteractionPayload struct {
    Type     *string  `json:"type"`
    AuthorID *float64 `json:"author_id"`
    PostID   *float64 `json:"post_id"`
    Content  *string  `json:"content"`
}

type updateInteractionPayload struct {
    Type     *string  `json:"type"`
    AuthorID *float64 `json:"author_id"`
    Content  *string  `json:"content"`
}

type deleteInteractionPayload struct {
    AuthorID *float64 `json:"author_id"`
}

type listInteractionsResponse struct {
    Message      string               `json:"message"`
    Count        int                  `json:"count"`
    Interactions []models.Interaction `json:"interactions"`
}

// GetPostInteractions lists a post's interactions, newest first. The path
// parameter is the post id.
func (h *Handler) GetPostInteractions(w http.ResponseWriter, r *http.Request) {
    postID, _ := strconv.Atoi(mux.Vars(r)["id"])

    interactions, err := h.interactions.ListByPost(uint(postID))
    if err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if len(interactions) == 0 {
        utils.WriteMessage(w, http.StatusNotFound, "The selected Post has no interactions yet!")
        return
    }

    utils.WriteJSON(w, http.StatusOK, listInteractionsResponse{
        Message:      "Here is the list of interactions of the selected Post!",
        Count:        len(interactions),
        Interactions: interactions,
    })
}

// CreateInteraction validates type, author_id and post_id in that order,
// verifies both referenced rows exist, then branches on the normalized
// type: a comment requires non-empty content, a like requires null content
// and no prior like by the same author on the same post.
func (h *Handler) CreateInteraction(w http.ResponseWriter, r *http.Request) {
    var payload createInteractionPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidString(payload.Type) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new interaction! Interaction's type must necessarly be a not empty string!")
        return
    }
    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new interaction! author_id must necessarly be a number!")
        return
    }
    if !utils.ValidNumber(payload.PostID) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new interaction! post_id must necessarly be a number!")
        return
    }

    authorID := uint(*payload.AuthorID)
    postID := uint(*payload.PostID)

    exists, err := h.rules.AuthorExists(authorID)
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if !exists {
        utils.WriteError(w, http.StatusBadRequest, "Can't create a new interaction. The author of the interaction doesn't exist!")
        return
    }

    exists, err = h.rules.PostExists(postID)
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if !exists {
        utils.WriteError(w, http.StatusBadRequest, "Can't create a new interaction. The post where the interaction is being appended doesn't exist!")
        return
    }

    interactionType := strings.ToLower(*payload.Type)
    switch interactionType {
    case models.InteractionComment:
        if !utils.ValidString(payload.Content) {
            utils.WriteError(w, http.StatusBadRequest, "A comment must necessarly be a not empty string!")
            return
        }

    case models.InteractionLike:
        if payload.Content != nil {
            utils.WriteError(w, http.StatusBadRequest, "A like can't have content different from null!")
            return
        }
        liked, err := h.rules.LikeExists(postID, authorID)
        if err != nil {
            utils.WriteError(w, http.StatusBadRequest, err.Error())
            return
        }
        if liked {
            utils.WriteError(w, http.StatusBadRequest, "A user can't like a post more than once. This like already exists!")
            return
        }

    default:
        // The route guard rejects anything else before the handler.
        utils.WriteError(w, http.StatusBadRequest, "Interaction's type must necessarly be a Like or a Comment!")
        return
    }

    interaction := models.Interaction{
        Type:     interactionType,
        AuthorID: authorID,
        PostID:   postID,
        Content:  payload.Content,
    }
    if err := h.interactions.Create(&interaction); err != nil {
        log.Error.Println(err)
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    utils.WriteMessage(w, http.StatusOK, fmt.Sprintf("Interaction of type %s successfully created!", interactionType))
}

// UpdateInteraction rewrites a comment's content. Anything but a comment
// update is rejected outright, which also pins every interaction's type for
// good: a like can never become a comment, nor the other way around.
func (h *Handler) UpdateInteraction(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    var payload updateInteractionPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to update an interaction! author_id must necessarly be a number!")
        return
    }

    if payload.Type == nil || strings.ToLower(*payload.Type) != models.InteractionComment {
        utils.WriteError(w, http.StatusBadRequest, "Error. A like can't be updated!")
        return
    }

    if !utils.ValidString(payload.Content) {
        utils.WriteError(w, http.StatusBadRequest, "A comment must necessarly be a not empty string!")
        return
    }

    rows, err := h.interactions.UpdateComment(uint(id), uint(*payload.AuthorID), *payload.Content)
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteError(w, http.StatusBadRequest, "Can't update the interaction. Selected Interaction doesn't exist!")
        return
    }

    utils.WriteMessage(w, http.StatusOK, "Comment updated successfully!")
}

// DeleteInteraction removes an interaction matching id and author_id.
func (h *Handler) DeleteInteraction(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    var payload deleteInteractionPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidNumber(payload.AuthorID) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to delete an interaction! author_id must necessarly be a number!")
        return
    }

    rows, err := h.interactions.Delete(uint(id), uint(*payload.AuthorID))
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteError(w, http.StatusNotFound, "Can't delete the interaction. The selected Interaction doesn't already exist!")
        return
    }

    utils.WriteMessage(w, http.StatusOK, "Interaction successfully deleted!")
}
