package user

import (
    "encoding/json"
    "errors"
    "net/http"
    "strconv"
    "strings"

    "github.com/gorilla/mux"
    "github.com/socialboard/socialboard-server/cmd/models"
    "github.com/socialboard/socialboard-server/cmd/utils"
    "github.com/socialboard/socialboard-server/db"
    "gorm.io/gorm"
)

type Handler struct {
    users *db.UserRepository
}

func NewHandler(users *db.UserRepository) *Handler {
    return &Handler{users: users}
}

func (h *Handler) RegisterRoutes(router *mux.Router) {
    router.HandleFunc("/users", h.GetUsers).Methods("GET")
    router.HandleFunc("/users/{id}", utils.NumericParam("id", h.GetUser)).Methods("GET")
    router.HandleFunc("/users", utils.RequireJSONBody(h.CreateUser)).Methods("POST")
    router.HandleFunc("/users/{id}", utils.NumericParam("id", utils.RequireJSONBody(h.UpdateUser))).Methods("PUT")
    router.HandleFunc("/users/{id}", utils.NumericParam("id", h.DeleteUser)).Methods("DELETE")
}

type userPayload struct {
    Nickname *string  `json:"nickname"`
    Age      *float64 `json:"age"`
    City     *string  `json:"city"`
}

type listUsersResponse struct {
    Message string        `json:"message"`
    Users   []models.User `json:"users"`
}

type getUserResponse struct {
    Message string       `json:"message"`
    User    *models.User `json:"user"`
}

// GetUsers lists every registered user.
func (h *Handler) GetUsers(w http.ResponseWriter, r *http.Request) {
    users, err := h.users.List()
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if len(users) == 0 {
        utils.WriteMessage(w, http.StatusNotFound, "No user is registered to the app yet!")
        return
    }
    utils.WriteJSON(w, http.StatusOK, listUsersResponse{
        Message: "Here is the registered users list!",
        Users:   users,
    })
}

// GetUser retrieves a single user by id.
func (h *Handler) GetUser(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    user, err := h.users.ByID(uint(id))
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if user == nil {
        utils.WriteMessage(w, http.StatusNotFound, "No user found!")
        return
    }
    utils.WriteJSON(w, http.StatusOK, getUserResponse{
        Message: "Here is the selected user!",
        User:    user,
    })
}

// CreateUser validates nickname, age and city in that order, then inserts
// the user with the city lower-cased.
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
    var payload userPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidString(payload.Nickname) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new user! Nickname must necessarily be a not empty string!")
        return
    }
    if !utils.ValidAge(payload.Age) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new user! Age must necessarily be a number greater than zero!")
        return
    }
    if !utils.ValidString(payload.City) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to create a new user! City must necessarily be a not empty string!")
        return
    }

    user := models.User{
        Nickname: *payload.Nickname,
        Age:      int(*payload.Age),
        City:     strings.ToLower(*payload.City),
    }
    if err := h.users.Create(&user); err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            utils.WriteError(w, http.StatusBadRequest, "Sorry, the selected nickname it's already used")
            return
        }
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    utils.WriteMessage(w, http.StatusOK, "User was created successfully!")
}

// UpdateUser rewrites nickname, age and city for an existing user.
func (h *Handler) UpdateUser(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    var payload userPayload
    if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }

    if !utils.ValidString(payload.Nickname) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to update an existing user! Nickname must necessarily be a not empty string!")
        return
    }
    if !utils.ValidAge(payload.Age) {
        utils.WriteError(w, http.StatusBadRequest, "Enter all the required parameters to update an existing user! Age must necessarily be a number greater than zero!")
        return
    }
    if !utils.ValidString(payload.City) {
        // This one ships under "message" instead of "error"; clients
        // depend on the shape, so it stays.
        utils.WriteMessage(w, http.StatusBadRequest, "Enter all the required parameters to update an existing user! City must necessarily be a not empty string!")
        return
    }

    user := models.User{
        Nickname: *payload.Nickname,
        Age:      int(*payload.Age),
        City:     strings.ToLower(*payload.City),
    }
    rows, err := h.users.Update(uint(id), user)
    if err != nil {
        if errors.Is(err, gorm.ErrDuplicatedKey) {
            utils.WriteError(w, http.StatusBadRequest, "Sorry, the selected nickname it's already used")
            return
        }
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteMessage(w, http.StatusBadRequest, "Can't update user. Selected user doesn't exist!")
        return
    }

    utils.WriteMessage(w, http.StatusOK, "User updated successfully")
}

// DeleteUser removes a user. Posts and interactions authored by the user
// are left in place.
func (h *Handler) DeleteUser(w http.ResponseWriter, r *http.Request) {
    id, _ := strconv.Atoi(mux.Vars(r)["id"])

    rows, err := h.users.Delete(uint(id))
    if err != nil {
        utils.WriteError(w, http.StatusBadRequest, err.Error())
        return
    }
    if rows == 0 {
        utils.WriteError(w, http.StatusNotFound, "There is no user to delete with the selected ID")
        return
    }

    utils.WriteMessage(w, http.StatusOK, "User successfully deleted!")
}
