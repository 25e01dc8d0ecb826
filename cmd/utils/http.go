package utils

import (
    "encoding/json"
    "net/http"
)

type ErrorResponse struct {
    Error string `json:"error"`
}

type MessageResponse struct {
    Message string `json:"message"`
}

// WriteJSON encodes v as the response body with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
    w.Header().Set("Content-Type", "application/json")
    w.WriteHeader(status)
    json.NewEncoder(w).Encode(v)
}

// WriteError responds with {"error": msg}.
func WriteError(w http.ResponseWriter, status int, msg string) {
    WriteJSON(w, status, ErrorResponse{Error: msg})
}

// WriteMessage responds with {"message": msg}. A few failure paths use this
// shape instead of WriteError; the wire contract keeps them that way.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
    WriteJSON(w, status, MessageResponse{Message: msg})
}
