package utils

import (
    "bytes"
    "encoding/json"
    "io"
    "net/http"
    "strconv"
    "strings"

    "github.com/google/uuid"
    "github.com/gorilla/mux"
    "github.com/socialboard/socialboard-server/log"
)

// NumericParam rejects the request with a 400 when the named path parameter
// is not a number, before the handler runs.
func NumericParam(name string, next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if _, err := strconv.Atoi(mux.Vars(r)[name]); err != nil {
            WriteError(w, http.StatusBadRequest, "The parameter in the request URL must necessarly be a number!")
            return
        }
        next(w, r)
    }
}

// RequireJSONBody enforces a JSON content type and a non-empty JSON object
// body. The body is re-buffered so the handler can decode it again.
func RequireJSONBody(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
            WriteError(w, http.StatusBadRequest, "The sent data must necessarily be in JSON format")
            return
        }
        body, err := readBody(r)
        if err != nil {
            WriteError(w, http.StatusBadRequest, "Missing json data")
            return
        }
        var fields map[string]json.RawMessage
        if err := json.Unmarshal(body, &fields); err != nil || len(fields) == 0 {
            WriteError(w, http.StatusBadRequest, "Missing json data")
            return
        }
        next(w, r)
    }
}

// ValidDateQuery rejects a malformed "date" query parameter; an absent one
// passes through.
func ValidDateQuery(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if date := r.URL.Query().Get("date"); date != "" && !ValidDate(date) {
            WriteError(w, http.StatusBadRequest, "The date parameter must be a string in YYYY-MM-DD format")
            return
        }
        next(w, r)
    }
}

// ValidAuthorIDQuery rejects a non-numeric "author_id" query parameter.
func ValidAuthorIDQuery(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if v := r.URL.Query().Get("author_id"); v != "" {
            if _, err := strconv.ParseFloat(v, 64); err != nil {
                WriteError(w, http.StatusBadRequest, "The author_id in the query parameters must necessarly be a number!")
                return
            }
        }
        next(w, r)
    }
}

// ValidCityQuery rejects a blank "city" query parameter.
func ValidCityQuery(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        if v, ok := r.URL.Query()["city"]; ok && len(v) > 0 && strings.TrimSpace(v[0]) == "" {
            WriteError(w, http.StatusBadRequest, "The city in the query parameters must necessarly be a not empty string!")
            return
        }
        next(w, r)
    }
}

// AvailableInteractionType rejects a body whose "type" field is a string
// outside {comment, like}. A missing type falls through: the handler owns
// the required-field message.
func AvailableInteractionType(next http.HandlerFunc) http.HandlerFunc {
    return func(w http.ResponseWriter, r *http.Request) {
        body, err := readBody(r)
        if err != nil {
            WriteError(w, http.StatusBadRequest, "Missing json data")
            return
        }
        var payload struct {
            Type *string `json:"type"`
        }
        if err := json.Unmarshal(body, &payload); err == nil &&
            payload.Type != nil && !ValidInteractionType(*payload.Type) {
            WriteError(w, http.StatusBadRequest, "Interaction's type must necessarly be a Like or a Comment!")
            return
        }
        next(w, r)
    }
}

// RequestID tags every request with a generated id and logs the call.
func RequestID(next http.Handler) http.Handler {
    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
        id := uuid.NewString()
        w.Header().Set("X-Request-ID", id)
        log.Info.Printf("%s %s %s", id, r.Method, r.URL.Path)
        next.ServeHTTP(w, r)
    })
}

// readBody drains the request body and replaces it with a rewound copy.
func readBody(r *http.Request) ([]byte, error) {
    body, err := io.ReadAll(r.Body)
    if err != nil {
        return nil, err
    }
    r.Body.Close()
    r.Body = io.NopCloser(bytes.NewReader(body))
    return body, nil
}
