package utils

import (
    "math"
    "regexp"
    "strings"

    "github.com/socialboard/socialboard-server/cmd/models"
)

var dateFormat = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidString reports whether s is present and non-empty after trimming.
func ValidString(s *string) bool {
    return s != nil && strings.TrimSpace(*s) != ""
}

// ValidNumber reports whether n is a present, finite number.
func ValidNumber(n *float64) bool {
    return n != nil && !math.IsNaN(*n) && !math.IsInf(*n, 0)
}

// ValidAge reports whether n is a number strictly greater than zero.
func ValidAge(n *float64) bool {
    return ValidNumber(n) && *n > 0
}

// ValidDate reports whether s matches YYYY-MM-DD.
func ValidDate(s string) bool {
    return dateFormat.MatchString(s)
}

// ValidInteractionType reports whether t is "comment" or "like",
// case-insensitively.
func ValidInteractionType(t string) bool {
    t = strings.ToLower(t)
    return t == models.InteractionComment || t == models.InteractionLike
}
