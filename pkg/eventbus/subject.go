package eventbus

import (
	"fmt"
	"strings"

	"study-planner/internal/model"
)

const subjectRoot = "planner"

// Subject returns the subject an event is published on: planner.<kind>.<user>.
func Subject(kind model.EventKind, userID string) string {
	return fmt.Sprintf("%s.%s.%s", subjectRoot, kind, sanitizeToken(userID))
}

// Wildcard returns the subject matching events of kind for every user.
func Wildcard(kind model.EventKind) string {
	return fmt.Sprintf("%s.%s.*", subjectRoot, kind)
}

// sanitizeToken makes s safe as a single subject token.
func sanitizeToken(s string) string {
	if s == "" {
		return "_"
	}
	return strings.Map(func(r rune) rune {
		switch r {
		case '.', '*', '>', ' ', '\t', '\n', '\r':
			return '_'
		}
		return r
	}, s)
}
