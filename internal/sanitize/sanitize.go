// Package sanitize strips markup from user-supplied text.
package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"todo-be/internal/entities"
)

var policy = bluemonday.StrictPolicy()

// maxPasses bounds the strip and decode loop in Strip
const maxPasses = 8

// Strip removes every HTML tag from s and decodes the entities the policy
// escaped, so "<b>fish &amp; chips</b>" becomes "fish & chips". Decoding can
// surface markup that was entity-encoded in the input, so the pass repeats
// until the text is stable. Input that never settles is returned in the
// policy's escaped form.
func Strip(s string) string {
	for range maxPasses {
		sanitized := policy.Sanitize(s)
		decoded := html.UnescapeString(sanitized)
		if decoded == s {
			return decoded
		}
		s = decoded
	}
	return policy.Sanitize(s)
}

// StripTrimmed strips markup and surrounding whitespace
func StripTrimmed(s string) string {
	return strings.TrimSpace(Strip(s))
}

// Todo returns a copy of t with its content stripped
func Todo(t entities.Todo) entities.Todo {
	t.Content = Strip(t.Content)
	return t
}

// Todos strips the content of every todo, returning a new slice
func Todos(todos []entities.Todo) []entities.Todo {
	out := make([]entities.Todo, len(todos))
	for i, t := range todos {
		out[i] = Todo(t)
	}
	return out
}
