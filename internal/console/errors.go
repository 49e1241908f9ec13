package console

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when an intent names an entity the console has not
// loaded.
var ErrNotFound = errors.New("console: not found")

// ValidationError reports required fields left blank on a create.
type ValidationError struct {
	Entity  string
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing required fields: %s", e.Entity, strings.Join(e.Missing, ", "))
}
